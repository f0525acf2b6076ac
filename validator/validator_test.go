package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/misioncampo/visitas-api/schema"
)

func validInput() schema.VisitRatingInput {
	return schema.VisitRatingInput{
		VisitID:                "visit-1",
		RaterID:                "missionary-1",
		MissionOpenness:        4,
		Hospitality:            5,
		MissionarySupportCount: 2,
		OfferingAmount:         150,
		ChurchMemberCount:      40,
		VisitAttendeeCount:     35,
		DurationMinutes:        90,
	}
}

func TestValidateAcceptsValidInput(t *testing.T) {
	v := New(DefaultConfig(), "ro")

	result := v.Validate(validInput())
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	v := New(DefaultConfig(), "ro")

	input := schema.VisitRatingInput{
		MissionOpenness:        0,
		Hospitality:            9,
		MissionarySupportCount: -1,
		OfferingAmount:         -20,
		ChurchMemberCount:      0,
		VisitAttendeeCount:     0,
		DurationMinutes:        -5,
	}

	result := v.Validate(input)
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 7)

	fields := make(map[string]bool)
	for _, fieldErr := range result.Errors {
		fields[fieldErr.Field] = true
		assert.NotEmpty(t, fieldErr.Message)
		assert.NotEmpty(t, fieldErr.LocalizedMessage)
	}
	assert.True(t, fields["missionOpenness"])
	assert.True(t, fields["hospitality"])
	assert.True(t, fields["missionarySupportCount"])
	assert.True(t, fields["offeringAmount"])
	assert.True(t, fields["churchMemberCount"])
	assert.True(t, fields["visitAttendeeCount"])
	assert.True(t, fields["durationMinutes"])
}

func TestValidateBilingualMessages(t *testing.T) {
	v := New(DefaultConfig(), "ro")

	input := validInput()
	input.Hospitality = 0

	result := v.Validate(input)
	assert.False(t, result.Valid)
	assert.Equal(t, "hospitality must be an integer between 1 and 5", result.Errors[0].Message)
	assert.Equal(t, "ospitalitatea trebuie să fie un număr întreg între 1 și 5", result.Errors[0].LocalizedMessage)
}

func TestValidateAttendeeRatioSoftWarning(t *testing.T) {
	v := New(Config{MaxAttendeeRatio: 3}, "ro")

	input := validInput()
	input.VisitAttendeeCount = 130

	result := v.Validate(input)
	assert.True(t, result.Valid)
	assert.Len(t, result.Warnings, 1)
	assert.Equal(t, "visitAttendeeCount", result.Warnings[0].Field)
}

func TestValidateAttendeeRatioHardRejection(t *testing.T) {
	v := New(Config{MaxAttendeeRatio: 3, AttendeeRatioHard: true}, "ro")

	input := validInput()
	input.VisitAttendeeCount = 130

	result := v.Validate(input)
	assert.False(t, result.Valid)
	assert.Empty(t, result.Warnings)
}

func TestValidateSupportCountMustNotExceedAttendees(t *testing.T) {
	v := New(DefaultConfig(), "ro")

	input := validInput()
	input.MissionarySupportCount = 50

	result := v.Validate(input)
	assert.False(t, result.Valid)
	assert.Equal(t, "missionarySupportCount", result.Errors[0].Field)
}

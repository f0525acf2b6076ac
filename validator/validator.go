// Package validator checks visit rating payloads before scoring. Unlike the
// scorer it never stops at the first problem: every violation is collected so
// the client can fix them in one round trip, each with an English machine
// message and a Romanian message for UI display.
package validator

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/misioncampo/visitas-api/consts"
	"github.com/misioncampo/visitas-api/schema"
	"github.com/misioncampo/visitas-api/utils"
)

// Config carries the deployment-tunable rules. The attendee-to-member bound
// appears in the field with values between 3 and 10 depending on the region,
// so it is configuration rather than a constant, and each deployment decides
// whether exceeding it rejects the rating or merely warns.
type Config struct {
	MaxAttendeeRatio  float64
	AttendeeRatioHard bool
}

func DefaultConfig() Config {
	return Config{
		MaxAttendeeRatio:  consts.DefaultMaxAttendeeRatio,
		AttendeeRatioHard: false,
	}
}

// FieldError is one field-level violation.
type FieldError struct {
	Field            string `json:"field"`
	Message          string `json:"message"`
	LocalizedMessage string `json:"localizedMessage"`
}

// Result collects every violation found in a payload.
type Result struct {
	Valid    bool         `json:"valid"`
	Errors   []FieldError `json:"errors,omitempty"`
	Warnings []FieldError `json:"warnings,omitempty"`
}

type Validator struct {
	cfg       Config
	en        *i18n.Localizer
	localized *i18n.Localizer
}

// New builds a validator whose localized messages use the given language.
func New(cfg Config, lang string) *Validator {
	if cfg.MaxAttendeeRatio <= 0 {
		cfg.MaxAttendeeRatio = consts.DefaultMaxAttendeeRatio
	}
	if lang == "" {
		lang = "ro"
	}
	return &Validator{
		cfg:       cfg,
		en:        utils.NewLocalizer("en"),
		localized: utils.NewLocalizer(lang),
	}
}

func (v *Validator) fieldError(field, messageID string, data map[string]interface{}) FieldError {
	cfg := &i18n.LocalizeConfig{MessageID: messageID, TemplateData: data}
	message, err := v.en.Localize(cfg)
	if err != nil {
		message = messageID
	}
	localized, err := v.localized.Localize(cfg)
	if err != nil {
		localized = message
	}
	return FieldError{
		Field:            field,
		Message:          message,
		LocalizedMessage: localized,
	}
}

// Validate checks every business rule against the payload and reports all
// violations. It never returns an error: a broken payload yields a Result
// with Valid false.
func (v *Validator) Validate(input schema.VisitRatingInput) Result {
	var errors, warnings []FieldError

	if input.MissionOpenness < consts.MinStarRating || input.MissionOpenness > consts.MaxStarRating {
		errors = append(errors, v.fieldError("missionOpenness", "rating.missionOpenness.range", nil))
	}
	if input.Hospitality < consts.MinStarRating || input.Hospitality > consts.MaxStarRating {
		errors = append(errors, v.fieldError("hospitality", "rating.hospitality.range", nil))
	}
	if input.MissionarySupportCount < 0 {
		errors = append(errors, v.fieldError("missionarySupportCount", "rating.missionarySupportCount.negative", nil))
	}
	if input.OfferingAmount < 0 {
		errors = append(errors, v.fieldError("offeringAmount", "rating.offeringAmount.negative", nil))
	}
	if input.ChurchMemberCount <= 0 {
		errors = append(errors, v.fieldError("churchMemberCount", "rating.churchMemberCount.positive", nil))
	}
	if input.VisitAttendeeCount <= 0 {
		errors = append(errors, v.fieldError("visitAttendeeCount", "rating.visitAttendeeCount.positive", nil))
	}
	if input.DurationMinutes < 0 {
		errors = append(errors, v.fieldError("durationMinutes", "rating.durationMinutes.positive", nil))
	}

	if input.ChurchMemberCount > 0 && input.VisitAttendeeCount > 0 &&
		float64(input.VisitAttendeeCount) > v.cfg.MaxAttendeeRatio*float64(input.ChurchMemberCount) {
		fieldErr := v.fieldError("visitAttendeeCount", "rating.visitAttendeeCount.ratio",
			map[string]interface{}{"Ratio": v.cfg.MaxAttendeeRatio})
		if v.cfg.AttendeeRatioHard {
			errors = append(errors, fieldErr)
		} else {
			warnings = append(warnings, fieldErr)
		}
	}

	if input.VisitAttendeeCount > 0 && input.MissionarySupportCount > input.VisitAttendeeCount {
		errors = append(errors, v.fieldError("missionarySupportCount", "rating.missionarySupportCount.exceedsAttendees", nil))
	}

	return Result{
		Valid:    len(errors) == 0,
		Errors:   errors,
		Warnings: warnings,
	}
}

package score

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/misioncampo/visitas-api/schema"
)

func TestCalculateVisitRatingNoOffering(t *testing.T) {
	input := schema.VisitRatingInput{
		MissionOpenness:    5,
		Hospitality:        4,
		OfferingAmount:     0,
		ChurchMemberCount:  50,
		VisitAttendeeCount: 40,
	}

	rating, err := CalculateVisitRating(input)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, rating.Breakdown.Financial)
	assert.Equal(t, 0.55, rating.Weights.MissionOpenness)
	assert.Equal(t, 0.45, rating.Weights.Hospitality)
	assert.Equal(t, 0.0, rating.Weights.Financial)
	// 5*0.55 + 4*0.45 = 4.55 rounds up
	assert.Equal(t, 5, rating.Stars)
}

func TestCalculateVisitRatingWithOffering(t *testing.T) {
	input := schema.VisitRatingInput{
		MissionOpenness:    3,
		Hospitality:        3,
		OfferingAmount:     20,
		ChurchMemberCount:  40,
		VisitAttendeeCount: 30,
	}

	rating, err := CalculateVisitRating(input)
	assert.NoError(t, err)
	// avg ratio (0.5 + 0.667)/2 is far below the first threshold
	assert.Equal(t, 1.0, rating.Breakdown.Financial)
	assert.Equal(t, schema.DefaultRatingWeights, rating.Weights)
	// 3*0.40 + 3*0.30 + 1*0.30 = 2.4 rounds down
	assert.Equal(t, 2, rating.Stars)
}

func TestEffectiveWeightsExactRedistribution(t *testing.T) {
	// the redistributed weights must be exact, not 0.30/2-derived floats;
	// they are persisted verbatim on every rating
	assert.Equal(t, schema.DefaultRatingWeights, EffectiveWeights(true))
	assert.Equal(t, schema.RatingWeights{
		MissionOpenness: 0.55,
		Hospitality:     0.45,
		Financial:       0,
	}, EffectiveWeights(false))
}

func TestCalculateVisitRatingWeightsAlwaysSumToOne(t *testing.T) {
	for _, offering := range []float64{0, 5, 120, 10000} {
		input := schema.VisitRatingInput{
			MissionOpenness:    2,
			Hospitality:        4,
			OfferingAmount:     offering,
			ChurchMemberCount:  25,
			VisitAttendeeCount: 20,
		}
		rating, err := CalculateVisitRating(input)
		assert.NoError(t, err)
		sum := rating.Weights.MissionOpenness + rating.Weights.Hospitality + rating.Weights.Financial
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestCalculateVisitRatingStaysInRange(t *testing.T) {
	for openness := 1; openness <= 5; openness++ {
		for hospitality := 1; hospitality <= 5; hospitality++ {
			for _, offering := range []float64{0, 1, 30, 80, 500, 100000} {
				input := schema.VisitRatingInput{
					MissionOpenness:    openness,
					Hospitality:        hospitality,
					OfferingAmount:     offering,
					ChurchMemberCount:  30,
					VisitAttendeeCount: 25,
				}
				rating, err := CalculateVisitRating(input)
				assert.NoError(t, err)
				assert.GreaterOrEqual(t, rating.Stars, 1)
				assert.LessOrEqual(t, rating.Stars, 5)
				assert.GreaterOrEqual(t, rating.Breakdown.Financial, 0.0)
				assert.LessOrEqual(t, rating.Breakdown.Financial, 5.0)
			}
		}
	}
}

func TestFinancialScoreThresholds(t *testing.T) {
	// members == attendees so the averaged ratio equals offering/count
	assert.Equal(t, 0.0, FinancialScore(0, 10, 10))
	assert.Equal(t, 1.0, FinancialScore(90, 10, 10))   // ratio 9
	assert.Equal(t, 2.0, FinancialScore(100, 10, 10))  // ratio 10
	assert.Equal(t, 2.0, FinancialScore(240, 10, 10))  // ratio 24
	assert.Equal(t, 3.0, FinancialScore(250, 10, 10))  // ratio 25
	assert.Equal(t, 4.0, FinancialScore(500, 10, 10))  // ratio 50
	assert.Equal(t, 5.0, FinancialScore(1000, 10, 10)) // ratio 100
}

func TestCalculateVisitRatingRejectsInconsistentInput(t *testing.T) {
	input := schema.VisitRatingInput{
		MissionOpenness:        4,
		Hospitality:            4,
		MissionarySupportCount: 30,
		ChurchMemberCount:      50,
		VisitAttendeeCount:     20,
	}

	_, err := CalculateVisitRating(input)
	assert.Error(t, err)
	calcErr, ok := err.(*CalculationError)
	assert.True(t, ok)
	assert.Equal(t, "missionarySupportCount", calcErr.Field)
}

func TestCalculateVisitRatingRejectsOutOfRange(t *testing.T) {
	cases := []schema.VisitRatingInput{
		{MissionOpenness: 0, Hospitality: 3, ChurchMemberCount: 10, VisitAttendeeCount: 10},
		{MissionOpenness: 3, Hospitality: 6, ChurchMemberCount: 10, VisitAttendeeCount: 10},
		{MissionOpenness: 3, Hospitality: 3, ChurchMemberCount: 0, VisitAttendeeCount: 10},
		{MissionOpenness: 3, Hospitality: 3, ChurchMemberCount: 10, VisitAttendeeCount: 0},
		{MissionOpenness: 3, Hospitality: 3, ChurchMemberCount: 10, VisitAttendeeCount: 10, OfferingAmount: -1},
	}

	for _, input := range cases {
		_, err := CalculateVisitRating(input)
		assert.Error(t, err)
	}
}

func TestCalculateVisitRatingCrowdedVisitStillScores(t *testing.T) {
	// attendees far beyond membership is a validator warning, never a
	// scoring failure
	input := schema.VisitRatingInput{
		MissionOpenness:    4,
		Hospitality:        5,
		ChurchMemberCount:  5,
		VisitAttendeeCount: 120,
	}

	rating, err := CalculateVisitRating(input)
	assert.NoError(t, err)
	assert.Equal(t, 4, rating.Stars)
}

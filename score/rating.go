package score

import (
	"fmt"
	"math"

	"github.com/misioncampo/visitas-api/consts"
	"github.com/misioncampo/visitas-api/schema"
)

// CalculationError reports a scoring precondition violated despite upstream
// validation. It is treated as a server-side bug when it surfaces.
type CalculationError struct {
	Field  string
	Reason string
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("cannot calculate rating: %s %s", e.Field, e.Reason)
}

// offering-per-person thresholds mapping the averaged giving ratio to a
// financial sub-score, in local currency units
var offeringRatioThresholds = []struct {
	below float64
	score float64
}{
	{10, 1},
	{25, 2},
	{50, 3},
	{100, 4},
}

// FinancialScore maps an offering against member and attendee counts to a
// 1-5 sub-score. A zero offering returns 0, meaning the component does not
// apply to this visit.
func FinancialScore(offering float64, members, attendees int) float64 {
	if offering <= 0 {
		return 0
	}

	ratio := (offering/float64(members) + offering/float64(attendees)) / 2
	for _, t := range offeringRatioThresholds {
		if ratio < t.below {
			return t.score
		}
	}
	return 5
}

// noOfferingWeights is DefaultRatingWeights with the financial weight
// redistributed evenly to the relational components. Spelled out as exact
// literals: deriving them additively leaves float dust (0.30/2 + 0.30
// != 0.45) in every persisted rating.
var noOfferingWeights = schema.RatingWeights{
	MissionOpenness: 0.55,
	Hospitality:     0.45,
	Financial:       0,
}

// EffectiveWeights returns the component weights for a visit. When no
// offering was taken the financial weight is redistributed evenly to the
// relational components, so a church is never penalized for a visit type
// that takes no offering.
func EffectiveWeights(hasOffering bool) schema.RatingWeights {
	if !hasOffering {
		return noOfferingWeights
	}
	return schema.DefaultRatingWeights
}

// CalculateVisitRating computes the star rating for one visit. It is pure
// and deterministic; the caller is expected to have run the validator first.
func CalculateVisitRating(input schema.VisitRatingInput) (*schema.CalculatedRating, error) {
	if input.MissionOpenness < consts.MinStarRating || input.MissionOpenness > consts.MaxStarRating {
		return nil, &CalculationError{Field: "missionOpenness", Reason: "out of range"}
	}
	if input.Hospitality < consts.MinStarRating || input.Hospitality > consts.MaxStarRating {
		return nil, &CalculationError{Field: "hospitality", Reason: "out of range"}
	}
	if input.ChurchMemberCount <= 0 {
		return nil, &CalculationError{Field: "churchMemberCount", Reason: "must be positive"}
	}
	if input.VisitAttendeeCount <= 0 {
		return nil, &CalculationError{Field: "visitAttendeeCount", Reason: "must be positive"}
	}
	if input.OfferingAmount < 0 {
		return nil, &CalculationError{Field: "offeringAmount", Reason: "must not be negative"}
	}
	if input.MissionarySupportCount < 0 {
		return nil, &CalculationError{Field: "missionarySupportCount", Reason: "must not be negative"}
	}
	if input.MissionarySupportCount > input.VisitAttendeeCount {
		return nil, &CalculationError{Field: "missionarySupportCount", Reason: "exceeds attendee count"}
	}

	financial := FinancialScore(input.OfferingAmount, input.ChurchMemberCount, input.VisitAttendeeCount)
	weights := EffectiveWeights(input.HasOffering())

	weighted := float64(input.MissionOpenness)*weights.MissionOpenness +
		float64(input.Hospitality)*weights.Hospitality +
		financial*weights.Financial

	stars := int(math.Round(weighted))
	if stars < consts.MinStarRating {
		stars = consts.MinStarRating
	}
	if stars > consts.MaxStarRating {
		stars = consts.MaxStarRating
	}

	// MissionarySupportCount is deliberately absent from the star score: it
	// is surfaced as a church-level counter by the aggregator only.
	return &schema.CalculatedRating{
		Stars: stars,
		Breakdown: schema.RatingBreakdown{
			MissionOpenness: float64(input.MissionOpenness),
			Hospitality:     float64(input.Hospitality),
			Financial:       financial,
		},
		Weights: weights,
	}, nil
}

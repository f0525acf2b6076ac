package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const VisitRatingCollection = "visitRating"

// RatingWeights is the weight of each rating component in the final star
// rating. The base weights apply when every component is applicable; when a
// visit has no offering the financial weight is redistributed evenly to the
// relational components.
type RatingWeights struct {
	MissionOpenness float64 `json:"missionOpenness" bson:"mission_openness"`
	Hospitality     float64 `json:"hospitality" bson:"hospitality"`
	Financial       float64 `json:"financial" bson:"financial"`
}

var DefaultRatingWeights = RatingWeights{
	MissionOpenness: 0.40,
	Hospitality:     0.30,
	Financial:       0.30,
}

// VisitRatingInput is one missionary's assessment of one visit. Ratings are
// append-only: once finalized there is no update or delete path.
type VisitRatingInput struct {
	VisitID                string  `json:"visitId" bson:"visit_id"`
	RaterID                string  `json:"raterId" bson:"rater_id"`
	MissionOpenness        int     `json:"missionOpenness" bson:"mission_openness"`
	Hospitality            int     `json:"hospitality" bson:"hospitality"`
	MissionarySupportCount int     `json:"missionarySupportCount" bson:"missionary_support_count"`
	OfferingAmount         float64 `json:"offeringAmount" bson:"offering_amount"`
	ChurchMemberCount      int     `json:"churchMemberCount" bson:"church_member_count"`
	VisitAttendeeCount     int     `json:"visitAttendeeCount" bson:"visit_attendee_count"`
	DurationMinutes        int     `json:"durationMinutes,omitempty" bson:"duration_minutes,omitempty"`
	Note                   string  `json:"note,omitempty" bson:"note,omitempty"`
}

// HasOffering reports whether the financial component applies to this visit.
// A zero offering means no offering was taken, not a worst-case offering.
func (i VisitRatingInput) HasOffering() bool {
	return i.OfferingAmount > 0
}

// RatingBreakdown carries the three component sub-scores behind a star
// rating. Financial is 0 when the visit had no offering; the aggregator
// excludes those entries from the financial average instead of treating them
// as a score of zero.
type RatingBreakdown struct {
	MissionOpenness float64 `json:"missionOpenness" bson:"mission_openness"`
	Hospitality     float64 `json:"hospitality" bson:"hospitality"`
	Financial       float64 `json:"financial" bson:"financial"`
}

// CalculatedRating is the derived part of a finalized rating.
type CalculatedRating struct {
	Stars     int             `json:"stars" bson:"stars"`
	Breakdown RatingBreakdown `json:"breakdown" bson:"breakdown"`
	Weights   RatingWeights   `json:"weights" bson:"weights"`
	Warnings  []string        `json:"warnings,omitempty" bson:"warnings,omitempty"`
}

// VisitRatingRecord is the finalized rating as persisted: the raw input, the
// calculated rating and the owning visit's church and date, denormalized so
// the aggregator reads a single collection.
type VisitRatingRecord struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ChurchID   string             `json:"churchId" bson:"church_id"`
	VisitDate  time.Time          `json:"visitDate" bson:"visit_date"`
	Input      VisitRatingInput   `json:"input" bson:"input"`
	Calculated CalculatedRating   `json:"calculated" bson:"calculated"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
}

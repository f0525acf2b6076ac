package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const VisitCollection = "visit"

// Visit carries the fields of a visit record the rating engine reads. The
// rest of the visit entity (location, itinerary, notes) belongs to the
// surrounding application and is not modeled here.
type Visit struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ChurchID     string             `json:"churchId" bson:"church_id"`
	MissionaryID string             `json:"missionaryId" bson:"missionary_id"`
	VisitDate    time.Time          `json:"visitDate" bson:"visit_date"`
}

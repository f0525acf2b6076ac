package schema

import "time"

const ActivityLogCollection = "activityLog"

// ActivityLogEntry is an audit record of an administrative or scheduled
// action against a church's aggregate.
type ActivityLogEntry struct {
	ID        string    `json:"id" bson:"_id"`
	ChurchID  string    `json:"churchId" bson:"church_id"`
	ActorID   string    `json:"actorId,omitempty" bson:"actor_id,omitempty"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Event is a community-submitted event. A proposal lives in the pending
// collection with Approved=false; once a reviewer approves it, a record with
// the same ID is written to the approved collection and the proposal is
// removed from the queue.
type Event struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Image       string        `bson:"image,omitempty"`
	Title       string        `bson:"title"`
	Location    string        `bson:"location"`
	Date        string        `bson:"date"`
	Description string        `bson:"description"`
	Approved    bool          `bson:"approved"`
	CreatedAt   time.Time     `bson:"created_at"`
}

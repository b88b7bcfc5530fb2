package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/caviteventure/caviteventure-api/internal/model"
)

// ErrEventAlreadyApproved is returned when an approved record with the same
// id already exists. Approval keys the approved record on the proposal's id,
// so a duplicate insert means another approval already went through.
var ErrEventAlreadyApproved = errors.New("event already approved")

// ApprovedEventRepository is the append-only store of published events.
type ApprovedEventRepository interface {
	CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error)
	ListEvents(ctx context.Context) ([]*model.Event, error)
}

const approvedEventCollection = "approved_events"

type approvedEventMongoRepository struct {
	db *mongo.Database
}

// NewApprovedEventMongoRepository creates a MongoDB-backed approved-event store.
func NewApprovedEventMongoRepository(db *mongo.Database) ApprovedEventRepository {
	return &approvedEventMongoRepository{db: db}
}

func (r *approvedEventMongoRepository) CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error) {
	event.Approved = true
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	result, err := r.db.Collection(approvedEventCollection).InsertOne(ctx, event)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEventAlreadyApproved
		}

		return nil, err
	}

	if event.ID.IsZero() {
		if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
			event.ID = objectID
		}
	}

	return event, nil
}

func (r *approvedEventMongoRepository) ListEvents(ctx context.Context) ([]*model.Event, error) {
	cursor, err := r.db.Collection(approvedEventCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*model.Event
	for cursor.Next(ctx) {
		var event model.Event
		if err := cursor.Decode(&event); err != nil {
			return nil, err
		}
		events = append(events, &event)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

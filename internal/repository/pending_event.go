package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/caviteventure/caviteventure-api/internal/model"
)

// ErrEventNotFound is returned when no event matches the given id.
var ErrEventNotFound = errors.New("event not found")

// PendingEventRepository holds event proposals awaiting review.
type PendingEventRepository interface {
	CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	ListPending(ctx context.Context) ([]*model.Event, error)
	DeleteEvent(ctx context.Context, id string) error
}

const pendingEventCollection = "pending_events"

type pendingEventMongoRepository struct {
	db *mongo.Database
}

// NewPendingEventMongoRepository creates a MongoDB-backed proposal queue.
func NewPendingEventMongoRepository(db *mongo.Database) PendingEventRepository {
	return &pendingEventMongoRepository{db: db}
}

func (r *pendingEventMongoRepository) CreateEvent(ctx context.Context, event *model.Event) (*model.Event, error) {
	event.Approved = false
	event.CreatedAt = time.Now()

	result, err := r.db.Collection(pendingEventCollection).InsertOne(ctx, event)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		event.ID = objectID
	}

	return event, nil
}

func (r *pendingEventMongoRepository) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrEventNotFound
	}

	result := r.db.Collection(pendingEventCollection).FindOne(ctx, bson.M{"_id": objectID})

	var event model.Event
	if err := result.Decode(&event); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrEventNotFound
		}

		return nil, err
	}

	return &event, nil
}

// ListPending returns all unapproved proposals. No ordering is guaranteed.
func (r *pendingEventMongoRepository) ListPending(ctx context.Context) ([]*model.Event, error) {
	cursor, err := r.db.Collection(pendingEventCollection).Find(ctx, bson.M{"approved": false})
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

func (r *pendingEventMongoRepository) DeleteEvent(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrEventNotFound
	}

	result, err := r.db.Collection(pendingEventCollection).DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return ErrEventNotFound
	}

	return nil
}

package payload

import (
	"time"

	"github.com/caviteventure/caviteventure-api/internal/model"
)

type SubmitEventRequest struct {
	Image       string `json:"image"`
	Title       string `json:"title"       validate:"required"`
	Location    string `json:"location"    validate:"required"`
	Date        string `json:"date"        validate:"required"`
	Description string `json:"description" validate:"required"`
}

type SubmitEventResponse struct {
	Message string `json:"message"`
	EventID string `json:"eventId"`
}

type ApproveEventRequest struct {
	ID string `json:"id" validate:"required"`
}

type EventResponse struct {
	ID          string    `json:"id"`
	Image       string    `json:"image,omitempty"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Description string    `json:"description"`
	Approved    bool      `json:"approved"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewEventResponse maps an event to its wire representation.
func NewEventResponse(event *model.Event) EventResponse {
	return EventResponse{
		ID:          event.ID.Hex(),
		Image:       event.Image,
		Title:       event.Title,
		Location:    event.Location,
		Date:        event.Date,
		Description: event.Description,
		Approved:    event.Approved,
		CreatedAt:   event.CreatedAt,
	}
}

// NewEventResponses maps a slice of events, returning an empty slice rather
// than null for JSON encoding.
func NewEventResponses(events []*model.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, NewEventResponse(event))
	}

	return out
}

type MessageResponse struct {
	Message string `json:"message"`
}

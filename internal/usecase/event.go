package usecase

import (
	"context"
	"errors"

	"github.com/caviteventure/caviteventure-api/internal/model"
	"github.com/caviteventure/caviteventure-api/internal/repository"
)

// EventUsecase defines the submission queue and approval workflow.
type EventUsecase interface {
	Submit(ctx context.Context, params EventParams) (*model.Event, error)
	ListPending(ctx context.Context) ([]*model.Event, error)
	Approve(ctx context.Context, id string) (*model.Event, error)
	Discard(ctx context.Context, id string) error
	ListApproved(ctx context.Context) ([]*model.Event, error)
	CreateApproved(ctx context.Context, params EventParams) (*model.Event, error)
}

// EventParams defines the fields of an event submission.
type EventParams struct {
	Image       string
	Title       string
	Location    string
	Date        string
	Description string
}

// ErrEventNotFound is returned when no proposal matches the given id.
var ErrEventNotFound = errors.New("event not found")

type eventUsecase struct {
	pendingRepo  repository.PendingEventRepository
	approvedRepo repository.ApprovedEventRepository
}

// NewEventUsecase creates a new EventUsecase instance.
func NewEventUsecase(
	pendingRepo repository.PendingEventRepository,
	approvedRepo repository.ApprovedEventRepository,
) EventUsecase {
	return &eventUsecase{
		pendingRepo:  pendingRepo,
		approvedRepo: approvedRepo,
	}
}

func (u *eventUsecase) Submit(ctx context.Context, params EventParams) (*model.Event, error) {
	return u.pendingRepo.CreateEvent(ctx, &model.Event{
		Image:       params.Image,
		Title:       params.Title,
		Location:    params.Location,
		Date:        params.Date,
		Description: params.Description,
	})
}

func (u *eventUsecase) ListPending(ctx context.Context) ([]*model.Event, error) {
	return u.pendingRepo.ListPending(ctx)
}

// Approve promotes a proposal to the approved collection and removes it from
// the queue. The approved record keeps the proposal's id, so a concurrent or
// repeated approval hits the duplicate-key path and degrades to a no-op:
// exactly one approved record exists afterwards, and none remain pending.
func (u *eventUsecase) Approve(ctx context.Context, id string) (*model.Event, error) {
	event, err := u.pendingRepo.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}

		return nil, err
	}

	approved := *event
	approved.Approved = true

	if _, err := u.approvedRepo.CreateEvent(ctx, &approved); err != nil {
		if !errors.Is(err, repository.ErrEventAlreadyApproved) {
			return nil, err
		}
	}

	if err := u.pendingRepo.DeleteEvent(ctx, id); err != nil {
		// Another approval already removed it from the queue.
		if !errors.Is(err, repository.ErrEventNotFound) {
			return nil, err
		}
	}

	return &approved, nil
}

func (u *eventUsecase) Discard(ctx context.Context, id string) error {
	if err := u.pendingRepo.DeleteEvent(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return err
	}

	return nil
}

func (u *eventUsecase) ListApproved(ctx context.Context) ([]*model.Event, error) {
	return u.approvedRepo.ListEvents(ctx)
}

func (u *eventUsecase) CreateApproved(ctx context.Context, params EventParams) (*model.Event, error) {
	return u.approvedRepo.CreateEvent(ctx, &model.Event{
		Image:       params.Image,
		Title:       params.Title,
		Location:    params.Location,
		Date:        params.Date,
		Description: params.Description,
	})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/caviteventure/caviteventure-api/internal/payload"
	"github.com/caviteventure/caviteventure-api/internal/usecase"
	"github.com/caviteventure/caviteventure-api/shared/validation"
)

// EventHandler serves event submission, review and listing endpoints.
type EventHandler struct {
	eventUsecase usecase.EventUsecase
	validator    *validation.Validator
	logger       *zerolog.Logger
}

// NewEventHandler creates a new EventHandler instance.
func NewEventHandler(
	eventUsecase usecase.EventUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *EventHandler {
	return &EventHandler{
		eventUsecase: eventUsecase,
		validator:    validator,
		logger:       logger,
	}
}

func (h *EventHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req payload.SubmitEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventUsecase.Submit(r.Context(), usecase.EventParams{
		Image:       req.Image,
		Title:       req.Title,
		Location:    req.Location,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to submit event")
		writeError(w, http.StatusInternalServerError, "error saving event")
		return
	}

	writeJSON(w, http.StatusCreated, payload.SubmitEventResponse{
		Message: "event submitted for approval",
		EventID: event.ID.Hex(),
	})
}

func (h *EventHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventUsecase.ListPending(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list pending events")
		writeError(w, http.StatusInternalServerError, "error fetching pending events")
		return
	}

	writeJSON(w, http.StatusOK, payload.NewEventResponses(events))
}

func (h *EventHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req payload.ApproveEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventUsecase.Approve(r.Context(), req.ID)
	if err != nil {
		if errors.Is(err, usecase.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to approve event")
		writeError(w, http.StatusInternalServerError, "error approving event")
		return
	}

	writeJSON(w, http.StatusOK, payload.NewEventResponse(event))
}

func (h *EventHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := h.eventUsecase.Discard(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to discard event")
		writeError(w, http.StatusInternalServerError, "error deleting event")
		return
	}

	writeJSON(w, http.StatusOK, payload.MessageResponse{Message: "event deleted"})
}

func (h *EventHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventUsecase.ListApproved(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list approved events")
		writeError(w, http.StatusInternalServerError, "error fetching approved events")
		return
	}

	writeJSON(w, http.StatusOK, payload.NewEventResponses(events))
}

func (h *EventHandler) CreateApproved(w http.ResponseWriter, r *http.Request) {
	var req payload.SubmitEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	event, err := h.eventUsecase.CreateApproved(r.Context(), usecase.EventParams{
		Image:       req.Image,
		Title:       req.Title,
		Location:    req.Location,
		Date:        req.Date,
		Description: req.Description,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create approved event")
		writeError(w, http.StatusInternalServerError, "error saving approved event")
		return
	}

	writeJSON(w, http.StatusCreated, payload.SubmitEventResponse{
		Message: "event approved and saved",
		EventID: event.ID.Hex(),
	})
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/caviteventure/caviteventure-api/internal/payload"
	"github.com/caviteventure/caviteventure-api/internal/usecase"
)

const maxUploadSize = 10 << 20 // 10 MiB

// UserHandler serves the authenticated profile endpoints.
type UserHandler struct {
	profileUsecase usecase.ProfileUsecase
	logger         *zerolog.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(profileUsecase usecase.ProfileUsecase, logger *zerolog.Logger) *UserHandler {
	return &UserHandler{
		profileUsecase: profileUsecase,
		logger:         logger,
	}
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := SessionClaims(r)

	user, err := h.profileUsecase.Get(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to fetch profile")
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, payload.NewUserResponse(user))
}

// UpdateProfile accepts a multipart form with optional profile fields and an
// optional profilePicture file.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := SessionClaims(r)

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	params := usecase.UpdateProfileParams{
		FirstName: formValue(r, "firstname"),
		LastName:  formValue(r, "lastname"),
		Location:  formValue(r, "location"),
	}

	if birthday := formValue(r, "birthday"); birthday != nil {
		parsed, err := time.Parse("2006-01-02", *birthday)
		if err != nil {
			writeError(w, http.StatusBadRequest, "birthday must be in YYYY-MM-DD format")
			return
		}
		params.Birthday = &parsed
	}

	if gender := formValue(r, "gender"); gender != nil {
		switch *gender {
		case "male", "female", "other":
			params.Gender = gender
		default:
			writeError(w, http.StatusBadRequest, "gender must be one of male, female, other")
			return
		}
	}

	file, header, err := r.FormFile("profilePicture")
	switch {
	case err == nil:
		defer file.Close()
		params.Picture = &usecase.PictureUpload{
			Filename: header.Filename,
			Content:  file,
		}
	case errors.Is(err, http.ErrMissingFile):
		// No new picture, keep the current one.
	default:
		writeError(w, http.StatusBadRequest, "invalid profile picture upload")
		return
	}

	user, err := h.profileUsecase.Update(r.Context(), claims.UserID, params)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to update profile")
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, payload.UpdateProfileResponse{
		Message: "profile updated successfully",
		User:    payload.NewUserResponse(user),
	})
}

func formValue(r *http.Request, key string) *string {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}

	return &values[0]
}

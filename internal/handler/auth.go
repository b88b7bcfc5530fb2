package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/caviteventure/caviteventure-api/internal/model"
	"github.com/caviteventure/caviteventure-api/internal/payload"
	"github.com/caviteventure/caviteventure-api/internal/usecase"
	"github.com/caviteventure/caviteventure-api/shared/validation"
)

// AuthHandler serves sign-up, account verification, sign-in and the
// verification-code ledger endpoints.
type AuthHandler struct {
	authUsecase         usecase.AuthUsecase
	verificationUsecase usecase.VerificationUsecase
	validator           *validation.Validator
	logger              *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	verificationUsecase usecase.VerificationUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:         authUsecase,
		verificationUsecase: verificationUsecase,
		validator:           validator,
		logger:              logger,
	}
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req payload.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	birthday, err := time.Parse("2006-01-02", req.Birthday)
	if err != nil {
		writeError(w, http.StatusBadRequest, "birthday must be in YYYY-MM-DD format")
		return
	}

	user, err := h.authUsecase.SignUp(r.Context(), usecase.SignUpParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthday:  birthday,
		Gender:    req.Gender,
		Location:  req.Location,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrEmailAlreadyExists) {
			writeError(w, http.StatusConflict, "email already exists")
			return
		}

		h.logger.Error().Err(err).Msg("signup failed")
		writeError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	writeJSON(w, http.StatusCreated, payload.SignUpResponse{
		UserID:  user.ID.Hex(),
		Message: "account created, check your email for the verification code",
	})
}

func (h *AuthHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.authUsecase.VerifyAccount(r.Context(), req.UserID, req.VerificationCode)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		case errors.Is(err, usecase.ErrInvalidVerificationCode):
			writeError(w, http.StatusBadRequest, "invalid verification code")
		default:
			h.logger.Error().Err(err).Msg("account verification failed")
			writeError(w, http.StatusInternalServerError, "something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, payload.MessageResponse{Message: "email verified successfully"})
}

// SignIn returns a handler for the sign-in contract, optionally restricted
// to a required role. The three sign-in endpoints differ only by this
// argument.
func (h *AuthHandler) SignIn(requiredRole *model.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req payload.SignInRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if err := h.validator.Struct(req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		result, err := h.authUsecase.SignIn(r.Context(), usecase.SignInParams{
			Email:        req.Email,
			Password:     req.Password,
			RequiredRole: requiredRole,
		})
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "invalid credentials")
			case errors.Is(err, usecase.ErrForbidden):
				writeError(w, http.StatusForbidden, "access denied")
			default:
				h.logger.Error().Err(err).Msg("sign-in failed")
				writeError(w, http.StatusInternalServerError, "something went wrong")
			}
			return
		}

		writeJSON(w, http.StatusOK, payload.SignInResponse{
			Token: result.Token,
			User:  payload.NewUserResponse(result.User),
		})
	}
}

func (h *AuthHandler) SendVerificationCode(w http.ResponseWriter, r *http.Request) {
	var req payload.SendCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.verificationUsecase.IssueCode(r.Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("failed to issue verification code")
		writeError(w, http.StatusInternalServerError, "error sending verification code")
		return
	}

	writeJSON(w, http.StatusOK, payload.MessageResponse{Message: "verification code sent"})
}

func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req payload.VerifyCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.verificationUsecase.CheckCode(r.Context(), req.Email, req.Code); err != nil {
		h.writeCodeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payload.MessageResponse{Message: "code verified successfully"})
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req payload.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.verificationUsecase.ChangePassword(r.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
			return
		}

		h.writeCodeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, payload.MessageResponse{Message: "password changed successfully"})
}

func (h *AuthHandler) writeCodeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrCodeNotFound):
		writeError(w, http.StatusNotFound, "no verification code found for this email")
	case errors.Is(err, usecase.ErrCodeExpired):
		writeError(w, http.StatusBadRequest, "verification code has expired")
	case errors.Is(err, usecase.ErrCodeMismatch):
		writeError(w, http.StatusBadRequest, "invalid verification code")
	default:
		h.logger.Error().Err(err).Msg("verification code check failed")
		writeError(w, http.StatusInternalServerError, "something went wrong")
	}
}

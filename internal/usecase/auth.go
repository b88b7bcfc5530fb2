package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/caviteventure/caviteventure-api/internal/model"
	"github.com/caviteventure/caviteventure-api/internal/repository"
	"github.com/caviteventure/caviteventure-api/shared/auth"
	"github.com/caviteventure/caviteventure-api/shared/security"
)

// AuthUsecase defines the interface for account and session operations.
type AuthUsecase interface {
	SignUp(ctx context.Context, params SignUpParams) (*model.User, error)
	VerifyAccount(ctx context.Context, userID, code string) error
	SignIn(ctx context.Context, params SignInParams) (*SignInResult, error)
}

// SignUpParams defines the parameters for account creation.
type SignUpParams struct {
	FirstName string
	LastName  string
	Birthday  time.Time
	Gender    string
	Location  string
	Email     string
	Password  string
}

// SignInParams defines the parameters for signing in. RequiredRole, when
// set, restricts the sign-in to accounts holding that exact role.
type SignInParams struct {
	Email        string
	Password     string
	RequiredRole *model.Role
}

// SignInResult carries the issued session token and the signed-in account.
type SignInResult struct {
	Token string
	User  *model.User
}

var (
	ErrEmailAlreadyExists      = errors.New("email already exists")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrForbidden               = errors.New("account role is not permitted")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidVerificationCode = errors.New("invalid verification code")
)

// TokenConfig holds session token signing settings.
type TokenConfig struct {
	Secret    string
	Issuer    string
	ExpiresIn time.Duration
}

type authUsecase struct {
	userRepo repository.UserRepository
	jwtAuth  auth.JWTAuthenticator
	mailer   Mailer
	tokenCfg TokenConfig
	logger   *zerolog.Logger
}

// NewAuthUsecase creates a new AuthUsecase instance.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	mailer Mailer,
	tokenCfg TokenConfig,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		jwtAuth:  jwtAuth,
		mailer:   mailer,
		tokenCfg: tokenCfg,
		logger:   logger,
	}
}

func (u *authUsecase) SignUp(ctx context.Context, params SignUpParams) (*model.User, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		FirstName:        params.FirstName,
		LastName:         params.LastName,
		Birthday:         params.Birthday,
		Gender:           params.Gender,
		Location:         params.Location,
		Email:            normalizeEmail(params.Email),
		PasswordHash:     passwordHash,
		Role:             model.RoleUser,
		Verified:         false,
		VerificationCode: code,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyExists
		}

		return nil, err
	}

	// The account stays even when the email cannot be delivered; the user
	// can request a fresh code later.
	body := fmt.Sprintf(`
		<p>Welcome to CaviteVenture!</p>
		<p>Your verification code is: <b>%s</b></p>
	`, code)
	if err := u.mailer.SendHTML([]string{user.Email}, "Verify your email", body); err != nil {
		u.logger.Warn().Err(err).Str("email", user.Email).Msg("failed to send verification email")
	}

	return user, nil
}

func (u *authUsecase) VerifyAccount(ctx context.Context, userID, code string) error {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return err
	}

	// Exact match only; account codes carry no expiry. Time-boxed codes are
	// the password-change ledger's concern.
	if user.VerificationCode == "" || user.VerificationCode != code {
		return ErrInvalidVerificationCode
	}

	return u.userRepo.MarkUserVerified(ctx, user.ID.Hex())
}

func (u *authUsecase) SignIn(ctx context.Context, params SignInParams) (*SignInResult, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, normalizeEmail(params.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Indistinguishable from a wrong password so callers cannot
			// enumerate registered emails.
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	if params.RequiredRole != nil && user.Role != *params.RequiredRole {
		return nil, ErrForbidden
	}

	token, err := u.generateSessionToken(user)
	if err != nil {
		return nil, err
	}

	return &SignInResult{Token: token, User: user}, nil
}

func (u *authUsecase) generateSessionToken(user *model.User) (string, error) {
	now := time.Now()
	claims := auth.SessionClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.tokenCfg.ExpiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.tokenCfg.Issuer,
			Audience:  jwt.ClaimStrings{u.tokenCfg.Issuer},
		},
	}

	return u.jwtAuth.GenerateToken(claims, u.tokenCfg.Secret)
}

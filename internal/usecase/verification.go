package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caviteventure/caviteventure-api/internal/repository"
	"github.com/caviteventure/caviteventure-api/shared/security"
)

// VerificationUsecase drives the time-boxed, single-use verification code
// ledger used to authorize password changes. Per email the entry moves
// through NoCode -> CodeIssued -> Consumed or Expired.
type VerificationUsecase interface {
	// IssueCode generates a 6-digit code for the email, overwriting any live
	// entry, and mails it out.
	IssueCode(ctx context.Context, email string) error

	// CheckCode consumes the entry on success; an expired entry is deleted
	// as a side effect of the check.
	CheckCode(ctx context.Context, email, code string) error

	// ChangePassword checks the code and, when valid, replaces the
	// account's password hash.
	ChangePassword(ctx context.Context, email, code, newPassword string) error
}

var (
	ErrCodeNotFound = errors.New("no verification code found for this email")
	ErrCodeExpired  = errors.New("verification code has expired")
	ErrCodeMismatch = errors.New("verification code does not match")
)

type verificationUsecase struct {
	codes    repository.CodeStore
	userRepo repository.UserRepository
	mailer   Mailer
	codeTTL  time.Duration
}

// NewVerificationUsecase creates a new VerificationUsecase instance.
func NewVerificationUsecase(
	codes repository.CodeStore,
	userRepo repository.UserRepository,
	mailer Mailer,
	codeTTL time.Duration,
) VerificationUsecase {
	return &verificationUsecase{
		codes:    codes,
		userRepo: userRepo,
		mailer:   mailer,
		codeTTL:  codeTTL,
	}
}

func (u *verificationUsecase) IssueCode(ctx context.Context, email string) error {
	email = normalizeEmail(email)

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}

	// Two concurrent issues for the same email race; the last written entry
	// wins and the earlier code stops working.
	entry := repository.CodeEntry{
		Code:      code,
		ExpiresAt: time.Now().Add(u.codeTTL),
	}
	if err := u.codes.Put(ctx, email, entry); err != nil {
		return err
	}

	body := fmt.Sprintf("Your verification code is: %s", code)

	return u.mailer.SendSimple([]string{email}, "Your Verification Code", body)
}

func (u *verificationUsecase) CheckCode(ctx context.Context, email, code string) error {
	email = normalizeEmail(email)

	entry, err := u.codes.Get(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNoCode) {
			return ErrCodeNotFound
		}

		return err
	}

	if time.Now().After(entry.ExpiresAt) {
		if err := u.codes.Delete(ctx, email); err != nil {
			return err
		}

		return ErrCodeExpired
	}

	if entry.Code != code {
		return ErrCodeMismatch
	}

	// Single use: a successful check deletes the entry.
	return u.codes.Delete(ctx, email)
}

func (u *verificationUsecase) ChangePassword(ctx context.Context, email, code, newPassword string) error {
	email = normalizeEmail(email)

	if err := u.CheckCode(ctx, email, code); err != nil {
		return err
	}

	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	return nil
}

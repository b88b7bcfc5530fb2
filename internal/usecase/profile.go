package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/caviteventure/caviteventure-api/internal/model"
	"github.com/caviteventure/caviteventure-api/internal/repository"
	"github.com/caviteventure/caviteventure-api/shared/storage"
)

// ProfileUsecase defines profile reads and updates.
type ProfileUsecase interface {
	Get(ctx context.Context, userID string) (*model.User, error)
	Update(ctx context.Context, userID string, params UpdateProfileParams) (*model.User, error)
}

// UpdateProfileParams defines the optional profile fields to change. A nil
// field is left untouched.
type UpdateProfileParams struct {
	FirstName *string
	LastName  *string
	Birthday  *time.Time
	Location  *string
	Gender    *string
	Picture   *PictureUpload
}

// PictureUpload is a profile picture payload handed to object storage.
type PictureUpload struct {
	Filename string
	Content  io.Reader
}

type profileUsecase struct {
	userRepo repository.UserRepository
	storage  storage.Storage
}

// NewProfileUsecase creates a new ProfileUsecase instance.
func NewProfileUsecase(userRepo repository.UserRepository, store storage.Storage) ProfileUsecase {
	return &profileUsecase{
		userRepo: userRepo,
		storage:  store,
	}
}

func (u *profileUsecase) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *profileUsecase) Update(
	ctx context.Context,
	userID string,
	params UpdateProfileParams,
) (*model.User, error) {
	updateParams := repository.UpdateUserParams{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Birthday:  params.Birthday,
		Location:  params.Location,
		Gender:    params.Gender,
	}

	if params.Picture != nil {
		url, err := u.storage.Upload(ctx, params.Picture.Filename, params.Picture.Content)
		if err != nil {
			return nil, err
		}
		updateParams.ProfilePicture = &url
	}

	user, err := u.userRepo.UpdateUser(ctx, userID, updateParams)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

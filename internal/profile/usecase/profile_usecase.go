package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"course-platform/internal/auth/domain/model"
	"course-platform/internal/auth/domain/repository"
	"course-platform/internal/shared/logger"
	"course-platform/internal/shared/media"
)

// PictureFolder is where display pictures are stored on the media host
const PictureFolder = "profiles"

var (
	ErrPictureRequired    = errors.New("display picture is required")
	ErrUnsupportedPicture = errors.New("display picture must be an image")
)

var pictureExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
}

// ProfileUsecaseInterface defines the contract for profile use cases.
type ProfileUsecaseInterface interface {
	GetUserDetails(ctx context.Context, userID string) (*model.User, error)
	UpdateDisplayPicture(ctx context.Context, userID, picturePath string) (*model.User, error)
}

// ProfileUsecase implements profile reads and updates.
type ProfileUsecase struct {
	users repository.UserRepository
	media media.Uploader
	log   logger.Logger
}

// NewProfileUsecase creates a new instance of ProfileUsecase.
func NewProfileUsecase(users repository.UserRepository, uploader media.Uploader, log logger.Logger) *ProfileUsecase {
	return &ProfileUsecase{
		users: users,
		media: uploader,
		log:   log.WithComponent("profile"),
	}
}

// GetUserDetails returns the account of userID
func (uc *ProfileUsecase) GetUserDetails(ctx context.Context, userID string) (*model.User, error) {
	return uc.users.GetUserByID(ctx, userID)
}

// UpdateDisplayPicture publishes the picture and stores its URL on the user
func (uc *ProfileUsecase) UpdateDisplayPicture(ctx context.Context, userID, picturePath string) (*model.User, error) {
	if picturePath == "" {
		return nil, ErrPictureRequired
	}
	if !pictureExtensions[strings.ToLower(filepath.Ext(picturePath))] {
		return nil, ErrUnsupportedPicture
	}

	asset, err := uc.media.Upload(ctx, picturePath, PictureFolder)
	if err != nil {
		return nil, fmt.Errorf("failed to upload display picture: %w", err)
	}

	user, err := uc.users.UpdateImage(ctx, userID, asset.URL)
	if err != nil {
		if delErr := uc.media.Delete(ctx, asset.Key); delErr != nil {
			uc.log.WithContext(ctx).Warnf("failed to remove orphaned picture %s: %v", asset.Key, delErr)
		}
		return nil, err
	}
	return user, nil
}

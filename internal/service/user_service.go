// Package service contains the application's business logic.
package service

import (
	"context"

	"warble/internal/media"
	"warble/internal/models"
	"warble/internal/repository"
	"warble/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService implements profile, suggestion, and follow operations.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	uploader   media.Uploader
}

// UpdateProfileInput carries a partial profile update. Nil pointer fields
// are left unchanged; image fields hold a new upload source when set.
type UpdateProfileInput struct {
	UserID          uint
	FullName        *string
	Username        *string
	Email           *string
	Bio             *string
	Link            *string
	CurrentPassword string
	NewPassword     string
	ProfileImg      *string
	CoverImg        *string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, uploader media.Uploader) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo, uploader: uploader}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetProfileByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.GetProfileByEmail(ctx, email)
}

// Suggestions returns up to five users the given user does not follow yet.
func (s *UserService) Suggestions(ctx context.Context, userID uint) ([]models.User, error) {
	return s.userRepo.ListSuggestions(ctx, userID, 5)
}

// UpdateProfile applies a partial update. It writes only the columns the
// input names so stale values read elsewhere can never clobber a row.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if in.NewPassword != "" {
		if in.CurrentPassword == "" {
			return nil, models.NewValidationError("Current password is required to set a new password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
			return nil, models.NewUnauthorizedError("Current password is incorrect")
		}
		if err := validation.ValidatePassword(in.NewPassword); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		fields["password"] = string(hashed)
	}

	const maxBioLen = 500

	if in.FullName != nil {
		if *in.FullName == "" {
			return nil, models.NewValidationError("Full name cannot be empty")
		}
		fields["full_name"] = *in.FullName
	}
	if in.Username != nil {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["username"] = *in.Username
	}
	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		fields["email"] = *in.Email
	}
	if in.Bio != nil {
		if len(*in.Bio) > maxBioLen {
			return nil, models.NewValidationError("Bio too long (max 500 characters)")
		}
		fields["bio"] = *in.Bio
	}
	if in.Link != nil {
		fields["link"] = *in.Link
	}

	if in.ProfileImg != nil {
		url, err := s.replaceImage(ctx, user.ProfileImg, *in.ProfileImg)
		if err != nil {
			return nil, err
		}
		fields["profile_img"] = url
	}
	if in.CoverImg != nil {
		url, err := s.replaceImage(ctx, user.CoverImg, *in.CoverImg)
		if err != nil {
			return nil, err
		}
		fields["cover_img"] = url
	}

	if len(fields) == 0 {
		return user, nil
	}
	if err := s.userRepo.UpdateFields(ctx, in.UserID, fields); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, in.UserID)
}

// replaceImage destroys the previous asset (best effort) and uploads the new
// source. An empty source clears the image without an upload.
func (s *UserService) replaceImage(ctx context.Context, currentURL, source string) (string, error) {
	if s.uploader == nil {
		return "", models.NewValidationError("Image uploads are not configured")
	}
	if currentURL != "" {
		_ = s.uploader.Destroy(ctx, media.PublicIDFromURL(currentURL))
	}
	if source == "" {
		return "", nil
	}
	url, err := s.uploader.Upload(ctx, source)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return url, nil
}

// ToggleFollow follows the target when no edge exists and unfollows
// otherwise. It returns true when the user now follows the target.
func (s *UserService) ToggleFollow(ctx context.Context, userID, targetID uint) (bool, error) {
	if userID == targetID {
		return false, models.NewValidationError("You cannot follow yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, err
	}

	following, err := s.followRepo.IsFollowing(ctx, userID, targetID)
	if err != nil {
		return false, err
	}

	if following {
		if err := s.followRepo.Unfollow(ctx, userID, targetID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.followRepo.Follow(ctx, userID, targetID); err != nil {
		return false, err
	}
	return true, nil
}

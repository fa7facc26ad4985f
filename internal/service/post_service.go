package service

import (
	"context"
	"strings"

	"warble/internal/media"
	"warble/internal/models"
	"warble/internal/repository"
)

// PostService implements post, comment, like, and feed operations.
type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	uploader    media.Uploader
}

// CreatePostInput carries a new post. Image holds an upload source, not a
// stored URL.
type CreatePostInput struct {
	UserID uint
	Text   string
	Image  string
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	uploader media.Uploader,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
		uploader:    uploader,
	}
}

const maxPostTextLen = 5000

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && in.Image == "" {
		return nil, models.NewValidationError("Post must have text or an image")
	}
	if len(text) > maxPostTextLen {
		return nil, models.NewValidationError("Post text too long (max 5000 characters)")
	}

	imageURL := ""
	if in.Image != "" {
		if s.uploader == nil {
			return nil, models.NewValidationError("Image uploads are not configured")
		}
		url, err := s.uploader.Upload(ctx, in.Image)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		imageURL = url
	}

	post := &models.Post{
		Text:   text,
		Image:  imageURL,
		UserID: in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post the user owns, together with its media asset.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}

	if post.Image != "" && s.uploader != nil {
		// Best effort; an orphaned asset is preferable to a stuck delete.
		_ = s.uploader.Destroy(ctx, media.PublicIDFromURL(post.Image))
	}

	return s.postRepo.Delete(ctx, postID)
}

func (s *PostService) CommentOnPost(ctx context.Context, userID, postID uint, text string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   text,
		UserID: userID,
		PostID: post.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// ToggleLike likes the post when the user has not liked it and removes the
// like otherwise. It returns the post's like rows after the toggle.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		if err := s.postRepo.Like(ctx, userID, postID, post.UserID); err != nil {
			return nil, err
		}
	}

	return s.postRepo.ListLikes(ctx, postID)
}

func (s *PostService) AllPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.postRepo.ListAll(ctx, limit, offset)
}

// UserPosts lists posts authored by the user with the given email.
func (s *PostService) UserPosts(ctx context.Context, email string, limit, offset int) ([]models.Post, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", email)
	}
	return s.postRepo.ListByUserID(ctx, user.ID, limit, offset)
}

// FollowingFeed lists posts authored by users the given user follows.
// A user following nobody gets an empty feed, not an error.
func (s *PostService) FollowingFeed(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	ids, err := s.followRepo.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByUserIDs(ctx, ids, limit, offset)
}

// LikedPosts lists posts the given user has liked.
func (s *PostService) LikedPosts(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.postRepo.ListLikedByUser(ctx, userID, limit, offset)
}

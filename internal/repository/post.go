package repository

import (
	"context"
	"errors"

	"warble/internal/cache"
	"warble/internal/middleware"
	"warble/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines persistence operations for posts and likes.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context, limit, offset int) ([]models.Post, error)
	ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	ListByUserIDs(ctx context.Context, userIDs []uint, limit, offset int) ([]models.Post, error)
	ListLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error)
	Like(ctx context.Context, userID, postID, ownerID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	ListLikes(ctx context.Context, postID uint) ([]models.Like, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.withDetails(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// Delete removes a post together with its comments and likes in one
// transaction so a failure leaves no orphaned rows.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

// withDetails preloads the relations every post listing renders.
func (r *postRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.User").
		Preload("Likes")
}

func (r *postRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post

	// Only the first page is hot enough to be worth caching.
	if offset == 0 {
		err := cache.Aside(ctx, cache.PostsListKey(limit), &posts, cache.PostsListTTL, func() error {
			return r.fetchAll(ctx, &posts, limit, 0)
		})
		if err != nil {
			return nil, err
		}
		return posts, nil
	}

	if err := r.fetchAll(ctx, &posts, limit, offset); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) fetchAll(ctx context.Context, posts *[]models.Post, limit, offset int) error {
	if err := r.withDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(posts).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListByUserIDs(ctx context.Context, userIDs []uint, limit, offset int) ([]models.Post, error) {
	if len(userIDs) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	if err := r.withDetails(r.db.WithContext(ctx)).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) ListLikedByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.withDetails(r.db.WithContext(ctx)).
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Order("likes.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Like records a like and, unless the liker owns the post, the matching
// notification in one transaction.
func (r *postRepository) Like(ctx context.Context, userID, postID, ownerID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := models.Like{UserID: userID, PostID: postID}
		if err := tx.Create(&like).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError("Post already liked")
			}
			return err
		}
		if ownerID != userID {
			notification := models.Notification{
				Type:       models.NotificationTypeLike,
				FromUserID: userID,
				ToUserID:   ownerID,
			}
			if err := tx.Create(&notification).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewInternalError(err)
	}
	if ownerID != userID {
		middleware.NotificationsEmitted.WithLabelValues(string(models.NotificationTypeLike)).Inc()
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return nil
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) ListLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	var likes []models.Like
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

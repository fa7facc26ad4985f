package repository

import (
	"context"
	"errors"

	"warble/internal/cache"
	"warble/internal/middleware"
	"warble/internal/models"

	"gorm.io/gorm"
)

// FollowRepository maintains the mirrored follow graph. Every mutation
// touches the Following table, the Follower table, and (on follow) the
// notifications table inside a single transaction.
type FollowRepository interface {
	Follow(ctx context.Context, userID, targetID uint) error
	Unfollow(ctx context.Context, userID, targetID uint) error
	IsFollowing(ctx context.Context, userID, targetID uint) (bool, error)
	FollowingIDs(ctx context.Context, userID uint) ([]uint, error)
	Followers(ctx context.Context, userID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) Follow(ctx context.Context, userID, targetID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		following := models.Following{UserID: userID, FollowingID: targetID}
		if err := tx.Create(&following).Error; err != nil {
			if isUniqueConstraintError(err) {
				return models.NewConflictError("Already following this user")
			}
			return err
		}

		follower := models.Follower{UserID: targetID, FollowerID: userID}
		if err := tx.Create(&follower).Error; err != nil {
			return err
		}

		notification := models.Notification{
			Type:       models.NotificationTypeFollow,
			FromUserID: userID,
			ToUserID:   targetID,
		}
		return tx.Create(&notification).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return models.NewInternalError(err)
	}

	middleware.NotificationsEmitted.WithLabelValues(string(models.NotificationTypeFollow)).Inc()
	cache.InvalidateUser(ctx, userID)
	cache.InvalidateUser(ctx, targetID)
	return nil
}

func (r *followRepository) Unfollow(ctx context.Context, userID, targetID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("user_id = ? AND following_id = ?", userID, targetID).
			Delete(&models.Following{}).Error; err != nil {
			return err
		}
		return tx.
			Where("user_id = ? AND follower_id = ?", targetID, userID).
			Delete(&models.Follower{}).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateUser(ctx, userID)
	cache.InvalidateUser(ctx, targetID)
	return nil
}

func (r *followRepository) IsFollowing(ctx context.Context, userID, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Following{}).
		Where("user_id = ? AND following_id = ?", userID, targetID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *followRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Following{}).
		Where("user_id = ?", userID).
		Pluck("following_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

func (r *followRepository) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN followers f ON f.follower_id = users.id").
		Where("f.user_id = ? AND users.deleted_at IS NULL", userID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

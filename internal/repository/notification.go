package repository

import (
	"context"

	"warble/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines persistence operations for notifications.
// Every operation is scoped to the recipient; one user can never read or
// delete another user's notifications.
type NotificationRepository interface {
	ListForRecipient(ctx context.Context, userID uint) ([]models.Notification, error)
	MarkAllRead(ctx context.Context, userID uint) error
	DeleteForRecipient(ctx context.Context, userID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository returns a new NotificationRepository implementation.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) ListForRecipient(ctx context.Context, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.WithContext(ctx).
		Preload("FromUser").
		Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("to_user_id = ? AND read = ?", userID, false).
		Update("read", true).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *notificationRepository) DeleteForRecipient(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Delete(&models.Notification{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

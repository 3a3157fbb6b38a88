package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
)

type NotificationPostgreSQL struct {
	db *gorm.DB
}

func NewNotificationPostgreSQL(db *gorm.DB) repositories.NotificationRepository {
	return &NotificationPostgreSQL{db: db}
}

func (n *NotificationPostgreSQL) Create(ctx context.Context, notification *models.Notification) error {
	return n.db.WithContext(ctx).Create(notification).Error
}

func (n *NotificationPostgreSQL) GetByUser(ctx context.Context, userID uint, unreadOnly bool) ([]*models.Notification, error) {
	var rows []*models.Notification
	query := n.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	err := query.Order("created_at DESC").Limit(100).Find(&rows).Error
	return rows, err
}

func (n *NotificationPostgreSQL) MarkRead(ctx context.Context, id, userID uint) error {
	result := n.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (n *NotificationPostgreSQL) DeleteByUser(ctx context.Context, userID uint) error {
	return n.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Notification{}).Error
}

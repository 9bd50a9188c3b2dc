package repository

import (
	"scholarshub/internal/domain/notification/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(n *model.Notification) error
	ListByRecipient(recipientID string, limit int) ([]model.Notification, error)
	CountUnread(recipientID string) (int64, error)
	MarkAllRead(recipientID string) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(n *model.Notification) error {
	return r.db.Create(n).Error
}

func (r *notificationRepository) ListByRecipient(recipientID string, limit int) ([]model.Notification, error) {
	var items []model.Notification
	err := r.db.
		Preload("Sender", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar")
		}).
		Preload("Post", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title")
		}).
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *notificationRepository) CountUnread(recipientID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkAllRead(recipientID string) error {
	return r.db.Model(&model.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true).Error
}

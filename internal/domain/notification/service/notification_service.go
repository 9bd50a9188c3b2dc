package service

import (
	"context"
	"errors"
	"time"

	"scholarshub/internal/domain/notification/model"
	"scholarshub/internal/domain/notification/repository"
	"scholarshub/internal/pkg/worker"
	"scholarshub/pkg/cache"
	"scholarshub/pkg/database"
	"scholarshub/pkg/logger"

	"go.uber.org/zap"
)

// How many notifications a single list call returns. Older entries are
// reachable through the database only.
const listLimit = 50

const unreadCacheTTL = 60 * time.Second

var pushTitles = map[string]string{
	model.TypeFollow:  "New follower",
	model.TypeLike:    "Your material got a like",
	model.TypeComment: "New comment on your material",
}

type NotificationService interface {
	Notify(recipientID, senderID, notifType, postID string) error
	List(recipientID string) ([]model.Notification, error)
	UnreadCount(recipientID string) (int64, error)
	MarkAllRead(recipientID string) error
}

type notificationService struct {
	repo  repository.NotificationRepository
	cache cache.CacheService
	pool  *worker.PushPool
}

func NewNotificationService(repo repository.NotificationRepository, c cache.CacheService, pool *worker.PushPool) NotificationService {
	return &notificationService{repo: repo, cache: c, pool: pool}
}

// Notify records an in-app notification and queues a best-effort device push.
// Self-addressed events are silently dropped so interacting with your own
// content never pings you.
func (s *notificationService) Notify(recipientID, senderID, notifType, postID string) error {
	if recipientID == senderID {
		return nil
	}

	n := &model.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notifType,
	}
	if postID != "" {
		n.PostID = &postID
	}

	if err := s.repo.Create(n); err != nil {
		return err
	}

	s.invalidateUnread(recipientID)

	if s.pool != nil {
		s.pool.Enqueue(worker.PushTask{
			RecipientID: recipientID,
			Title:       pushTitles[notifType],
			Body:        "Open Scholars Hub to take a look.",
			Ext: map[string]string{
				"type":   notifType,
				"postId": postID,
			},
		})
	}
	return nil
}

// List returns the latest notifications. A missing notifications table reads
// as an empty inbox rather than an error.
func (s *notificationService) List(recipientID string) ([]model.Notification, error) {
	items, err := s.repo.ListByRecipient(recipientID, listLimit)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return []model.Notification{}, nil
		}
		return nil, err
	}
	if items == nil {
		items = []model.Notification{}
	}
	return items, nil
}

func (s *notificationService) UnreadCount(recipientID string) (int64, error) {
	ctx := context.Background()
	key := unreadKey(recipientID)

	var cached int64
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) && logger.Log != nil {
		logger.Log.Warn("unread count cache read failed", zap.Error(err))
	}

	count, err := s.repo.CountUnread(recipientID)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return 0, nil
		}
		return 0, err
	}

	if err := s.cache.Set(ctx, key, count, unreadCacheTTL); err != nil && logger.Log != nil {
		logger.Log.Warn("unread count cache write failed", zap.Error(err))
	}
	return count, nil
}

func (s *notificationService) MarkAllRead(recipientID string) error {
	if err := s.repo.MarkAllRead(recipientID); err != nil {
		if database.IsUndefinedTable(err) {
			return nil
		}
		return err
	}
	s.invalidateUnread(recipientID)
	return nil
}

func (s *notificationService) invalidateUnread(recipientID string) {
	if err := s.cache.Delete(context.Background(), unreadKey(recipientID)); err != nil && logger.Log != nil {
		logger.Log.Warn("unread count cache invalidation failed",
			zap.String("recipient", recipientID), zap.Error(err))
	}
}

func unreadKey(recipientID string) string {
	return "notif:unread:" + recipientID
}

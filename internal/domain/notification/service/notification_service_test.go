package service

import (
	"context"
	"testing"
	"time"

	"scholarshub/internal/domain/notification/model"
	"scholarshub/pkg/cache"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockNotifRepo struct {
	mock.Mock
}

func (m *mockNotifRepo) Create(n *model.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *mockNotifRepo) ListByRecipient(recipientID string, limit int) ([]model.Notification, error) {
	args := m.Called(recipientID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *mockNotifRepo) CountUnread(recipientID string) (int64, error) {
	args := m.Called(recipientID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotifRepo) MarkAllRead(recipientID string) error {
	args := m.Called(recipientID)
	return args.Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *mockCache) InvalidatePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

func undefinedTableErr() error {
	return &pgconn.PgError{Code: "42P01", Message: "relation does not exist"}
}

func TestNotify_SelfIsDropped(t *testing.T) {
	repo := new(mockNotifRepo)
	c := new(mockCache)
	svc := NewNotificationService(repo, c, nil)

	err := svc.Notify("user-1", "user-1", model.TypeLike, "post-1")

	assert.NoError(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestNotify_PersistsAndInvalidatesCache(t *testing.T) {
	repo := new(mockNotifRepo)
	c := new(mockCache)
	svc := NewNotificationService(repo, c, nil)

	repo.On("Create", mock.MatchedBy(func(n *model.Notification) bool {
		return n.RecipientID == "user-2" &&
			n.SenderID == "user-1" &&
			n.Type == model.TypeLike &&
			n.PostID != nil && *n.PostID == "post-7"
	})).Return(nil)
	c.On("Delete", mock.Anything, "notif:unread:user-2").Return(nil)

	err := svc.Notify("user-2", "user-1", model.TypeLike, "post-7")

	assert.NoError(t, err)
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestNotify_FollowHasNilPostID(t *testing.T) {
	repo := new(mockNotifRepo)
	c := new(mockCache)
	svc := NewNotificationService(repo, c, nil)

	repo.On("Create", mock.MatchedBy(func(n *model.Notification) bool {
		return n.Type == model.TypeFollow && n.PostID == nil
	})).Return(nil)
	c.On("Delete", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, svc.Notify("user-2", "user-1", model.TypeFollow, ""))
	repo.AssertExpectations(t)
}

func TestList_MissingTableReadsEmpty(t *testing.T) {
	repo := new(mockNotifRepo)
	svc := NewNotificationService(repo, new(mockCache), nil)

	repo.On("ListByRecipient", "user-1", listLimit).Return(nil, undefinedTableErr())

	items, err := svc.List("user-1")

	assert.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestUnreadCount_CacheHitSkipsDatabase(t *testing.T) {
	repo := new(mockNotifRepo)
	c := new(mockCache)
	svc := NewNotificationService(repo, c, nil)

	c.On("Get", mock.Anything, "notif:unread:user-1", mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*int64) = 4
		}).Return(nil)

	count, err := svc.UnreadCount("user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(4), count)
	repo.AssertNotCalled(t, "CountUnread", mock.Anything)
}

func TestUnreadCount_CacheMissFallsThrough(t *testing.T) {
	repo := new(mockNotifRepo)
	c := new(mockCache)
	svc := NewNotificationService(repo, c, nil)

	c.On("Get", mock.Anything, "notif:unread:user-1", mock.Anything).Return(cache.ErrCacheMiss)
	repo.On("CountUnread", "user-1").Return(int64(2), nil)
	c.On("Set", mock.Anything, "notif:unread:user-1", int64(2), unreadCacheTTL).Return(nil)

	count, err := svc.UnreadCount("user-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)
	c.AssertExpectations(t)
}

func TestMarkAllRead_InvalidatesCounter(t *testing.T) {
	repo := new(mockNotifRepo)
	c := new(mockCache)
	svc := NewNotificationService(repo, c, nil)

	repo.On("MarkAllRead", "user-1").Return(nil)
	c.On("Delete", mock.Anything, "notif:unread:user-1").Return(nil)

	assert.NoError(t, svc.MarkAllRead("user-1"))
	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

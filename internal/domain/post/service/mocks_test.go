package service

import (
	"scholarshub/internal/domain/post/model"
	"scholarshub/internal/domain/post/repository"

	"github.com/stretchr/testify/mock"
)

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) Create(post *model.Post) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *mockPostRepo) GetByID(id string) (*model.Post, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *mockPostRepo) GetPage(authorIDs []string, offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(authorIDs, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) GetRecent(limit int) ([]model.Post, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *mockPostRepo) GetExplorePage(filter repository.ExploreFilter, offset, limit int) ([]model.Post, int64, error) {
	args := m.Called(filter, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) GetByAuthor(authorID string) ([]model.Post, error) {
	args := m.Called(authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *mockPostRepo) GetByIDs(ids []string) ([]model.Post, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *mockPostRepo) DeleteWithRelated(postID string) error {
	args := m.Called(postID)
	return args.Error(0)
}

func (m *mockPostRepo) CreateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *mockPostRepo) GetComment(id string) (*model.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *mockPostRepo) HasLike(userID, postID string) (bool, error) {
	args := m.Called(userID, postID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) CreateLike(like *model.Like) error {
	args := m.Called(like)
	return args.Error(0)
}

func (m *mockPostRepo) DeleteLike(userID, postID string) error {
	args := m.Called(userID, postID)
	return args.Error(0)
}

func (m *mockPostRepo) GetLikeUserIDs(postID string) ([]string, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockPostRepo) HasReport(postID, reporterID string) (bool, error) {
	args := m.Called(postID, reporterID)
	return args.Bool(0), args.Error(1)
}

func (m *mockPostRepo) CreateReport(report *model.Report) error {
	args := m.Called(report)
	return args.Error(0)
}

type mockFollowSource struct {
	mock.Mock
}

func (m *mockFollowSource) GetFollowingIDs(userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockBookmarkSource struct {
	mock.Mock
}

func (m *mockBookmarkSource) GetBookmarkPostIDs(userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(recipientID, senderID, notifType, postID string) error {
	args := m.Called(recipientID, senderID, notifType, postID)
	return args.Error(0)
}

func makePost(id, authorID string) model.Post {
	p := model.Post{AuthorID: authorID, Type: model.TypePDF, Title: "Post " + id, Subject: "Physics"}
	p.ID = id
	return p
}

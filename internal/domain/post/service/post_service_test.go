package service

import (
	"testing"

	"scholarshub/internal/domain/post/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newPostService(repo *mockPostRepo, bookmarks *mockBookmarkSource, n *mockNotifier) PostService {
	return NewPostService(repo, bookmarks, n)
}

func TestCreatePost_RequiresTitleSubjectType(t *testing.T) {
	repo := new(mockPostRepo)
	svc := newPostService(repo, new(mockBookmarkSource), new(mockNotifier))

	cases := []CreatePostInput{
		{Type: model.TypePDF, Subject: "Physics"},                     // no title
		{Type: model.TypePDF, Title: "Notes"},                         // no subject
		{Type: "spreadsheet", Title: "Notes", Subject: "Physics"},     // bad type
		{Type: model.TypePDF, Title: "   ", Subject: "Physics"},       // blank title
	}
	for _, input := range cases {
		_, err := svc.CreatePost("author-1", input)
		assert.ErrorIs(t, err, ErrInvalidPost)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreatePost_PlaylistParamPromotesType(t *testing.T) {
	repo := new(mockPostRepo)
	svc := newPostService(repo, new(mockBookmarkSource), new(mockNotifier))

	repo.On("Create", mock.MatchedBy(func(p *model.Post) bool {
		return p.Type == model.TypeYoutubePlaylist &&
			p.YoutubeID == "dQw4w9WgXcQ" &&
			p.PlaylistID == "PLabcdef1234"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*model.Post).ID = "post-1"
	}).Return(nil)
	repo.On("GetByID", "post-1").Return(&model.Post{Type: model.TypeYoutubePlaylist}, nil)

	_, err := svc.CreatePost("author-1", CreatePostInput{
		Type:       model.TypeYoutubeVideo,
		Title:      "Fourier series lectures",
		Subject:    "Math",
		YoutubeURL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PLabcdef1234",
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreatePost_BadYoutubeURL(t *testing.T) {
	repo := new(mockPostRepo)
	svc := newPostService(repo, new(mockBookmarkSource), new(mockNotifier))

	_, err := svc.CreatePost("author-1", CreatePostInput{
		Type:       model.TypeYoutubeVideo,
		Title:      "Lecture",
		Subject:    "Math",
		YoutubeURL: "https://example.com/video/123",
	})

	assert.ErrorIs(t, err, ErrInvalidYoutube)
}

func TestCreatePost_MissingSchemaIsServiceUnavailable(t *testing.T) {
	repo := new(mockPostRepo)
	svc := newPostService(repo, new(mockBookmarkSource), new(mockNotifier))

	repo.On("Create", mock.Anything).Return(&pgconn.PgError{Code: "42P01"})

	_, err := svc.CreatePost("author-1", CreatePostInput{
		Type: model.TypePDF, Title: "Notes", Subject: "Physics",
	})

	assert.ErrorIs(t, err, ErrSchemaNotReady)
}

func TestToggleLike_SequentialTogglesReturnToOriginal(t *testing.T) {
	repo := new(mockPostRepo)
	n := new(mockNotifier)
	svc := newPostService(repo, new(mockBookmarkSource), n)

	post := makePost("post-1", "author-1")
	repo.On("GetByID", "post-1").Return(&post, nil)

	// First toggle: absent -> present.
	repo.On("HasLike", "actor", "post-1").Return(false, nil).Once()
	repo.On("CreateLike", mock.Anything).Return(nil).Once()
	repo.On("GetLikeUserIDs", "post-1").Return([]string{"actor"}, nil).Once()
	n.On("Notify", "author-1", "actor", "like", "post-1").Return(nil).Once()

	first, err := svc.ToggleLike("actor", "post-1")
	assert.NoError(t, err)
	assert.True(t, first.IsLiked)
	assert.Equal(t, 1, first.LikeCount)

	// Second toggle: present -> absent, no notification.
	repo.On("HasLike", "actor", "post-1").Return(true, nil).Once()
	repo.On("DeleteLike", "actor", "post-1").Return(nil).Once()
	repo.On("GetLikeUserIDs", "post-1").Return([]string{}, nil).Once()

	second, err := svc.ToggleLike("actor", "post-1")
	assert.NoError(t, err)
	assert.False(t, second.IsLiked)
	assert.Equal(t, 0, second.LikeCount)

	n.AssertNumberOfCalls(t, "Notify", 1)
}

func TestToggleLike_PostMissing(t *testing.T) {
	repo := new(mockPostRepo)
	svc := newPostService(repo, new(mockBookmarkSource), new(mockNotifier))

	repo.On("GetByID", "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.ToggleLike("actor", "ghost")

	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestToggleLike_UniqueViolationConverges(t *testing.T) {
	repo := new(mockPostRepo)
	n := new(mockNotifier)
	svc := newPostService(repo, new(mockBookmarkSource), n)

	post := makePost("post-1", "author-1")
	repo.On("GetByID", "post-1").Return(&post, nil)
	repo.On("HasLike", "actor", "post-1").Return(false, nil)
	repo.On("CreateLike", mock.Anything).Return(&pgconn.PgError{Code: "23505"})
	repo.On("GetLikeUserIDs", "post-1").Return([]string{"actor"}, nil)
	n.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.ToggleLike("actor", "post-1")

	assert.NoError(t, err)
	assert.True(t, result.IsLiked)
}

func TestToggleLike_NotifyFailureDoesNotFailToggle(t *testing.T) {
	repo := new(mockPostRepo)
	n := new(mockNotifier)
	svc := newPostService(repo, new(mockBookmarkSource), n)

	post := makePost("post-1", "author-1")
	repo.On("GetByID", "post-1").Return(&post, nil)
	repo.On("HasLike", "actor", "post-1").Return(false, nil)
	repo.On("CreateLike", mock.Anything).Return(nil)
	repo.On("GetLikeUserIDs", "post-1").Return([]string{"actor"}, nil)
	n.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	result, err := svc.ToggleLike("actor", "post-1")

	assert.NoError(t, err)
	assert.True(t, result.IsLiked)
}

func TestAddComment_EmptyTextRejected(t *testing.T) {
	repo := new(mockPostRepo)
	svc := newPostService(repo, new(mockBookmarkSource), new(mockNotifier))

	_, err := svc.AddComment("actor", "post-1", "   ")

	assert.ErrorIs(t, err, ErrEmptyComment)
	repo.AssertNotCalled(t, "CreateComment", mock.Anything)
}

func TestAddComment_NotifiesPostAuthor(t *testing.T) {
	repo := new(mockPostRepo)
	n := new(mockNotifier)
	svc := newPostService(repo, new(mockBookmarkSource), n)

	post := makePost("post-1", "author-1")
	repo.On("GetByID", "post-1").Return(&post, nil)
	repo.On("CreateComment", mock.MatchedBy(func(c *model.Comment) bool {
		return c.PostID == "post-1" && c.AuthorID == "actor" && c.Text == "great notes"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*model.Comment).ID = "comment-1"
	}).Return(nil)
	repo.On("GetComment", "comment-1").Return(&model.Comment{PostID: "post-1", Text: "great notes"}, nil)
	n.On("Notify", "author-1", "actor", "comment", "post-1").Return(nil)

	comment, err := svc.AddComment("actor", "post-1", "great notes")

	assert.NoError(t, err)
	assert.Equal(t, "great notes", comment.Text)
	n.AssertExpectations(t)
}

func TestDeletePost_NonOwnerForbidden(t *testing.T) {
	repo := new(mockPostRepo)
	svc := newPostService(repo, new(mockBookmarkSource), new(mockNotifier))

	post := makePost("post-1", "owner")
	repo.On("GetByID", "post-1").Return(&post, nil)

	err := svc.DeletePost("intruder", "post-1")

	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "DeleteWithRelated", mock.Anything)
}

func TestDeletePost_OwnerCascades(t *testing.T) {
	repo := new(mockPostRepo)
	svc := newPostService(repo, new(mockBookmarkSource), new(mockNotifier))

	post := makePost("post-1", "owner")
	repo.On("GetByID", "post-1").Return(&post, nil)
	repo.On("DeleteWithRelated", "post-1").Return(nil)

	assert.NoError(t, svc.DeletePost("owner", "post-1"))
	repo.AssertExpectations(t)
}

func TestReportPost_DuplicateRejected(t *testing.T) {
	repo := new(mockPostRepo)
	svc := newPostService(repo, new(mockBookmarkSource), new(mockNotifier))

	post := makePost("post-1", "owner")
	repo.On("GetByID", "post-1").Return(&post, nil)
	repo.On("HasReport", "post-1", "actor").Return(true, nil)

	err := svc.ReportPost("actor", "post-1", "spam")

	assert.ErrorIs(t, err, ErrDuplicateReport)
	repo.AssertNotCalled(t, "CreateReport", mock.Anything)
}

func TestReportPost_RaceOnInsertStillConflict(t *testing.T) {
	repo := new(mockPostRepo)
	svc := newPostService(repo, new(mockBookmarkSource), new(mockNotifier))

	post := makePost("post-1", "owner")
	repo.On("GetByID", "post-1").Return(&post, nil)
	repo.On("HasReport", "post-1", "actor").Return(false, nil)
	repo.On("CreateReport", mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	err := svc.ReportPost("actor", "post-1", "spam")

	assert.ErrorIs(t, err, ErrDuplicateReport)
}

func TestGetBookmarkedPosts_ResolvesIDs(t *testing.T) {
	repo := new(mockPostRepo)
	bookmarks := new(mockBookmarkSource)
	svc := newPostService(repo, bookmarks, new(mockNotifier))

	bookmarks.On("GetBookmarkPostIDs", "user-1").Return([]string{"p1", "p2"}, nil)
	repo.On("GetByIDs", []string{"p1", "p2"}).
		Return([]model.Post{makePost("p1", "a"), makePost("p2", "b")}, nil)

	posts, err := svc.GetBookmarkedPosts("user-1")

	assert.NoError(t, err)
	assert.Len(t, posts, 2)
}

package service

import (
	"errors"
	"strings"

	"scholarshub/internal/domain/post/model"
	"scholarshub/internal/domain/post/repository"
	"scholarshub/pkg/database"
	"scholarshub/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrForbidden       = errors.New("not the owner of this post")
	ErrEmptyComment    = errors.New("comment text must not be empty")
	ErrInvalidPost     = errors.New("title, subject and a valid type are required")
	ErrInvalidYoutube  = errors.New("could not extract a video or playlist from the url")
	ErrDuplicateReport = errors.New("post already reported")
	ErrSchemaNotReady  = errors.New("storage schema is not initialized")
)

// notifier is the slice of the notification service this domain needs.
type notifier interface {
	Notify(recipientID, senderID, notifType, postID string) error
}

// BookmarkSource resolves a user's bookmarked post IDs. Implemented by the
// user repository.
type BookmarkSource interface {
	GetBookmarkPostIDs(userID string) ([]string, error)
}

// CreatePostInput carries everything a new post needs. For YouTube types
// the URL is parsed here; clients never send raw video IDs.
type CreatePostInput struct {
	Type        string   `json:"type"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Subject     string   `json:"subject"`
	FileURL     string   `json:"fileUrl"`
	FileURLs    []string `json:"fileUrls"`
	YoutubeURL  string   `json:"youtubeUrl"`
}

// LikeResult is the like-toggle response. The list is re-read after the
// flip rather than adjusted locally.
type LikeResult struct {
	Likes     []string `json:"likes"`
	LikeCount int      `json:"likeCount"`
	IsLiked   bool     `json:"isLiked"`
}

type PostService interface {
	CreatePost(authorID string, input CreatePostInput) (*ShapedPost, error)
	GetPost(id string) (*ShapedPost, error)
	GetPostsByAuthor(authorID string) ([]ShapedPost, error)
	GetBookmarkedPosts(userID string) ([]ShapedPost, error)
	DeletePost(actorID, postID string) error
	ToggleLike(actorID, postID string) (*LikeResult, error)
	AddComment(actorID, postID, text string) (*ShapedComment, error)
	ReportPost(actorID, postID, reason string) error
}

type postService struct {
	repo      repository.PostRepository
	bookmarks BookmarkSource
	notifier  notifier
}

func NewPostService(repo repository.PostRepository, bookmarks BookmarkSource, n notifier) PostService {
	return &postService{repo: repo, bookmarks: bookmarks, notifier: n}
}

func (s *postService) CreatePost(authorID string, input CreatePostInput) (*ShapedPost, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Subject = strings.TrimSpace(input.Subject)
	if input.Title == "" || input.Subject == "" || !model.ValidType(input.Type) {
		return nil, ErrInvalidPost
	}

	post := &model.Post{
		AuthorID:    authorID,
		Type:        input.Type,
		Title:       input.Title,
		Description: input.Description,
		Subject:     input.Subject,
	}

	switch input.Type {
	case model.TypePDF:
		post.FileURL = input.FileURL
	case model.TypeImage:
		post.FileURL = input.FileURL
		post.FileURLs = input.FileURLs
	case model.TypeYoutubeVideo, model.TypeYoutubePlaylist:
		videoID := extractYoutubeVideoID(input.YoutubeURL)
		playlistID := extractYoutubePlaylistID(input.YoutubeURL)
		if videoID == "" && playlistID == "" {
			return nil, ErrInvalidYoutube
		}
		post.YoutubeID = videoID
		post.PlaylistID = playlistID
		// A watch URL carrying a list param is a playlist post even when
		// the client labelled it a plain video.
		if playlistID != "" {
			post.Type = model.TypeYoutubePlaylist
		} else {
			post.Type = model.TypeYoutubeVideo
		}
	}

	if err := s.repo.Create(post); err != nil {
		if database.IsUndefinedTable(err) {
			return nil, ErrSchemaNotReady
		}
		return nil, err
	}

	return s.GetPost(post.ID)
}

func (s *postService) GetPost(id string) (*ShapedPost, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	// Single-post view carries the full comment thread.
	shaped := shapePost(post, 0)
	return &shaped, nil
}

func (s *postService) GetPostsByAuthor(authorID string) ([]ShapedPost, error) {
	posts, err := s.repo.GetByAuthor(authorID)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return []ShapedPost{}, nil
		}
		return nil, err
	}
	return shapePosts(posts, commentPreviewLimit), nil
}

func (s *postService) GetBookmarkedPosts(userID string) ([]ShapedPost, error) {
	ids, err := s.bookmarks.GetBookmarkPostIDs(userID)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return []ShapedPost{}, nil
		}
		return nil, err
	}

	posts, err := s.repo.GetByIDs(ids)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return []ShapedPost{}, nil
		}
		return nil, err
	}
	return shapePosts(posts, commentPreviewLimit), nil
}

// DeletePost removes a post and everything referencing it. Owner only.
func (s *postService) DeletePost(actorID, postID string) error {
	post, err := s.repo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	if post.AuthorID != actorID {
		return ErrForbidden
	}
	return s.repo.DeleteWithRelated(postID)
}

// ToggleLike flips the like row for (actor, post). The response re-reads
// the full like list so concurrent toggles never leave the count drifting.
func (s *postService) ToggleLike(actorID, postID string) (*LikeResult, error) {
	post, err := s.repo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	liked, err := s.repo.HasLike(actorID, postID)
	if err != nil {
		return nil, err
	}

	if liked {
		if err := s.repo.DeleteLike(actorID, postID); err != nil {
			return nil, err
		}
		liked = false
	} else {
		err := s.repo.CreateLike(&model.Like{UserID: actorID, PostID: postID})
		// A concurrent toggle may have won the insert; the pair index turns
		// that into a unique violation, which converges to "liked".
		if err != nil && !database.IsUniqueViolation(err) {
			return nil, err
		}
		liked = true

		s.emit(post.AuthorID, actorID, "like", postID)
	}

	likes, err := s.repo.GetLikeUserIDs(postID)
	if err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []string{}
	}

	return &LikeResult{Likes: likes, LikeCount: len(likes), IsLiked: liked}, nil
}

func (s *postService) AddComment(actorID, postID, text string) (*ShapedComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	post, err := s.repo.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	comment := &model.Comment{PostID: postID, AuthorID: actorID, Text: text}
	if err := s.repo.CreateComment(comment); err != nil {
		if database.IsUndefinedTable(err) {
			return nil, ErrSchemaNotReady
		}
		return nil, err
	}

	s.emit(post.AuthorID, actorID, "comment", postID)

	stored, err := s.repo.GetComment(comment.ID)
	if err != nil {
		return nil, err
	}
	shaped := shapeComment(stored)
	return &shaped, nil
}

func (s *postService) ReportPost(actorID, postID, reason string) error {
	if _, err := s.repo.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	reported, err := s.repo.HasReport(postID, actorID)
	if err != nil {
		return err
	}
	if reported {
		return ErrDuplicateReport
	}

	err = s.repo.CreateReport(&model.Report{PostID: postID, ReporterID: actorID, Reason: reason})
	if database.IsUniqueViolation(err) {
		return ErrDuplicateReport
	}
	return err
}

// emit sends a notification without affecting the surrounding operation.
// Self-addressed events are dropped by the notification service itself.
func (s *postService) emit(recipientID, actorID, notifType, postID string) {
	if err := s.notifier.Notify(recipientID, actorID, notifType, postID); err != nil && logger.Log != nil {
		logger.Log.Warn("notification emit failed",
			zap.String("type", notifType),
			zap.String("post", postID),
			zap.Error(err))
	}
}

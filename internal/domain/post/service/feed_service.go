package service

import (
	"scholarshub/internal/domain/post/model"
	"scholarshub/internal/domain/post/repository"
	"scholarshub/pkg/database"
	"scholarshub/pkg/logger"
	"scholarshub/pkg/metrics"
	"scholarshub/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultFeedPageSize    = 10
	defaultExplorePageSize = 12
)

// FollowSource resolves the accounts a viewer follows. Implemented by the
// user repository.
type FollowSource interface {
	GetFollowingIDs(userID string) ([]string, error)
}

// FeedResponse is the paginated home feed. TotalPages and HasMore track the
// followed-network query only; the page itself may contain backfilled posts
// on top of that.
type FeedResponse struct {
	Posts      []ShapedPost `json:"posts"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	HasMore    bool         `json:"hasMore"`
}

// ExploreResponse mirrors the feed contract plus the exact match total.
type ExploreResponse struct {
	Posts      []ShapedPost `json:"posts"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	HasMore    bool         `json:"hasMore"`
	Total      int64        `json:"total"`
}

type FeedService interface {
	GetFeed(viewerID string, page, limit int) (*FeedResponse, error)
	Explore(page, limit int, filter repository.ExploreFilter) (*ExploreResponse, error)
}

type feedService struct {
	posts   repository.PostRepository
	follows FollowSource
}

func NewFeedService(posts repository.PostRepository, follows FollowSource) FeedService {
	return &feedService{posts: posts, follows: follows}
}

// GetFeed composes page N of the viewer's home feed at request time: posts
// from the followed network first, then globally-recent backfill when the
// network cannot fill the page. A missing schema reads as an empty feed.
func (s *feedService) GetFeed(viewerID string, page, limit int) (*FeedResponse, error) {
	p := utils.Pagination{Page: page, Limit: limit}
	offset, limit := p.Normalize(defaultFeedPageSize)
	page = p.Page

	followingIDs, err := s.follows.GetFollowingIDs(viewerID)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return emptyFeed(page), nil
		}
		return nil, err
	}

	// The viewer always sees their own posts.
	authorIDs := append(followingIDs, viewerID)

	posts, total, err := s.posts.GetPage(authorIDs, offset, limit)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return emptyFeed(page), nil
		}
		return nil, err
	}

	posts = s.backfill(posts, limit)

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	return &FeedResponse{
		Posts:      shapePosts(posts, commentPreviewLimit),
		Page:       page,
		TotalPages: totalPages,
		// Metadata tracks the followed-network count only, even though the
		// page content may include backfill.
		HasMore: int64(offset+len(posts)) < total,
	}, nil
}

// backfill tops a short page up with globally-recent posts. The fetch is
// capped at remaining + len(page) rows so one sparse page never triggers an
// unbounded scan; rows already on the page are skipped.
func (s *feedService) backfill(posts []model.Post, limit int) []model.Post {
	remaining := limit - len(posts)
	if remaining <= 0 {
		return posts
	}

	recent, err := s.posts.GetRecent(remaining + len(posts))
	if err != nil {
		if !database.IsUndefinedTable(err) && logger.Log != nil {
			logger.Log.Warn("feed backfill query failed", zap.Error(err))
		}
		return posts
	}

	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		seen[p.ID] = struct{}{}
	}

	added := 0
	for _, candidate := range recent {
		if len(posts) >= limit {
			break
		}
		if _, dup := seen[candidate.ID]; dup {
			continue
		}
		posts = append(posts, candidate)
		seen[candidate.ID] = struct{}{}
		added++
	}

	if added > 0 {
		metrics.GetGlobalCollector().RecordFeedBackfill()
	}
	return posts
}

// Explore returns a globally-scoped page with optional subject, type and
// free-text filters. No backfill: the query is already exhaustive.
func (s *feedService) Explore(page, limit int, filter repository.ExploreFilter) (*ExploreResponse, error) {
	p := utils.Pagination{Page: page, Limit: limit}
	offset, limit := p.Normalize(defaultExplorePageSize)
	page = p.Page

	posts, total, err := s.posts.GetExplorePage(filter, offset, limit)
	if err != nil {
		if database.IsUndefinedTable(err) {
			return &ExploreResponse{
				Posts:      []ShapedPost{},
				Page:       page,
				TotalPages: 1,
			}, nil
		}
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	return &ExploreResponse{
		Posts:      shapePosts(posts, commentPreviewLimit),
		Page:       page,
		TotalPages: totalPages,
		HasMore:    int64(offset+len(posts)) < total,
		Total:      total,
	}, nil
}

func emptyFeed(page int) *FeedResponse {
	return &FeedResponse{
		Posts:      []ShapedPost{},
		Page:       page,
		TotalPages: 1,
		HasMore:    false,
	}
}

package service

import (
	"sort"
	"time"

	"scholarshub/internal/domain/post/model"
	usermodel "scholarshub/internal/domain/user/model"
)

// Comments shown inline on list views. The single-post view carries the full
// thread.
const commentPreviewLimit = 3

// ShapedAuthor is the flattened profile embedded in posts and comments.
type ShapedAuthor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	School string `json:"school,omitempty"`
}

type ShapedComment struct {
	ID        string       `json:"id"`
	PostID    string       `json:"postId"`
	Text      string       `json:"text"`
	Author    ShapedAuthor `json:"author"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ShapedPost is the client-facing projection of a post row with its joined
// associations. Likes carry user IDs only.
type ShapedPost struct {
	ID           string          `json:"id"`
	AuthorID     string          `json:"authorId"`
	Type         string          `json:"type"`
	FileURL      string          `json:"fileUrl,omitempty"`
	FileURLs     []string        `json:"fileUrls,omitempty"`
	YoutubeID    string          `json:"youtubeId,omitempty"`
	PlaylistID   string          `json:"playlistId,omitempty"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Subject      string          `json:"subject"`
	Author       ShapedAuthor    `json:"author"`
	Likes        []string        `json:"likes"`
	LikeCount    int             `json:"likeCount"`
	Comments     []ShapedComment `json:"comments"`
	CommentCount int             `json:"commentCount"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// shapePost projects a loaded post row. previewLimit > 0 truncates the
// comment list to that many newest comments; CommentCount always reflects
// the full thread, computed before any truncation.
func shapePost(p *model.Post, previewLimit int) ShapedPost {
	shaped := ShapedPost{
		ID:           p.ID,
		AuthorID:     p.AuthorID,
		Type:         p.Type,
		FileURL:      p.FileURL,
		FileURLs:     p.FileURLs,
		YoutubeID:    p.YoutubeID,
		PlaylistID:   p.PlaylistID,
		Title:        p.Title,
		Description:  p.Description,
		Subject:      p.Subject,
		Author:       shapeAuthor(p.Author),
		Likes:        make([]string, 0, len(p.Likes)),
		LikeCount:    len(p.Likes),
		CommentCount: len(p.Comments),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}

	for _, like := range p.Likes {
		shaped.Likes = append(shaped.Likes, like.UserID)
	}

	comments := make([]model.Comment, len(p.Comments))
	copy(comments, p.Comments)
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	if previewLimit > 0 && len(comments) > previewLimit {
		comments = comments[:previewLimit]
	}

	shaped.Comments = make([]ShapedComment, 0, len(comments))
	for _, c := range comments {
		shaped.Comments = append(shaped.Comments, shapeComment(&c))
	}
	return shaped
}

func shapeComment(c *model.Comment) ShapedComment {
	return ShapedComment{
		ID:        c.ID,
		PostID:    c.PostID,
		Text:      c.Text,
		Author:    shapeAuthor(c.Author),
		CreatedAt: c.CreatedAt,
	}
}

func shapeAuthor(p *usermodel.Profile) ShapedAuthor {
	if p == nil {
		return ShapedAuthor{}
	}
	return ShapedAuthor{
		ID:     p.ID,
		Name:   p.Name,
		Avatar: p.Avatar,
		School: p.School,
	}
}

func shapePosts(posts []model.Post, previewLimit int) []ShapedPost {
	shaped := make([]ShapedPost, 0, len(posts))
	for i := range posts {
		shaped = append(shaped, shapePost(&posts[i], previewLimit))
	}
	return shaped
}

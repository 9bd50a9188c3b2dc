package model

import (
	baseModel "scholarshub/pkg/model"

	usermodel "scholarshub/internal/domain/user/model"
)

// Post types. Exactly one of the file fields or the youtube fields is
// populated, driven by Type.
const (
	TypePDF             = "pdf"
	TypeImage           = "image"
	TypeYoutubeVideo    = "youtube_video"
	TypeYoutubePlaylist = "youtube_playlist"
)

// ValidType reports whether t is one of the supported post types.
func ValidType(t string) bool {
	switch t {
	case TypePDF, TypeImage, TypeYoutubeVideo, TypeYoutubePlaylist:
		return true
	}
	return false
}

// Post is a shared study material: a PDF, an image set, or a YouTube
// video/playlist reference.
type Post struct {
	baseModel.BaseModel
	AuthorID    string               `gorm:"type:uuid;index;not null" json:"authorId"`
	Type        string               `gorm:"size:30;not null" json:"type"`
	FileURL     string               `json:"fileUrl"`
	FileURLs    baseModel.StringList `gorm:"type:jsonb" json:"fileUrls"`
	YoutubeID   string               `gorm:"size:20" json:"youtubeId"`
	PlaylistID  string               `gorm:"size:50" json:"playlistId"`
	Title       string               `gorm:"not null" json:"title"`
	Description string               `gorm:"type:text" json:"description"`
	Subject     string               `gorm:"index" json:"subject"`

	Author   *usermodel.Profile `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments []Comment          `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	Likes    []Like             `gorm:"foreignKey:PostID" json:"likes,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// Comment is immutable once written; it disappears only when its post is
// deleted.
type Comment struct {
	baseModel.BaseModel
	PostID   string `gorm:"type:uuid;index;not null" json:"postId"`
	AuthorID string `gorm:"type:uuid;not null" json:"authorId"`
	Text     string `gorm:"type:text;not null" json:"text"`

	Author *usermodel.Profile `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}

// Like existence is the liked state. The pair index keeps concurrent
// double-toggles down to one row.
type Like struct {
	baseModel.JoinModel
	UserID string `gorm:"type:uuid;index;uniqueIndex:idx_likes_pair" json:"userId"`
	PostID string `gorm:"type:uuid;index;uniqueIndex:idx_likes_pair" json:"postId"`
}

func (Like) TableName() string {
	return "likes"
}

// Report records a moderation flag, one per reporter per post.
type Report struct {
	baseModel.JoinModel
	PostID     string `gorm:"type:uuid;index;uniqueIndex:idx_reports_pair" json:"postId"`
	ReporterID string `gorm:"type:uuid;uniqueIndex:idx_reports_pair" json:"reporterId"`
	Reason     string `gorm:"type:text" json:"reason"`
}

func (Report) TableName() string {
	return "reports"
}

package model

import (
	baseModel "scholarshub/pkg/model"
)

// Profile is a Scholars Hub account. Follows, bookmarks and authored posts
// reference it by ID rather than living inside it.
type Profile struct {
	baseModel.BaseModel
	Name     string               `json:"name"`
	Email    string               `gorm:"uniqueIndex" json:"email"`
	Password string               `json:"-"`
	Avatar   string               `json:"avatar"`
	Bio      string               `json:"bio"`
	School   string               `json:"school"`
	Subjects baseModel.StringList `gorm:"type:jsonb" json:"subjects"`
}

// Follow is a directed edge in the social graph. The unique pair index is
// the backstop for concurrent double-follows; self-follow is rejected in the
// service layer.
type Follow struct {
	baseModel.JoinModel
	FollowerID  string `gorm:"type:uuid;index;uniqueIndex:idx_follows_pair" json:"followerId"`
	FollowingID string `gorm:"type:uuid;index;uniqueIndex:idx_follows_pair" json:"followingId"`
}

// Bookmark is a private saved-for-later marker. Unlike a Like it carries no
// notification and no post-existence check.
type Bookmark struct {
	baseModel.JoinModel
	UserID string `gorm:"type:uuid;index;uniqueIndex:idx_bookmarks_pair" json:"userId"`
	PostID string `gorm:"type:uuid;index;uniqueIndex:idx_bookmarks_pair" json:"postId"`
}

package model

import (
	"scholarshub/pkg/model"

	postmodel "scholarshub/internal/domain/post/model"
	usermodel "scholarshub/internal/domain/user/model"
)

// Notification types.
const (
	TypeFollow  = "follow"
	TypeLike    = "like"
	TypeComment = "comment"
)

// Notification is an in-app event addressed to one recipient. PostID is nil
// for follow notifications.
type Notification struct {
	model.BaseModel
	RecipientID string  `gorm:"type:uuid;index;not null" json:"recipientId"`
	SenderID    string  `gorm:"type:uuid;not null" json:"senderId"`
	Type        string  `gorm:"size:20;not null" json:"type"`
	PostID      *string `gorm:"type:uuid" json:"postId"`
	Read        bool    `gorm:"default:false" json:"read"`

	Sender *usermodel.Profile `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Post   *postmodel.Post    `gorm:"foreignKey:PostID" json:"post,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

type Post struct {
	BaseModel

	Title       string                      `json:"title"`
	Content     string                      `json:"content"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	Language    string                      `json:"language"`
	AIGenerated bool                        `json:"ai_generated"`
	Comments    []Comment                   `json:"comments"`

	EditedAt *time.Time `json:"edited_at"`

	AccountID uint    `json:"account_id" gorm:"index"`
	Account   Account `json:"account"`

	Likes       []uint     `json:"likes" gorm:"-"`
	IsUserSaved bool       `json:"is_user_saved" gorm:"-"`
	IsLiked     bool       `json:"is_liked" gorm:"-"`
	Metric      PostMetric `json:"metric" gorm:"-"`
}

type PostMetric struct {
	LikeCount    int `json:"like_count"`
	CommentCount int `json:"comment_count"`
}

type Comment struct {
	BaseModel

	Text      string  `json:"text"`
	PostID    uint    `json:"post_id" gorm:"index"`
	AccountID uint    `json:"account_id" gorm:"index"`
	Account   Account `json:"account"`
}

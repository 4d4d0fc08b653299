package models

import "time"

// Follow is a single edge of the follow graph, it is both the follower's
// following entry and the followee's followers entry.
type Follow struct {
	FollowerID uint      `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FolloweeID uint      `json:"followee_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt  time.Time `json:"created_at"`
}

type PostLike struct {
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	AccountID uint      `json:"account_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`
}

type SavedPost struct {
	AccountID uint      `json:"account_id" gorm:"primaryKey;autoIncrement:false"`
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`
}

package model

import "time"

const (
	ActivityPostCreated = "post.created"
	ActivityPostUpdated = "post.updated"
	ActivityPostDeleted = "post.deleted"
	ActivityVoteCast    = "vote.cast"
	ActivityVoteRetract = "vote.retracted"
)

// Activity is an audit record persisted asynchronously by the activity worker.
type Activity struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Kind      string    `gorm:"size:32;not null" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

package model

import "time"

// Vote is a binary relation between a user and a post. The composite unique
// index is the source of truth for the at-most-one-row invariant; the vote
// service relies on the store rejecting duplicate inserts.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

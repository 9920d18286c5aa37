package model

import "time"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Published bool      `gorm:"not null;default:true" json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

// PostWithVotes is the read shape for list/detail endpoints: the vote count
// is always computed from the vote table, never stored on the post row.
type PostWithVotes struct {
	Post
	Votes int64 `json:"votes"`
}

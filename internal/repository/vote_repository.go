package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gopherpost/internal/model"
)

// ErrDuplicateVote reports that the (post, user) pair already has a row. The
// unique index on votes is what actually enforces the invariant; this error
// is how an insert that lost the race comes back to the caller.
var ErrDuplicateVote = errors.New("vote already exists")

type VoteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Get(postID, userID uint) (*model.Vote, error) {
	var vote model.Vote
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query vote failed: %w", err)
	}
	return &vote, nil
}

func (r *VoteRepository) Insert(postID, userID uint) error {
	vote := &model.Vote{PostID: postID, UserID: userID}
	if err := r.db.Create(vote).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateVote
		}
		return fmt.Errorf("insert vote failed: %w", err)
	}
	return nil
}

// Delete removes the vote row and reports whether one existed at delete time.
func (r *VoteRepository) Delete(postID, userID uint) (bool, error) {
	result := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.Vote{})
	if result.Error != nil {
		return false, fmt.Errorf("delete vote failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *VoteRepository) CountByPostID(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&model.Vote{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count votes failed: %w", err)
	}
	return count, nil
}

package app

import (
	"context"
	"errors"

	"gopherpost/internal/model"
	"gopherpost/internal/repository"
)

var (
	ErrAlreadyVoted = errors.New("already voted on this post")
	ErrVoteNotFound = errors.New("no vote to remove")
)

const (
	VoteRetract = 0
	VoteCast    = 1
)

// VoteStore is the slice of the vote repository the vote service depends on.
// Insert must fail with repository.ErrDuplicateVote when the (post, user)
// pair already has a row; Delete must report whether a row existed.
type VoteStore interface {
	Get(postID, userID uint) (*model.Vote, error)
	Insert(postID, userID uint) error
	Delete(postID, userID uint) (bool, error)
	CountByPostID(postID uint) (int64, error)
}

// PostGetter is the single read the vote service needs from the post store.
type PostGetter interface {
	GetByID(id uint) (*model.Post, error)
}

type VoteService struct {
	voteStore VoteStore
	postStore PostGetter
	publisher ActivityPublisher
}

type ToggleVoteInput struct {
	PostID    uint
	UserID    uint
	Direction int
}

func NewVoteService(voteStore VoteStore, postStore PostGetter, publisher ActivityPublisher) *VoteService {
	return &VoteService{
		voteStore: voteStore,
		postStore: postStore,
		publisher: publisher,
	}
}

// Toggle casts (direction 1) or retracts (direction 0) a vote. Duplicate casts
// and retracts of an absent vote are reported to the caller, never silently
// absorbed. The read before the mutation only produces a friendly early
// answer; the store's unique index and the rows-affected check on delete are
// what actually hold under concurrent requests for the same pair.
func (s *VoteService) Toggle(ctx context.Context, input ToggleVoteInput) error {
	if input.PostID == 0 || input.UserID == 0 {
		return ErrInvalidInput
	}
	if input.Direction != VoteCast && input.Direction != VoteRetract {
		return ErrInvalidInput
	}

	post, err := s.postStore.GetByID(input.PostID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	existing, err := s.voteStore.Get(input.PostID, input.UserID)
	if err != nil {
		return err
	}

	if input.Direction == VoteCast {
		if existing != nil {
			return ErrAlreadyVoted
		}
		if err := s.voteStore.Insert(input.PostID, input.UserID); err != nil {
			if errors.Is(err, repository.ErrDuplicateVote) {
				return ErrAlreadyVoted
			}
			return err
		}
		s.publishActivity(ctx, input.UserID, input.PostID, model.ActivityVoteCast)
		return nil
	}

	if existing == nil {
		return ErrVoteNotFound
	}
	removed, err := s.voteStore.Delete(input.PostID, input.UserID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrVoteNotFound
	}
	s.publishActivity(ctx, input.UserID, input.PostID, model.ActivityVoteRetract)
	return nil
}

// CountVotes derives the vote count for a post from the vote rows. There is
// no stored counter to drift.
func (s *VoteService) CountVotes(postID uint) (int64, error) {
	if postID == 0 {
		return 0, ErrInvalidInput
	}
	post, err := s.postStore.GetByID(postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, ErrPostNotFound
	}
	return s.voteStore.CountByPostID(postID)
}

func (s *VoteService) publishActivity(ctx context.Context, userID, postID uint, kind string) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, model.Activity{
		UserID: userID,
		PostID: postID,
		Kind:   kind,
	})
}

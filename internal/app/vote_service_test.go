package app

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopherpost/internal/model"
)

func newVoteFixture(t *testing.T) (*VoteService, *stubVoteStore, *model.Post) {
	t.Helper()
	votes := newStubVoteStore()
	posts := newStubPostStore(votes)
	post := &model.Post{OwnerID: 3, Title: "T", Content: "C", Published: true}
	require.NoError(t, posts.Create(post))
	return NewVoteService(votes, posts, nil), votes, post
}

func TestVoteService_ToggleSequence(t *testing.T) {
	svc, votes, post := newVoteFixture(t)
	ctx := context.Background()

	// Cast succeeds once.
	require.NoError(t, svc.Toggle(ctx, ToggleVoteInput{PostID: post.ID, UserID: 3, Direction: VoteCast}))

	// A second cast for the same pair is a conflict and leaves one row.
	err := svc.Toggle(ctx, ToggleVoteInput{PostID: post.ID, UserID: 3, Direction: VoteCast})
	assert.ErrorIs(t, err, ErrAlreadyVoted)
	count, err := votes.CountByPostID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Retract removes the row.
	require.NoError(t, svc.Toggle(ctx, ToggleVoteInput{PostID: post.ID, UserID: 3, Direction: VoteRetract}))
	count, err = votes.CountByPostID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Retracting again reports there is nothing to remove.
	err = svc.Toggle(ctx, ToggleVoteInput{PostID: post.ID, UserID: 3, Direction: VoteRetract})
	assert.ErrorIs(t, err, ErrVoteNotFound)
}

func TestVoteService_Toggle_PostNotFound(t *testing.T) {
	svc, votes, _ := newVoteFixture(t)

	err := svc.Toggle(context.Background(), ToggleVoteInput{PostID: 99, UserID: 3, Direction: VoteCast})
	assert.ErrorIs(t, err, ErrPostNotFound)

	count, err := votes.CountByPostID(99)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestVoteService_Toggle_InvalidDirection(t *testing.T) {
	svc, _, post := newVoteFixture(t)

	err := svc.Toggle(context.Background(), ToggleVoteInput{PostID: post.ID, UserID: 3, Direction: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestVoteService_ConcurrentCasts(t *testing.T) {
	svc, votes, post := newVoteFixture(t)

	const attempts = 32
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.Toggle(context.Background(), ToggleVoteInput{PostID: post.ID, UserID: 7, Direction: VoteCast})
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrAlreadyVoted):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	count, err := votes.CountByPostID(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestVoteService_CountNeverDrifts(t *testing.T) {
	svc, _, post := newVoteFixture(t)
	ctx := context.Background()

	voters := []uint{2, 3, 4, 5}
	for _, voter := range voters {
		require.NoError(t, svc.Toggle(ctx, ToggleVoteInput{PostID: post.ID, UserID: voter, Direction: VoteCast}))
	}
	count, err := svc.CountVotes(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(len(voters)), count)

	require.NoError(t, svc.Toggle(ctx, ToggleVoteInput{PostID: post.ID, UserID: 3, Direction: VoteRetract}))
	require.NoError(t, svc.Toggle(ctx, ToggleVoteInput{PostID: post.ID, UserID: 3, Direction: VoteCast}))
	require.NoError(t, svc.Toggle(ctx, ToggleVoteInput{PostID: post.ID, UserID: 5, Direction: VoteRetract}))

	count, err = svc.CountVotes(post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(len(voters)-1), count)
}

func TestVoteService_PublishesActivity(t *testing.T) {
	votes := newStubVoteStore()
	posts := newStubPostStore(votes)
	post := &model.Post{OwnerID: 3, Title: "T", Content: "C", Published: true}
	require.NoError(t, posts.Create(post))
	publisher := &recordingPublisher{}
	svc := NewVoteService(votes, posts, publisher)
	ctx := context.Background()

	require.NoError(t, svc.Toggle(ctx, ToggleVoteInput{PostID: post.ID, UserID: 7, Direction: VoteCast}))
	require.NoError(t, svc.Toggle(ctx, ToggleVoteInput{PostID: post.ID, UserID: 7, Direction: VoteRetract}))

	assert.Equal(t, []string{model.ActivityVoteCast, model.ActivityVoteRetract}, publisher.kinds())
}

func TestVoteService_CountVotes_PostNotFound(t *testing.T) {
	svc, _, _ := newVoteFixture(t)

	_, err := svc.CountVotes(99)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

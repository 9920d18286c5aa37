package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopherpost/internal/model"
)

type stubActivityStore struct {
	activities []model.Activity
	lastLimit  int
}

func (s *stubActivityStore) ListByUserID(userID uint, limit int) ([]model.Activity, error) {
	s.lastLimit = limit
	var matched []model.Activity
	for _, a := range s.activities {
		if a.UserID == userID {
			matched = append(matched, a)
		}
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func TestActivityService_RecentByUser(t *testing.T) {
	store := &stubActivityStore{activities: []model.Activity{
		{UserID: 1, PostID: 10, Kind: model.ActivityPostCreated},
		{UserID: 1, PostID: 10, Kind: model.ActivityVoteCast},
		{UserID: 2, PostID: 11, Kind: model.ActivityPostCreated},
	}}
	svc := NewActivityService(store)

	activities, err := svc.RecentByUser(1, 10)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	for _, a := range activities {
		assert.Equal(t, uint(1), a.UserID)
	}
}

func TestActivityService_RecentByUser_LimitDefaults(t *testing.T) {
	store := &stubActivityStore{}
	svc := NewActivityService(store)

	_, err := svc.RecentByUser(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, store.lastLimit)

	_, err = svc.RecentByUser(1, 500)
	require.NoError(t, err)
	assert.Equal(t, 20, store.lastLimit)
}

func TestActivityService_RecentByUser_InvalidUser(t *testing.T) {
	svc := NewActivityService(&stubActivityStore{})

	_, err := svc.RecentByUser(0, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

package app

import "gopherpost/internal/model"

// ActivityStore is the slice of the activity repository the read path needs.
type ActivityStore interface {
	ListByUserID(userID uint, limit int) ([]model.Activity, error)
}

type ActivityService struct {
	activityStore ActivityStore
}

func NewActivityService(activityStore ActivityStore) *ActivityService {
	return &ActivityService{activityStore: activityStore}
}

// RecentByUser lists a user's newest activity rows, most recent first.
func (s *ActivityService) RecentByUser(userID uint, limit int) ([]model.Activity, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.activityStore.ListByUserID(userID, limit)
}

package app

import (
	"context"
	"sync"

	"gopherpost/internal/model"
	"gopherpost/internal/repository"
)

type stubUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*model.User
}

func newStubUserStore() *stubUserStore {
	return &stubUserStore{users: make(map[uint]*model.User)}
}

func (s *stubUserStore) Create(user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *stubUserStore) GetByEmail(email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) GetByID(id uint) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (s *stubUserStore) delete(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

type stubPostStore struct {
	mu     sync.Mutex
	nextID uint
	posts  map[uint]*model.Post
	votes  *stubVoteStore
}

func newStubPostStore(votes *stubVoteStore) *stubPostStore {
	return &stubPostStore{posts: make(map[uint]*model.Post), votes: votes}
}

func (s *stubPostStore) Create(post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	post.ID = s.nextID
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *stubPostStore) GetByID(id uint) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (s *stubPostStore) ListWithVotes(search string, limit, offset int) ([]model.PostWithVotes, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var results []model.PostWithVotes
	for _, p := range s.posts {
		var count int64
		if s.votes != nil {
			count, _ = s.votes.CountByPostID(p.ID)
		}
		results = append(results, model.PostWithVotes{Post: *p, Votes: count})
	}
	return results, nil
}

func (s *stubPostStore) GetWithVotes(id uint) (*model.PostWithVotes, error) {
	post, err := s.GetByID(id)
	if err != nil || post == nil {
		return nil, err
	}
	var count int64
	if s.votes != nil {
		count, _ = s.votes.CountByPostID(id)
	}
	return &model.PostWithVotes{Post: *post, Votes: count}, nil
}

func (s *stubPostStore) ListLatest(count int) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var posts []model.Post
	for _, p := range s.posts {
		posts = append(posts, *p)
		if len(posts) == count {
			break
		}
	}
	return posts, nil
}

func (s *stubPostStore) Update(post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *stubPostStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

// stubVoteStore enforces the same uniqueness contract as the real vote table:
// a duplicate insert fails under the lock regardless of any preceding read.
type stubVoteStore struct {
	mu   sync.Mutex
	rows map[[2]uint]bool
}

func newStubVoteStore() *stubVoteStore {
	return &stubVoteStore{rows: make(map[[2]uint]bool)}
}

func (s *stubVoteStore) Get(postID, userID uint) (*model.Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rows[[2]uint{postID, userID}] {
		return &model.Vote{PostID: postID, UserID: userID}, nil
	}
	return nil, nil
}

func (s *stubVoteStore) Insert(postID, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uint{postID, userID}
	if s.rows[key] {
		return repository.ErrDuplicateVote
	}
	s.rows[key] = true
	return nil
}

func (s *stubVoteStore) Delete(postID, userID uint) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]uint{postID, userID}
	if !s.rows[key] {
		return false, nil
	}
	delete(s.rows, key)
	return true, nil
}

func (s *stubVoteStore) CountByPostID(postID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for key := range s.rows {
		if key[0] == postID {
			count++
		}
	}
	return count, nil
}

type recordingPublisher struct {
	mu         sync.Mutex
	activities []model.Activity
}

func (p *recordingPublisher) Publish(_ context.Context, activity model.Activity) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activities = append(p.activities, activity)
	return nil
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	var kinds []string
	for _, a := range p.activities {
		kinds = append(kinds, a.Kind)
	}
	return kinds
}

type stubLimiter struct {
	allowed bool
}

func (l *stubLimiter) Allow(context.Context, string) (bool, error) {
	return l.allowed, nil
}

type memoryLatestCache struct {
	mu    sync.Mutex
	posts []model.Post
	has   bool
	dirty bool
}

func (c *memoryLatestCache) GetLatest(context.Context) ([]model.Post, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.posts, c.has, nil
}

func (c *memoryLatestCache) SetLatest(_ context.Context, posts []model.Post) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = posts
	c.has = true
	return nil
}

func (c *memoryLatestCache) DeleteLatest(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = nil
	c.has = false
	return nil
}

func (c *memoryLatestCache) MarkDirty(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
	return nil
}

func (c *memoryLatestCache) IsDirty(context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty, nil
}

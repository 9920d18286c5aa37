package app

import (
	"context"
	"errors"
	"strings"

	"gopherpost/internal/model"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotOwner     = errors.New("not the post owner")
)

// PostStore is the slice of the post repository the post service depends on.
type PostStore interface {
	Create(post *model.Post) error
	GetByID(id uint) (*model.Post, error)
	ListWithVotes(search string, limit, offset int) ([]model.PostWithVotes, error)
	GetWithVotes(id uint) (*model.PostWithVotes, error)
	ListLatest(count int) ([]model.Post, error)
	Update(post *model.Post) error
	Delete(id uint) error
}

// ActivityPublisher enqueues audit events for asynchronous persistence.
type ActivityPublisher interface {
	Publish(ctx context.Context, activity model.Activity) error
}

// LatestPostsCache caches the latest-posts read path. Entries never include
// vote counts, so cache staleness can never misreport a count.
type LatestPostsCache interface {
	GetLatest(ctx context.Context) ([]model.Post, bool, error)
	SetLatest(ctx context.Context, posts []model.Post) error
	DeleteLatest(ctx context.Context) error
	MarkDirty(ctx context.Context) error
	IsDirty(ctx context.Context) (bool, error)
}

type PostService struct {
	postStore   PostStore
	publisher   ActivityPublisher
	latestCache LatestPostsCache
}

type CreatePostInput struct {
	OwnerID   uint
	Title     string
	Content   string
	Published bool
}

type UpdatePostInput struct {
	Title     string
	Content   string
	Published bool
}

type ListPostsInput struct {
	Search string
	Limit  int
	Offset int
}

func NewPostService(postStore PostStore, publisher ActivityPublisher, latestCache LatestPostsCache) *PostService {
	return &PostService{
		postStore:   postStore,
		publisher:   publisher,
		latestCache: latestCache,
	}
}

// assertOwner is the authorization predicate for mutating operations. It
// assumes the caller is already authenticated; failing it means the caller
// is known but not entitled to touch this post.
func assertOwner(post *model.Post, userID uint) error {
	if post.OwnerID != userID {
		return ErrNotOwner
	}
	return nil
}

func (s *PostService) CreatePost(input CreatePostInput) (*model.Post, error) {
	title := strings.TrimSpace(input.Title)
	if input.OwnerID == 0 || title == "" {
		return nil, ErrInvalidInput
	}

	post := &model.Post{
		OwnerID:   input.OwnerID,
		Title:     title,
		Content:   input.Content,
		Published: input.Published,
	}
	if err := s.postStore.Create(post); err != nil {
		return nil, err
	}

	s.invalidateLatest()
	s.publishActivity(post.OwnerID, post.ID, model.ActivityPostCreated)
	return post, nil
}

func (s *PostService) ListPosts(input ListPostsInput) ([]model.PostWithVotes, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}
	return s.postStore.ListWithVotes(strings.TrimSpace(input.Search), limit, offset)
}

func (s *PostService) GetPost(id uint) (*model.PostWithVotes, error) {
	if id == 0 {
		return nil, ErrInvalidInput
	}
	post, err := s.postStore.GetWithVotes(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) LatestPosts(count int) ([]model.Post, error) {
	if count <= 0 {
		return nil, ErrInvalidInput
	}

	ctx := context.Background()
	if s.latestCache != nil {
		dirty, err := s.latestCache.IsDirty(ctx)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.latestCache.GetLatest(ctx); cacheErr == nil && hit && len(cached) >= count {
				return cached[:count], nil
			}
		}
	}

	posts, err := s.postStore.ListLatest(count)
	if err != nil {
		return nil, err
	}
	if s.latestCache != nil {
		if dirty, dirtyErr := s.latestCache.IsDirty(ctx); dirtyErr == nil && !dirty {
			_ = s.latestCache.SetLatest(ctx, posts)
		}
	}
	return posts, nil
}

func (s *PostService) UpdatePost(userID, postID uint, input UpdatePostInput) (*model.Post, error) {
	if userID == 0 || postID == 0 {
		return nil, ErrInvalidInput
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	post, err := s.postStore.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if err := assertOwner(post, userID); err != nil {
		return nil, err
	}

	post.Title = title
	post.Content = input.Content
	post.Published = input.Published
	if err := s.postStore.Update(post); err != nil {
		return nil, err
	}

	s.invalidateLatest()
	s.publishActivity(userID, post.ID, model.ActivityPostUpdated)
	return post, nil
}

func (s *PostService) DeletePost(userID, postID uint) error {
	if userID == 0 || postID == 0 {
		return ErrInvalidInput
	}

	post, err := s.postStore.GetByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if err := assertOwner(post, userID); err != nil {
		return err
	}

	if err := s.postStore.Delete(postID); err != nil {
		return err
	}

	s.invalidateLatest()
	s.publishActivity(userID, postID, model.ActivityPostDeleted)
	return nil
}

// publishActivity is best effort: the audit trail never fails a mutation.
func (s *PostService) publishActivity(userID, postID uint, kind string) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(context.Background(), model.Activity{
		UserID: userID,
		PostID: postID,
		Kind:   kind,
	})
}

func (s *PostService) invalidateLatest() {
	if s.latestCache == nil {
		return
	}
	ctx := context.Background()
	_ = s.latestCache.MarkDirty(ctx)
	_ = s.latestCache.DeleteLatest(ctx)
}

package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gopherpost/internal/model"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("create post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post by id failed: %w", err)
	}
	return &post, nil
}

// ListWithVotes returns posts matching the title search together with their
// derived vote counts. The count is computed per query; it is never stored.
func (r *PostRepository) ListWithVotes(search string, limit, offset int) ([]model.PostWithVotes, error) {
	var results []model.PostWithVotes
	err := r.db.Model(&model.Post{}).
		Select("posts.*, COUNT(votes.id) AS votes").
		Joins("LEFT JOIN votes ON votes.post_id = posts.id").
		Where("posts.title LIKE ?", "%"+search+"%").
		Group("posts.id").
		Limit(limit).
		Offset(offset).
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return results, nil
}

func (r *PostRepository) GetWithVotes(id uint) (*model.PostWithVotes, error) {
	var result model.PostWithVotes
	err := r.db.Model(&model.Post{}).
		Select("posts.*, COUNT(votes.id) AS votes").
		Joins("LEFT JOIN votes ON votes.post_id = posts.id").
		Where("posts.id = ?", id).
		Group("posts.id").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query post with votes failed: %w", err)
	}
	return &result, nil
}

func (r *PostRepository) ListLatest(count int) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.Order("created_at DESC").Limit(count).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list latest posts failed: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) Update(post *model.Post) error {
	if err := r.db.Save(post).Error; err != nil {
		return fmt.Errorf("update post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) Delete(id uint) error {
	if err := r.db.Delete(&model.Post{}, id).Error; err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

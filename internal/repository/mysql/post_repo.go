package mysql

import (
	"context"

	"microblog/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).
		Preload("Author").
		Preload("Group").
		First(&post, id).Error
	return &post, err
}

// Update applies the editable fields only. ID, author and creation time are
// never part of the update set.
func (r *PostRepository) Update(ctx context.Context, id uint64, text string, groupID *uint64, image, imageType string) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"text":       text,
			"group_id":   groupID,
			"image":      image,
			"image_type": imageType,
		}).Error
}

func (r *PostRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, id).Error
	})
}

// ListAll returns every post newest-first. Feeds paginate the full sequence
// in memory; the result set doubles as the cache value.
func (r *PostRepository) ListAll(ctx context.Context) ([]model.Post, error) {
	var list []model.Post
	err := r.feedQuery(ctx).Find(&list).Error
	return list, err
}

func (r *PostRepository) ListByGroup(ctx context.Context, groupID uint64) ([]model.Post, error) {
	var list []model.Post
	err := r.feedQuery(ctx).
		Where("group_id = ?", groupID).
		Find(&list).Error
	return list, err
}

func (r *PostRepository) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Post, error) {
	var list []model.Post
	err := r.feedQuery(ctx).
		Where("author_id = ?", authorID).
		Find(&list).Error
	return list, err
}

// ListByFollowed returns posts written by anyone the given user follows.
func (r *PostRepository) ListByFollowed(ctx context.Context, userID uint64) ([]model.Post, error) {
	var list []model.Post
	err := r.feedQuery(ctx).
		Joins("JOIN follows ON follows.author_id = posts.author_id AND follows.user_id = ?", userID).
		Find(&list).Error
	return list, err
}

func (r *PostRepository) feedQuery(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC, posts.id DESC")
}

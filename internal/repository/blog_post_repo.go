package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogPostRepo interface {
	CreateBlogPost(ctx context.Context, post *model.BlogPost) error
	GetBlogPost(ctx context.Context, id uint64) (*model.BlogPost, error)
	GetBlogPostWithMedia(ctx context.Context, id uint64) (*model.BlogPost, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	GetBlogPostBySlugWithMedia(ctx context.Context, slug string) (*model.BlogPost, error)
	ListBlogPosts(ctx context.Context) ([]*model.BlogPost, error)
	ListPublishedBlogPosts(ctx context.Context) ([]*model.BlogPost, error)
	UpdateBlogPost(ctx context.Context, id uint64, fields map[string]interface{}) error
	SetPublished(ctx context.Context, id uint64, published bool, at time.Time) (int64, error)
	DeleteBlogPost(ctx context.Context, id uint64) ([]string, error)
}

type BlogPostRepoImpl struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) BlogPostRepo {
	return &BlogPostRepoImpl{db: db}
}

func (s *BlogPostRepoImpl) CreateBlogPost(ctx context.Context, post *model.BlogPost) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

func (s *BlogPostRepoImpl) GetBlogPost(ctx context.Context, id uint64) (*model.BlogPost, error) {
	return firstOrNil(s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *BlogPostRepoImpl) GetBlogPostWithMedia(ctx context.Context, id uint64) (*model.BlogPost, error) {
	return firstOrNil(s.db.WithContext(ctx).Preload("MediaFiles", orderByCreated).Where("id = ?", id))
}

func (s *BlogPostRepoImpl) GetBlogPostBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	return firstOrNil(s.db.WithContext(ctx).Where("slug = ?", slug))
}

func (s *BlogPostRepoImpl) GetBlogPostBySlugWithMedia(ctx context.Context, slug string) (*model.BlogPost, error) {
	return firstOrNil(s.db.WithContext(ctx).Preload("MediaFiles", orderByCreated).Where("slug = ?", slug))
}

// ListBlogPosts 全部文章，最新创建的在前
func (s *BlogPostRepoImpl) ListBlogPosts(ctx context.Context) ([]*model.BlogPost, error) {
	posts := make([]*model.BlogPost, 0)
	err := s.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPublishedBlogPosts 已发布文章，最近发布的在前
func (s *BlogPostRepoImpl) ListPublishedBlogPosts(ctx context.Context) ([]*model.BlogPost, error) {
	posts := make([]*model.BlogPost, 0)
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("is_published = ?", true).
		Order("published_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *BlogPostRepoImpl) UpdateBlogPost(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).
		Model(&model.BlogPost{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// SetPublished 仅当发布状态不同时才修改，is_published 与 published_at 同时写入
func (s *BlogPostRepoImpl) SetPublished(ctx context.Context, id uint64, published bool, at time.Time) (int64, error) {
	fields := map[string]interface{}{
		"is_published": published,
		"updated_at":   at,
	}
	if published {
		fields["published_at"] = at
	} else {
		fields["published_at"] = nil
	}
	result := s.db.WithContext(ctx).
		Model(&model.BlogPost{}).
		Where("id = ? AND is_published = ?", id, !published).
		Updates(fields)
	return result.RowsAffected, result.Error
}

// DeleteBlogPost 在同一事务中删除文章及其媒体记录，返回不再被引用的存储路径
func (s *BlogPostRepoImpl) DeleteBlogPost(ctx context.Context, id uint64) ([]string, error) {
	var orphaned []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		media := make([]*model.MediaFile, 0)
		if err := tx.Where("post_id = ?", id).Find(&media).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.MediaFile{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.BlogPost{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrRecordNotFound
		}

		paths, err := orphanedPaths(tx, media)
		if err != nil {
			return err
		}
		orphaned = paths
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orphaned, nil
}

func orderByCreated(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}

func firstOrNil(db *gorm.DB) (*model.BlogPost, error) {
	post := &model.BlogPost{}
	if err := db.First(post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return post, nil
}

package repository

import (
	"Inkstone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MediaFileRepo interface {
	CreateMediaFile(ctx context.Context, media *model.MediaFile) error
	GetMediaFile(ctx context.Context, id uint64) (*model.MediaFile, error)
	ListMediaFiles(ctx context.Context, postID *uint64) ([]*model.MediaFile, error)
	DeleteMediaFile(ctx context.Context, id uint64) (*model.MediaFile, []string, error)
	IsFilePathReferenced(ctx context.Context, filePath string) (bool, error)
}

type MediaFileRepoImpl struct {
	db *gorm.DB
}

func NewMediaFileRepo(db *gorm.DB) MediaFileRepo {
	return &MediaFileRepoImpl{db: db}
}

func (s *MediaFileRepoImpl) CreateMediaFile(ctx context.Context, media *model.MediaFile) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(media).Error
}

func (s *MediaFileRepoImpl) GetMediaFile(ctx context.Context, id uint64) (*model.MediaFile, error) {
	media := &model.MediaFile{}
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(media).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return media, nil
}

// ListMediaFiles postID 为空时返回全部媒体，按上传顺序
func (s *MediaFileRepoImpl) ListMediaFiles(ctx context.Context, postID *uint64) ([]*model.MediaFile, error) {
	media := make([]*model.MediaFile, 0)
	db := s.db.WithContext(ctx)
	if postID != nil {
		db = db.Where("post_id = ?", *postID)
	}
	if err := db.Order("created_at ASC").Order("id ASC").Find(&media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

// DeleteMediaFile 删除并返回被删除的记录及不再被引用的存储路径，不存在时返回 nil
func (s *MediaFileRepoImpl) DeleteMediaFile(ctx context.Context, id uint64) (*model.MediaFile, []string, error) {
	var (
		deleted  *model.MediaFile
		orphaned []string
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		media := &model.MediaFile{}
		if err := tx.Where("id = ?", id).First(media).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		result := tx.Where("id = ?", media.ID).Delete(&model.MediaFile{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		deleted = media

		paths, err := orphanedPaths(tx, []*model.MediaFile{media})
		if err != nil {
			return err
		}
		orphaned = paths
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return deleted, orphaned, nil
}

func (s *MediaFileRepoImpl) IsFilePathReferenced(ctx context.Context, filePath string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.MediaFile{}).Where("file_path = ?", filePath).Count(&count).Error
	return count > 0, err
}

// orphanedPaths 在删除之后调用，过滤掉仍被其他记录引用的存储路径
func orphanedPaths(tx *gorm.DB, media []*model.MediaFile) ([]string, error) {
	paths := make([]string, 0, len(media))
	seen := make(map[string]struct{}, len(media))
	for _, m := range media {
		if m.FilePath == "" {
			continue
		}
		if _, ok := seen[m.FilePath]; ok {
			continue
		}
		seen[m.FilePath] = struct{}{}

		var count int64
		if err := tx.Model(&model.MediaFile{}).Where("file_path = ?", m.FilePath).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			paths = append(paths, m.FilePath)
		}
	}
	return paths, nil
}

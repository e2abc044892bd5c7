package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/repository"
	"context"
	"errors"
	"io"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaUpload 待存储的文件内容，ContentType 由调用方根据内容识别
type MediaUpload struct {
	Reader       io.Reader
	OriginalName string
	ContentType  string
	Size         int64
	PostID       *uint64
}

type MediaService interface {
	UploadMedia(ctx context.Context, dto *dto.UploadMediaDTO) (*dto.MediaFileDTO, error)
	StoreMedia(ctx context.Context, upload *MediaUpload) (*dto.MediaFileDTO, error)
	GetMediaFiles(ctx context.Context, postID *uint64) ([]*dto.MediaFileDTO, error)
	DeleteMediaFile(ctx context.Context, id uint64) error
}

type MediaServiceImpl struct {
	mediaRepo repository.MediaFileRepo
	postRepo  repository.BlogPostRepo
	storage   ObjectStorage
	releaser  *ObjectReleaser
	now       func() time.Time
}

func NewMediaService(mediaRepo repository.MediaFileRepo, postRepo repository.BlogPostRepo, storage ObjectStorage, releaser *ObjectReleaser) MediaService {
	return &MediaServiceImpl{
		mediaRepo: mediaRepo,
		postRepo:  postRepo,
		storage:   storage,
		releaser:  releaser,
		now:       time.Now,
	}
}

// UploadMedia 登记媒体元数据，关联的文章必须存在
func (s *MediaServiceImpl) UploadMedia(ctx context.Context, uploadDTO *dto.UploadMediaDTO) (*dto.MediaFileDTO, error) {
	if err := s.checkPost(ctx, uploadDTO.PostID); err != nil {
		return nil, err
	}

	media := &model.MediaFile{
		Filename:     uploadDTO.Filename,
		OriginalName: uploadDTO.OriginalName,
		MimeType:     uploadDTO.MimeType,
		FilePath:     uploadDTO.FilePath,
		PostID:       uploadDTO.PostID,
		CreatedAt:    s.now(),
	}
	if uploadDTO.FileSize != nil {
		media.FileSize = *uploadDTO.FileSize
	}

	if err := s.mediaRepo.CreateMediaFile(ctx, media); err != nil {
		if errors.Is(err, repository.ErrForeignKey) && uploadDTO.PostID != nil {
			return nil, notFound(consts.ResourceBlogPost, *uploadDTO.PostID)
		}
		return nil, err
	}
	return s.releaser.toMediaFileDTO(media)
}

// StoreMedia 写入对象存储后登记元数据；登记失败时删除已写入的对象
func (s *MediaServiceImpl) StoreMedia(ctx context.Context, upload *MediaUpload) (*dto.MediaFileDTO, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if err := s.checkPost(ctx, upload.PostID); err != nil {
		return nil, err
	}

	contentType := upload.ContentType
	objectName := s.now().Format("2006/01/02/") + uuid.NewString() + strings.ToLower(path.Ext(upload.OriginalName))
	key, err := s.storage.Upload(ctx, objectName, upload.Reader, upload.Size, contentType)
	if err != nil {
		return nil, err
	}

	size := upload.Size
	mediaDTO, err := s.UploadMedia(ctx, &dto.UploadMediaDTO{
		Filename:     path.Base(key),
		OriginalName: upload.OriginalName,
		MimeType:     contentType,
		FileSize:     &size,
		FilePath:     key,
		PostID:       upload.PostID,
	})
	if err != nil {
		s.releaser.Release(ctx, key)
		return nil, err
	}
	log.InfoContext(ctx, "media stored", "media_id", mediaDTO.ID, "key", key, "mime_type", contentType)
	return mediaDTO, nil
}

func (s *MediaServiceImpl) GetMediaFiles(ctx context.Context, postID *uint64) ([]*dto.MediaFileDTO, error) {
	media, err := s.mediaRepo.ListMediaFiles(ctx, postID)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.MediaFileDTO, 0, len(media))
	for _, m := range media {
		mediaDTO, err := s.releaser.toMediaFileDTO(m)
		if err != nil {
			return nil, err
		}
		result = append(result, mediaDTO)
	}
	return result, nil
}

func (s *MediaServiceImpl) DeleteMediaFile(ctx context.Context, id uint64) error {
	media, orphaned, err := s.mediaRepo.DeleteMediaFile(ctx, id)
	if err != nil {
		return err
	}
	if media == nil {
		return notFound(consts.ResourceMediaFile, id)
	}
	s.releaser.Release(ctx, orphaned...)
	return nil
}

func (s *MediaServiceImpl) checkPost(ctx context.Context, postID *uint64) error {
	if postID == nil {
		return nil
	}
	post, err := s.postRepo.GetBlogPost(ctx, *postID)
	if err != nil {
		return err
	}
	if post == nil {
		return notFound(consts.ResourceBlogPost, *postID)
	}
	return nil
}

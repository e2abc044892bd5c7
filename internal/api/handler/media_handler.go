package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/pkg/metrics"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"
	"fmt"
	log "log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaSvc service.MediaService
	maxSize  int64
}

func NewMediaHandler(mediaSvc service.MediaService, maxSize int64) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
		maxSize:  maxSize,
	}
}

// CreateMedia 登记已存储文件的元数据
func (s *MediaHandler) CreateMedia(c *gin.Context) {
	var uploadDTO dto.UploadMediaDTO
	if err := bindJSON(c, &uploadDTO); err != nil {
		response.Error(c, err)
		return
	}
	media, err := s.mediaSvc.UploadMedia(c.Request.Context(), &uploadDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, media)
}

// Upload multipart 上传：识别类型、写入对象存储并登记
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.NewValidationError("file", "required", "is required"))
		return
	}
	if s.maxSize > 0 && file.Size > s.maxSize {
		response.Error(c, service.NewValidationError("file", "max",
			fmt.Sprintf("must be at most %d bytes", s.maxSize)))
		return
	}

	var postID *uint64
	if raw := c.PostForm("post_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			response.Error(c, service.NewValidationError("post_id", "id", "must be a positive integer"))
			return
		}
		postID = &id
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !util.IsAllowedMediaType(contentType) {
		response.Error(c, service.NewValidationError("file", "mime", "unsupported file type "+contentType))
		return
	}

	media, err := s.mediaSvc.StoreMedia(c.Request.Context(), &service.MediaUpload{
		Reader:       reader,
		OriginalName: file.Filename,
		ContentType:  contentType,
		Size:         file.Size,
		PostID:       postID,
	})
	metrics.RecordUpload(contentType, file.Size, err)
	if err != nil {
		log.WarnContext(c.Request.Context(), "media upload failed", "filename", file.Filename, "err", err)
		response.Error(c, err)
		return
	}
	response.Success(c, media)
}

func (s *MediaHandler) GetMediaFiles(c *gin.Context) {
	var query dto.MediaQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, util.BindError(err))
		return
	}
	if err := util.ValidateDTO(&query); err != nil {
		response.Error(c, err)
		return
	}
	media, err := s.mediaSvc.GetMediaFiles(c.Request.Context(), query.PostID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, media)
}

func (s *MediaHandler) DeleteMedia(c *gin.Context) {
	mediaID, err := pathID(c, "media_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.mediaSvc.DeleteMediaFile(c.Request.Context(), mediaID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

package dto

import "time"

// UploadMediaDTO 媒体元数据登记
type UploadMediaDTO struct {
	Filename     string  `json:"filename" validate:"required,max=255"`
	OriginalName string  `json:"original_name" validate:"required,max=255"`
	MimeType     string  `json:"mime_type" validate:"required,max=100"`
	FileSize     *int64  `json:"file_size" validate:"required,min=0"`
	FilePath     string  `json:"file_path" validate:"required"`
	PostID       *uint64 `json:"post_id" validate:"omitempty,min=1"`
}

// MediaQueryDTO 媒体列表过滤
type MediaQueryDTO struct {
	PostID *uint64 `form:"post_id" validate:"omitempty,min=1"`
}

// MediaFileDTO 媒体文件
type MediaFileDTO struct {
	ID           uint64    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	FileSize     int64     `json:"file_size"`
	FilePath     string    `json:"file_path"`
	URL          string    `json:"url,omitempty"`
	PostID       *uint64   `json:"post_id"`
	CreatedAt    time.Time `json:"created_at"`
}

package model

import (
	"time"
)

type MediaFile struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalName string    `gorm:"type:varchar(255);not null" json:"original_name"`
	MimeType     string    `gorm:"type:varchar(100);not null" json:"mime_type"` // e.g., image/jpeg, video/mp4
	FileSize     int64     `gorm:"not null" json:"file_size"`
	FilePath     string    `gorm:"type:text;not null" json:"file_path"`
	PostID       *uint64   `gorm:"index:idx_media_files_post_id" json:"post_id"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (MediaFile) TableName() string {
	return "media_files"
}

package model

import (
	"time"
)

type BlogPost struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     *string    `gorm:"type:text" json:"excerpt"`
	Slug        string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_blog_posts_slug" json:"slug"`
	AuthorID    uint64     `gorm:"not null;index:idx_blog_posts_author_id" json:"author_id"`
	IsPublished bool       `gorm:"not null;default:false;index:idx_blog_posts_published,priority:1" json:"is_published"`
	PublishedAt *time.Time `gorm:"index:idx_blog_posts_published,priority:2" json:"published_at"` // 仅在已发布时非空
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`

	// 关联关系
	Author     User        `gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	MediaFiles []MediaFile `gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

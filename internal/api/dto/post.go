package dto

import "time"

// CreateBlogPostDTO 创建文章
type CreateBlogPostDTO struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Content     string  `json:"content" validate:"required"`
	Excerpt     *string `json:"excerpt"`
	Slug        string  `json:"slug" validate:"required,max=255"`
	AuthorID    uint64  `json:"author_id" validate:"required"`
	IsPublished bool    `json:"is_published"`
}

// UpdateBlogPostDTO 文章局部更新，只有出现在请求体中的字段才会被修改
type UpdateBlogPostDTO struct {
	ID          uint64            `json:"id" validate:"required"`
	Title       Optional[string]  `json:"title,omitzero" validate:"omitempty,min=1,max=255"`
	Content     Optional[string]  `json:"content,omitzero" validate:"omitempty,min=1"`
	Excerpt     Optional[*string] `json:"excerpt,omitzero"`
	Slug        Optional[string]  `json:"slug,omitzero" validate:"omitempty,min=1,max=255"`
	IsPublished Optional[bool]    `json:"is_published,omitzero"`
}

// Empty 请求体中没有任何可修改字段
func (d *UpdateBlogPostDTO) Empty() bool {
	return !d.Title.Set && !d.Content.Set && !d.Excerpt.Set && !d.Slug.Set && !d.IsPublished.Set
}

// BlogPostDTO 文章
type BlogPostDTO struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	Excerpt     *string    `json:"excerpt"`
	Slug        string     `json:"slug"`
	AuthorID    uint64     `json:"author_id"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BlogPostWithAuthorDTO 列表项，附带作者摘要
type BlogPostWithAuthorDTO struct {
	BlogPostDTO
	Author *AuthorDTO `json:"author"`
}

// BlogPostDetailDTO 详情，附带媒体文件
type BlogPostDetailDTO struct {
	BlogPostDTO
	MediaFiles []*MediaFileDTO `json:"media_files"`
}

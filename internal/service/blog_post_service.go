package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type BlogPostService interface {
	CreateBlogPost(ctx context.Context, dto *dto.CreateBlogPostDTO) (*dto.BlogPostDTO, error)
	UpdateBlogPost(ctx context.Context, dto *dto.UpdateBlogPostDTO) (*dto.BlogPostDTO, error)
	PublishBlogPost(ctx context.Context, id uint64) (*dto.BlogPostDTO, error)
	UnpublishBlogPost(ctx context.Context, id uint64) (*dto.BlogPostDTO, error)
	DeleteBlogPost(ctx context.Context, id uint64) error
	GetBlogPosts(ctx context.Context) ([]*dto.BlogPostWithAuthorDTO, error)
	GetPublishedBlogPosts(ctx context.Context) ([]*dto.BlogPostWithAuthorDTO, error)
	GetBlogPostById(ctx context.Context, id uint64) (*dto.BlogPostDetailDTO, error)
	GetBlogPostBySlug(ctx context.Context, slug string) (*dto.BlogPostDetailDTO, error)
}

type BlogPostServiceImpl struct {
	postRepo repository.BlogPostRepo
	userRepo repository.UserRepo
	releaser *ObjectReleaser
	now      func() time.Time
}

func NewBlogPostService(postRepo repository.BlogPostRepo, userRepo repository.UserRepo, releaser *ObjectReleaser) BlogPostService {
	return &BlogPostServiceImpl{
		postRepo: postRepo,
		userRepo: userRepo,
		releaser: releaser,
		now:      time.Now,
	}
}

func (s *BlogPostServiceImpl) CreateBlogPost(ctx context.Context, createDTO *dto.CreateBlogPostDTO) (*dto.BlogPostDTO, error) {
	author, err := s.userRepo.GetUserById(ctx, createDTO.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, notFound(consts.ResourceUser, createDTO.AuthorID)
	}
	if err = s.checkSlug(ctx, createDTO.Slug, 0); err != nil {
		return nil, err
	}

	now := s.now()
	post := &model.BlogPost{
		Title:       createDTO.Title,
		Content:     createDTO.Content,
		Excerpt:     createDTO.Excerpt,
		Slug:        createDTO.Slug,
		AuthorID:    createDTO.AuthorID,
		IsPublished: createDTO.IsPublished,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if post.IsPublished {
		post.PublishedAt = &now
	}

	if err = s.postRepo.CreateBlogPost(ctx, post); err != nil {
		return nil, s.translateWriteErr(err, createDTO.Slug, createDTO.AuthorID)
	}

	log.InfoContext(ctx, "blog post created", "post_id", post.ID, "published", post.IsPublished)
	return toBlogPostDTO(post)
}

func (s *BlogPostServiceImpl) UpdateBlogPost(ctx context.Context, updateDTO *dto.UpdateBlogPostDTO) (*dto.BlogPostDTO, error) {
	post, err := s.postRepo.GetBlogPost(ctx, updateDTO.ID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, notFound(consts.ResourceBlogPost, updateDTO.ID)
	}

	fields := make(map[string]interface{})
	if updateDTO.Title.Set {
		fields["title"] = updateDTO.Title.Value
	}
	if updateDTO.Content.Set {
		fields["content"] = updateDTO.Content.Value
	}
	if updateDTO.Excerpt.Set {
		if updateDTO.Excerpt.Value == nil {
			fields["excerpt"] = nil
		} else {
			fields["excerpt"] = *updateDTO.Excerpt.Value
		}
	}
	if updateDTO.Slug.Set && updateDTO.Slug.Value != post.Slug {
		if err = s.checkSlug(ctx, updateDTO.Slug.Value, post.ID); err != nil {
			return nil, err
		}
		fields["slug"] = updateDTO.Slug.Value
	}

	if len(fields) == 0 && !updateDTO.IsPublished.Set {
		return toBlogPostDTO(post)
	}

	now := s.now()
	if len(fields) > 0 {
		fields["updated_at"] = now
		if err = s.postRepo.UpdateBlogPost(ctx, post.ID, fields); err != nil {
			return nil, s.translateWriteErr(err, updateDTO.Slug.Value, post.AuthorID)
		}
	}
	// 发布状态走条件更新，已处于目标状态时保留原 published_at
	if updateDTO.IsPublished.Set {
		if _, err = s.postRepo.SetPublished(ctx, post.ID, updateDTO.IsPublished.Value, now); err != nil {
			return nil, err
		}
	}
	return s.reload(ctx, post.ID)
}

// PublishBlogPost 已发布时不做修改，保留原 published_at
func (s *BlogPostServiceImpl) PublishBlogPost(ctx context.Context, id uint64) (*dto.BlogPostDTO, error) {
	changed, err := s.postRepo.SetPublished(ctx, id, true, s.now())
	if err != nil {
		return nil, err
	}
	if changed > 0 {
		log.InfoContext(ctx, "blog post published", "post_id", id)
	}
	return s.reload(ctx, id)
}

func (s *BlogPostServiceImpl) UnpublishBlogPost(ctx context.Context, id uint64) (*dto.BlogPostDTO, error) {
	changed, err := s.postRepo.SetPublished(ctx, id, false, s.now())
	if err != nil {
		return nil, err
	}
	if changed > 0 {
		log.InfoContext(ctx, "blog post unpublished", "post_id", id)
	}
	return s.reload(ctx, id)
}

// DeleteBlogPost 文章与媒体记录一起删除，提交后再释放存储对象
func (s *BlogPostServiceImpl) DeleteBlogPost(ctx context.Context, id uint64) error {
	orphaned, err := s.postRepo.DeleteBlogPost(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return notFound(consts.ResourceBlogPost, id)
		}
		return err
	}
	log.InfoContext(ctx, "blog post deleted", "post_id", id, "released_objects", len(orphaned))
	s.releaser.Release(ctx, orphaned...)
	return nil
}

func (s *BlogPostServiceImpl) GetBlogPosts(ctx context.Context) ([]*dto.BlogPostWithAuthorDTO, error) {
	posts, err := s.postRepo.ListBlogPosts(ctx)
	if err != nil {
		return nil, err
	}
	return toBlogPostWithAuthorDTOs(posts)
}

func (s *BlogPostServiceImpl) GetPublishedBlogPosts(ctx context.Context) ([]*dto.BlogPostWithAuthorDTO, error) {
	posts, err := s.postRepo.ListPublishedBlogPosts(ctx)
	if err != nil {
		return nil, err
	}
	return toBlogPostWithAuthorDTOs(posts)
}

// GetBlogPostById 不存在时返回 nil, nil
func (s *BlogPostServiceImpl) GetBlogPostById(ctx context.Context, id uint64) (*dto.BlogPostDetailDTO, error) {
	post, err := s.postRepo.GetBlogPostWithMedia(ctx, id)
	if err != nil || post == nil {
		return nil, err
	}
	return s.toDetailDTO(post)
}

// GetBlogPostBySlug 不存在时返回 nil, nil
func (s *BlogPostServiceImpl) GetBlogPostBySlug(ctx context.Context, slug string) (*dto.BlogPostDetailDTO, error) {
	post, err := s.postRepo.GetBlogPostBySlugWithMedia(ctx, slug)
	if err != nil || post == nil {
		return nil, err
	}
	return s.toDetailDTO(post)
}

func (s *BlogPostServiceImpl) reload(ctx context.Context, id uint64) (*dto.BlogPostDTO, error) {
	post, err := s.postRepo.GetBlogPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, notFound(consts.ResourceBlogPost, id)
	}
	return toBlogPostDTO(post)
}

// checkSlug selfID 为当前文章 ID，创建时为 0
func (s *BlogPostServiceImpl) checkSlug(ctx context.Context, slug string, selfID uint64) error {
	existing, err := s.postRepo.GetBlogPostBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return &ConflictError{Resource: consts.ResourceBlogPost, Field: "slug", Value: slug}
	}
	return nil
}

func (s *BlogPostServiceImpl) translateWriteErr(err error, slug string, authorID uint64) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateKey):
		return &ConflictError{Resource: consts.ResourceBlogPost, Field: "slug", Value: slug}
	case errors.Is(err, repository.ErrForeignKey):
		return notFound(consts.ResourceUser, authorID)
	default:
		return err
	}
}

func (s *BlogPostServiceImpl) toDetailDTO(post *model.BlogPost) (*dto.BlogPostDetailDTO, error) {
	base, err := toBlogPostDTO(post)
	if err != nil {
		return nil, err
	}
	detail := &dto.BlogPostDetailDTO{BlogPostDTO: *base, MediaFiles: make([]*dto.MediaFileDTO, 0, len(post.MediaFiles))}
	for i := range post.MediaFiles {
		mediaDTO, err := s.releaser.toMediaFileDTO(&post.MediaFiles[i])
		if err != nil {
			return nil, err
		}
		detail.MediaFiles = append(detail.MediaFiles, mediaDTO)
	}
	return detail, nil
}

func toBlogPostDTO(post *model.BlogPost) (*dto.BlogPostDTO, error) {
	postDTO := &dto.BlogPostDTO{}
	if err := copier.Copy(postDTO, post); err != nil {
		return nil, err
	}
	return postDTO, nil
}

func toBlogPostWithAuthorDTOs(posts []*model.BlogPost) ([]*dto.BlogPostWithAuthorDTO, error) {
	result := make([]*dto.BlogPostWithAuthorDTO, 0, len(posts))
	for _, post := range posts {
		base, err := toBlogPostDTO(post)
		if err != nil {
			return nil, err
		}
		result = append(result, &dto.BlogPostWithAuthorDTO{
			BlogPostDTO: *base,
			Author: &dto.AuthorDTO{
				ID:       post.Author.ID,
				Username: post.Author.Username,
				Email:    post.Author.Email,
			},
		})
	}
	return result, nil
}

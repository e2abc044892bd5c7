package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/util"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.BlogPostService
}

func NewPostHandler(postSvc service.BlogPostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

// CreatePost author_id 缺省时为当前用户
func (s *PostHandler) CreatePost(c *gin.Context) {
	var createDTO dto.CreateBlogPostDTO
	if err := c.ShouldBindJSON(&createDTO); err != nil {
		response.Error(c, util.BindError(err))
		return
	}
	if createDTO.AuthorID == 0 {
		createDTO.AuthorID = middleware.CurrentUserID(c)
	}
	if err := util.ValidateDTO(&createDTO); err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postSvc.CreateBlogPost(c.Request.Context(), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	postID, err := pathID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var updateDTO dto.UpdateBlogPostDTO
	if err = c.ShouldBindJSON(&updateDTO); err != nil {
		response.Error(c, util.BindError(err))
		return
	}
	updateDTO.ID = postID
	if err = util.ValidateDTO(&updateDTO); err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postSvc.UpdateBlogPost(c.Request.Context(), &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) PublishPost(c *gin.Context) {
	s.setPublished(c, true)
}

func (s *PostHandler) UnpublishPost(c *gin.Context) {
	s.setPublished(c, false)
}

func (s *PostHandler) setPublished(c *gin.Context, published bool) {
	postID, err := pathID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var post *dto.BlogPostDTO
	if published {
		post, err = s.postSvc.PublishBlogPost(c.Request.Context(), postID)
	} else {
		post, err = s.postSvc.UnpublishBlogPost(c.Request.Context(), postID)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	postID, err := pathID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = s.postSvc.DeleteBlogPost(c.Request.Context(), postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) GetPosts(c *gin.Context) {
	posts, err := s.postSvc.GetBlogPosts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetPublishedPosts(c *gin.Context) {
	posts, err := s.postSvc.GetPublishedBlogPosts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetPost 不存在或对非管理员不可见时 data 为 null
func (s *PostHandler) GetPost(c *gin.Context) {
	postID, err := pathID(c, "post_id")
	if err != nil {
		response.Error(c, err)
		return
	}
	post, err := s.postSvc.GetBlogPostById(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, visible(c, post))
}

func (s *PostHandler) GetPostBySlug(c *gin.Context) {
	post, err := s.postSvc.GetBlogPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, visible(c, post))
}

// visible 草稿只对管理员可见
func visible(c *gin.Context, post *dto.BlogPostDetailDTO) *dto.BlogPostDetailDTO {
	if post == nil || (!post.IsPublished && !middleware.IsAdmin(c)) {
		return nil
	}
	return post
}

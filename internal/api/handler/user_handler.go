package handler

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

// Register 创建账号，创建管理员账号需要管理员身份
func (s *UserHandler) Register(c *gin.Context) {
	var createDTO dto.CreateUserDTO
	if err := bindJSON(c, &createDTO); err != nil {
		response.Error(c, err)
		return
	}
	if createDTO.IsAdmin && !middleware.IsAdmin(c) {
		response.Error(c, service.ErrAdminRequired)
		return
	}
	user, err := s.userSvc.CreateUser(c.Request.Context(), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.LoginDTO
	if err := bindJSON(c, &loginDTO); err != nil {
		response.Error(c, err)
		return
	}
	auth, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, auth)
}

func (s *UserHandler) Logout(c *gin.Context) {
	err := s.userSvc.Logout(c.Request.Context(), middleware.BearerToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetUserInfo(c *gin.Context) {
	user, err := s.userSvc.GetUserInfo(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

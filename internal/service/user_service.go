package service

import (
	"Inkstone/internal/api/dto"
	"Inkstone/internal/model"
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"

	"github.com/jinzhu/copier"
)

type UserService interface {
	CreateUser(ctx context.Context, dto *dto.CreateUserDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, dto *dto.LoginDTO) (*dto.AuthDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	EnsureAdmin(ctx context.Context, username, email, password string) error
}

type UserServiceImpl struct {
	userRepo    repository.UserRepo
	tokenIssuer TokenIssuer
	tokenStore  TokenStore
}

func NewUserService(userRepo repository.UserRepo, tokenIssuer TokenIssuer, tokenStore TokenStore) UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		tokenIssuer: tokenIssuer,
		tokenStore:  tokenStore,
	}
}

func (s *UserServiceImpl) CreateUser(ctx context.Context, createDTO *dto.CreateUserDTO) (*dto.UserDTO, error) {
	email := normalizeEmail(createDTO.Email)
	if err := s.checkUnique(ctx, createDTO.Username, email); err != nil {
		return nil, err
	}

	passwordHash, err := security.HashPassword(createDTO.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     createDTO.Username,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      createDTO.IsAdmin,
	}
	if err = s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// 并发插入在预检之后命中唯一索引
			if cErr := s.checkUnique(ctx, createDTO.Username, email); cErr != nil {
				return nil, cErr
			}
			return nil, &ConflictError{Resource: consts.ResourceUser, Field: "username", Value: createDTO.Username}
		}
		return nil, err
	}

	log.InfoContext(ctx, "user created", "user_id", user.ID, "is_admin", user.IsAdmin)
	return toUserDTO(user)
}

func (s *UserServiceImpl) Login(ctx context.Context, loginDTO *dto.LoginDTO) (*dto.AuthDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, loginDTO.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// 保持与密码错误相同的耗时
		security.BurnPasswordCheck(loginDTO.Password)
		return nil, ErrInvalidCredentials
	}

	if err = security.CheckPasswordHash(loginDTO.Password, user.PasswordHash); err != nil {
		if errors.Is(err, security.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := s.tokenIssuer.GenerateToken(user.ID, user.Username, security.RolesFor(user.IsAdmin))
	if err != nil {
		return nil, err
	}

	userDTO, err := toUserDTO(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthDTO{User: userDTO, Token: token}, nil
}

// Logout 将 Token 签名写入黑名单直至其过期
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrTokenInvalid
	}
	return s.tokenStore.Revoke(ctx, signature, s.tokenIssuer.Expiration())
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound(consts.ResourceUser, id)
	}
	return toUserDTO(user)
}

// EnsureAdmin 初始管理员，已存在同名用户时不做任何事
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, username, email, password string) error {
	if username == "" {
		return nil
	}
	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		if !existing.IsAdmin {
			log.WarnContext(ctx, "bootstrap admin username is taken by a non-admin account", "username", username)
		}
		return nil
	}

	_, err = s.CreateUser(ctx, &dto.CreateUserDTO{
		Username: username,
		Email:    email,
		Password: password,
		IsAdmin:  true,
	})
	var conflict *ConflictError
	if errors.As(err, &conflict) {
		log.WarnContext(ctx, "bootstrap admin not created", "err", err)
		return nil
	}
	return err
}

func (s *UserServiceImpl) checkUnique(ctx context.Context, username, email string) error {
	byName, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return err
	}
	if byName != nil {
		return &ConflictError{Resource: consts.ResourceUser, Field: "username", Value: username}
	}
	byEmail, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}
	if byEmail != nil {
		return &ConflictError{Resource: consts.ResourceUser, Field: "email", Value: email}
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserDTO(user *model.User) (*dto.UserDTO, error) {
	userDTO := &dto.UserDTO{}
	if err := copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	return userDTO, nil
}

package dto

import "time"

// CreateUserDTO 创建账号
type CreateUserDTO struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginDTO 登录凭证
type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserDTO 用户，不包含密码哈希
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorDTO 文章列表中的作者摘要
type AuthorDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthDTO 登录结果
type AuthDTO struct {
	User  *UserDTO `json:"user"`
	Token string   `json:"token"`
}

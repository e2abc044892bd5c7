package security

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// UserClaims Token 中携带的身份信息
type UserClaims struct {
	UserID   uint64   `json:"user_id"`
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// HasRole 判断是否拥有任一角色
func (c *UserClaims) HasRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range c.Roles {
			if want == have {
				return true
			}
		}
	}
	return false
}

// RolesFor 根据管理员标记生成角色列表
func RolesFor(isAdmin bool) []string {
	if isAdmin {
		return []string{RoleAdmin, RoleUser}
	}
	return []string{RoleUser}
}

package middleware

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/response"
	"slices"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户是否拥有至少一个指定的角色，需在 AuthMiddleware 之后使用
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice(consts.CtxRoles)
		if !slices.ContainsFunc(roles, func(role string) bool {
			return slices.Contains(requiredRoles, role)
		}) {
			response.Fail(c, response.Forbidden, "administrator privileges required")
			c.Abort()
			return
		}
		c.Next()
	}
}

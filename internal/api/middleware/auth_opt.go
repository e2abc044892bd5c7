package middleware

import (
	"Inkstone/internal/pkg/consts"

	"github.com/gin-gonic/gin"
)

// AuthOptionalMiddleware 可选鉴权：解析成功注入身份，失败或缺失则 UID 为 0
func AuthOptionalMiddleware(validator TokenValidator, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.Set(consts.CtxUserID, uint64(0))
			c.Next()
			return
		}

		claims, err := authenticate(c.Request.Context(), validator, revoked, tokenString)
		if err != nil {
			c.Set(consts.CtxUserID, uint64(0))
		} else {
			setIdentity(c, claims)
		}

		c.Next()
	}
}

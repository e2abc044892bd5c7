package middleware

import (
	"Inkstone/internal/pkg/consts"
	"Inkstone/internal/pkg/response"
	"Inkstone/internal/pkg/security"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenValidator 校验 JWT
type TokenValidator interface {
	ValidateToken(token string) (*security.UserClaims, error)
}

// RevocationChecker 查询 Token 是否已注销
type RevocationChecker interface {
	IsRevoked(ctx context.Context, signature string) (bool, error)
}

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware(validator TokenValidator, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			response.Fail(c, response.Unauthorized, "missing or malformed token")
			c.Abort()
			return
		}

		claims, err := authenticate(c.Request.Context(), validator, revoked, tokenString)
		if err != nil {
			if errors.Is(err, errRevocationLookup) {
				log.ErrorContext(c.Request.Context(), "token revocation lookup failed", "err", err)
				response.Fail(c, response.InternalServerError, "internal server error")
			} else {
				response.Fail(c, response.Unauthorized, "invalid or expired token")
			}
			c.Abort()
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

var errRevocationLookup = errors.New("revocation lookup failed")

func authenticate(ctx context.Context, validator TokenValidator, revoked RevocationChecker, tokenString string) (*security.UserClaims, error) {
	claims, err := validator.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if revoked == nil {
		return claims, nil
	}
	signature, err := security.ExtractSignature(tokenString)
	if err != nil {
		return nil, err
	}
	isRevoked, err := revoked.IsRevoked(ctx, signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errRevocationLookup, err)
	}
	if isRevoked {
		return nil, security.ErrTokenInvalid
	}
	return claims, nil
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	return token, token != ""
}

func setIdentity(c *gin.Context, claims *security.UserClaims) {
	c.Set(consts.CtxUserID, claims.UserID)
	c.Set(consts.CtxUsername, claims.Username)
	c.Set(consts.CtxRoles, claims.Roles)

	newCtx := context.WithValue(c.Request.Context(), consts.CtxUserID, claims.UserID)
	c.Request = c.Request.WithContext(newCtx)
}

// CurrentUserID 未登录时为 0
func CurrentUserID(c *gin.Context) uint64 {
	return c.GetUint64(consts.CtxUserID)
}

// IsAdmin 当前请求是否来自管理员
func IsAdmin(c *gin.Context) bool {
	for _, role := range c.GetStringSlice(consts.CtxRoles) {
		if role == security.RoleAdmin {
			return true
		}
	}
	return false
}

// BearerToken 当前请求携带的 Token
func BearerToken(c *gin.Context) string {
	token, _ := bearerToken(c)
	return token
}

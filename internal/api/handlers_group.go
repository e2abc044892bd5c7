package api

import (
	"Inkstone/internal/api/handler"
	"Inkstone/internal/api/middleware"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler   *handler.UserHandler
	PostHandler   *handler.PostHandler
	MediaHandler  *handler.MediaHandler
	SystemHandler *handler.SystemHandler
}

// AuthGroup 鉴权中间件所需的组件，Revoked 为空时不检查注销
type AuthGroup struct {
	Tokens  middleware.TokenValidator
	Revoked middleware.RevocationChecker
}

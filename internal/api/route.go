package api

import (
	"Inkstone/internal/api/middleware"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(group *HandlersGroup, auth AuthGroup, trustedProxies, allowOrigins []string) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(trustedProxies)

	// TraceId & Logger & CORS & Metrics
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware(allowOrigins))
	r.Use(middleware.MetricsMiddleware())
	logger.SetupGin(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := middleware.AuthMiddleware(auth.Tokens, auth.Revoked)
	authOptional := middleware.AuthOptionalMiddleware(auth.Tokens, auth.Revoked)
	adminOnly := middleware.CheckRoles(security.RoleAdmin)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", group.SystemHandler.Ping)
		apiGroup.GET("/healthcheck", group.SystemHandler.HealthCheck)

		userGroup := apiGroup.Group("/user")
		{
			// 无需登录即可访问的接口
			userGroup.POST("/login", group.UserHandler.Login)
			userGroup.POST("/register", authOptional, group.UserHandler.Register)

			authGroup := userGroup.Group("")
			authGroup.Use(authRequired)
			{
				authGroup.POST("/logout", group.UserHandler.Logout)
				authGroup.GET("/info", group.UserHandler.GetUserInfo)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("/published", group.PostHandler.GetPublishedPosts)

			authOptGroup := postGroup.Group("")
			authOptGroup.Use(authOptional)
			{
				authOptGroup.GET("/detail/:post_id", group.PostHandler.GetPost)
				authOptGroup.GET("/slug/:slug", group.PostHandler.GetPostBySlug)
			}

			// 需要登录 & 拥有 admin 角色
			adminGroup := postGroup.Group("")
			adminGroup.Use(authRequired, adminOnly)
			{
				adminGroup.GET("", group.PostHandler.GetPosts)
				adminGroup.POST("", group.PostHandler.CreatePost)
				adminGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				adminGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
				adminGroup.POST("/:post_id/publish", group.PostHandler.PublishPost)
				adminGroup.POST("/:post_id/unpublish", group.PostHandler.UnpublishPost)
			}
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(authRequired, adminOnly)
		{
			mediaGroup.GET("", group.MediaHandler.GetMediaFiles)
			mediaGroup.POST("", group.MediaHandler.CreateMedia)
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
			mediaGroup.DELETE("/:media_id", group.MediaHandler.DeleteMedia)
		}
	}

	return r
}

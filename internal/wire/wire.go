package wire

import (
	"Inkstone/internal/api"
	"Inkstone/internal/api/config"
	"Inkstone/internal/api/handler"
	"Inkstone/internal/job"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/pkg/metrics"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/pkg/security"
	"Inkstone/internal/repository"
	"Inkstone/internal/service"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	CronMgr     *cron.Manager
	UserService service.UserService
}

// Infra 外部连接，Redis 与 Storage 可以为空
type Infra struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Storage *minio.Storage
}

func BuildApplication(cfg *config.Config, infra Infra) (*ApplicationContainer, error) {
	db := infra.DB

	var (
		storage    service.ObjectStorage
		pending    service.PendingDeletes
		tokenStore service.TokenStore
		auth       api.AuthGroup
	)
	if infra.Storage != nil {
		storage = infra.Storage
	}
	if infra.Redis != nil {
		blacklist := redis.NewTokenBlacklist(infra.Redis)
		tokenStore = blacklist
		auth.Revoked = blacklist
		pending = redis.NewPendingDeleteSet(infra.Redis)
	} else {
		tokenStore = noopTokenStore{}
	}

	jwtManager := security.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.Expiration)*time.Hour)
	auth.Tokens = jwtManager

	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewBlogPostRepo(db)
	mediaRepo := repository.NewMediaFileRepo(db)

	releaser := service.NewObjectReleaser(storage, pending, mediaRepo)
	userService := service.NewUserService(userRepo, jwtManager, tokenStore)
	postService := service.NewBlogPostService(postRepo, userRepo, releaser)
	mediaService := service.NewMediaService(mediaRepo, postRepo, storage, releaser)

	handlers := &api.HandlersGroup{
		UserHandler:   handler.NewUserHandler(userService),
		PostHandler:   handler.NewPostHandler(postService),
		MediaHandler:  handler.NewMediaHandler(mediaService, cfg.Upload.MaxSize),
		SystemHandler: handler.NewSystemHandler(healthChecks(infra)),
	}

	router := api.SetupRouter(handlers, auth, cfg.Server.TrustedProxies, cfg.Server.AllowOrigins)

	var cleanupJob *job.MediaCleanupJob
	if storage != nil && pending != nil {
		cleanupJob = job.NewMediaCleanupJob(releaser, pending, metrics.PendingObjectDeletes.Set)
	}
	cronMgr := cron.NewCronManager(cleanupJob, cfg.Cron.MediaCleanup)

	return &ApplicationContainer{
		Router:      router,
		DB:          db,
		CronMgr:     cronMgr,
		UserService: userService,
	}, nil
}

func healthChecks(infra Infra) map[string]handler.Pinger {
	checks := map[string]handler.Pinger{
		"database": func(ctx context.Context) error {
			sqlDB, err := infra.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if infra.Redis != nil {
		checks["redis"] = infra.Redis.Ping
	}
	return checks
}

// noopTokenStore 未配置 Redis 时注销只在客户端生效
type noopTokenStore struct{}

func (noopTokenStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (noopTokenStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }

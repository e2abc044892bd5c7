package main

import (
	"Inkstone/internal/api/config"
	"Inkstone/internal/pkg/cron"
	"Inkstone/internal/pkg/database"
	"Inkstone/internal/pkg/logger"
	"Inkstone/internal/pkg/minio"
	"Inkstone/internal/pkg/redis"
	"Inkstone/internal/wire"
	"context"
	"errors"
	"flag"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "./configs", "配置文件目录")
	flag.Parse()

	// 加载配置
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Error("Fatal error: failed to load configuration", "err", err)
		panic(err)
	}

	// 初始化日志
	logger.InitLogger(cfg.Log.Level)

	// 数据库连接
	db, err := database.NewGormDB(&cfg.DB)
	if err != nil {
		log.Error("Fatal error: failed to create database connection", "err", err)
		panic(err)
	}
	if cfg.DB.AutoMigrate {
		if err = database.AutoMigrate(context.Background(), db); err != nil {
			log.Error("Fatal error: failed to migrate schema", "err", err)
			panic(err)
		}
	}

	infra := wire.Infra{DB: db}

	// Redis 连接
	if cfg.Redis.Addr != "" {
		infra.Redis, err = redis.NewClient(context.Background(), cfg.Redis)
		if err != nil {
			log.Error("Fatal error: failed to create redis connection", "err", err)
			panic(err)
		}
		defer func() { _ = infra.Redis.Close() }()
	} else {
		log.Warn("redis is not configured, logout revocation and object delete retries are disabled")
	}

	// MinIO 连接
	if cfg.MinIO.Endpoint != "" {
		infra.Storage, err = minio.NewStorage(context.Background(), cfg.MinIO)
		if err != nil {
			log.Error("Fatal error: failed to initialize MinIO", "err", err)
			panic(err)
		}
	} else {
		log.Warn("minio is not configured, file uploads are disabled")
	}

	// 依赖注入
	app, err := wire.BuildApplication(cfg, infra)
	if err != nil {
		log.Error("Fatal error: failed to create application", "err", err)
		panic(err)
	}

	// 初始管理员
	if err = app.UserService.EnsureAdmin(context.Background(), cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Error("Fatal error: failed to bootstrap admin", "err", err)
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	// 定时任务
	if err = cron.InitCron(app.CronMgr); err != nil {
		log.Error("Fatal error: failed to start cron jobs", "err", err)
		panic(err)
	}
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Cron Jobs stopping...")
		app.CronMgr.Stop()
		return nil
	})

	// HTTP 服务器
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	g.Go(func() error {
		log.Info("HTTP Server starting...", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 优雅退出
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-quit:
			log.Info("Received signal, shutting down...", "signal", sig)
			cancel()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP Server shutdown failed", "err", err)
		}
		return nil
	})

	if err = g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("App exited with error", "err", err)
	}
	log.Info("App exited successfully.")
}

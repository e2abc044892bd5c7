package cron

import (
	"Inkstone/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	mediaCleanupJob *job.MediaCleanupJob
	mediaCleanup    string
}

// NewCronManager mediaCleanupSpec 为空时不注册媒体清理任务
func NewCronManager(mediaCleanupJob *job.MediaCleanupJob, mediaCleanupSpec string) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds()),
		mediaCleanupJob: mediaCleanupJob,
		mediaCleanup:    mediaCleanupSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if s.mediaCleanupJob == nil || s.mediaCleanup == "" {
		return nil
	}
	if _, err := s.engine.AddJob(s.mediaCleanup, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(s.mediaCleanupJob)); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

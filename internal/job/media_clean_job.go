package job

import (
	"context"
	log "log/slog"
	"time"
)

// ObjectRetrier 重试队列中的对象删除
type ObjectRetrier interface {
	Retry(ctx context.Context) (int, error)
}

// PendingCounter 队列剩余数量
type PendingCounter interface {
	Members(ctx context.Context) ([]string, error)
}

type MediaCleanupJob struct {
	retrier ObjectRetrier
	pending PendingCounter
	timeout time.Duration
	gauge   func(float64)
}

func NewMediaCleanupJob(retrier ObjectRetrier, pending PendingCounter, gauge func(float64)) *MediaCleanupJob {
	return &MediaCleanupJob{
		retrier: retrier,
		pending: pending,
		timeout: 5 * time.Minute,
		gauge:   gauge,
	}
}

func (s *MediaCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	count, err := s.retrier.Retry(ctx)
	if err != nil {
		log.Error("media cleanup job failed", "err", err)
		return
	}
	if count > 0 {
		log.Info("media cleanup job finished", "cleaned_count", count)
	}

	if s.pending == nil || s.gauge == nil {
		return
	}
	remaining, err := s.pending.Members(ctx)
	if err != nil {
		log.Warn("count pending object deletes failed", "err", err)
		return
	}
	s.gauge(float64(len(remaining)))
}

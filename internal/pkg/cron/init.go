package cron

import log "log/slog"

// InitCron 注册并启动全部定时任务
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	log.Info("Cron Jobs starting...", "jobs", len(mgr.engine.Entries()))
	mgr.Start()
	return nil
}

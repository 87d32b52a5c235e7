package cron

import (
	"fmt"
	log "log/slog"
)

// InitCron 注册任务后启动引擎，没有任务时不启动
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return fmt.Errorf("register cron jobs: %w", err)
	}
	if mgr.Entries() == 0 {
		log.Info("未配置定时任务，Cron 引擎不启动")
		return nil
	}
	mgr.Start()
	return nil
}

package cron

import (
	"Yatube/internal/api/config"
	"Yatube/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine           *cron.Cron
	specs            config.CronConfig
	mediaCleanupJob  *job.MediaCleanupJob
	searchReindexJob *job.SearchReindexJob
	running          bool
}

// NewCronManager 任务为 nil 时不注册
func NewCronManager(specs config.CronConfig, mediaCleanupJob *job.MediaCleanupJob, searchReindexJob *job.SearchReindexJob) *Manager {
	return &Manager{
		engine:           cron.New(cron.WithSeconds()),
		specs:            specs,
		mediaCleanupJob:  mediaCleanupJob,
		searchReindexJob: searchReindexJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if s.mediaCleanupJob != nil && s.specs.MediaCleanup != "" {
		if _, err := s.engine.AddJob(s.specs.MediaCleanup, s.mediaCleanupJob); err != nil {
			return err
		}
	}
	if s.searchReindexJob != nil && s.specs.SearchReindex != "" {
		if _, err := s.engine.AddJob(s.specs.SearchReindex, s.searchReindexJob); err != nil {
			return err
		}
	}
	return nil
}

func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Running() bool {
	return s.running
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "jobs", s.Entries())
	s.engine.Start()
	s.running = true
}

// Stop 等待正在执行的任务结束，未启动时直接返回
func (s *Manager) Stop() {
	if !s.running {
		return
	}
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
	s.running = false
}

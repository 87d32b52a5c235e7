package cron

import (
	"testing"
	"time"

	"Yatube/internal/api/config"
	"Yatube/internal/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_RegisterJobs(t *testing.T) {
	mgr := NewCronManager(config.CronConfig{
		MediaCleanup:  "0 */10 * * * *",
		SearchReindex: "0 30 3 * * *",
	}, job.NewMediaCleanupJob(nil, time.Hour), job.NewSearchReindexJob(nil, nil, time.Hour))
	require.NoError(t, mgr.RegisterJobs())
	assert.Equal(t, 2, mgr.Entries())
}

func TestManager_SkipsDisabledJobs(t *testing.T) {
	mgr := NewCronManager(config.CronConfig{MediaCleanup: "0 */10 * * * *"}, nil, job.NewSearchReindexJob(nil, nil, time.Hour))
	require.NoError(t, mgr.RegisterJobs())
	assert.Zero(t, mgr.Entries())
}

func TestManager_InvalidSpec(t *testing.T) {
	mgr := NewCronManager(config.CronConfig{MediaCleanup: "every ten minutes"}, job.NewMediaCleanupJob(nil, time.Hour), nil)
	assert.Error(t, mgr.RegisterJobs())
}

func TestInitCron(t *testing.T) {
	mgr := NewCronManager(config.CronConfig{MediaCleanup: "0 0 * * * *"}, job.NewMediaCleanupJob(nil, time.Hour), nil)
	require.NoError(t, InitCron(mgr))
	assert.True(t, mgr.Running())
	mgr.Stop()
	assert.False(t, mgr.Running())
}

func TestInitCron_NoJobsStaysIdle(t *testing.T) {
	mgr := NewCronManager(config.CronConfig{MediaCleanup: "0 0 * * * *"}, nil, nil)
	require.NoError(t, InitCron(mgr))
	assert.False(t, mgr.Running())
	mgr.Stop()
}

func TestInitCron_InvalidSpec(t *testing.T) {
	mgr := NewCronManager(config.CronConfig{SearchReindex: "nightly"}, nil, job.NewSearchReindexJob(nil, nil, time.Hour))
	err := InitCron(mgr)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "register cron jobs")
	assert.False(t, mgr.Running())
}

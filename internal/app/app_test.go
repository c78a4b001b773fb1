package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/coursesite/internal/config"
	"github.com/MrSnakeDoc/coursesite/internal/logger"
	"github.com/MrSnakeDoc/coursesite/internal/site/sitetest"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ListenPort:      "127.0.0.1:0",
		ShutdownTimeout: time.Second,
		SiteDir:         sitetest.Write(t, nil),
		ReloadInterval:  time.Hour,
		ScanWorkers:     2,
		ReloadRate:      1,
		ReloadBurst:     1,
	}
}

func TestRunLoadsSiteAndStops(t *testing.T) {
	a, err := New(context.Background(), testConfig(t), logger.Nop())
	require.NoError(t, err)
	assert.Nil(t, a.redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, a.memIndex.Ready, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunFailsWithoutSite(t *testing.T) {
	cfg := testConfig(t)
	cfg.SiteDir = t.TempDir()

	a, err := New(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	assert.Error(t, a.Run(context.Background()))
}

package app

import (
	"os"
	"pattern_master_backend/internal/config"
	"pattern_master_backend/pkg/logger"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

func TestApplyConfigSwapsSnapshotAndNotifies(t *testing.T) {
	startCfg := &config.Config{JWT: config.JWTConfig{Secret: "start-secret"}}
	a := &App{
		Config:      startCfg,
		ConfigStore: config.NewStore(startCfg),
	}

	var received []*config.Config
	a.RegisterConfigCallback(func(newCfg *config.Config) {
		received = append(received, newCfg)
	})

	reloaded := &config.Config{JWT: config.JWTConfig{Secret: "reloaded-secret"}}
	a.ApplyConfig(reloaded)

	require.Len(t, received, 1)
	assert.Same(t, reloaded, received[0])
	assert.Same(t, reloaded, a.ConfigStore.Load())

	// 启动配置保持不变，读侧只见完整快照
	assert.Equal(t, "start-secret", startCfg.JWT.Secret)
}

func TestApplyConfigWithoutSubscribers(t *testing.T) {
	a := &App{ConfigStore: config.NewStore(&config.Config{})}

	reloaded := &config.Config{JWT: config.JWTConfig{Secret: "x"}}
	a.ApplyConfig(reloaded)

	assert.Same(t, reloaded, a.ConfigStore.Load())
}

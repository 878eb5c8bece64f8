package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, 5*time.Second, cfg.Timeline.TypingDelay)
	assert.Equal(t, 2*time.Second, cfg.Timeline.ReplyDelay)
	assert.Equal(t, 10*time.Second, cfg.Timeline.SelfDestructDelay)
	assert.True(t, cfg.Appearance.ShowOnboarding)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
user:
  id: user-9
  name: Dana
  default_channel: design
timeline:
  typing_delay: 1s
  reply_delay: 500ms
appearance:
  dark_mode: true
  show_onboarding: false
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "user-9", cfg.User.ID)
	assert.Equal(t, "Dana", cfg.User.Name)
	assert.Equal(t, "design", cfg.User.DefaultChannel)
	assert.Equal(t, time.Second, cfg.Timeline.TypingDelay)
	assert.Equal(t, 500*time.Millisecond, cfg.Timeline.ReplyDelay)
	assert.Equal(t, 10*time.Second, cfg.Timeline.SelfDestructDelay)
	assert.True(t, cfg.Appearance.DarkMode)
	assert.False(t, cfg.Appearance.ShowOnboarding)
	assert.Equal(t, DefaultAvatarEndpoint, cfg.Avatar.Endpoint)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "timeline:\n  typing_delay: 3s\n")
	t.Setenv("CHATFLOW_TYPING_DELAY", "250ms")
	t.Setenv("CHATFLOW_RETRO_MODE", "true")
	t.Setenv("CHATFLOW_USER_NAME", "Env User")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeline.TypingDelay)
	assert.True(t, cfg.Appearance.RetroMode)
	assert.Equal(t, "Env User", cfg.User.Name)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "timeline: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv("CHATFLOW_REPLY_DELAY", "soon")
		_, err := Load(writeConfig(t, ""))
		assert.ErrorContains(t, err, "CHATFLOW_REPLY_DELAY")
	})

	t.Run("bad env bool", func(t *testing.T) {
		t.Setenv("CHATFLOW_DARK_MODE", "sometimes")
		_, err := Load(writeConfig(t, ""))
		assert.ErrorContains(t, err, "CHATFLOW_DARK_MODE")
	})

	t.Run("non positive delay", func(t *testing.T) {
		_, err := Load(writeConfig(t, "timeline:\n  self_destruct_delay: 0s\n"))
		assert.ErrorContains(t, err, "positive")
	})
}

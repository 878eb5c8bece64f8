package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultAvatarEndpoint = "https://api.dicebear.com/7.x/personas/svg"

// Config aggregates every setting of the application.
type Config struct {
	User       UserConfig       `yaml:"user"`
	Timeline   TimelineConfig   `yaml:"timeline"`
	Appearance AppearanceConfig `yaml:"appearance"`
	Avatar     AvatarConfig     `yaml:"avatar"`
	Roster     RosterConfig     `yaml:"roster"`
	Canvas     CanvasConfig     `yaml:"canvas"`
	Log        LogConfig        `yaml:"log"`
}

type UserConfig struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	DefaultChannel string `yaml:"default_channel"`
}

// TimelineConfig holds the scripted and self-destruct delays.
type TimelineConfig struct {
	TypingDelay       time.Duration `yaml:"typing_delay"`
	ReplyDelay        time.Duration `yaml:"reply_delay"`
	SelfDestructDelay time.Duration `yaml:"self_destruct_delay"`
	ToastDuration     time.Duration `yaml:"toast_duration"`
}

type AppearanceConfig struct {
	DarkMode       bool `yaml:"dark_mode"`
	RetroMode      bool `yaml:"retro_mode"`
	ShowOnboarding bool `yaml:"show_onboarding"`
}

type AvatarConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// RosterConfig points at an optional members file; empty uses the built-in roster.
type RosterConfig struct {
	Path string `yaml:"path"`
}

type CanvasConfig struct {
	ExportDir string `yaml:"export_dir"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		User: UserConfig{
			ID:             "user-1",
			Name:           "Your Name",
			DefaultChannel: "general",
		},
		Timeline: TimelineConfig{
			TypingDelay:       5 * time.Second,
			ReplyDelay:        2 * time.Second,
			SelfDestructDelay: 10 * time.Second,
			ToastDuration:     3 * time.Second,
		},
		Appearance: AppearanceConfig{
			ShowOnboarding: true,
		},
		Avatar: AvatarConfig{
			Endpoint: DefaultAvatarEndpoint,
		},
		Canvas: CanvasConfig{
			ExportDir: ".",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// GetConfigPath returns the default config file path (~/.chatflow/config.yml).
func GetConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".chatflow", "config.yml")
}

// Load reads path (or the default path when empty) over the defaults, then
// applies a .env file and CHATFLOW_* environment overrides. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = GetConfigPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	strs := map[string]*string{
		"CHATFLOW_USER_ID":         &cfg.User.ID,
		"CHATFLOW_USER_NAME":       &cfg.User.Name,
		"CHATFLOW_DEFAULT_CHANNEL": &cfg.User.DefaultChannel,
		"CHATFLOW_AVATAR_ENDPOINT": &cfg.Avatar.Endpoint,
		"CHATFLOW_ROSTER_FILE":     &cfg.Roster.Path,
		"CHATFLOW_EXPORT_DIR":      &cfg.Canvas.ExportDir,
		"CHATFLOW_LOG_FILE":        &cfg.Log.Path,
		"CHATFLOW_LOG_LEVEL":       &cfg.Log.Level,
	}
	for key, dst := range strs {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"CHATFLOW_TYPING_DELAY":        &cfg.Timeline.TypingDelay,
		"CHATFLOW_REPLY_DELAY":         &cfg.Timeline.ReplyDelay,
		"CHATFLOW_SELF_DESTRUCT_DELAY": &cfg.Timeline.SelfDestructDelay,
		"CHATFLOW_TOAST_DURATION":      &cfg.Timeline.ToastDuration,
	}
	for key, dst := range durations {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		*dst = d
	}

	bools := map[string]*bool{
		"CHATFLOW_DARK_MODE":       &cfg.Appearance.DarkMode,
		"CHATFLOW_RETRO_MODE":      &cfg.Appearance.RetroMode,
		"CHATFLOW_SHOW_ONBOARDING": &cfg.Appearance.ShowOnboarding,
	}
	for key, dst := range bools {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		*dst = b
	}

	return nil
}

// Validate rejects settings the timeline cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.User.ID) == "" {
		return fmt.Errorf("user id cannot be empty")
	}
	if c.Timeline.TypingDelay <= 0 || c.Timeline.ReplyDelay <= 0 || c.Timeline.SelfDestructDelay <= 0 {
		return fmt.Errorf("timeline delays must be positive")
	}
	if c.Timeline.ToastDuration <= 0 {
		return fmt.Errorf("toast duration must be positive")
	}
	if c.Avatar.Endpoint == "" {
		return fmt.Errorf("avatar endpoint cannot be empty")
	}
	return nil
}

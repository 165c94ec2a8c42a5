package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"smartlink/pkg/errors"

	"gopkg.in/yaml.v3"
)

const (
	BackendAuto   = "auto"
	BackendLegacy = "legacy"

	RendererTerminal = "terminal"
	RendererDesktop  = "desktop"

	CommandAuto  = "auto"
	CommandOSC52 = "osc52"
	CommandExec  = "exec"
)

// Config holds the complete configuration
type Config struct {
	Notifications NotificationConfig `yaml:"notifications"`
	Clipboard     ClipboardConfig    `yaml:"clipboard"`
	Analytics     AnalyticsConfig    `yaml:"analytics"`
}

// NotificationConfig controls the toast timeline.
type NotificationConfig struct {
	ShowDelay       time.Duration `yaml:"show_delay"`
	DisplayDuration time.Duration `yaml:"display_duration"`
	ExitDuration    time.Duration `yaml:"exit_duration"`
	// Renderer is where toasts appear: "terminal" (stderr) or "desktop".
	Renderer string `yaml:"renderer"`
}

type ClipboardConfig struct {
	// Backend is "auto" (native clipboard, then fallback) or "legacy"
	// (fallback only).
	Backend string `yaml:"backend"`
	// Command selects the fallback copy command: auto, osc52 or exec.
	Command string `yaml:"command"`
}

type AnalyticsConfig struct {
	RefreshInterval time.Duration `yaml:"refresh_interval"`
	RefreshDelay    time.Duration `yaml:"refresh_delay"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Notifications: NotificationConfig{
			ShowDelay:       10 * time.Millisecond,
			DisplayDuration: 3000 * time.Millisecond,
			ExitDuration:    300 * time.Millisecond,
		},
		Clipboard: ClipboardConfig{
			Backend: BackendAuto,
			Command: CommandAuto,
		},
		Analytics: AnalyticsConfig{
			RefreshInterval: 5 * time.Minute,
			RefreshDelay:    time.Second,
		},
	}
}

// Load reads the config file, applies environment overrides and validates
// the result. A missing file yields the defaults.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}
	return loadFromPath(configPath)
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "smartlink", "config.yaml"), nil
}

// Save writes cfg to the config file, creating its directory.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to get config path", err)
	}
	return saveToPath(configPath, cfg)
}

func saveToPath(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to write config file", err)
	}
	return nil
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func loadFromPath(configPath string) (*Config, error) {
	cfg := Default()

	if err := loadConfigFile(configPath, cfg); err != nil {
		return nil, err
	}

	applyEnvironmentOverrides(cfg)
	applyDefaults(cfg)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile reads and parses the config file from the given path
func loadConfigFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		// No file: defaults and env vars apply.
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewWithError(errors.ExitCodeFileOperation, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.NewWithError(errors.ExitCodeConfig, "failed to parse config file", err)
	}
	return nil
}

// applyEnvironmentOverrides applies environment variable overrides to the config
func applyEnvironmentOverrides(cfg *Config) {
	if backend := os.Getenv("SMARTLINK_CLIPBOARD_BACKEND"); backend != "" {
		cfg.Clipboard.Backend = backend
	}
	if command := os.Getenv("SMARTLINK_CLIPBOARD_COMMAND"); command != "" {
		cfg.Clipboard.Command = command
	}
	if renderer := os.Getenv("SMARTLINK_TOAST_RENDERER"); renderer != "" {
		cfg.Notifications.Renderer = renderer
	}
	cfg.Notifications.DisplayDuration = getEnvDuration("SMARTLINK_TOAST_DURATION", cfg.Notifications.DisplayDuration)
	cfg.Analytics.RefreshInterval = getEnvDuration("SMARTLINK_REFRESH_INTERVAL", cfg.Analytics.RefreshInterval)
}

// applyDefaults fills fields a partial config file left empty.
func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Notifications.ShowDelay == 0 {
		cfg.Notifications.ShowDelay = def.Notifications.ShowDelay
	}
	if cfg.Notifications.DisplayDuration == 0 {
		cfg.Notifications.DisplayDuration = def.Notifications.DisplayDuration
	}
	if cfg.Notifications.ExitDuration == 0 {
		cfg.Notifications.ExitDuration = def.Notifications.ExitDuration
	}
	if cfg.Notifications.Renderer == "" {
		cfg.Notifications.Renderer = def.Notifications.Renderer
	}
	if cfg.Clipboard.Backend == "" {
		cfg.Clipboard.Backend = def.Clipboard.Backend
	}
	if cfg.Clipboard.Command == "" {
		cfg.Clipboard.Command = def.Clipboard.Command
	}
	if cfg.Analytics.RefreshInterval == 0 {
		cfg.Analytics.RefreshInterval = def.Analytics.RefreshInterval
	}
	if cfg.Analytics.RefreshDelay == 0 {
		cfg.Analytics.RefreshDelay = def.Analytics.RefreshDelay
	}
	cfg.Notifications.Renderer = strings.ToLower(cfg.Notifications.Renderer)
	cfg.Clipboard.Backend = strings.ToLower(cfg.Clipboard.Backend)
	cfg.Clipboard.Command = strings.ToLower(cfg.Clipboard.Command)
}

// Validate checks cfg after flags have been applied on top of a loaded config.
func (c *Config) Validate() error {
	return validateConfig(c)
}

// validateConfig rejects values the notification and clipboard layers cannot honour.
func validateConfig(cfg *Config) error {
	n := cfg.Notifications
	if n.ShowDelay < 0 || n.DisplayDuration < 0 || n.ExitDuration < 0 {
		return errors.ConfigError("notification durations must not be negative")
	}
	if n.ShowDelay >= n.DisplayDuration {
		return errors.ConfigError(fmt.Sprintf("notifications.show_delay (%s) must be shorter than display_duration (%s)", n.ShowDelay, n.DisplayDuration))
	}

	switch n.Renderer {
	case RendererTerminal, RendererDesktop:
	default:
		return errors.ConfigError(fmt.Sprintf("unknown notifications.renderer %q (expected terminal or desktop)", n.Renderer))
	}

	switch cfg.Clipboard.Backend {
	case BackendAuto, BackendLegacy:
	default:
		return errors.ConfigError(fmt.Sprintf("unknown clipboard backend %q (expected auto or legacy)", cfg.Clipboard.Backend))
	}

	switch cfg.Clipboard.Command {
	case CommandAuto, CommandOSC52, CommandExec:
	default:
		return errors.ConfigError(fmt.Sprintf("unknown clipboard command %q (expected auto, osc52 or exec)", cfg.Clipboard.Command))
	}

	if cfg.Analytics.RefreshInterval < time.Second {
		return errors.ConfigError("analytics.refresh_interval must be at least 1s")
	}
	return nil
}

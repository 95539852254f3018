// Package config loads spine configuration from defaults, a YAML config
// file, and SPINE_-prefixed environment variables, with hot reload for
// long-running commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

// Config holds spine configuration.
type Config struct {
	// DocType selects the parsing profile.
	DocType string `mapstructure:"doc_type" yaml:"doc_type"`
	// DocTitle overrides the profile's document title when set.
	DocTitle string `mapstructure:"doc_title" yaml:"doc_title"`
	// TOCScanPages caps the TOC scan; 0 defers to the profile.
	TOCScanPages int `mapstructure:"toc_scan_pages" yaml:"toc_scan_pages"`
	// Workers bounds extraction concurrency; 0 means one per CPU.
	Workers int `mapstructure:"workers" yaml:"workers"`
	// OutputDir receives the JSONL files and the validation workbook.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// ProfilesDir holds user profile overrides; empty means
	// ~/.spine/profiles.
	ProfilesDir string `mapstructure:"profiles_dir" yaml:"profiles_dir"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DocType:   "generic",
		OutputDir: "output",
	}
}

// Manager handles loading and hot-reloading configuration.
type Manager struct {
	mu        sync.RWMutex
	config    *Config
	callbacks []func(*Config)
}

// NewManager creates a config manager and loads the initial config.
func NewManager(cfgFile string) (*Manager, error) {
	cm := &Manager{
		callbacks: make([]func(*Config), 0),
	}

	if err := cm.initViper(cfgFile); err != nil {
		return nil, err
	}

	cfg, err := cm.load()
	if err != nil {
		return nil, err
	}
	cm.config = cfg

	return cm, nil
}

// initViper seeds defaults and binds the config file and environment.
func (cm *Manager) initViper(cfgFile string) error {
	defaults := DefaultConfig()
	viper.SetDefault("doc_type", defaults.DocType)
	viper.SetDefault("doc_title", defaults.DocTitle)
	viper.SetDefault("toc_scan_pages", defaults.TOCScanPages)
	viper.SetDefault("workers", defaults.Workers)
	viper.SetDefault("output_dir", defaults.OutputDir)
	viper.SetDefault("profiles_dir", defaults.ProfilesDir)

	// Environment variables with SPINE_ prefix
	viper.SetEnvPrefix("SPINE")
	viper.AutomaticEnv()

	// Config file
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.spine")
	}

	// Try to read config file (not required)
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// load parses the current viper state into a Config struct.
func (cm *Manager) load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Get returns the current configuration (thread-safe).
func (cm *Manager) Get() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config
}

// OnChange registers a callback for config changes.
func (cm *Manager) OnChange(fn func(*Config)) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.callbacks = append(cm.callbacks, fn)
}

// WatchConfig enables hot-reloading of configuration.
func (cm *Manager) WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := cm.load()
		if err != nil {
			return
		}

		cm.mu.Lock()
		cm.config = cfg
		callbacks := make([]func(*Config), len(cm.callbacks))
		copy(callbacks, cm.callbacks)
		cm.mu.Unlock()

		for _, fn := range callbacks {
			fn(cfg)
		}
	})
	viper.WatchConfig()
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# Spine configuration
# Values may also come from SPINE_-prefixed environment variables,
# e.g. SPINE_OUTPUT_DIR=/tmp/out spine parse spec.pdf

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}

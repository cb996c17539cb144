/*
Package config manages TOML config for the suggestion engine and its
gateway process.

InitConfig handles automatic config file creation and loading with
fallback to defaults. LoadConfig and SaveConfig provide direct fs access
for runtime changes. Watch hot-reloads the file on disk and pushes newly
valid configs to a callback, matching the gateway's documented
reinit-and-clear-sessions side effect on PUT /config.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"

	"github.com/toolsuggest/core/pkg/suggest"
)

var validate = validator.New()

// Config is the full on-disk configuration: the engine's construction
// parameters plus the gateway's transport settings.
type Config struct {
	Engine  EngineConfig  `toml:"engine"`
	Gateway GatewayConfig `toml:"gateway"`
}

// EngineConfig mirrors suggest.Config field-for-field in TOML form, plus the
// catalog file path; it is translated to a suggest.Config by ToEngineConfig.
type EngineConfig struct {
	TopK                  int      `toml:"top_k" validate:"gte=1"`
	MaxIntents            int      `toml:"max_intents" validate:"gte=1"`
	IntentSeparatorTokens []string `toml:"intent_separator_tokens"`
	CombineStrategy       string   `toml:"combine_strategy" validate:"omitempty,oneof=max sum"`
	MinScore              float64  `toml:"min_score" validate:"gte=0"`
	Locales               []string `toml:"locales"`
	CatalogPath           string   `toml:"catalog_path"`
}

// GatewayConfig holds the transport settings for pkg/gateway.
type GatewayConfig struct {
	ListenAddr   string `toml:"listen_addr" validate:"required"`
	MetricsAddr  string `toml:"metrics_addr"`
	PingInterval int    `toml:"ping_interval_seconds" validate:"gte=1"`
}

// DefaultConfig returns a Config with the engine's documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			TopK:            5,
			MaxIntents:      1,
			CombineStrategy: "max",
			MinScore:        1.0,
			Locales:         []string{"pt", "en"},
			CatalogPath:     "catalog.yaml",
		},
		Gateway: GatewayConfig{
			ListenAddr:   ":8089",
			MetricsAddr:  ":9089",
			PingInterval: 30,
		},
	}
}

// ToEngineConfig translates the on-disk EngineConfig into the suggest
// package's construction parameters.
func (c *Config) ToEngineConfig() suggest.Config {
	strategy := suggest.CombineMax
	if c.Engine.CombineStrategy == string(suggest.CombineSum) {
		strategy = suggest.CombineSum
	}
	return suggest.Config{
		TopK:                  c.Engine.TopK,
		MaxIntents:            c.Engine.MaxIntents,
		IntentSeparatorTokens: c.Engine.IntentSeparatorTokens,
		CombineStrategy:       strategy,
		MinScore:              c.Engine.MinScore,
		Locales:               c.Engine.Locales,
	}
}

// Validate checks the tag-declared constraints of the engine and gateway
// sections.
func (c *Config) Validate() error {
	if err := validate.Struct(c.Engine); err != nil {
		return err
	}
	return validate.Struct(c.Gateway)
}

// InitConfig loads config from file, or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			return nil, err
		}
		log.Debugf("created default config file at %s", configPath)
		return cfg, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads and validates a TOML config file.
func LoadConfig(configPath string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		log.Errorf("failed to decode config file: %v", err)
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig writes cfg to a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		log.Errorf("failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(cfg)
}

// Watcher hot-reloads configPath and hands each newly valid Config to
// onChange. It never calls onChange for a config that fails Validate.
type Watcher struct {
	watcher    *fsnotify.Watcher
	configPath string
	onChange   func(*Config)
	done       chan struct{}
}

// Watch starts watching configPath for writes. Call Close to stop.
func Watch(configPath string, onChange func(*Config)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(configPath)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{watcher: fw, configPath: configPath, onChange: onChange, done: make(chan struct{})}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.configPath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := LoadConfig(w.configPath)
			if err != nil {
				log.Warnf("config reload of %s rejected: %v", w.configPath, err)
				continue
			}
			log.Infof("reloaded config from %s", w.configPath)
			w.onChange(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("config watcher error: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher goroutine and releases its file descriptor.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

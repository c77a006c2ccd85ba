package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"sessiond/internal/common/fsutil"
)

// Config holds runtime parameters for the daemon.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	Addr           string  `json:"addr" yaml:"addr" toml:"addr"`
	LogLevel       string  `json:"log_level" yaml:"log_level" toml:"log_level"`
	SettleDelayMS  int     `json:"settle_delay_ms" yaml:"settle_delay_ms" toml:"settle_delay_ms"`
	StartTimeoutMS int     `json:"start_timeout_ms" yaml:"start_timeout_ms" toml:"start_timeout_ms"`
	Capture        Capture `json:"capture" yaml:"capture" toml:"capture"`
	Pose           Pose    `json:"pose" yaml:"pose" toml:"pose"`
	CORS           CORS    `json:"cors" yaml:"cors" toml:"cors"`
}

// Capture selects the camera device and format.
type Capture struct {
	Device string `json:"device" yaml:"device" toml:"device"`
	Width  int    `json:"width" yaml:"width" toml:"width"`
	Height int    `json:"height" yaml:"height" toml:"height"`
	FPS    int    `json:"fps" yaml:"fps" toml:"fps"`
}

// Pose selects the pose model sources. Paths may start with '~' or be
// http(s) URLs.
type Pose struct {
	MoveNetModel   string `json:"movenet_model" yaml:"movenet_model" toml:"movenet_model"`
	BlazePoseModel string `json:"blazepose_model" yaml:"blazepose_model" toml:"blazepose_model"`
	Demo           bool   `json:"demo" yaml:"demo" toml:"demo"`
}

// CORS configures cross-origin access for the browser shell.
type CORS struct {
	Enabled bool     `json:"enabled" yaml:"enabled" toml:"enabled"`
	Origins []string `json:"origins" yaml:"origins" toml:"origins"`
	Methods []string `json:"methods" yaml:"methods" toml:"methods"`
	Headers []string `json:"headers" yaml:"headers" toml:"headers"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, cfg.expandPaths()
}

// expandPaths resolves '~' in local model paths; URLs pass through.
func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Pose.MoveNetModel, &c.Pose.BlazePoseModel} {
		if *p == "" || strings.Contains(*p, "://") {
			continue
		}
		expanded, err := fsutil.ExpandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// Package config loads service configuration by layering defaults, an
// optional YAML file, and QUAKEVIEWS_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all service settings.
type Config struct {
	// DatasetPath points at the earthquake catalog CSV. Required.
	DatasetPath string `koanf:"dataset_path"`

	// SummaryMinMagnitude is the cut for the summary record set shown on the
	// map; selections reference records at or above this magnitude.
	SummaryMinMagnitude float64 `koanf:"summary_min_magnitude"`

	// RegionHalfWidth is the region window half-width in degrees.
	RegionHalfWidth float64 `koanf:"region_half_width"`

	// CacheSize bounds the per-session region subset cache.
	CacheSize int `koanf:"cache_size"`

	// KafkaBrokers is a comma-separated broker list.
	KafkaBrokers     string `koanf:"kafka_brokers"`
	KafkaSourceTopic string `koanf:"kafka_source_topic"`
	KafkaSinkTopic   string `koanf:"kafka_sink_topic"`
	KafkaGroupID     string `koanf:"kafka_group_id"`

	HTTPAddr  string `koanf:"http_addr"`
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`

	// ShutdownTimeoutRaw is a Go duration string, parsed into
	// ShutdownTimeout at load time.
	ShutdownTimeoutRaw string        `koanf:"shutdown_timeout"`
	ShutdownTimeout    time.Duration `koanf:"-"`
}

// Default returns the configuration defaults applied before file and env
// layers.
func Default() *Config {
	return &Config{
		SummaryMinMagnitude: 7.0,
		RegionHalfWidth:     0.25,
		CacheSize:           256,
		KafkaBrokers:        "localhost:9092",
		KafkaSourceTopic:    "quake-selections",
		KafkaSinkTopic:      "quake-view-snapshots",
		KafkaGroupID:        "quake-views",
		HTTPAddr:            ":8080",
		LogLevel:            "info",
		LogFormat:           "json",
		ShutdownTimeoutRaw:  "10s",
	}
}

// Load builds a Config by layering (low -> high):
//  1. defaults
//  2. YAML file if QUAKEVIEWS_CONFIG is set
//  3. env vars with prefix QUAKEVIEWS_, e.g. QUAKEVIEWS_DATASET_PATH
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("QUAKEVIEWS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// QUAKEVIEWS_CACHE_SIZE -> cache_size; underscores kept to match koanf tags.
	envProvider := env.Provider("QUAKEVIEWS_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "QUAKEVIEWS_"))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DatasetPath == "" {
		return errors.New("dataset_path is required")
	}
	if c.RegionHalfWidth <= 0 {
		return errors.New("region_half_width must be positive")
	}
	if c.CacheSize <= 0 {
		return errors.New("cache_size must be positive")
	}
	if len(c.Brokers()) == 0 {
		return errors.New("kafka_brokers is required")
	}
	if c.KafkaSourceTopic == "" {
		return errors.New("kafka_source_topic is required")
	}
	if c.KafkaSinkTopic == "" {
		return errors.New("kafka_sink_topic is required")
	}

	d, err := time.ParseDuration(c.ShutdownTimeoutRaw)
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid shutdown_timeout %q", c.ShutdownTimeoutRaw)
	}
	c.ShutdownTimeout = d
	return nil
}

// Brokers splits the comma-separated broker list, dropping empty entries.
func (c *Config) Brokers() []string {
	parts := strings.Split(c.KafkaBrokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

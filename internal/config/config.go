// Package config loads the mrtwriterd service configuration: YAML file
// first, then MRTWRITER_-prefixed environment overrides. Grounded on the
// teacher's internal/config/config.go (koanf v2 + yaml parser + env
// provider), trimmed to the settings this service actually needs.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Service ServiceConfig `koanf:"service"`
	Compose ComposeConfig `koanf:"compose"`
	Sink    SinkConfig    `koanf:"sink"`
	Audit   AuditConfig   `koanf:"audit"`
}

type ServiceConfig struct {
	HTTPListen string `koanf:"http_listen"`
	LogLevel   string `koanf:"log_level"`
}

type ComposeConfig struct {
	DefaultViewName       string `koanf:"default_view_name"`
	DefaultCollectorBGPID string `koanf:"default_collector_bgp_id"`
}

type SinkConfig struct {
	Kafka KafkaSinkConfig `koanf:"kafka"`
}

type KafkaSinkConfig struct {
	Enabled  bool     `koanf:"enabled"`
	Brokers  []string `koanf:"brokers"`
	Topic    string   `koanf:"topic"`
	ClientID string   `koanf:"client_id"`
}

// AuditConfig backs the optional internal/auditlog export-run recorder.
// Unlike the Kafka sink, nothing in the core encoder path requires it:
// an empty DSN leaves the audit log unwired and mrtwriterd runs without it.
type AuditConfig struct {
	Postgres              PostgresConfig `koanf:"postgres"`
	StoreRawBytes         bool           `koanf:"store_raw_bytes"`
	StoreRawBytesCompress bool           `koanf:"store_raw_bytes_compress"`
}

type PostgresConfig struct {
	DSN      string `koanf:"dsn"`
	MaxConns int32  `koanf:"max_conns"`
	MinConns int32  `koanf:"min_conns"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// Overlay environment variables: MRTWRITER_SINK__KAFKA__ENABLED → sink.kafka.enabled
	if err := k.Load(env.Provider("MRTWRITER_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "MRTWRITER_")
		s = strings.ToLower(s)
		s = strings.ReplaceAll(s, "__", ".")
		return s
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env config: %w", err)
	}

	cfg := &Config{
		Service: ServiceConfig{
			HTTPListen: ":8080",
			LogLevel:   "info",
		},
		Compose: ComposeConfig{
			DefaultViewName:       "",
			DefaultCollectorBGPID: "0.0.0.0",
		},
		Sink: SinkConfig{
			Kafka: KafkaSinkConfig{
				ClientID: "mrtwriterd",
			},
		},
		Audit: AuditConfig{
			Postgres: PostgresConfig{
				MaxConns: 4,
				MinConns: 1,
			},
			StoreRawBytesCompress: true,
		},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if len(cfg.Sink.Kafka.Brokers) == 1 && strings.Contains(cfg.Sink.Kafka.Brokers[0], ",") {
		cfg.Sink.Kafka.Brokers = strings.Split(cfg.Sink.Kafka.Brokers[0], ",")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Service.HTTPListen == "" {
		return fmt.Errorf("config: service.http_listen is required")
	}
	if c.Sink.Kafka.Enabled {
		if len(c.Sink.Kafka.Brokers) == 0 {
			return fmt.Errorf("config: sink.kafka.brokers is required when sink.kafka.enabled")
		}
		if c.Sink.Kafka.Topic == "" {
			return fmt.Errorf("config: sink.kafka.topic is required when sink.kafka.enabled")
		}
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const DefaultPort = 5000

type Config struct {
	Server  ServerConfig
	Latency LatencyConfig
}

type ServerConfig struct {
	Port                     int
	MaxHeaderBytes           int
	ReadHeaderTimeoutSeconds int
	ReadTimeoutSeconds       int
	WriteTimeoutSeconds      int
	IdleTimeoutSeconds       int
}

// LatencyConfig bounds the artificial delay added to every request.
type LatencyConfig struct {
	Min time.Duration
	Max time.Duration
}

var (
	ErrInvalidPort    = errors.New("server.port must be between 1 and 65535")
	ErrInvalidLatency = errors.New("latency bounds must satisfy 0 <= min <= max")
)

// Default returns a config listening on DefaultPort with 10-100ms latency.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// New builds a config for the given port, filling in everything else.
func New(port int) (*Config, error) {
	cfg := &Config{Server: ServerConfig{Port: port}}
	applyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = 1 << 20 // 1 MiB
	}
	if cfg.Server.ReadHeaderTimeoutSeconds == 0 {
		cfg.Server.ReadHeaderTimeoutSeconds = 5
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 30
	}
	if cfg.Server.IdleTimeoutSeconds == 0 {
		cfg.Server.IdleTimeoutSeconds = 60
	}

	if cfg.Latency.Min == 0 && cfg.Latency.Max == 0 {
		cfg.Latency.Min = 10 * time.Millisecond
		cfg.Latency.Max = 100 * time.Millisecond
	}
}

func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, cfg.Server.Port)
	}
	if cfg.Latency.Min < 0 || cfg.Latency.Max < cfg.Latency.Min {
		return fmt.Errorf("%w: min=%s max=%s", ErrInvalidLatency, cfg.Latency.Min, cfg.Latency.Max)
	}
	return nil
}

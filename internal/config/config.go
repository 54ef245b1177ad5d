// Package config loads the tetris configuration: a YAML file with embedded
// defaults, overridden by environment variables.
package config

import "time"

// Config is the configuration shared by every subcommand.
type Config struct {
	// Mode is the gateway mode: "coordinada" or "orquestada".
	Mode string `yaml:"mode" env:"MODO"`

	Log       LogConfig       `yaml:"log"`
	Board     ServiceConfig   `yaml:"board" envPrefix:"TETRIS_BOARD_"`
	Generator GeneratorConfig `yaml:"generator"`
	Rotator   ServiceConfig   `yaml:"rotator" envPrefix:"TETRIS_ROTATOR_"`
	Mover     ServiceConfig   `yaml:"mover" envPrefix:"TETRIS_MOVER_"`
	Gateway   GatewayConfig   `yaml:"gateway"`
	Client    ClientConfig    `yaml:"client"`
	Journal   JournalConfig   `yaml:"journal"`
	SSH       SSHConfig       `yaml:"ssh"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LogConfig sets the charm log level.
type LogConfig struct {
	Level string `yaml:"level" env:"TETRIS_LOG_LEVEL"`
}

// ServiceConfig is the listen address of a plain service.
type ServiceConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

// GeneratorConfig configures the piece generator service.
type GeneratorConfig struct {
	Addr string `yaml:"addr" env:"TETRIS_GENERATOR_ADDR"`

	// Seed 0 seeds from the clock.
	Seed int64 `yaml:"seed" env:"TETRIS_GENERATOR_SEED"`

	// RandomRotations pre-rotates new pieces 0-3 times in coordinated mode.
	RandomRotations bool `yaml:"random_rotations" env:"TETRIS_GENERATOR_RANDOM_ROTATIONS"`
}

// GatewayConfig configures the gateway and where it finds its collaborators.
type GatewayConfig struct {
	Addr           string        `yaml:"addr" env:"TETRIS_GATEWAY_ADDR"`
	BoardURL       string        `yaml:"board_url" env:"TABLERO_URL"`
	GeneratorURL   string        `yaml:"generator_url" env:"GENERADOR_URL"`
	RotatorURL     string        `yaml:"rotator_url" env:"GIRADOR_URL"`
	MoverURL       string        `yaml:"mover_url" env:"DESLIZADOR_URL"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"TETRIS_GATEWAY_REQUEST_TIMEOUT"`
	WatchInterval  time.Duration `yaml:"watch_interval" env:"TETRIS_GATEWAY_WATCH_INTERVAL"`
}

// ClientConfig configures the presentation client.
type ClientConfig struct {
	GatewayURL string        `yaml:"gateway_url" env:"TETRIS_GATEWAY_URL"`
	Gravity    GravityConfig `yaml:"gravity"`
}

// JournalConfig locates the board event journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" env:"TETRIS_JOURNAL_ENABLED"`
	Path    string `yaml:"path" env:"TETRIS_JOURNAL_PATH"`
}

// SSHConfig configures `tetris serve`.
type SSHConfig struct {
	Addr        string        `yaml:"addr" env:"TETRIS_SSH_ADDR"`
	HostKeyPath string        `yaml:"host_key_path" env:"TETRIS_SSH_HOST_KEY"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"TETRIS_SSH_IDLE_TIMEOUT"`
}

// TelemetryConfig enables OTLP trace export.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" env:"TETRIS_OTEL_ENABLED"`
	Endpoint string `yaml:"endpoint" env:"TETRIS_OTEL_ENDPOINT"`
}

package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tetris.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode: "coordinada",
		Log:  LogConfig{Level: "info"},
		Board: ServiceConfig{
			Addr: ":3001",
		},
		Generator: GeneratorConfig{
			Addr:            ":3002",
			RandomRotations: true,
		},
		Rotator: ServiceConfig{Addr: ":3003"},
		Mover:   ServiceConfig{Addr: ":3004"},
		Gateway: GatewayConfig{
			Addr:           ":8080",
			BoardURL:       "http://localhost:3001",
			GeneratorURL:   "http://localhost:3002",
			RotatorURL:     "http://localhost:3003",
			MoverURL:       "http://localhost:3004",
			RequestTimeout: 2 * time.Second,
			WatchInterval:  250 * time.Millisecond,
		},
		Client: ClientConfig{
			GatewayURL: "http://localhost:8080",
			Gravity: GravityConfig{
				Enabled:     true,
				Interval:    800 * time.Millisecond,
				MinInterval: 120 * time.Millisecond,
				Progression: ProgressionConfig{
					Type:  "lines",
					MaxAt: 40,
				},
			},
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    "~/.tetris/journal.db",
		},
		SSH: SSHConfig{
			Addr:        ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

package config

import (
	"math"
	"time"
)

// GravityConfig drives the client's automatic downward moves.
type GravityConfig struct {
	Enabled      bool              `yaml:"enabled" env:"TETRIS_GRAVITY_ENABLED"`
	Interval     time.Duration     `yaml:"interval" env:"TETRIS_GRAVITY_INTERVAL"`
	MinInterval  time.Duration     `yaml:"min_interval"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = slowest, 1.0 = fastest
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how the pace increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Lines/ticks at which the fastest pace is reached
}

// DifficultyPreset represents a named starting pace.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyGravityPreset modifies the config based on a difficulty preset.
func ApplyGravityPreset(cfg *GravityConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Progression.Type = "none"
		return
	}
	cfg.InitialLevel = InitialLevelForPreset(preset)
}

// Pacer calculates the gravity interval from progress.
type Pacer struct {
	cfg GravityConfig
}

// NewPacer creates a pacer for cfg.
func NewPacer(cfg GravityConfig) *Pacer {
	cfg.InitialLevel = clampF(cfg.InitialLevel, 0.0, 1.0)
	return &Pacer{cfg: cfg}
}

// Enabled reports whether gravity ticks at all.
func (p *Pacer) Enabled() bool {
	return p.cfg.Enabled && p.cfg.Interval > 0
}

// Level returns the pace level (0.0 to 1.0) based on cleared lines or ticks.
func (p *Pacer) Level(lines, ticks int) float64 {
	maxAt := float64(p.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch p.cfg.Progression.Type {
	case "lines":
		progress = float64(lines) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return p.cfg.InitialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return p.cfg.InitialLevel + progress*(1.0-p.cfg.InitialLevel)
}

// Interval returns the delay between gravity steps. It shrinks linearly
// from Interval at level 0 to MinInterval at level 1.
func (p *Pacer) Interval(lines, ticks int) time.Duration {
	minI := p.cfg.MinInterval
	if minI <= 0 || minI > p.cfg.Interval {
		minI = p.cfg.Interval
	}
	level := p.Level(lines, ticks)
	span := float64(p.cfg.Interval - minI)
	return p.cfg.Interval - time.Duration(level*span)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

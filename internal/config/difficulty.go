package config

import (
	"time"

	"github.com/vovakirdan/pm-arcade/internal/core"
	"github.com/vovakirdan/pm-arcade/internal/engine"
)

// Preset tuning.
const (
	easySpeedScale = 0.85
	hardSpeedScale = 1.2
	easyExtraHits  = 2
)

// applyDifficulty adjusts speed and progression for a preset and returns
// the adjusted hit limit.
func applyDifficulty(d *DifficultyConfig, maxHits int, preset DifficultyPreset) int {
	switch preset {
	case DifficultyFixed:
		d.Enabled = false
	case DifficultyEasy:
		d.Enabled = true
		d.BaseSpeed *= easySpeedScale
		d.SpeedStep *= easySpeedScale
		maxHits += easyExtraHits
	case DifficultyNormal:
		d.Enabled = true
	case DifficultyHard:
		d.Enabled = true
		d.BaseSpeed *= hardSpeedScale
		d.SpeedStep *= hardSpeedScale
		maxHits = core.Max(maxHits-1, 1)
	}
	return maxHits
}

// Progression converts the difficulty block to the engine's progression.
// A disabled difficulty keeps the win threshold but never changes phase.
func (d DifficultyConfig) Progression() engine.ProgressionConfig {
	p := engine.ProgressionConfig{
		Max:           d.Max,
		PhaseNames:    d.PhaseNames,
		BaseSpeed:     d.BaseSpeed,
		SpeedStep:     d.SpeedStep,
		MaxSpeed:      d.MaxSpeed,
		AnnounceTicks: engine.Ticks(time.Duration(d.AnnounceMs) * time.Millisecond),
	}
	if d.Enabled {
		p.Bands = append([]float64(nil), d.Bands...)
	}
	return p
}

// Pattern maps a pattern name to the engine pattern. Unknown names fall
// back to random drift.
func Pattern(name string) engine.Pattern {
	switch name {
	case "streams":
		return engine.PatternStreams
	case "spiral":
		return engine.PatternSpiral
	case "rush":
		return engine.PatternRush
	case "lane":
		return engine.PatternLane
	case "drop":
		return engine.PatternDrop
	default:
		return engine.PatternRandomDrift
	}
}

// SpawnPhases converts phase blocks to the engine's spawn table.
func SpawnPhases(phases []PhaseConfig) []engine.PhaseSpawn {
	out := make([]engine.PhaseSpawn, len(phases))
	for i, p := range phases {
		out[i] = engine.PhaseSpawn{
			Interval: p.Interval,
			Batch:    p.Batch,
			Pattern:  Pattern(p.Pattern),
			SpeedMul: p.SpeedMul,
		}
	}
	return out
}

// Vec returns the field size as a vector.
func (f FieldConfig) Vec() core.Vec {
	return core.Vec{X: f.Width, Y: f.Height}
}

// SecondsToTicks converts seconds to 60 Hz ticks.
func SecondsToTicks(s float64) float64 {
	return engine.Ticks(time.Duration(s * float64(time.Second)))
}

// Box converts the area to engine geometry.
func (a AreaConfig) Box() core.Box {
	return core.Box{X: a.X, Y: a.Y, W: a.W, H: a.H}
}

package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/survivor.yaml
var defaultSurvivorYAML []byte

//go:embed defaults/decipher.yaml
var defaultDecipherYAML []byte

//go:embed defaults/blackjack.yaml
var defaultBlackjackYAML []byte

func defaultField() FieldConfig {
	return FieldConfig{Width: 640, Height: 300, MarginX: 120, MarginY: 60}
}

// DefaultRunnerConfig returns the default Sprint Runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Field: defaultField(),
		Player: RunnerPlayer{
			X:       60,
			GroundY: 240,
			Size:    40,
			Padding: 8,
		},
		Physics: RunnerPhysics{
			Gravity:     0.6,
			JumpImpulse: -12,
		},
		Obstacles: RunnerObstacles{
			Width:         34,
			Height:        40,
			MinGap:        220,
			NeutralChance: 0.2,
			Labels:        []string{"Surprise Meeting", "Prod Bug", "Scope Change", "Merge Conflict", "Flaky Test"},
			NeutralLabels: []string{"Slack Ping", "Status Update"},
		},
		Collectibles: RunnerCollectibles{
			Chance: 0.15,
			Value:  25,
			Width:  28,
			Height: 28,
			Y:      110,
			Labels: []string{"Coffee", "User Feedback"},
		},
		Phases: []PhaseConfig{
			{Interval: 60, Batch: 1, Pattern: "lane", SpeedMul: 1},
			{Interval: 52, Batch: 1, Pattern: "lane", SpeedMul: 1},
			{Interval: 45, Batch: 1, Pattern: "lane", SpeedMul: 1},
			{Interval: 38, Batch: 1, Pattern: "lane", SpeedMul: 1},
			{Interval: 32, Batch: 1, Pattern: "lane", SpeedMul: 1},
		},
		Gameplay: RunnerGameplay{
			MaxHits:         3,
			ProgressDivisor: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			Max:        1000,
			Bands:      []float64{200, 400, 600, 800},
			PhaseNames: []string{"Discovery", "Alpha", "Beta", "Growth", "Scale"},
			BaseSpeed:  6.2,
			SpeedStep:  0.6,
			MaxSpeed:   11,
			AnnounceMs: 2000,
		},
	}
}

// DefaultSurvivorConfig returns the default Scope Creep Survivor configuration.
func DefaultSurvivorConfig() SurvivorConfig {
	return SurvivorConfig{
		Field: defaultField(),
		Player: SurvivorPlayer{
			Size:      24,
			Growth:    0.15,
			MoveSpeed: 4,
		},
		Requests: SurvivorRequests{
			Width:      90,
			Height:     24,
			GoodChance: 0.1,
			GoodValue:  6,
			Jitter:     0.6,
			Lanes:      6,
			BadLabels: []string{
				"Can we make it pop?",
				"CEO's cousin had an idea...",
				"Blockchain integration?",
				"Dark mode (High Priority)",
				"Legacy Support (IE11)",
				"AI-powered everything",
				"Can we pivot to Web3?",
				"Make it like TikTok",
				"Add a chatbot",
				"One more stakeholder review",
			},
			GoodLabels: []string{
				"Fix critical bug",
				"User research",
				"Accessibility audit",
				"Performance optimization",
			},
		},
		Phases: []PhaseConfig{
			{Interval: 30, Batch: 1, Pattern: "random-drift", SpeedMul: 1.0},
			{Interval: 24, Batch: 1, Pattern: "streams", SpeedMul: 1.3},
			{Interval: 18, Batch: 2, Pattern: "spiral", SpeedMul: 1.2},
			{Interval: 12, Batch: 3, Pattern: "rush", SpeedMul: 1.8},
		},
		PowerUp: PowerUpConfig{
			Enabled:    true,
			MinSeconds: 15,
			MaxSeconds: 20,
			Width:      36,
			Height:     36,
			Label:      "NO",
			Area:       AreaConfig{X: 50, Y: 30, W: 540, H: 220},
		},
		Gameplay: SurvivorGameplay{
			MaxHits:    5,
			BaseRate:   0.06,
			RatePerHit: 0.012,
			MinRate:    0.02,
			HitPenalty: 20,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			Max:        100,
			Bands:      []float64{25, 50, 75},
			PhaseNames: []string{"Random Drift", "Stream Waves", "Spiral Patterns", "Wall Rush"},
			BaseSpeed:  1.2,
			SpeedStep:  0.4,
			AnnounceMs: 2000,
		},
	}
}

// DefaultDecipherConfig returns the default Decipher configuration.
func DefaultDecipherConfig() DecipherConfig {
	return DecipherConfig{
		Field: defaultField(),
		Floor: DecipherFloor{Height: 20},
		Cards: DecipherCards{
			Width:  220,
			Height: 24,
			Value:  10,
			Inset:  10,
			Deck: []AcronymEntry{
				{"MVP", "Minimum Viable Product"},
				{"KPI", "Key Performance Indicator"},
				{"OKR", "Objectives and Key Results"},
				{"PRD", "Product Requirements Document"},
				{"ROI", "Return on Investment"},
				{"MAU", "Monthly Active Users"},
				{"NPS", "Net Promoter Score"},
				{"CAC", "Customer Acquisition Cost"},
				{"LTV", "Lifetime Value"},
				{"ARR", "Annual Recurring Revenue"},
				{"SLA", "Service Level Agreement"},
				{"GTM", "Go To Market"},
				{"TAM", "Total Addressable Market"},
				{"WIP", "Work In Progress"},
				{"POC", "Proof Of Concept"},
			},
		},
		Phases: []PhaseConfig{
			{Interval: 150, Batch: 1, Pattern: "drop", SpeedMul: 1},
			{Interval: 120, Batch: 1, Pattern: "drop", SpeedMul: 1},
			{Interval: 95, Batch: 1, Pattern: "drop", SpeedMul: 1},
			{Interval: 75, Batch: 1, Pattern: "drop", SpeedMul: 1},
		},
		Gameplay: DecipherGameplay{
			MaxMisses:     5,
			FeedbackTicks: 45,
		},
		Difficulty: DifficultyConfig{
			Enabled:    true,
			Max:        100,
			Bands:      []float64{25, 50, 75},
			PhaseNames: []string{"Intern", "Associate PM", "Senior PM", "Head of Product"},
			BaseSpeed:  0.5,
			SpeedStep:  0.15,
			MaxSpeed:   1.2,
			AnnounceMs: 2000,
		},
	}
}

// DefaultBlackjackConfig returns the default Sprint Blackjack configuration.
func DefaultBlackjackConfig() BlackjackConfig {
	return BlackjackConfig{
		Rules: BlackjackRules{
			StartingConfidence: 100,
			WinConfidence:      1000,
			Bets:               []int{10, 25, 50},
			DealerStandsOn:     17,
			ReshuffleBelow:     15,
			UnicornPayout:      2,
		},
		Timing: BlackjackTiming{
			DealMs:       []int{100, 250, 400, 550},
			DealerDrawMs: 500,
			ResultMs:     600,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "runner":
		return defaultRunnerYAML
	case "survivor":
		return defaultSurvivorYAML
	case "decipher":
		return defaultDecipherYAML
	case "blackjack":
		return defaultBlackjackYAML
	default:
		return nil
	}
}

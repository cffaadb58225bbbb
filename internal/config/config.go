// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade platform.
package config

// FieldConfig is the logical playfield shared by the arcade games.
// Entities are culled once they travel past a margin.
type FieldConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	MarginX float64 `yaml:"margin_x"`
	MarginY float64 `yaml:"margin_y"`
}

// PhaseConfig is the spawn behaviour of one difficulty phase.
type PhaseConfig struct {
	Interval float64 `yaml:"interval"` // ticks between batches
	Batch    int     `yaml:"batch"`
	Pattern  string  `yaml:"pattern"` // random-drift, streams, spiral, rush, lane, drop
	SpeedMul float64 `yaml:"speed_mul"`
}

// PowerUpConfig controls the rare power-up timer.
type PowerUpConfig struct {
	Enabled    bool       `yaml:"enabled"`
	MinSeconds float64    `yaml:"min_seconds"`
	MaxSeconds float64    `yaml:"max_seconds"`
	Width      float64    `yaml:"width"`
	Height     float64    `yaml:"height"`
	Label      string     `yaml:"label"`
	Area       AreaConfig `yaml:"area"` // where the top-left corner may land
}

// AreaConfig is a rectangle in logical field units.
type AreaConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// DifficultyConfig defines the progress scale and phase escalation.
type DifficultyConfig struct {
	Enabled    bool      `yaml:"enabled"` // false freezes the game in its first phase
	Max        float64   `yaml:"max"`     // win threshold, 0 = endless
	Bands      []float64 `yaml:"bands"`   // progress thresholds for phases 2..n
	PhaseNames []string  `yaml:"phase_names"`
	BaseSpeed  float64   `yaml:"base_speed"`
	SpeedStep  float64   `yaml:"speed_step"`
	MaxSpeed   float64   `yaml:"max_speed"`
	AnnounceMs int       `yaml:"announce_ms"`
}

// RunnerConfig contains all configuration for Sprint Runner.
type RunnerConfig struct {
	Field        FieldConfig        `yaml:"field"`
	Player       RunnerPlayer       `yaml:"player"`
	Physics      RunnerPhysics      `yaml:"physics"`
	Obstacles    RunnerObstacles    `yaml:"obstacles"`
	Collectibles RunnerCollectibles `yaml:"collectibles"`
	Phases       []PhaseConfig      `yaml:"phases"`
	Gameplay     RunnerGameplay     `yaml:"gameplay"`
	Difficulty   DifficultyConfig   `yaml:"difficulty"`
}

// RunnerPlayer defines the runner's size and placement.
type RunnerPlayer struct {
	X       float64 `yaml:"x"`
	GroundY float64 `yaml:"ground_y"`
	Size    float64 `yaml:"size"`
	Padding float64 `yaml:"padding"`
}

// RunnerPhysics defines jump physics for Sprint Runner.
type RunnerPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// RunnerObstacles defines the blockers on the ground lane.
type RunnerObstacles struct {
	Width         float64  `yaml:"width"`
	Height        float64  `yaml:"height"`
	MinGap        float64  `yaml:"min_gap"`
	NeutralChance float64  `yaml:"neutral_chance"`
	Labels        []string `yaml:"labels"`
	NeutralLabels []string `yaml:"neutral_labels"`
}

// RunnerCollectibles defines the floating coffee and feedback pickups.
type RunnerCollectibles struct {
	Chance float64  `yaml:"chance"`
	Value  float64  `yaml:"value"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	Y      float64  `yaml:"y"`
	Labels []string `yaml:"labels"`
}

// RunnerGameplay defines the lose condition and scoring rate.
type RunnerGameplay struct {
	MaxHits         int     `yaml:"max_hits"`
	ProgressDivisor float64 `yaml:"progress_divisor"` // users gained per tick = speed / divisor
}

// SurvivorConfig contains all configuration for Scope Creep Survivor.
type SurvivorConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Player     SurvivorPlayer   `yaml:"player"`
	Requests   SurvivorRequests `yaml:"requests"`
	Phases     []PhaseConfig    `yaml:"phases"`
	PowerUp    PowerUpConfig    `yaml:"power_up"`
	Gameplay   SurvivorGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SurvivorPlayer defines the free-roaming player.
type SurvivorPlayer struct {
	Size      float64 `yaml:"size"`
	Growth    float64 `yaml:"growth"` // size fraction added per hit
	MoveSpeed float64 `yaml:"move_speed"`
	Padding   float64 `yaml:"padding"`
}

// SurvivorRequests defines the incoming feature requests.
type SurvivorRequests struct {
	Width      float64  `yaml:"width"`
	Height     float64  `yaml:"height"`
	GoodChance float64  `yaml:"good_chance"`
	GoodValue  float64  `yaml:"good_value"`
	Jitter     float64  `yaml:"jitter"` // radians
	Lanes      int      `yaml:"lanes"`
	BadLabels  []string `yaml:"bad_labels"`
	GoodLabels []string `yaml:"good_labels"`
}

// SurvivorGameplay defines hits, MVP rate and satisfaction scoring.
type SurvivorGameplay struct {
	MaxHits    int     `yaml:"max_hits"`
	BaseRate   float64 `yaml:"base_rate"`    // MVP progress per tick with no hits
	RatePerHit float64 `yaml:"rate_per_hit"` // rate lost per hit
	MinRate    float64 `yaml:"min_rate"`
	HitPenalty int     `yaml:"hit_penalty"` // satisfaction lost per hit
}

// DecipherConfig contains all configuration for The Decipher.
type DecipherConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Floor      DecipherFloor    `yaml:"floor"`
	Cards      DecipherCards    `yaml:"cards"`
	Phases     []PhaseConfig    `yaml:"phases"`
	Gameplay   DecipherGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DecipherFloor is the strip at the bottom where unanswered cards land.
type DecipherFloor struct {
	Height float64 `yaml:"height"`
}

// DecipherCards defines the falling acronym cards.
type DecipherCards struct {
	Width  float64        `yaml:"width"`
	Height float64        `yaml:"height"`
	Value  float64        `yaml:"value"`
	Inset  float64        `yaml:"inset"`
	Deck   []AcronymEntry `yaml:"deck"`
}

// AcronymEntry is one card: the expansion shown and the acronym expected.
type AcronymEntry struct {
	Acronym   string `yaml:"acronym"`
	Expansion string `yaml:"expansion"`
}

// DecipherGameplay defines the miss limit.
type DecipherGameplay struct {
	MaxMisses     int `yaml:"max_misses"`
	FeedbackTicks int `yaml:"feedback_ticks"`
}

// BlackjackConfig contains all configuration for Sprint Blackjack.
type BlackjackConfig struct {
	Rules  BlackjackRules  `yaml:"rules"`
	Timing BlackjackTiming `yaml:"timing"`
}

// BlackjackRules defines the table rules.
type BlackjackRules struct {
	StartingConfidence int   `yaml:"starting_confidence"`
	WinConfidence      int   `yaml:"win_confidence"`
	Bets               []int `yaml:"bets"`
	DealerStandsOn     int   `yaml:"dealer_stands_on"`
	ReshuffleBelow     int   `yaml:"reshuffle_below"`
	UnicornPayout      int   `yaml:"unicorn_payout"`
}

// BlackjackTiming defines the staged animation delays.
type BlackjackTiming struct {
	DealMs       []int `yaml:"deal_ms"`
	DealerDrawMs int   `yaml:"dealer_draw_ms"`
	ResultMs     int   `yaml:"result_ms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values mean "use the
// config as loaded".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

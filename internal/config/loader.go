package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves one game's configuration.
// Search order: customPath -> ~/.arcade/configs/<name> -> ./configs/<name> -> embedded default -> hardcoded default.
// Only an explicit customPath can fail; every other source falls through.
func load[T any](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(name); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			var c T
			if err := yaml.Unmarshal(data, &c); err == nil {
				return c, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", name)); err == nil {
		var c T
		if err := yaml.Unmarshal(data, &c); err == nil {
			return c, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil
	}
	return cfg, nil
}

// LoadRunner loads Sprint Runner configuration.
func LoadRunner(customPath string) (RunnerConfig, error) {
	return load("runner.yaml", customPath, defaultRunnerYAML, DefaultRunnerConfig)
}

// LoadSurvivor loads Scope Creep Survivor configuration.
func LoadSurvivor(customPath string) (SurvivorConfig, error) {
	return load("survivor.yaml", customPath, defaultSurvivorYAML, DefaultSurvivorConfig)
}

// LoadDecipher loads The Decipher configuration.
func LoadDecipher(customPath string) (DecipherConfig, error) {
	return load("decipher.yaml", customPath, defaultDecipherYAML, DefaultDecipherConfig)
}

// LoadBlackjack loads Sprint Blackjack configuration.
func LoadBlackjack(customPath string) (BlackjackConfig, error) {
	return load("blackjack.yaml", customPath, defaultBlackjackYAML, DefaultBlackjackConfig)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	cfg.Gameplay.MaxHits = applyDifficulty(&cfg.Difficulty, cfg.Gameplay.MaxHits, preset)
}

// ApplySurvivorPreset modifies the config based on a difficulty preset.
func ApplySurvivorPreset(cfg *SurvivorConfig, preset DifficultyPreset) {
	cfg.Gameplay.MaxHits = applyDifficulty(&cfg.Difficulty, cfg.Gameplay.MaxHits, preset)

	// Power-ups are rarer on hard and more frequent on easy
	switch preset {
	case DifficultyEasy:
		cfg.PowerUp.MinSeconds, cfg.PowerUp.MaxSeconds = 10, 14
	case DifficultyHard:
		cfg.PowerUp.MinSeconds, cfg.PowerUp.MaxSeconds = 20, 28
	}
}

// ApplyDecipherPreset modifies the config based on a difficulty preset.
func ApplyDecipherPreset(cfg *DecipherConfig, preset DifficultyPreset) {
	cfg.Gameplay.MaxMisses = applyDifficulty(&cfg.Difficulty, cfg.Gameplay.MaxMisses, preset)
}

// ApplyBlackjackPreset modifies the config based on a difficulty preset.
// Blackjack has no phases; presets change the starting bankroll.
func ApplyBlackjackPreset(cfg *BlackjackConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Rules.StartingConfidence = 200
	case DifficultyHard:
		cfg.Rules.StartingConfidence = 50
	}
}

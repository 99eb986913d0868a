// Package config holds the balance rules the battle engine reads. Rules are
// loaded from YAML on top of the defaults and can be overridden from the
// environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Rules are the tunable constants of the combat engine.
type Rules struct {
	// HandSize is the number of cards the player draws up to at turn start.
	HandSize int `yaml:"hand_size" json:"hand_size"`
	// MaxHandSize caps mid-turn draws.
	MaxHandSize int `yaml:"max_hand_size" json:"max_hand_size"`
	// StreakBonusEvery grants bonus energy every N consecutive correct answers.
	StreakBonusEvery  int `yaml:"streak_bonus_every" json:"streak_bonus_every"`
	StreakBonusEnergy int `yaml:"streak_bonus_energy" json:"streak_bonus_energy"`
	// MaxCascadePasses bounds the threshold/death cascade loop.
	MaxCascadePasses int `yaml:"max_cascade_passes" json:"max_cascade_passes"`
	// MaxEnemies caps the living roster; summons beyond it fizzle.
	MaxEnemies int `yaml:"max_enemies" json:"max_enemies"`
	// PopQuizCard is the card definition a forced question puts in hand.
	PopQuizCard string `yaml:"pop_quiz_card" json:"pop_quiz_card"`
}

// Default returns the stock rules.
func Default() Rules {
	return Rules{
		HandSize:          5,
		MaxHandSize:       10,
		StreakBonusEvery:  5,
		StreakBonusEnergy: 1,
		MaxCascadePasses:  8,
		MaxEnemies:        6,
		PopQuizCard:       "pop_quiz",
	}
}

// Load reads rules from a YAML file. Fields missing from the file keep their
// default values.
func Load(path string) (Rules, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse rules YAML: %w", err)
	}
	return cfg.Sanitize(), nil
}

// FromEnv applies QUIZCRAWL_* environment overrides to base.
func FromEnv(base Rules) Rules {
	cfg := base
	if val := getEnvInt("QUIZCRAWL_HAND_SIZE"); val > 0 {
		cfg.HandSize = val
	}
	if val := getEnvInt("QUIZCRAWL_MAX_HAND_SIZE"); val > 0 {
		cfg.MaxHandSize = val
	}
	if val := getEnvInt("QUIZCRAWL_STREAK_BONUS_EVERY"); val > 0 {
		cfg.StreakBonusEvery = val
	}
	if val := getEnvInt("QUIZCRAWL_STREAK_BONUS_ENERGY"); val >= 0 {
		cfg.StreakBonusEnergy = val
	}
	if val := getEnvInt("QUIZCRAWL_MAX_CASCADE_PASSES"); val > 0 {
		cfg.MaxCascadePasses = val
	}
	if val := getEnvInt("QUIZCRAWL_MAX_ENEMIES"); val > 0 {
		cfg.MaxEnemies = val
	}
	if val := os.Getenv("QUIZCRAWL_POP_QUIZ_CARD"); val != "" {
		cfg.PopQuizCard = val
	}
	return cfg.Sanitize()
}

// Sanitize clamps nonsensical values back to the defaults.
func (r Rules) Sanitize() Rules {
	def := Default()
	if r.HandSize <= 0 {
		r.HandSize = def.HandSize
	}
	if r.MaxHandSize < r.HandSize {
		r.MaxHandSize = r.HandSize
	}
	if r.StreakBonusEvery <= 0 {
		r.StreakBonusEvery = def.StreakBonusEvery
	}
	if r.StreakBonusEnergy < 0 {
		r.StreakBonusEnergy = 0
	}
	if r.MaxCascadePasses <= 0 {
		r.MaxCascadePasses = def.MaxCascadePasses
	}
	if r.MaxEnemies <= 0 {
		r.MaxEnemies = def.MaxEnemies
	}
	if r.PopQuizCard == "" {
		r.PopQuizCard = def.PopQuizCard
	}
	return r
}

// getEnvInt returns -1 when the variable is unset or not a number.
func getEnvInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

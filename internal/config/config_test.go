package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	r := Default()
	assert.Equal(t, 5, r.HandSize)
	assert.Equal(t, 5, r.StreakBonusEvery)
	assert.Equal(t, 8, r.MaxCascadePasses)
	assert.Equal(t, "pop_quiz", r.PopQuizCard)
}

func TestLoadKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hand_size: 6\nmax_cascade_passes: 3\n"), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, r.HandSize)
	assert.Equal(t, 3, r.MaxCascadePasses)
	assert.Equal(t, 10, r.MaxHandSize)
	assert.Equal(t, 1, r.StreakBonusEnergy)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hand_size: [nope"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
	assert.Equal(t, Default(), r)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("QUIZCRAWL_HAND_SIZE", "4")
	t.Setenv("QUIZCRAWL_STREAK_BONUS_EVERY", "3")
	t.Setenv("QUIZCRAWL_MAX_ENEMIES", "not-a-number")

	r := FromEnv(Default())
	assert.Equal(t, 4, r.HandSize)
	assert.Equal(t, 3, r.StreakBonusEvery)
	assert.Equal(t, 6, r.MaxEnemies)
}

func TestSanitize(t *testing.T) {
	r := Rules{HandSize: -1, MaxHandSize: 2, StreakBonusEnergy: -4}.Sanitize()
	assert.Equal(t, 5, r.HandSize)
	assert.Equal(t, 5, r.MaxHandSize)
	assert.Equal(t, 0, r.StreakBonusEnergy)
	assert.Equal(t, 8, r.MaxCascadePasses)
}

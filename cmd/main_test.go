package main

import (
	"bytes"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innervation/internal/catalog"
	"innervation/internal/ui/preferences"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestResolveRoutine(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	settings := preferences.DefaultSettings()
	rng := rand.New(rand.NewPCG(1, 2))

	choice, err := resolveRoutine(cat, settings, "head", "chinbottom", 0, rng)
	require.NoError(t, err)
	assert.Equal(t, "Head Innervation", choice.section)
	assert.Equal(t, "CHINBOTTOM", choice.routineKey)
	assert.NotEmpty(t, choice.steps)
	assert.Equal(t, settings.SequenceConfig(), choice.config)

	choice, err = resolveRoutine(cat, settings, "eyes", "custom", 5, rng)
	require.NoError(t, err)
	assert.Equal(t, catalog.CustomKey, choice.routineKey)
	assert.Len(t, choice.steps, 5)

	choice, err = resolveRoutine(cat, settings, "legs", "", 0, rng)
	require.NoError(t, err)
	assert.NotEmpty(t, choice.routineKey)

	choice, err = resolveRoutine(cat, settings, "Mudras", "", 0, rng)
	require.NoError(t, err)
	assert.Equal(t, catalog.MudraSectionName, choice.section)
	assert.Len(t, choice.steps, settings.MudraCount)
	assert.Equal(t, 1, choice.config.Rounds)

	_, err = resolveRoutine(cat, settings, "tail", "", 0, rng)
	assert.ErrorIs(t, err, catalog.ErrUnknownSection)
	_, err = resolveRoutine(cat, settings, "head", "nope", 0, rng)
	assert.ErrorIs(t, err, catalog.ErrUnknownRoutine)
}

func TestOverrideConfig(t *testing.T) {
	defer func() { playSeconds, playRest, playRounds = 0, -1, 0 }()
	base := preferences.DefaultSettings().SequenceConfig()

	assert.Equal(t, base, overrideConfig(base))

	playSeconds, playRest, playRounds = 2, 0, 4
	config := overrideConfig(base)
	assert.Equal(t, 5, config.SecondsPerStep)
	assert.Zero(t, config.RestSeconds)
	assert.Equal(t, 4, config.Rounds)
}

func TestDataCommands(t *testing.T) {
	dir := t.TempDir()
	payload := `{"sessions":[{"section":"Head Innervation","routine":"TILT","movement":"Tilt Left","duration":45,"timestamp":1777881600000}]}`
	importPath := filepath.Join(dir, "in.json")
	require.NoError(t, os.WriteFile(importPath, []byte(payload), 0o644))

	out, err := execute(t, "--config-dir", dir, "import", importPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 movements")

	out, err = execute(t, "--config-dir", dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Head Innervation - Tilt Left")

	exportPath := filepath.Join(dir, "out.json")
	_, err = execute(t, "--config-dir", dir, "export", exportPath)
	require.NoError(t, err)
	exported, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Contains(t, string(exported), `"movement": "Tilt Left"`)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"nope":1}`), 0o644))
	_, err = execute(t, "--config-dir", dir, "import", badPath)
	assert.Error(t, err)

	_, err = execute(t, "--config-dir", dir, "clear")
	assert.ErrorIs(t, err, errClearNotConfirmed)

	out, err = execute(t, "--config-dir", dir, "clear", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	out, err = execute(t, "--config-dir", dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "No practice recorded yet.")
}

func TestRoutinesCommand(t *testing.T) {
	out, err := execute(t, "routines")
	require.NoError(t, err)
	assert.Contains(t, out, "Head Innervation")
	assert.Contains(t, out, catalog.MudraSectionName)

	out, err = execute(t, "routines", "head")
	require.NoError(t, err)
	assert.Contains(t, out, "CHINBOTTOM")

	_, err = execute(t, "routines", "tail")
	assert.ErrorIs(t, err, catalog.ErrUnknownSection)
}

func TestBellCue(t *testing.T) {
	var out bytes.Buffer
	cue := newBellCue(&out, true)
	cue.Play()
	cue.SetEnabled(false)
	cue.Play()
	assert.Equal(t, "\a", out.String())
}

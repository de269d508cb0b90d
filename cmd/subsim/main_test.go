package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/oomph-ac/subsim/sim"

	"github.com/oomph-ac/subsim/settings"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectScenarios(t *testing.T) {
	all := settings.DefaultScenarios()

	got, err := selectScenarios(all, "")
	require.NoError(t, err)
	assert.Len(t, got, len(all))

	got, err = selectScenarios(all, "dive, drift")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "dive", got[0].Name)
	assert.Equal(t, "drift", got[1].Name)

	_, err = selectScenarios(all, "nope")
	assert.Error(t, err)
}

func TestRunScenarioDeterministic(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	s := settings.DefaultSettings()
	s.Simulation.Duration = 3
	sc := s.Scenarios[1]

	a, err := runScenario(s, sc, logrus.NewEntry(log))
	require.NoError(t, err)
	b, err := runScenario(s, sc, logrus.NewEntry(log))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunReturnsErrors(t *testing.T) {
	dir := t.TempDir()
	*configPath, *duration, *scenarios, *workers = filepath.Join(dir, "subsim.toml"), 0.5, "drift", 1
	t.Cleanup(func() { *configPath, *duration, *scenarios, *workers = "subsim.toml", 0, "", 0 })

	require.NoError(t, run(quietLogger()))
	assert.FileExists(t, *configPath)

	*scenarios = "missing"
	assert.Error(t, run(quietLogger()))

	*configPath = filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(*configPath, []byte("[Body]\nMass = -1.0\n"), 0644))
	*scenarios = ""
	assert.Error(t, run(quietLogger()))
}

func TestSampleSea(t *testing.T) {
	conf := sim.DefaultConfig()
	conf.Scene.SurfaceY = 2
	s := sim.MustInitialize(conf, sim.Options{})

	pos := mgl64.Vec3{3, -4, -1}
	sea := sampleSea(s, pos, 1.5)
	want := s.Surface().Height(pos.X(), pos.Z(), 1.5) - pos.Y()
	assert.InDelta(t, want, float64(sea.clearance), 1e-3)
	assert.Greater(t, sea.swell, float32(0))
	assert.LessOrEqual(t, sea.swell, float32(2*conf.Scene.Wave.Amplitude)+1e-4)
	assert.GreaterOrEqual(t, sea.slope, 0.0)
	assert.Less(t, sea.slope, 90.0)

	conf.Scene.Wave.Amplitude = 0
	calm := sampleSea(sim.MustInitialize(conf, sim.Options{}), pos, 1.5)
	assert.Equal(t, float32(6), calm.clearance)
	assert.Zero(t, calm.swell)
	assert.Zero(t, calm.slope)
}

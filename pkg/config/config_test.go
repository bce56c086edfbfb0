package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_SimulationConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("SIM_TICK_INTERVAL_MS", "500")
	os.Setenv("SIM_ETA_DECAY_MINUTES", "2.0")
	defer func() {
		os.Unsetenv("SIM_TICK_INTERVAL_MS")
		os.Unsetenv("SIM_ETA_DECAY_MINUTES")
	}()

	// Load config
	cfg, err := Load()
	assert.NoError(t, err)

	// Verify simulation config
	assert.Equal(t, 500*time.Millisecond, cfg.Simulation.TickInterval)
	assert.Equal(t, 2.0, cfg.Simulation.EtaDecayMinutes)
}

func TestLoad_Defaults(t *testing.T) {
	// Ensure env vars are cleared
	os.Unsetenv("SIM_TICK_INTERVAL_MS")
	os.Unsetenv("SIM_ETA_DECAY_MINUTES")
	os.Unsetenv("GEMINI_MODEL")

	cfg, err := Load()
	assert.NoError(t, err)

	// Verify defaults
	assert.Equal(t, 2*time.Second, cfg.Simulation.TickInterval)
	assert.InDelta(t, 2.0/60.0, cfg.Simulation.EtaDecayMinutes, 1e-9)
	assert.Equal(t, "gemini-3-flash-preview", cfg.Gemini.Model)
}

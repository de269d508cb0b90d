package wave

import (
	"math"

	"github.com/oomph-ac/subsim/oerror"
)

const (
	DefaultAmplitude  = 0.5
	DefaultFrequency  = 0.35
	DefaultSpeed      = 1.2
	DefaultDirections = 4

	// MinDirections is the lowest number of wave directions a field accepts.
	MinDirections = 2
)

// Config describes a sum of directional Gerstner-style waves. The directions are
// spread evenly around the circle.
type Config struct {
	// Amplitude is the peak height of the summed field in metres.
	Amplitude float64
	// Frequency is the base angular wave number in rad/m.
	Frequency float64
	// Speed is the phase speed in m/s.
	Speed float64
	// Directions is the number of wave directions, at least MinDirections.
	Directions int
}

// DefaultConfig returns a moderate swell.
func DefaultConfig() Config {
	return Config{
		Amplitude:  DefaultAmplitude,
		Frequency:  DefaultFrequency,
		Speed:      DefaultSpeed,
		Directions: DefaultDirections,
	}
}

// Validate returns a ConfigurationError if the field cannot be built from c.
func (c Config) Validate() error {
	if c.Directions < MinDirections {
		return oerror.Config("wave", "Directions", "need at least %d directions, got %d", MinDirections, c.Directions)
	}
	if c.Amplitude < 0 || !finite(c.Amplitude) {
		return oerror.Config("wave", "Amplitude", "must be a finite value >= 0, got %v", c.Amplitude)
	}
	if !finite(c.Frequency) {
		return oerror.Config("wave", "Frequency", "must be finite, got %v", c.Frequency)
	}
	if !finite(c.Speed) {
		return oerror.Config("wave", "Speed", "must be finite, got %v", c.Speed)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

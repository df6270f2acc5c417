package config

import (
	"time"

	"github.com/pkg/errors"

	"github.com/urban-traffic-lab/tmc-to-sumo/counts"
)

// InputConfig names the three input files every run needs.
type InputConfig struct {
	NetworkPBF    string `yaml:"networkPBF" validate:"required"`
	CountsCSV     string `yaml:"countsCSV" validate:"required"`
	Intersections string `yaml:"intersections" validate:"required"`
}

// SimulationConfig bounds the demand window. Times are ISO-8601 local
// timestamps matching the counts dataset. When both are empty the window
// defaults to the overall time range of the counts data.
type SimulationConfig struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Window parses the configured simulation bounds.
func (c SimulationConfig) Window() (time.Time, time.Time, error) {
	start, err := counts.ParseLocalTime(c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "parse simulation start")
	}
	end, err := counts.ParseLocalTime(c.End)
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "parse simulation end")
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, errors.New("simulation end must be after start")
	}
	return start, end, nil
}

// LocatorConfig controls nearest-junction resolution.
// OnToleranceExceeded is "accept" or "reject"; reject mirrors a user
// declining the original confirmation prompt.
type LocatorConfig struct {
	ToleranceMeters     float64 `yaml:"toleranceMeters" validate:"gte=0"`
	OnToleranceExceeded string  `yaml:"onToleranceExceeded" validate:"omitempty,oneof=accept reject"`
}

// SynthesisConfig controls flow generation. OnUnmappedTurn selects what a
// missing direction in the junction mapping does: "abort" discards the
// whole intersection (the historical behaviour), "skip" drops only the
// offending column.
type SynthesisConfig struct {
	OnUnmappedTurn string `yaml:"onUnmappedTurn" validate:"omitempty,oneof=abort skip"`
}

// VehicleType carries the simulator vType attributes for one vehicle class.
type VehicleType struct {
	CarFollowModel string `yaml:"carFollowModel"`
	Accel          string `yaml:"accel"`
	Decel          string `yaml:"decel"`
	Sigma          string `yaml:"sigma"`
	Length         string `yaml:"length"`
	MaxSpeed       string `yaml:"maxSpeed"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	Input        InputConfig            `yaml:"input" validate:"required"`
	Simulation   SimulationConfig       `yaml:"simulation"`
	Locator      LocatorConfig          `yaml:"locator"`
	Synthesis    SynthesisConfig        `yaml:"synthesis"`
	CachePath    string                 `yaml:"cachePath"`
	OutputFolder string                 `yaml:"outputFolder"`
	VehicleTypes map[string]VehicleType `yaml:"vehicleTypes"`
}

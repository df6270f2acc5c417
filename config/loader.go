package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultTolerance is the nearest-junction distance tolerance in
	// network units (meters for projected networks).
	DefaultTolerance = 10.0

	DefaultCachePath    = "data/processed_data.json"
	DefaultOutputFolder = "output"
)

// Load reads and validates the run configuration from the given path, or
// from config.yml in the working directory when path is empty.
func Load(path string) (AppConfig, error) {
	paths := []string{"config.yml"}
	if path != "" {
		paths = []string{path}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return AppConfig{}, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, err
	}
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return AppConfig{}, err
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Locator.ToleranceMeters == 0 {
		cfg.Locator.ToleranceMeters = DefaultTolerance
	}
	if cfg.Locator.OnToleranceExceeded == "" {
		cfg.Locator.OnToleranceExceeded = "reject"
	}
	if cfg.Synthesis.OnUnmappedTurn == "" {
		cfg.Synthesis.OnUnmappedTurn = "abort"
	}
	if cfg.CachePath == "" {
		cfg.CachePath = DefaultCachePath
	}
	if cfg.OutputFolder == "" {
		cfg.OutputFolder = DefaultOutputFolder
	}
	if cfg.VehicleTypes == nil {
		cfg.VehicleTypes = DefaultVehicleTypes()
	}
}

// DefaultVehicleTypes returns the vType parameter sets used when the
// configuration does not override them.
func DefaultVehicleTypes() map[string]VehicleType {
	return map[string]VehicleType{
		"car": {
			CarFollowModel: "Krauss", Accel: "1.0", Decel: "4.5",
			Sigma: "0.5", Length: "5", MaxSpeed: "25",
		},
		"truck": {
			CarFollowModel: "Krauss", Accel: "0.8", Decel: "4.0",
			Sigma: "0.5", Length: "12", MaxSpeed: "20",
		},
		"bus": {
			CarFollowModel: "Krauss", Accel: "0.7", Decel: "4.0",
			Sigma: "0.5", Length: "12", MaxSpeed: "20",
		},
	}
}

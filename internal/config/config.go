package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/UCSIG/attiny85-time-switch/internal/calibration"
)

// DefaultPath is where commands look for the config when --config is
// not given.
const DefaultPath = "calibgen.toml"

// Config carries every constant the generator needs: nothing reads
// ambient globals, so tests can run with alternate windows.
type Config struct {
	// Document is the markdown file holding the calibration table.
	Document string `toml:"document"`
	// OutputDir receives the per-chip binary artifacts.
	OutputDir string `toml:"output_dir"`

	// NominalHz is the untrimmed sleep-clock rate.
	NominalHz uint64 `toml:"nominal_hz"`
	// MaxDeviationPerc / MinDeviationPerc bound the accepted band
	// above and below NominalHz, in percent.
	MaxDeviationPerc uint64 `toml:"max_deviation_perc"`
	MinDeviationPerc uint64 `toml:"min_deviation_perc"`

	// HeaderMarker is the substring identifying the table header line.
	HeaderMarker string `toml:"header_marker"`
	// Magic is the sentinel byte appended to every artifact.
	Magic byte `toml:"magic"`
}

// Default returns the configuration matching the shipped hardware: a
// 128kHz watchdog clock with a ±25% acceptance band.
func Default() Config {
	return Config{
		Document:         "clock_calibrations.md",
		OutputDir:        ".",
		NominalHz:        128000,
		MaxDeviationPerc: 25,
		MinDeviationPerc: 25,
		HeaderMarker:     "Chip ID",
		Magic:            0xCD,
	}
}

// Load reads a TOML config from path, layering it over Default so
// absent keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load when path names an existing file and
// falls back to Default when the default path is absent. An explicit
// path that does not exist is still an error.
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return Default(), nil
		}
	}
	return Load(path)
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Document) == "" {
		return fmt.Errorf("config missing document")
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return fmt.Errorf("config missing output_dir")
	}
	if cfg.NominalHz == 0 {
		return fmt.Errorf("config nominal_hz must be positive")
	}
	if cfg.MinDeviationPerc >= 100 {
		return fmt.Errorf("config min_deviation_perc must be below 100")
	}
	if strings.TrimSpace(cfg.HeaderMarker) == "" {
		return fmt.Errorf("config missing header_marker")
	}
	return nil
}

// Window derives the tolerance band from the configured rate and
// deviation percentages.
func (c Config) Window() calibration.Window {
	return calibration.Window{
		NominalHz: c.NominalHz,
		MaxPerc:   c.MaxDeviationPerc,
		MinPerc:   c.MinDeviationPerc,
	}
}

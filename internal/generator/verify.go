package generator

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/UCSIG/attiny85-time-switch/internal/artifact"
)

var ErrVerifyFailed = errors.New("generator: calibration files failed verification")

// VerifySummary reports the outcome of a verify pass.
type VerifySummary struct {
	Checked int
	Bad     int
}

// Verify decodes every calibration file in the output directory and
// applies the firmware's own acceptance rules: exact length, sentinel
// byte, and frequency inside the configured window. Files the firmware
// would reject make the pass fail.
func (r *Runner) Verify() (VerifySummary, error) {
	pattern := filepath.Join(r.cfg.OutputDir, "clock_calibration_*.bin")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return VerifySummary{}, fmt.Errorf("generator: glob artifacts: %w", err)
	}

	window := r.cfg.Window()
	summary := VerifySummary{Checked: len(paths)}
	for _, path := range paths {
		frequencyHz, err := artifact.ReadFile(path, r.cfg.Magic)
		if err != nil {
			summary.Bad++
			r.log.Error().Str("file", path).Err(err).Msg("artifact rejected")
			continue
		}
		if !window.Contains(frequencyHz) {
			summary.Bad++
			r.log.Error().Str("file", path).
				Uint64("frequency_hz", frequencyHz).
				Msg("stored frequency outside calibration window")
			continue
		}
		r.log.Info().Str("file", path).Uint64("frequency_hz", frequencyHz).Msg("artifact ok")
	}

	r.log.Info().Int("checked", summary.Checked).Int("bad", summary.Bad).Msg("verify complete")
	if summary.Bad > 0 {
		return summary, fmt.Errorf("%w: %d of %d", ErrVerifyFailed, summary.Bad, summary.Checked)
	}
	return summary, nil
}

// Package generator owns the single-pass run that turns the
// calibration table into binary artifacts.
//
// Ownership boundary:
// - document open + row extraction ordering
// - per-row validate-then-write control flow and the fatal-abort gate
// - single-instance run lock
package generator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"github.com/UCSIG/attiny85-time-switch/internal/artifact"
	"github.com/UCSIG/attiny85-time-switch/internal/calibration"
	"github.com/UCSIG/attiny85-time-switch/internal/caltable"
	"github.com/UCSIG/attiny85-time-switch/internal/config"
)

const lockFilename = "calibgen.lock"

var ErrLockHeld = errors.New("generator: another calibgen run holds the output lock")

// Summary reports what one run did.
type Summary struct {
	Rows    int
	Written int
	Skipped int
}

// Runner executes generate runs against one configuration.
type Runner struct {
	cfg config.Config
	log zerolog.Logger
}

func New(cfg config.Config, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

// Run processes the whole document. Rows are handled strictly in
// document order; the first out-of-tolerance or malformed row aborts
// the run with an error, leaving files written for earlier rows in
// place. A document without the header marker is a successful
// zero-row run.
func (r *Runner) Run() (Summary, error) {
	lock := flock.New(filepath.Join(r.cfg.OutputDir, lockFilename))
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("generator: acquire run lock: %w", err)
	}
	if !locked {
		return Summary{}, ErrLockHeld
	}
	defer lock.Unlock()

	rows, err := r.extract()
	if err != nil {
		return Summary{}, err
	}

	window := r.cfg.Window()
	summary := Summary{Rows: len(rows)}
	for _, row := range rows {
		chipID, frequencyHz, err := caltable.ParseRow(row)
		if err != nil {
			return summary, err
		}
		rec := calibration.Record{ChipID: chipID, FrequencyHz: frequencyHz}

		if v := calibration.Validate(rec, window); v != nil {
			r.log.Error().
				Str("chip", fmt.Sprintf("%08x", rec.ChipID)).
				Uint64("frequency_hz", rec.FrequencyHz).
				Msg("frequency outside calibration window, stopping")
			return summary, v
		}

		path, exists, err := artifact.Write(r.cfg.OutputDir, rec.ChipID, rec.FrequencyHz, r.cfg.Magic)
		if err != nil {
			return summary, err
		}
		if exists {
			summary.Skipped++
			r.log.Info().Str("file", path).Msg("already exists, skipping")
			continue
		}
		summary.Written++
		r.log.Info().Str("file", path).
			Str("chip", fmt.Sprintf("%08x", rec.ChipID)).
			Uint64("frequency_hz", rec.FrequencyHz).
			Msg("wrote calibration file")
	}

	r.log.Info().
		Int("rows", summary.Rows).
		Int("written", summary.Written).
		Int("skipped", summary.Skipped).
		Msg("run complete")
	return summary, nil
}

func (r *Runner) extract() ([]string, error) {
	f, err := os.Open(r.cfg.Document)
	if err != nil {
		return nil, fmt.Errorf("generator: open document: %w", err)
	}
	defer f.Close()
	return caltable.Extract(f, r.cfg.HeaderMarker)
}

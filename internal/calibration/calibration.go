// Package calibration owns the per-chip calibration record and the
// tolerance contract applied to measured sleep-clock frequencies.
package calibration

import (
	"fmt"
	"math"
)

// Record is one measured calibration value for one physical chip.
type Record struct {
	ChipID      uint64
	FrequencyHz uint64
}

// String formats the record the way diagnostics reference it: the chip
// id as an 8-hex-digit value.
func (r Record) String() string {
	return fmt.Sprintf("chip %08x (%dHz)", r.ChipID, r.FrequencyHz)
}

// Window is the inclusive frequency band a measurement must fall in,
// expressed by the nominal rate and the allowed deviation percentages
// in each direction.
type Window struct {
	NominalHz uint64
	MaxPerc   uint64
	MinPerc   uint64
}

// Contains reports whether frequencyHz lies within the window. Bounds
// are inclusive and computed without truncation by cross-multiplying:
// freq*100 against nominal*(100±perc).
func (w Window) Contains(frequencyHz uint64) bool {
	if frequencyHz > math.MaxUint64/100 {
		// Cannot overflow the cross-multiplication, and is far above
		// any representable window anyway.
		return false
	}
	if frequencyHz*100 > w.NominalHz*(100+w.MaxPerc) {
		return false
	}
	if frequencyHz*100 < w.NominalHz*(100-w.MinPerc) {
		return false
	}
	return true
}

// Bounds returns the inclusive lower and upper window edges in hertz,
// rounded toward the inside of the window so that Contains(LowerHz())
// and Contains(UpperHz()) always hold. Display use only; Contains is
// the authoritative check.
func (w Window) Bounds() (lowerHz, upperHz uint64) {
	lowerHz = (w.NominalHz*(100-w.MinPerc) + 99) / 100
	upperHz = w.NominalHz * (100 + w.MaxPerc) / 100
	return lowerHz, upperHz
}

// Violation reports a record outside the tolerance window. It is
// returned, not logged or exited on, so the run driver owns
// termination.
type Violation struct {
	Record Record
	Window Window
}

func (v *Violation) Error() string {
	lower, upper := v.Window.Bounds()
	return fmt.Sprintf("calibration: frequency %dHz of chip %08x outside window [%d, %d]Hz",
		v.Record.FrequencyHz, v.Record.ChipID, lower, upper)
}

// Validate checks the record against the window and returns a
// *Violation describing the failure, or nil if it passes.
func Validate(rec Record, w Window) *Violation {
	if w.Contains(rec.FrequencyHz) {
		return nil
	}
	return &Violation{Record: rec, Window: w}
}

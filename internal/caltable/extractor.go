package caltable

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A data row has exactly four pipe characters. Chip id and frequency
// are the first two cells; the remaining cell is commentary.
const dataRowPipeCount = 4

var (
	ErrRowTooShort  = errors.New("caltable: row has too few cells")
	ErrBadChipID    = errors.New("caltable: chip id is not a non-negative base-10 integer")
	ErrBadFrequency = errors.New("caltable: frequency is not a non-negative base-10 integer")
	ErrScanDocument = errors.New("caltable: document scan failed")
)

type scanState int

const (
	stateBeforeHeader scanState = iota
	stateAfterHeader
)

// Extractor locates the calibration table inside a line-oriented
// document and yields its raw rows in document order.
//
// The state machine is deliberately literal about the source contract:
// the since-header counter starts at -1 and advances after the row
// check, so the line immediately following the header (the markdown
// separator row) is never a data row, while any later four-pipe line
// is, even past the visual end of the table.
type Extractor struct {
	marker string

	state   scanState
	counter int
}

// NewExtractor returns an extractor keyed on the given header marker
// substring.
func NewExtractor(marker string) *Extractor {
	return &Extractor{marker: marker, state: stateBeforeHeader, counter: -1}
}

// Feed advances the state machine by one line and reports whether the
// line qualifies as a data row.
func (e *Extractor) Feed(line string) bool {
	isRow := e.counter >= 0 && strings.Count(line, "|") == dataRowPipeCount

	if e.state == stateAfterHeader {
		e.counter++
	}
	if e.state == stateBeforeHeader && strings.Contains(line, e.marker) {
		e.state = stateAfterHeader
	}

	return isRow
}

// Extract runs the state machine over the whole document and returns
// the qualifying raw rows in order. A document without the header
// marker, or with no qualifying line after it, yields an empty slice
// and no error.
func Extract(r io.Reader, marker string) ([]string, error) {
	ex := NewExtractor(marker)
	var rows []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := sc.Text(); ex.Feed(line) {
			rows = append(rows, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanDocument, err)
	}
	return rows, nil
}

// ParseRow splits a raw data row on pipes and parses the first two
// cells as chip id and measured frequency. Both values are
// non-negative by contract; anything else is a data-authoring defect
// and fails the whole run.
func ParseRow(row string) (chipID, frequencyHz uint64, err error) {
	cells := strings.Split(row, "|")
	if len(cells) < 3 {
		return 0, 0, fmt.Errorf("%w: %q", ErrRowTooShort, row)
	}

	chipID, err = strconv.ParseUint(strings.TrimSpace(cells[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadChipID, strings.TrimSpace(cells[1]))
	}
	frequencyHz, err = strconv.ParseUint(strings.TrimSpace(cells[2]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadFrequency, strings.TrimSpace(cells[2]))
	}
	return chipID, frequencyHz, nil
}

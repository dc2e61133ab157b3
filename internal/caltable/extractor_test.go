package caltable

import (
	"errors"
	"strings"
	"testing"
)

const sampleDocument = `# Clock calibrations

Measured with a frequency counter on PB4.

| Chip ID | Frequency (Hz) | Initials |
|---------|----------------|----------|
| 1 | 150000 | JF |
| 2 | 128000 | JF |
`

func TestExtractSampleDocument(t *testing.T) {
	rows, err := Extract(strings.NewReader(sampleDocument), "Chip ID")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %q", len(rows), rows)
	}
	if rows[0] != "| 1 | 150000 | JF |" || rows[1] != "| 2 | 128000 | JF |" {
		t.Fatalf("unexpected rows: %q", rows)
	}
}

func TestExtractNoHeaderYieldsNothing(t *testing.T) {
	doc := "| 1 | 150000 | JF |\n| 2 | 128000 | JF |\n"
	rows, err := Extract(strings.NewReader(doc), "Chip ID")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows without header, got %q", rows)
	}
}

func TestExtractFourPipeLineBeforeHeaderIgnored(t *testing.T) {
	doc := "|---|---|---|\nChip ID table below\nintro\n| 7 | 130000 | JF |\n"
	rows, err := Extract(strings.NewReader(doc), "Chip ID")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 1 || rows[0] != "| 7 | 130000 | JF |" {
		t.Fatalf("unexpected rows: %q", rows)
	}
}

// The counter starts only after the header, so the line immediately
// following it is never a data row even with four pipes. That is what
// keeps the markdown separator row out of the data.
func TestExtractFirstLineAfterHeaderSkipped(t *testing.T) {
	doc := "| Chip ID | Frequency (Hz) | Initials |\n|---|---|---|\n| 2 | 128000 | JF |\n"
	rows, err := Extract(strings.NewReader(doc), "Chip ID")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 1 || rows[0] != "| 2 | 128000 | JF |" {
		t.Fatalf("expected only the data row, got %q", rows)
	}
}

// No end-of-table marker exists: a four-pipe line after prose is still
// picked up once the header has been seen.
func TestExtractLateRowStillQualifies(t *testing.T) {
	doc := sampleDocument + "\nSome closing prose.\n\n| 3 | 140000 | JF |\n"
	rows, err := Extract(strings.NewReader(doc), "Chip ID")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 3 || rows[2] != "| 3 | 140000 | JF |" {
		t.Fatalf("unexpected rows: %q", rows)
	}
}

func TestExtractWrongPipeCountNotARow(t *testing.T) {
	doc := "| Chip ID | Frequency (Hz) | Initials |\n\n| 1 | 150000 |\n| 1 | 150000 | JF | extra |\n"
	rows, err := Extract(strings.NewReader(doc), "Chip ID")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %q", rows)
	}
}

func TestParseRow(t *testing.T) {
	chipID, frequencyHz, err := ParseRow("|  12  |  150000  | JF |")
	if err != nil {
		t.Fatalf("parse row: %v", err)
	}
	if chipID != 12 || frequencyHz != 150000 {
		t.Fatalf("unexpected values: id=%d freq=%d", chipID, frequencyHz)
	}
}

func TestParseRowBadChipID(t *testing.T) {
	_, _, err := ParseRow("| abc | 150000 | JF |")
	if !errors.Is(err, ErrBadChipID) {
		t.Fatalf("expected ErrBadChipID, got %v", err)
	}
}

func TestParseRowNegativeFrequency(t *testing.T) {
	_, _, err := ParseRow("| 1 | -5 | JF |")
	if !errors.Is(err, ErrBadFrequency) {
		t.Fatalf("expected ErrBadFrequency, got %v", err)
	}
}

func TestParseRowTooShort(t *testing.T) {
	_, _, err := ParseRow("| 1 ")
	if !errors.Is(err, ErrRowTooShort) {
		t.Fatalf("expected ErrRowTooShort, got %v", err)
	}
}

// Package artifact owns the binary calibration file format consumed by
// the firmware at boot.
//
// Ownership boundary:
// - the fixed 5-byte layout (big-endian frequency + sentinel)
// - deterministic filename derivation from the chip id
// - create-once file writes (pre-existing files are never touched)
package artifact

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
)

// Size is the exact length of a calibration file: a 4-byte big-endian
// frequency followed by one sentinel byte.
const Size = 5

// DefaultMagic marks a complete, genuine calibration record. The
// firmware discards files that do not end in it.
const DefaultMagic byte = 0xCD

var (
	ErrFrequencyRange = errors.New("artifact: frequency does not fit 4 bytes")
	ErrShortFile      = errors.New("artifact: truncated calibration file")
	ErrBadMagic       = errors.New("artifact: sentinel byte mismatch")
)

// Encode renders frequencyHz into the fixed wire layout.
func Encode(frequencyHz uint64, magic byte) ([]byte, error) {
	if frequencyHz > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %dHz", ErrFrequencyRange, frequencyHz)
	}
	buf := make([]byte, Size)
	binary.BigEndian.PutUint32(buf[0:4], uint32(frequencyHz))
	buf[4] = magic
	return buf, nil
}

// Decode parses a calibration file body and checks its sentinel.
func Decode(data []byte, magic byte) (frequencyHz uint64, err error) {
	if len(data) != Size {
		return 0, fmt.Errorf("%w: %d bytes", ErrShortFile, len(data))
	}
	if data[4] != magic {
		return 0, fmt.Errorf("%w: got 0x%02X want 0x%02X", ErrBadMagic, data[4], magic)
	}
	return uint64(binary.BigEndian.Uint32(data[0:4])), nil
}

// Filename derives the artifact name for a chip id: the id zero-padded
// to 3 decimal digits inside the fixed pattern.
func Filename(chipID uint64) string {
	return fmt.Sprintf("clock_calibration_%03d.bin", chipID)
}

// Write creates the artifact for frequencyHz under dir, named by
// chipID. The create is atomic on a not-yet-existing path; if the file
// is already present nothing is touched and exists is true. Re-running
// against an unchanged table is therefore a no-op.
func Write(dir string, chipID, frequencyHz uint64, magic byte) (path string, exists bool, err error) {
	body, err := Encode(frequencyHz, magic)
	if err != nil {
		return "", false, err
	}

	path = filepath.Join(dir, Filename(chipID))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return path, true, nil
		}
		return "", false, fmt.Errorf("artifact: create %s: %w", path, err)
	}

	if _, err := f.Write(body); err != nil {
		f.Close()
		return "", false, fmt.Errorf("artifact: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", false, fmt.Errorf("artifact: close %s: %w", path, err)
	}
	return path, false, nil
}

// ReadFile loads and decodes one artifact from disk.
func ReadFile(path string, magic byte) (frequencyHz uint64, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("artifact: read %s: %w", path, err)
	}
	return Decode(data, magic)
}

package config

import (
	"fmt"
	"os"
)

// WriteTemplate writes the sample config to path, refusing to clobber
// an existing file unless overwrite is set.
func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(sampleTemplate), 0o644)
}

const sampleTemplate = `# calibgen configuration.

# Markdown document holding the calibration table. The table is located
# by a line containing header_marker; data rows carry four pipes with
# chip id and frequency as the first two cells:
# | <chip id> | <frequency hz> | <initials> |
document = "clock_calibrations.md"

# Directory receiving the clock_calibration_<id>.bin artifacts.
output_dir = "."

# Untrimmed sleep-clock rate and the accepted deviation band.
nominal_hz = 128000
max_deviation_perc = 25
min_deviation_perc = 25

header_marker = "Chip ID"

# Sentinel byte the firmware requires at offset 4.
magic = 0xCD
`

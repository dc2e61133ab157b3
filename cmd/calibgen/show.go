package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/UCSIG/attiny85-time-switch/internal/artifact"
	"github.com/UCSIG/attiny85-time-switch/internal/caltable"
)

// show renders the parsed table with window and artifact status. Unlike
// generate it keeps going past malformed rows, so the whole document
// can be reviewed in one pass.
func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Render the calibration table with window and file status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			f, err := os.Open(cfg.Document)
			if err != nil {
				return fmt.Errorf("open document: %w", err)
			}
			defer f.Close()

			rows, err := caltable.Extract(f, cfg.HeaderMarker)
			if err != nil {
				return err
			}

			window := cfg.Window()
			out := make([][]string, 0, len(rows))
			for _, row := range rows {
				chipID, frequencyHz, err := caltable.ParseRow(row)
				if err != nil {
					out = append(out, []string{"?", "?", "malformed", "-"})
					continue
				}

				status := "ok"
				if !window.Contains(frequencyHz) {
					status = "out of window"
				}
				state := "pending"
				if _, err := os.Stat(filepath.Join(cfg.OutputDir, artifact.Filename(chipID))); err == nil {
					state = "written"
				}
				out = append(out, []string{
					fmt.Sprintf("%08x", chipID),
					strconv.FormatUint(frequencyHz, 10),
					status,
					state,
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Chip ID", "Frequency (Hz)", "Window", "Artifact"}, out))
			return nil
		},
	}
}

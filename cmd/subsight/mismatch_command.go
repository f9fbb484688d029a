package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subsight/internal/transcript"
)

func newMismatchCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "mismatch <subtitles.json> <transcript.json>",
		Short: "Find spoken lines missing from the subtitles",
		Long: `Mismatch checks every transcription cue for subtitle coverage inside
its time window. A spoken line with no subtitle nearby is high severity; a
line whose text is not contained in the nearby subtitles is medium.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			cues, err := loadCues(args[0], logger)
			if err != nil {
				return err
			}
			segments, err := loadSegments(args[1], logger)
			if err != nil {
				return err
			}

			mismatches := transcript.DetectMismatches(cues, segments, cfg.Mismatch.ToleranceSeconds)

			if jsonOut {
				return writeJSON(cmd, mismatches)
			}

			out := cmd.OutOrStdout()
			if len(mismatches) == 0 {
				fmt.Fprintln(out, "No mismatches found")
				return nil
			}

			headers := []string{"Window", "Severity", "Type", "Spoken", "Subtitles"}
			aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
			rows := make([][]string, 0, len(mismatches))
			for _, m := range mismatches {
				window := formatSeconds(m.StartTime) + " - " + formatSeconds(m.EndTime)
				rows = append(rows, []string{
					window,
					m.Severity,
					m.MismatchType,
					truncateText(m.TranscriptionText, 40),
					truncateText(m.SubtitleText, 40),
				})
			}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			fmt.Fprintf(out, "%d mismatches\n", len(mismatches))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the mismatches as JSON")
	return cmd
}

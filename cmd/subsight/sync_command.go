package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subsight/internal/syncreport"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "sync <subtitles.json> <transcript.json>",
		Short: "Compare finalized subtitles against a transcription",
		Long: `Sync matches every subtitle cue to its best-overlapping transcription
cue by word overlap, flags duplicated subtitles, and reports an overall
GOOD, WARNING, or BAD verdict.

The subtitles argument accepts either a plain JSON cue array or a
classification payload, which is normalized first so only included rows
are compared.`,
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

			report := syncreport.Compare(cues, segments, syncreport.Options{
				SyncedThreshold:           cfg.Sync.SyncedThreshold,
				LikelySyncedThreshold:     cfg.Sync.LikelySyncedThreshold,
				DuplicateOverlapThreshold: cfg.Sync.DuplicateOverlapThreshold,
				WarningMisalignedRatio:    cfg.Sync.WarningMisalignedRatio,
			})

			if jsonOut {
				return writeJSON(cmd, report)
			}
			renderSyncReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the full report as JSON")
	return cmd
}

func renderSyncReport(cmd *cobra.Command, report *syncreport.Report) {
	out := cmd.OutOrStdout()
	summary := report.Summary

	overall := string(summary.OverallSyncStatus)
	if isTerminal(out) {
		overall = colorizeOverall(summary.OverallSyncStatus)
	}
	fmt.Fprintf(out, "Sync: %s  (%d subtitles: %d synced, %d likely, %d misaligned, %d duplicates, avg overlap %s)\n",
		overall,
		summary.TotalSubtitles,
		summary.Synced,
		summary.LikelySynced,
		summary.Misaligned,
		summary.DuplicatesFound,
		formatRatio(summary.AvgWordOverlapRatio),
	)

	if len(report.Details) > 0 {
		headers := []string{"#", "Window", "Subtitle", "Matched", "Overlap", "Status", "Issues"}
		aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft}
		rows := make([][]string, 0, len(report.Details))
		for _, detail := range report.Details {
			window := formatSeconds(detail.SubtitleTimeSeconds[0]) + " - " + formatSeconds(detail.SubtitleTimeSeconds[1])
			rows = append(rows, []string{
				strconv.Itoa(detail.SubtitleIndex),
				window,
				truncateText(detail.SubtitleText, 36),
				truncateText(detail.MatchedTranscriptionText, 36),
				formatRatio(detail.WordOverlapRatio),
				string(detail.Status),
				strings.Join(detail.Issues, "; "),
			})
		}
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
	}

	renderDuplicates(cmd, report)
}

const (
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiRed    = "\x1b[31m"
	ansiReset  = "\x1b[0m"
)

func colorizeOverall(overall syncreport.Overall) string {
	switch overall {
	case syncreport.OverallGood:
		return ansiGreen + string(overall) + ansiReset
	case syncreport.OverallWarning:
		return ansiYellow + string(overall) + ansiReset
	default:
		return ansiRed + string(overall) + ansiReset
	}
}

func renderDuplicates(cmd *cobra.Command, report *syncreport.Report) {
	out := cmd.OutOrStdout()
	for _, dup := range report.Duplicates {
		fmt.Fprintf(out, "Duplicate subtitles %d and %d overlap %s - %s: %q / %q\n",
			dup.SubtitleIndices[0],
			dup.SubtitleIndices[1],
			formatSeconds(dup.OverlappingTimeSeconds[0]),
			formatSeconds(dup.OverlappingTimeSeconds[1]),
			dup.Texts[0],
			dup.Texts[1],
		)
	}
}

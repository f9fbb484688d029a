package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"subsight/internal/ocr"
	"subsight/internal/syncreport"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var (
		normalizeOnly  bool
		transcriptPath string
		save           bool
		jsonOut        bool
		videoDuration  float64
	)

	cmd := &cobra.Command{
		Use:   "classify <payload.json>",
		Short: "Classify OCR text detections into subtitles and fixed text",
		Long: `Classify runs the full pipeline over a raw video-intelligence OCR
document: partial-sequence merging, subtitle-versus-fixed scoring, semantic
tagging, ordering, the inclusion filter, and spell-checking when a provider
is configured.

With --normalize the input is treated as an already-classified payload and
only re-normalized, which is idempotent for payloads that are already in
canonical form.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			data, source, err := readInput(args[0])
			if err != nil {
				return err
			}

			pipelineOpts := ocr.Options{
				MinSubtitleConfidence: cfg.Classification.MinSubtitleConfidence,
				SimultaneityWindow:    cfg.Classification.SimultaneityWindowSeconds,
				Logger:                logger,
			}

			var result ocr.Result
			if normalizeOnly {
				payload, err := ocr.ParsePayload(data)
				if err != nil {
					return err
				}
				result = ocr.Normalize(payload, pipelineOpts)
			} else {
				checker, err := ctx.spellChecker()
				if err != nil {
					return err
				}
				result, err = ocr.ClassifyRaw(cmd.Context(), data, checker, ocr.ClassifyOptions{
					Options:               pipelineOpts,
					MergeOverlapThreshold: cfg.Classification.MergeBBoxOverlap,
					MergeMaxGapSeconds:    cfg.Classification.MergeMaxGapSeconds,
					VideoDuration:         videoDuration,
				})
				if err != nil {
					return err
				}
			}

			if strings.TrimSpace(transcriptPath) != "" {
				segments, err := loadSegments(transcriptPath, logger)
				if err != nil {
					return err
				}
				cues := ocr.FinalSubtitleCues(result.AuditRows)
				result.SyncReport = syncreport.Compare(cues, segments, syncreport.Options{
					SyncedThreshold:           cfg.Sync.SyncedThreshold,
					LikelySyncedThreshold:     cfg.Sync.LikelySyncedThreshold,
					DuplicateOverlapThreshold: cfg.Sync.DuplicateOverlapThreshold,
					WarningMisalignedRatio:    cfg.Sync.WarningMisalignedRatio,
				})
			}

			if save {
				run, err := saveRun(cmd, ctx, source, result)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved run %s\n", run.ID)
			}

			if jsonOut {
				return writeJSON(cmd, result)
			}
			renderClassification(cmd, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&normalizeOnly, "normalize", false, "Treat the input as an already-classified payload and re-normalize it")
	cmd.Flags().StringVarP(&transcriptPath, "transcript", "t", "", "Transcription JSON to compare the final subtitles against")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run to the history database")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the full result as JSON")
	cmd.Flags().Float64Var(&videoDuration, "video-duration", 0, "Video duration in seconds (inferred from detections when omitted)")

	return cmd
}

func renderClassification(cmd *cobra.Command, result ocr.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Status: %s  Mode: %s\n", result.Status, result.Mode)
	fmt.Fprintf(out, "Detections: %d raw, %d merged, %d subtitle, %d fixed, %d partial\n",
		result.Counts.Raw,
		result.Counts.Merged,
		result.Counts.Subtitle,
		result.Counts.Fixed,
		result.Counts.Partial,
	)
	fmt.Fprintf(out, "Final subtitles: %d  Spelling: %d checked, %d with errors\n",
		result.Counts.FilteredSubtitles,
		result.Counts.SpellingChecked,
		result.Counts.SpellingWithError,
	)

	if len(result.AuditRows) > 0 {
		headers := []string{"#", "ID", "Start", "End", "Text", "Class", "Reason", "Spelling"}
		aligns := []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignLeft, alignLeft, alignLeft, alignLeft}
		rows := make([][]string, 0, len(result.AuditRows))
		for _, row := range result.AuditRows {
			rows = append(rows, []string{
				strconv.Itoa(row.Order),
				row.DetectionID,
				formatSeconds(row.StartTime),
				formatSeconds(row.EndTime),
				truncateText(row.Text, 48),
				string(row.StructuralClassification),
				string(row.SubtitleFilterReason),
				string(row.SpellingStatus),
			})
		}
		fmt.Fprintln(out, renderTable(headers, rows, aligns))
	}

	if result.SyncReport != nil {
		fmt.Fprintln(out)
		renderSyncReport(cmd, result.SyncReport)
	}
}

func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"subsight/internal/config"
	"subsight/internal/ocr"
	"subsight/internal/transcript"
)

func readInput(path string) ([]byte, string, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	return data, filepath.Base(expanded), nil
}

// loadCues reads finalized subtitle cues from either a plain cue array or a
// classification payload, which is normalized first so only included rows
// become cues.
func loadCues(path string, logger *slog.Logger) ([]transcript.Cue, error) {
	data, _, err := readInput(path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var cues []transcript.Cue
		if err := json.Unmarshal(trimmed, &cues); err != nil {
			return nil, fmt.Errorf("decode subtitle cues: %w", err)
		}
		return cues, nil
	}

	payload, err := ocr.ParsePayload(data)
	if err != nil {
		return nil, err
	}
	result := ocr.Normalize(payload, ocr.Options{Logger: logger})
	return ocr.FinalSubtitleCues(result.AuditRows), nil
}

// loadSegments accepts either a bare transcription cue array or a
// {"segments": [...]} wrapper document.
func loadSegments(path string, logger *slog.Logger) ([]transcript.Segment, error) {
	data, _, err := readInput(path)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapper struct {
			Segments json.RawMessage `json:"segments"`
		}
		if err := json.Unmarshal(trimmed, &wrapper); err == nil && len(wrapper.Segments) > 0 {
			trimmed = wrapper.Segments
		}
	}
	return transcript.ParseSegments(trimmed, logger)
}

func formatSeconds(value float64) string {
	return strconv.FormatFloat(value, 'f', 3, 64) + "s"
}

func formatRatio(value float64) string {
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

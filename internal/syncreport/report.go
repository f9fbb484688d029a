package syncreport

// Status classifies one subtitle cue against its best transcription match.
type Status string

// Per-cue sync statuses.
const (
	StatusSynced       Status = "SYNCED"
	StatusLikelySynced Status = "LIKELY_SYNCED"
	StatusMisaligned   Status = "MISALIGNED"
)

// Overall is the aggregate verdict for a whole report.
type Overall string

// Overall sync statuses.
const (
	OverallGood    Overall = "GOOD"
	OverallWarning Overall = "WARNING"
	OverallBad     Overall = "BAD"
)

// Detail is one subtitle-cue-to-transcription-cue comparison result.
type Detail struct {
	SubtitleIndex            int        `json:"subtitle_index"`
	SubtitleTimeSeconds      [2]float64 `json:"subtitle_time_seconds"`
	SubtitleText             string     `json:"subtitle_text"`
	MatchedTranscriptionText string     `json:"matched_transcription_text"`
	WordOverlapRatio         float64    `json:"word_overlap_ratio"`
	EditDistance             int        `json:"edit_distance"`
	Status                   Status     `json:"status"`
	Issues                   []string   `json:"issues"`
}

// Duplicate records two subtitle cues whose windows overlap while showing
// effectively the same text.
type Duplicate struct {
	SubtitleIndices        [2]int     `json:"subtitle_indices"`
	OverlappingTimeSeconds [2]float64 `json:"overlapping_time_seconds"`
	Texts                  [2]string  `json:"texts"`
}

// Summary aggregates a report.
type Summary struct {
	TotalSubtitles      int     `json:"total_subtitles"`
	Synced              int     `json:"synced"`
	LikelySynced        int     `json:"likely_synced"`
	Misaligned          int     `json:"misaligned"`
	DuplicatesFound     int     `json:"duplicates_found"`
	AvgWordOverlapRatio float64 `json:"avg_word_overlap_ratio"`
	OverallSyncStatus   Overall `json:"overall_sync_status"`
}

// Report is the full subtitle/transcription sync comparison result.
type Report struct {
	Summary    Summary     `json:"summary"`
	Details    []Detail    `json:"details"`
	Duplicates []Duplicate `json:"duplicates"`
}

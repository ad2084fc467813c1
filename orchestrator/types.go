package orchestrator

import "github.com/maastricht-university/edmo-preprocessing/align"

// TurnRow is one row of turn_transcripts.csv.
type TurnRow struct {
	Recording  string  `json:"recording"`
	Speaker    string  `json:"speaker"`
	Start      float64 `json:"start_time"` // sec
	End        float64 `json:"end_time"`   // sec
	Transcript string  `json:"transcript"`
}

// RecordingRow is one row of recording_transcripts.csv.
type RecordingRow struct {
	Recording  string `json:"recording"`
	Transcript string `json:"transcript"`
}

// Stats summarises the turn timeline of one recording.
type Stats struct {
	Recording     string             `json:"recording"`
	Turns         int                `json:"turns"`
	Duration      float64            `json:"duration"`       // first turn start to last turn end
	SpeakingShare map[string]float64 `json:"speaking_share"` // per speaker, fraction of speaking time
	OverlapRate   float64            `json:"overlap_rate"`   // overlapped time / duration
}

// Failure is a recording that could not be aligned.
type Failure struct {
	Recording string
	Err       error
}

// Result is everything one batch run produced. Skipped lists the recordings
// that had a transcript but no speech-activity annotation; the caller decides
// whether to persist them into the subset exclusion list.
type Result struct {
	Turns      []TurnRow
	Recordings []RecordingRow
	Stats      []Stats
	Skipped    []string
	Failures   []Failure
}

// recordingResult is the slot one worker fills for one recording.
type recordingResult struct {
	name    string
	aligned []align.AlignedTurn
	skipped bool
	err     error
}

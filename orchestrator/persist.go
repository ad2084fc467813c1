package orchestrator

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	TurnTranscriptsFile      = "turn_transcripts.csv"
	RecordingTranscriptsFile = "recording_transcripts.csv"
	SummaryFile              = "summary.json"
)

type FailureRecord struct {
	Recording string `json:"recording"`
	Error     string `json:"error"`
}

// Summary is written next to the transcript tables.
type Summary struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Recordings  int             `json:"recordings"`
	Turns       int             `json:"turns"`
	Skipped     []string        `json:"skipped"`
	Failures    []FailureRecord `json:"failures"`
	Stats       []Stats         `json:"stats"`
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// formatSeconds writes timestamps the way the existing corpus CSVs do:
// shortest form, always with a decimal point.
func formatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Persist writes turn_transcripts.csv, recording_transcripts.csv and
// summary.json into outDir, creating it if needed.
func Persist(outDir string, res *Result) (turnsPath, recordingsPath, summaryPath string, err error) {
	if err = os.MkdirAll(outDir, 0o755); err != nil {
		return "", "", "", err
	}
	turnsPath = filepath.Join(outDir, TurnTranscriptsFile)
	recordingsPath = filepath.Join(outDir, RecordingTranscriptsFile)
	summaryPath = filepath.Join(outDir, SummaryFile)

	turnRows := make([][]string, len(res.Turns))
	for i, t := range res.Turns {
		turnRows[i] = []string{t.Recording, t.Speaker, formatSeconds(t.Start), formatSeconds(t.End), t.Transcript}
	}
	if err = writeCSV(turnsPath, []string{"recording", "speaker", "start_time", "end_time", "transcript"}, turnRows); err != nil {
		return "", "", "", fmt.Errorf("write %s: %w", turnsPath, err)
	}

	recRows := make([][]string, len(res.Recordings))
	for i, r := range res.Recordings {
		recRows[i] = []string{r.Recording, r.Transcript}
	}
	if err = writeCSV(recordingsPath, []string{"recording", "transcript"}, recRows); err != nil {
		return "", "", "", fmt.Errorf("write %s: %w", recordingsPath, err)
	}

	sum := Summary{
		GeneratedAt: time.Now(),
		Recordings:  len(res.Recordings),
		Turns:       len(res.Turns),
		Skipped:     append([]string{}, res.Skipped...),
		Failures:    make([]FailureRecord, 0, len(res.Failures)),
		Stats:       append([]Stats{}, res.Stats...),
	}
	for _, f := range res.Failures {
		sum.Failures = append(sum.Failures, FailureRecord{Recording: f.Recording, Error: f.Err.Error()})
	}
	if err = writeJSON(summaryPath, sum); err != nil {
		return "", "", "", fmt.Errorf("write %s: %w", summaryPath, err)
	}
	return turnsPath, recordingsPath, summaryPath, nil
}

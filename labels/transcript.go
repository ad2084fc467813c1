// Package labels reads the corpus label files: speech-activity tables and
// per-recording transcripts.
package labels

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maastricht-university/edmo-preprocessing/align"
)

// TranscriptFile is a transcript on disk; the recording name is the file stem.
type TranscriptFile struct {
	Recording string
	Path      string
}

// FindTranscripts lists <dir>/*.txt sorted by path.
func FindTranscripts(dir string) ([]TranscriptFile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txt"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	out := make([]TranscriptFile, 0, len(paths))
	for _, p := range paths {
		out = append(out, TranscriptFile{
			Recording: strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
			Path:      p,
		})
	}
	return out, nil
}

// ReadTranscript parses a transcript file.
func ReadTranscript(path string) ([]align.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ParseTranscript(f)
}

// ParseTranscript splits a transcript into paragraphs separated by a blank
// line. Each paragraph starts with the speaker's name followed by two spaces;
// the name becomes Line.Speaker and the rest, with newlines folded into
// spaces, becomes Line.Text.
func ParseTranscript(r io.Reader) ([]align.Line, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw := strings.ReplaceAll(string(b), "\r\n", "\n")

	var lines []align.Line
	for _, para := range strings.Split(raw, "\n\n") {
		para = strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
		if para == "" {
			continue
		}
		speaker := speakerToken(para)
		lines = append(lines, align.Line{
			Speaker: speaker,
			Text:    strings.TrimSpace(strings.TrimPrefix(para, speaker)),
		})
	}
	return lines, nil
}

func speakerToken(para string) string {
	if i := strings.Index(para, "  "); i >= 0 {
		return strings.TrimSpace(para[:i])
	}
	// no double space: fall back to the first word
	if f := strings.Fields(para); len(f) > 0 {
		return f[0]
	}
	return ""
}

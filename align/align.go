// Package align pairs detected speaker turns with the lines of a hand-written
// transcript.
package align

import (
	"errors"
	"fmt"
	"strings"

	"github.com/maastricht-university/edmo-preprocessing/turns"
)

var ErrNoTranscript = errors.New("align: transcript has no lines")

// Line is one transcript paragraph with its speaker token removed.
type Line struct {
	Speaker string
	Text    string
}

// AlignedTurn is a turn with the transcript text it was matched to.
type AlignedTurn struct {
	turns.Turn
	Transcript string
}

// MismatchError means the transcript has more lines than there are turns to
// carry them, even after monologue collapse.
type MismatchError struct {
	Turns int
	Lines int
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("align: %d transcript lines but only %d turns", e.Lines, e.Turns)
}

// Collapse joins the lines of a monologue (more than one line, all with the
// same speaker) into a single line. Any other transcript is returned as is.
func Collapse(lines []Line) []Line {
	if len(lines) < 2 {
		return lines
	}
	texts := make([]string, len(lines))
	for i, l := range lines {
		if l.Speaker != lines[0].Speaker {
			return lines
		}
		texts[i] = l.Text
	}
	return []Line{{Speaker: lines[0].Speaker, Text: strings.Join(texts, " ")}}
}

// Align collapses monologues, drops trailing turns that have no line left, and
// gives the i-th turn the text of the i-th line.
func Align(ts []turns.Turn, lines []Line) ([]AlignedTurn, error) {
	if len(lines) == 0 {
		return nil, ErrNoTranscript
	}
	lines = Collapse(lines)
	if len(lines) > len(ts) {
		return nil, &MismatchError{Turns: len(ts), Lines: len(lines)}
	}
	ts = ts[:len(lines)]

	out := make([]AlignedTurn, len(ts))
	for i, t := range ts {
		out[i] = AlignedTurn{Turn: t, Transcript: lines[i].Text}
	}
	return out, nil
}

// Join returns the recording-level transcript: every aligned text in turn
// order, separated by a single space.
func Join(aligned []AlignedTurn) string {
	texts := make([]string, len(aligned))
	for i, a := range aligned {
		texts[i] = a.Transcript
	}
	return strings.Join(texts, " ")
}

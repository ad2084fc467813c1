// Package activity turns per-frame speech-activity labels into speech segments.
package activity

import (
	"errors"
	"fmt"
	"strings"
)

// State is the speech-activity label of one speaker in one frame.
type State uint8

const (
	Unknown State = iota
	NotSpeaking
	Speaking
)

var ErrLengthMismatch = errors.New("activity: states and times differ in length")

// ParseState maps the annotation literals to a State. Any other value is Unknown.
func ParseState(s string) State {
	switch strings.TrimSpace(s) {
	case "SPEAKING":
		return Speaking
	case "NOT_SPEAKING":
		return NotSpeaking
	default:
		return Unknown
	}
}

func (s State) String() string {
	switch s {
	case Speaking:
		return "SPEAKING"
	case NotSpeaking:
		return "NOT_SPEAKING"
	default:
		return "UNKNOWN"
	}
}

// Frame is one labelled sample of a speaker's activity.
type Frame struct {
	Time  float64
	State State
}

// Segment is one contiguous run of speech, in seconds.
type Segment struct {
	Start float64
	End   float64
}

// Extract scans frames once and emits a segment for every NOT_SPEAKING→SPEAKING
// onset that is later closed by a SPEAKING→NOT_SPEAKING offset. Both boundaries
// take the timestamp of the second frame of the transition.
//
// A run still open when the frames end produces no segment; use Unterminated
// to find it.
func Extract(frames []Frame) []Segment {
	segs, _, _ := scan(frames)
	return segs
}

// Unterminated reports the onset of a trailing speech run that has no offset.
func Unterminated(frames []Frame) (float64, bool) {
	_, start, open := scan(frames)
	return start, open
}

func scan(frames []Frame) (segs []Segment, start float64, open bool) {
	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1].State, frames[i].State
		switch {
		case prev == NotSpeaking && cur == Speaking:
			start, open = frames[i].Time, true
		case prev == Speaking && cur == NotSpeaking:
			// a run that was already speaking at the first frame has no onset
			if !open {
				continue
			}
			segs = append(segs, Segment{Start: start, End: frames[i].Time})
			open = false
		}
	}
	return segs, start, open
}

// Frames zips parallel state and timestamp columns.
func Frames(states []State, times []float64) ([]Frame, error) {
	if len(states) != len(times) {
		return nil, fmt.Errorf("%w: %d states, %d times", ErrLengthMismatch, len(states), len(times))
	}
	frames := make([]Frame, len(states))
	for i := range states {
		frames[i] = Frame{Time: times[i], State: states[i]}
	}
	return frames, nil
}

// ExtractSegments is Extract over parallel state and timestamp columns.
func ExtractSegments(states []State, times []float64) ([]Segment, error) {
	frames, err := Frames(states, times)
	if err != nil {
		return nil, err
	}
	return Extract(frames), nil
}

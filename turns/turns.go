// Package turns merges the speech segments of two speakers into one
// chronological sequence of speaker turns.
package turns

import (
	"errors"
	"sort"

	"github.com/maastricht-university/edmo-preprocessing/activity"
)

// ErrEmptyInput is returned when neither speaker has a single speech segment.
var ErrEmptyInput = errors.New("turns: no speech segments for either speaker")

// Turn is a stretch of the timeline during which one speaker holds the floor.
type Turn struct {
	Speaker string
	Start   float64
	End     float64
}

type tagged struct {
	speaker string
	activity.Segment
}

// Merge interleaves both speakers' segments by start time and coalesces runs of
// consecutive segments from the same speaker into a single turn. A turn starts
// at its first segment's start and ends at the end of the last segment before
// the speaker changes, so silence inside one speaker's run never splits it.
//
// Segments with equal start times keep speaker A first.
func Merge(nameA string, segsA []activity.Segment, nameB string, segsB []activity.Segment) ([]Turn, error) {
	pool := make([]tagged, 0, len(segsA)+len(segsB))
	for _, s := range segsA {
		pool = append(pool, tagged{speaker: nameA, Segment: s})
	}
	for _, s := range segsB {
		pool = append(pool, tagged{speaker: nameB, Segment: s})
	}
	if len(pool) == 0 {
		return nil, ErrEmptyInput
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Start < pool[j].Start })

	var out []Turn
	start := pool[0].Start
	for i, cur := range pool {
		if i == len(pool)-1 {
			out = append(out, Turn{Speaker: cur.speaker, Start: start, End: cur.End})
			break
		}
		next := pool[i+1]
		if cur.speaker == next.speaker {
			continue
		}
		out = append(out, Turn{Speaker: cur.speaker, Start: start, End: cur.End})
		start = next.Start
	}
	return out, nil
}

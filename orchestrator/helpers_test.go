package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maastricht-university/edmo-preprocessing/align"
	"github.com/maastricht-university/edmo-preprocessing/turns"
)

func aligned(speaker string, start, end float64) align.AlignedTurn {
	return align.AlignedTurn{Turn: turns.Turn{Speaker: speaker, Start: start, End: end}}
}

func TestTurnStats(t *testing.T) {
	st := turnStats("rec01", []align.AlignedTurn{
		aligned("Romeo", 0, 4),
		aligned("Juliet", 3, 6), // overlaps Romeo by one second
		aligned("Romeo", 6, 10),
	})
	assert.Equal(t, "rec01", st.Recording)
	assert.Equal(t, 3, st.Turns)
	assert.InDelta(t, 10.0, st.Duration, 1e-9)
	assert.InDelta(t, 8.0/11.0, st.SpeakingShare["Romeo"], 1e-9)
	assert.InDelta(t, 3.0/11.0, st.SpeakingShare["Juliet"], 1e-9)
	// the Juliet/Romeo handover at 6s touches but does not overlap
	assert.InDelta(t, 0.1, st.OverlapRate, 1e-9)
}

func TestTurnStatsEmpty(t *testing.T) {
	st := turnStats("rec01", nil)
	assert.Zero(t, st.Turns)
	assert.Zero(t, st.Duration)
	assert.Empty(t, st.SpeakingShare)
}

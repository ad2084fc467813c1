package turns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maastricht-university/edmo-preprocessing/activity"
)

func seg(start, end float64) activity.Segment { return activity.Segment{Start: start, End: end} }

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		a, b []activity.Segment
		want []Turn
	}{
		{
			name: "interleaved",
			a:    []activity.Segment{seg(0, 2), seg(5, 6)},
			b:    []activity.Segment{seg(2, 4)},
			want: []Turn{{"A", 0, 2}, {"B", 2, 4}, {"A", 5, 6}},
		},
		{
			name: "same speaker segments coalesce across silence",
			a:    []activity.Segment{seg(0, 1), seg(3, 4), seg(6, 7)},
			b:    []activity.Segment{seg(8, 9)},
			want: []Turn{{"A", 0, 7}, {"B", 8, 9}},
		},
		{
			name: "single segment",
			b:    []activity.Segment{seg(1.5, 2.5)},
			want: []Turn{{"B", 1.5, 2.5}},
		},
		{
			name: "only one speaker",
			a:    []activity.Segment{seg(0, 1), seg(2, 3)},
			want: []Turn{{"A", 0, 3}},
		},
		{
			name: "end is the last segment before the change",
			a:    []activity.Segment{seg(0, 10), seg(2, 3)},
			b:    []activity.Segment{seg(4, 5)},
			want: []Turn{{"A", 0, 3}, {"B", 4, 5}},
		},
		{
			name: "equal starts keep A first",
			a:    []activity.Segment{seg(1, 2)},
			b:    []activity.Segment{seg(1, 3)},
			want: []Turn{{"A", 1, 2}, {"B", 1, 3}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Merge("A", tt.a, "B", tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeEmpty(t *testing.T) {
	_, err := Merge("A", nil, "B", []activity.Segment{})
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestMergeAlternates(t *testing.T) {
	var a, b []activity.Segment
	for i := 0; i < 50; i++ {
		st := float64(i)
		// irregular pattern: A speaks on most seconds, B on multiples of 3 and 7
		if i%3 == 0 || i%7 == 0 {
			b = append(b, seg(st, st+0.5))
		} else {
			a = append(a, seg(st, st+0.5))
		}
	}
	got, err := Merge("A", a, "B", b)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.NotEqual(t, got[i-1].Speaker, got[i].Speaker, "turns %d and %d", i-1, i)
		assert.LessOrEqual(t, got[i-1].Start, got[i].Start)
	}
}

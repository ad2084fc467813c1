package orchestrator

import (
	"math"
	"sort"

	"github.com/maastricht-university/edmo-preprocessing/align"
)

func turnStats(name string, aligned []align.AlignedTurn) Stats {
	st := Stats{Recording: name, Turns: len(aligned), SpeakingShare: map[string]float64{}}
	if len(aligned) == 0 {
		return st
	}
	// session bounds
	start := aligned[0].Start
	end := aligned[len(aligned)-1].End

	total := 0.0
	type edge struct {
		t     float64
		delta int
	}
	var edges []edge
	for _, a := range aligned {
		d := math.Max(0, a.End-a.Start)
		total += d
		st.SpeakingShare[a.Speaker] += d
		start = math.Min(start, a.Start)
		end = math.Max(end, a.End)
		edges = append(edges, edge{t: a.Start, delta: +1}, edge{t: a.End, delta: -1})
	}
	// ends sort before starts at the same instant so touching turns do not overlap
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].t != edges[j].t {
			return edges[i].t < edges[j].t
		}
		return edges[i].delta < edges[j].delta
	})
	active := 0
	last := edges[0].t
	overlap := 0.0
	for _, e := range edges {
		if active > 1 {
			overlap += e.t - last
		}
		active += e.delta
		last = e.t
	}
	if total > 0 {
		for k := range st.SpeakingShare {
			st.SpeakingShare[k] /= total
		}
	}
	st.Duration = end - start
	if st.Duration > 0 {
		st.OverlapRate = overlap / st.Duration
	}
	return st
}

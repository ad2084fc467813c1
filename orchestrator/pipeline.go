package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/maastricht-university/edmo-preprocessing/activity"
	"github.com/maastricht-university/edmo-preprocessing/align"
	cfg "github.com/maastricht-university/edmo-preprocessing/config"
	"github.com/maastricht-university/edmo-preprocessing/labels"
	"github.com/maastricht-university/edmo-preprocessing/subset"
	"github.com/maastricht-university/edmo-preprocessing/turns"
)

type Pipeline struct {
	cfg *cfg.Root
	log logrus.FieldLogger
}

func NewPipeline(c *cfg.Root, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{cfg: c, log: log}
}

// Run loads the transcripts and the speech-activity tables of the selected
// split from the labels directory and processes every recording.
func (p *Pipeline) Run(ctx context.Context, sc *subset.Config) (*Result, error) {
	files, err := labels.FindTranscripts(filepath.Join(p.cfg.Paths.Labels, "transcripts"))
	if err != nil {
		return nil, err
	}
	activityFiles := sc.ActivityFiles(p.cfg.Paths.Labels)
	table, err := labels.LoadActivityFiles(activityFiles, p.cfg.Columns()...)
	if err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"transcripts": len(files),
		"annotated":   table.Len(),
		"split":       sc.Split,
	}).Info("labels loaded")

	return p.Process(ctx, files, table)
}

// Process aligns every transcript with the turns found in its recording's
// speech activity. Recordings run concurrently, each into its own slot, and
// are merged in file order once all are done.
//
// Recording-level problems do not stop the batch: a missing annotation lands
// in Result.Skipped and any other failure in Result.Failures. In strict mode
// the result is still returned, together with an error joining all failures.
func (p *Pipeline) Process(ctx context.Context, files []labels.TranscriptFile, table *labels.ActivityTable) (*Result, error) {
	slots := make([]recordingResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.cfg.Pipeline.Workers, 1))
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = p.processFile(f, table)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, s := range slots {
		l := p.log.WithField("recording", s.name)
		switch {
		case s.skipped:
			l.Warn("no speech-activity annotation, skipping")
			res.Skipped = append(res.Skipped, s.name)
		case s.err != nil:
			l.WithError(s.err).Error("recording failed")
			res.Failures = append(res.Failures, Failure{Recording: s.name, Err: s.err})
		default:
			for _, a := range s.aligned {
				res.Turns = append(res.Turns, TurnRow{
					Recording:  s.name,
					Speaker:    a.Speaker,
					Start:      a.Start,
					End:        a.End,
					Transcript: a.Transcript,
				})
			}
			res.Recordings = append(res.Recordings, RecordingRow{Recording: s.name, Transcript: align.Join(s.aligned)})
			res.Stats = append(res.Stats, turnStats(s.name, s.aligned))
			l.WithField("turns", len(s.aligned)).Debug("aligned")
		}
	}

	p.log.WithFields(logrus.Fields{
		"recordings": len(res.Recordings),
		"turns":      len(res.Turns),
		"skipped":    len(res.Skipped),
		"failed":     len(res.Failures),
	}).Info("transcripts extracted")

	if p.cfg.Pipeline.Strict && len(res.Failures) > 0 {
		errs := make([]error, len(res.Failures))
		for i, f := range res.Failures {
			errs[i] = f.Err
		}
		return res, fmt.Errorf("%d recordings failed: %w", len(errs), errors.Join(errs...))
	}
	return res, nil
}

func (p *Pipeline) processFile(f labels.TranscriptFile, table *labels.ActivityTable) recordingResult {
	out := recordingResult{name: f.Recording}

	rec, ok := table.Lookup(f.Recording)
	if !ok {
		out.skipped = true
		out.err = &MissingAnnotationError{Recording: f.Recording}
		return out
	}
	lines, err := labels.ReadTranscript(f.Path)
	if err != nil {
		out.err = &RecordingError{Recording: f.Recording, Err: err}
		return out
	}
	out.aligned, err = p.AlignRecording(rec, lines)
	if err != nil {
		out.err = &RecordingError{Recording: f.Recording, Err: err}
	}
	return out
}

// AlignRecording runs segment extraction, turn merging and transcript
// alignment for one recording whose inputs are already in memory.
func (p *Pipeline) AlignRecording(rec *labels.Recording, lines []align.Line) ([]align.AlignedTurn, error) {
	if len(lines) == 0 {
		return nil, align.ErrNoTranscript
	}
	a, b := p.cfg.Speakers[0], p.cfg.Speakers[1]
	segsA, err := rec.Segments(a.Column)
	if err != nil {
		return nil, err
	}
	segsB, err := rec.Segments(b.Column)
	if err != nil {
		return nil, err
	}
	for _, s := range p.cfg.Speakers {
		frames, err := rec.Frames(s.Column)
		if err != nil {
			return nil, err
		}
		if start, open := activity.Unterminated(frames); open {
			p.log.WithFields(logrus.Fields{
				"recording": rec.Name,
				"speaker":   s.Name,
				"start":     start,
			}).Debug("speech still running at end of annotation, dropped")
		}
	}

	ts, err := turns.Merge(a.Name, segsA, b.Name, segsB)
	if err != nil {
		return nil, err
	}
	return align.Align(ts, lines)
}

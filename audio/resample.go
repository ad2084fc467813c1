// Package audio downsamples the selected corpus recordings.
package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
	resampling "github.com/tphakala/go-audio-resampling"
	"golang.org/x/sync/errgroup"
)

const outBitDepth = 16

// OutputPath mirrors src, which lives under sourceDir, into outputDir. When a
// split is selected its directory level is dropped, so
// audio/test/rec01/01.wav becomes audio_subset/rec01/01.wav.
func OutputPath(src, sourceDir, outputDir, split string) (string, error) {
	base := sourceDir
	if split != "" && split != "all" {
		base = filepath.Join(sourceDir, split)
	}
	rel, err := filepath.Rel(base, src)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is not under %s", src, base)
	}
	return filepath.Join(outputDir, rel), nil
}

// Downmix averages interleaved channels into one normalised mono signal.
// 8-bit WAV samples are unsigned and centred on 128.
func Downmix(data []int, channels, bitDepth int) []float64 {
	if channels < 1 {
		channels = 1
	}
	scale := float64(int(1) << (bitDepth - 1))
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}
	out := make([]float64, len(data)/channels)
	for i := range out {
		sum := 0
		for c := 0; c < channels; c++ {
			sum += data[i*channels+c] - offset
		}
		out[i] = float64(sum) / float64(channels) / scale
	}
	return out
}

func toPCM(samples []float64) []int {
	const peak = 1<<(outBitDepth-1) - 1
	out := make([]int, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		out[i] = int(s * peak)
	}
	return out
}

// resampleMono converts a whole mono signal between rates. The filter stages
// hold back their last samples until Flush, so the tail is appended here.
func resampleMono(samples []float64, srcRate, dstRate int) ([]float64, error) {
	rs, err := resampling.New(&resampling.Config{
		InputRate:  float64(srcRate),
		OutputRate: float64(dstRate),
		Channels:   1,
		Quality:    resampling.QualitySpec{Preset: resampling.QualityHigh},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create resampler: %w", err)
	}
	out, err := rs.Process(samples)
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}
	tail, err := rs.Flush()
	if err != nil {
		return nil, fmt.Errorf("resample flush: %w", err)
	}
	return append(out, tail...), nil
}

// Resample reads the WAV file src, converts it to mono at targetRate and
// writes it to dst as 16-bit PCM.
func Resample(src, dst string, targetRate int) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	dec := wav.NewDecoder(in)
	if !dec.IsValidFile() {
		return fmt.Errorf("%s: not a valid wav file", src)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("%s: read pcm: %w", src, err)
	}
	srcRate := buf.Format.SampleRate
	depth := buf.SourceBitDepth
	if depth == 0 {
		depth = int(dec.BitDepth)
	}
	mono := Downmix(buf.Data, buf.Format.NumChannels, depth)

	if srcRate != targetRate {
		if mono, err = resampleMono(mono, srcRate, targetRate); err != nil {
			return fmt.Errorf("%s: %w", src, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	enc := wav.NewEncoder(out, targetRate, outBitDepth, 1, 1)
	err = enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: targetRate},
		Data:           toPCM(mono),
		SourceBitDepth: outBitDepth,
	})
	if err == nil {
		err = enc.Close()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: write: %w", dst, err)
	}
	return nil
}

// Job is one file to downsample.
type Job struct {
	Src string
	Dst string
}

// ResampleAll runs the jobs on up to workers goroutines and stops at the first
// failure.
func ResampleAll(ctx context.Context, jobs []Job, targetRate, workers int, log logrus.FieldLogger) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := Resample(j.Src, j.Dst, targetRate); err != nil {
				return err
			}
			log.WithField("file", j.Dst).Debug("downsampled")
			return nil
		})
	}
	return g.Wait()
}

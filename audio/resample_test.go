package audio

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	src := filepath.Join("audio", "test", "rec01", "01_mic.wav")

	got, err := OutputPath(src, "audio", "audio_subset", "test")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("audio_subset", "rec01", "01_mic.wav"), got)

	got, err = OutputPath(src, "audio", "audio_subset", "all")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("audio_subset", "test", "rec01", "01_mic.wav"), got)

	_, err = OutputPath(filepath.Join("elsewhere", "x.wav"), "audio", "audio_subset", "all")
	assert.Error(t, err)
}

func TestDownmix(t *testing.T) {
	got := Downmix([]int{16384, 0, -32768, -32768}, 2, 16)
	assert.InDeltaSlice(t, []float64{0.25, -1}, got, 1e-9)

	// 8-bit PCM is unsigned: 128 is silence, 192 is half scale
	assert.InDeltaSlice(t, []float64{0, 0.5, -1}, Downmix([]int{128, 192, 0}, 1, 8), 1e-9)
}

func TestToPCMClips(t *testing.T) {
	assert.Equal(t, []int{32767, -32767, 0}, toPCM([]float64{1.5, -2, 0}))
}

func writeWAV(t *testing.T, path string, rate int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	require.NoError(t, enc.Write(&goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
}

func TestResampleSameRate(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.wav")
	dst := filepath.Join(dir, "out", "rec01", "01.wav")
	data := []int{0, 1000, -1000, 20000, -20000, 0, 5, -5}
	writeWAV(t, src, 16000, data)

	log, _ := test.NewNullLogger()
	require.NoError(t, ResampleAll(context.Background(), []Job{{Src: src, Dst: dst}}, 16000, 2, log))

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 16000, buf.Format.SampleRate)
	assert.Equal(t, 1, buf.Format.NumChannels)
	require.Len(t, buf.Data, len(data))
	for i := range data {
		assert.InDelta(t, data[i], buf.Data[i], 1, "sample %d", i)
	}
}

func TestResampleMonoKeepsTail(t *testing.T) {
	in := make([]float64, 48000)
	for i := range in {
		in[i] = 0.5 * math.Sin(2*math.Pi*440*float64(i)/48000)
	}
	out, err := resampleMono(in, 48000, 16000)
	require.NoError(t, err)
	// one second in, about one second out once the filter tail is flushed
	assert.InDelta(t, 16000, len(out), 160)
}

func TestResampleDownsamplesFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.wav")
	dst := filepath.Join(dir, "out.wav")
	data := make([]int, 48000)
	for i := range data {
		data[i] = int(8000 * math.Sin(2*math.Pi*220*float64(i)/48000))
	}
	writeWAV(t, src, 48000, data)

	require.NoError(t, Resample(src, dst, 16000))

	f, err := os.Open(dst)
	require.NoError(t, err)
	defer f.Close()
	buf, err := wav.NewDecoder(f).FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 16000, buf.Format.SampleRate)
	assert.InDelta(t, 16000, len(buf.Data), 160)
}

func TestResampleInvalid(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.wav")
	require.NoError(t, os.WriteFile(src, []byte("not a wav"), 0o644))
	err := Resample(src, filepath.Join(dir, "out.wav"), 16000)
	assert.ErrorContains(t, err, "not a valid wav")
}

package subset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSaveJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subset_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"split": "test", "microphones": [1, 3], "exclude": ["rec07"]}`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, &Config{Split: "test", Microphones: []int{1, 3}, Exclude: []string{"rec07"}}, c)

	updated := c.WithExclusions("rec09", "rec07")
	require.NoError(t, updated.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n       \"split\": \"test\"")

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"rec07", "rec09"}, back.Exclude)
	// the loaded config is untouched by WithExclusions
	assert.Equal(t, []string{"rec07"}, c.Exclude)
}

func TestLoadSaveYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("microphones: [2]\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, SplitAll, c.Split)
	assert.Equal(t, []int{2}, c.Microphones)
	assert.Empty(t, c.Exclude)

	require.NoError(t, c.Save(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "exclude: []")
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subset_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"split":`), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse")
}

func TestActivityFiles(t *testing.T) {
	c := &Config{Split: SplitAll}
	assert.Equal(t, []string{
		filepath.Join("labels", "speech_activity", "development_box_SA.csv"),
		filepath.Join("labels", "speech_activity", "test_box_SA.csv"),
	}, c.ActivityFiles("labels"))

	c.Split = "test"
	assert.Equal(t, []string{filepath.Join("labels", "speech_activity", "test_box_SA.csv")}, c.ActivityFiles("labels"))
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindAudio(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{
		"development/rec01/01_mic.wav",
		"development/rec01/02_mic.wav",
		"development/rec01/03_mic.wav",
		"development/rec02/01_mic.wav",
		"test/rec03/01_mic.wav",
		"test/rec03/02_mic.wav",
		"test/rec04/02_mic.wav",
		"test/rec03/01_mic.txt",
	} {
		touch(t, filepath.Join(root, p))
	}

	got, err := FindAudio(root, &Config{Split: "test", Microphones: []int{1, 2}, Exclude: []string{"rec04"}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "test/rec03/01_mic.wav"),
		filepath.Join(root, "test/rec03/02_mic.wav"),
	}, got)

	got, err = FindAudio(root, &Config{Split: SplitAll, Microphones: []int{1}, Exclude: []string{"rec02"}})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "development/rec01/01_mic.wav"),
		filepath.Join(root, "test/rec03/01_mic.wav"),
	}, got)
}

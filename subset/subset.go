// Package subset selects which recordings and audio files of the corpus take
// part in a preprocessing run.
package subset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// SplitAll selects every split of the corpus.
const SplitAll = "all"

// Splits are the corpus splits used when Split is SplitAll.
var Splits = []string{"development", "test"}

// Config is the subset configuration file.
type Config struct {
	Split       string   `json:"split" yaml:"split"`
	Microphones []int    `json:"microphones" yaml:"microphones"`
	Exclude     []string `json:"exclude" yaml:"exclude"`
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Load reads a subset configuration. YAML is used for .yaml/.yml files and
// JSON for anything else.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if isYAML(path) {
		err = yaml.Unmarshal(b, &c)
	} else {
		err = json.Unmarshal(b, &c)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Split == "" {
		c.Split = SplitAll
	}
	return &c, nil
}

// Save writes the configuration back in the format implied by the extension.
func (c *Config) Save(path string) error {
	var (
		b   []byte
		err error
	)
	if isYAML(path) {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(c.normalized()); err == nil {
			err = enc.Close()
		}
		b = buf.Bytes()
	} else {
		// same 7-space indent as the subset_config.json shipped with the corpus
		b, err = json.MarshalIndent(c.normalized(), "", strings.Repeat(" ", 7))
		b = append(b, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, b, 0o644)
}

// normalized replaces nil lists so they encode as [] rather than null.
func (c *Config) normalized() *Config {
	out := *c
	if out.Microphones == nil {
		out.Microphones = []int{}
	}
	if out.Exclude == nil {
		out.Exclude = []string{}
	}
	return &out
}

// Excludes reports whether a recording or file stem is on the exclusion list.
func (c *Config) Excludes(name string) bool {
	for _, e := range c.Exclude {
		if e == name {
			return true
		}
	}
	return false
}

// WithExclusions returns a copy of c whose exclusion list has names appended.
// Names already excluded are not repeated.
func (c *Config) WithExclusions(names ...string) Config {
	out := *c
	out.Exclude = append([]string(nil), c.Exclude...)
	out.Microphones = append([]int(nil), c.Microphones...)
	for _, n := range names {
		if !out.Excludes(n) {
			out.Exclude = append(out.Exclude, n)
		}
	}
	return out
}

// ActivityFiles lists the speech-activity tables of the selected split.
func (c *Config) ActivityFiles(labelsDir string) []string {
	splits := Splits
	if c.Split != SplitAll {
		splits = []string{c.Split}
	}
	out := make([]string, len(splits))
	for i, s := range splits {
		out[i] = filepath.Join(labelsDir, "speech_activity", s+"_box_SA.csv")
	}
	return out
}

// FindAudio lists <root>/<split>/<recording>/<mic>*.wav for every configured
// microphone, sorted, skipping excluded recordings. With SplitAll every split
// directory under root is searched.
func FindAudio(root string, c *Config) ([]string, error) {
	dir := filepath.Join(root, c.Split)
	if c.Split == SplitAll {
		dir = filepath.Join(root, "*")
	}
	var files []string
	for _, mic := range c.Microphones {
		m, err := filepath.Glob(filepath.Join(dir, "*", fmt.Sprintf("%02d*.wav", mic)))
		if err != nil {
			return nil, err
		}
		files = append(files, m...)
	}
	sort.Strings(files)

	out := files[:0]
	for _, f := range files {
		stem := strings.TrimSuffix(filepath.Base(f), filepath.Ext(f))
		rec := filepath.Base(filepath.Dir(f))
		if c.Excludes(stem) || c.Excludes(rec) {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

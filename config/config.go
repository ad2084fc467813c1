package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Speaker binds a speaker name to its speech-activity column.
type Speaker struct {
	Name   string `mapstructure:"name" yaml:"name"`
	Column string `mapstructure:"column" yaml:"column"`
}

type Audio struct {
	SampleRate int `mapstructure:"sample_rate" yaml:"sample_rate"`
}

type Paths struct {
	Labels       string `mapstructure:"labels" yaml:"labels"`
	Outputs      string `mapstructure:"outputs" yaml:"outputs"`
	SubsetConfig string `mapstructure:"subset_config" yaml:"subset_config"`
	AudioSource  string `mapstructure:"audio_source" yaml:"audio_source"`
	AudioOutput  string `mapstructure:"audio_output" yaml:"audio_output"`
}

type Pipeline struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Version string `mapstructure:"version" yaml:"version"`
	LogLvl  string `mapstructure:"log_level" yaml:"log_level"`
	Workers int    `mapstructure:"workers" yaml:"workers"`
	Strict  bool   `mapstructure:"strict" yaml:"strict"`
}

type Root struct {
	Pipeline Pipeline  `mapstructure:"pipeline" yaml:"pipeline"`
	Speakers []Speaker `mapstructure:"speakers" yaml:"speakers"`
	Audio    Audio     `mapstructure:"audio" yaml:"audio"`
	Paths    Paths     `mapstructure:"paths" yaml:"paths"`
}

// DefaultSpeakers are the two speaker roles of the corpus.
var DefaultSpeakers = []Speaker{
	{Name: "Romeo", Column: "SA_male"},
	{Name: "Juliet", Column: "SA_female"},
}

const envPrefix = "EDMO"

func defaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "edmo-preprocessing")
	v.SetDefault("pipeline.version", "dev")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("pipeline.workers", 4)
	v.SetDefault("pipeline.strict", false)
	v.SetDefault("audio.sample_rate", 16000)
	v.SetDefault("paths.labels", "labels")
	v.SetDefault("paths.outputs", "transcripts_subset")
	v.SetDefault("paths.subset_config", "subset_config.json")
	v.SetDefault("paths.audio_source", "audio")
	v.SetDefault("paths.audio_output", "audio_subset")
}

// Load reads the configuration from path, or when path is empty from the first
// of config/<CONFIG_ENV>/config.yaml and src/shared/config.yaml that exists.
// No file at all is fine: defaults apply. EDMO_* environment variables
// (EDMO_PATHS_LABELS, EDMO_PIPELINE_WORKERS, ...) override the file.
func Load(path string) (*Root, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = guess()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Speakers) == 0 {
		cfg.Speakers = append([]Speaker(nil), DefaultSpeakers...)
	}
	cfg.Pipeline.Workers = max(cfg.Pipeline.Workers, 1)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func guess() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	for _, p := range []string{
		filepath.Join("config", env, "config.yaml"),
		filepath.Join("src", "shared", "config.yaml"),
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Validate checks the settings the pipeline cannot run without.
func (c *Root) Validate() error {
	if len(c.Speakers) != 2 {
		return fmt.Errorf("config: need exactly 2 speakers, got %d", len(c.Speakers))
	}
	for _, s := range c.Speakers {
		if s.Name == "" || s.Column == "" {
			return errors.New("config: speaker needs both name and column")
		}
	}
	if c.Speakers[0].Name == c.Speakers[1].Name {
		return fmt.Errorf("config: both speakers are named %q", c.Speakers[0].Name)
	}
	return nil
}

// Overrides holds CLI flag values that take priority over the file and env.
type Overrides struct {
	LogLevel     string
	Labels       string
	Outputs      string
	SubsetConfig string
	AudioSource  string
	AudioOutput  string
	SampleRate   int
	Workers      int
}

// Apply copies every non-zero override into c.
func (c *Root) Apply(o Overrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Pipeline.LogLvl, o.LogLevel)
	set(&c.Paths.Labels, o.Labels)
	set(&c.Paths.Outputs, o.Outputs)
	set(&c.Paths.SubsetConfig, o.SubsetConfig)
	set(&c.Paths.AudioSource, o.AudioSource)
	set(&c.Paths.AudioOutput, o.AudioOutput)
	if o.SampleRate > 0 {
		c.Audio.SampleRate = o.SampleRate
	}
	if o.Workers > 0 {
		c.Pipeline.Workers = o.Workers
	}
}

// Columns returns the speech-activity columns of both speakers.
func (c *Root) Columns() []string {
	out := make([]string, len(c.Speakers))
	for i, s := range c.Speakers {
		out[i] = s.Column
	}
	return out
}

// YAML renders the effective configuration.
func (c *Root) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

package editor

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/fretwork/fretwork"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

type (
	// Config holds the editing limits and defaults of the model.
	Config struct {
		MaxFret              int
		FretCutoff           time.Duration
		DefaultLength        fretwork.Length
		DefaultTimeSignature fretwork.TimeSignature
		DefaultTrack         TrackSpec
		Tunings              []TuningPreset
	}

	// TrackSpec describes a track to be added. Empty fields are filled from
	// the configured default track.
	TrackSpec struct {
		Name     string
		FullName string          `yaml:",omitempty"`
		Tuning   fretwork.Tuning `yaml:",flow"`
	}

	TuningPreset struct {
		Name   string
		Tuning fretwork.Tuning `yaml:",flow"`
	}
)

//go:embed config.yml
var defaultConfigYaml []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	var c Config
	if err := decodeConfig(bytes.NewReader(defaultConfigYaml), &c); err != nil {
		panic(fmt.Errorf("failed to unmarshal default config: %w", err))
	}
	return c
}

// ReadConfig decodes YAML from r on top of the built-in configuration. Keys
// missing from r keep their default values.
func ReadConfig(r io.Reader) (Config, error) {
	c := DefaultConfig()
	if err := decodeConfig(r, &c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadConfig reads the configuration file at path. An empty path means
// config.yml in the user's fretwork configuration directory, which need not
// exist.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := os.UserConfigDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(dir, "fretwork", "config.yml")
	}
	f, err := os.Open(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()
	c, err := ReadConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

func decodeConfig(r io.Reader, c *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	return dec.Decode(c)
}

// Validate checks that the configuration can drive the editor.
func (c Config) Validate() error {
	var errs []error
	if c.MaxFret < 9 {
		errs = append(errs, fmt.Errorf("maxfret %d is below 9", c.MaxFret))
	}
	if c.FretCutoff <= 0 {
		errs = append(errs, fmt.Errorf("fretcutoff %v is not positive", c.FretCutoff))
	}
	if !c.DefaultLength.Valid() {
		errs = append(errs, fmt.Errorf("defaultlength %v is not an allowed length", float64(c.DefaultLength)))
	}
	if !c.DefaultTimeSignature.Valid() {
		errs = append(errs, fmt.Errorf("defaulttimesignature %v is invalid", c.DefaultTimeSignature))
	}
	if len(c.DefaultTrack.Tuning) == 0 {
		errs = append(errs, errors.New("defaulttrack has no tuning"))
	}
	for _, p := range c.Tunings {
		if len(p.Tuning) == 0 {
			errs = append(errs, fmt.Errorf("tuning preset %q has no strings", p.Name))
		}
	}
	return errors.Join(errs...)
}

// completeTrackSpec fills the empty fields of spec for the track that will
// get index i.
func (c *Config) completeTrackSpec(spec TrackSpec, i int) TrackSpec {
	if spec.Name == "" {
		spec.Name = c.DefaultTrack.Name
		if spec.Name == "" {
			spec.Name = fmt.Sprintf("track %d", i+1)
		}
	}
	if len(spec.Tuning) == 0 {
		spec.Tuning = c.DefaultTrack.Tuning
		if len(spec.Tuning) == 0 {
			spec.Tuning = fretwork.StandardGuitar
		}
	}
	if spec.FullName == "" {
		spec.FullName = cases.Title(language.English).String(spec.Name)
	}
	return spec
}

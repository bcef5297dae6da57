package tui

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type Preferences struct {
	Measures   int
	StatusLine string
	YmlError   error `yaml:"-"`
}

//go:embed preferences.yml
var defaultPreferencesYaml []byte

func loadDefaultPreferences() Preferences {
	var preferences Preferences
	err := yaml.UnmarshalStrict(defaultPreferencesYaml, &preferences)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	return preferences
}

// readCustomConfig reads a file from the fretwork directory of the user's
// configuration directory. exists is false if there is no such file.
func readCustomConfig(filename string) (b []byte, exists bool, err error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, false, err
	}
	b, err = os.ReadFile(filepath.Join(configDir, "fretwork", filename))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	return b, true, err
}

// ReadCustomConfigYml modifies the target argument, i.e. needs a pointer
func ReadCustomConfigYml(filename string, target any) (exists bool, err error) {
	b, exists, err := readCustomConfig(filename)
	if !exists || err != nil {
		return exists, err
	}
	return true, yaml.UnmarshalStrict(b, target)
}

// MakePreferences returns the default preferences overridden by the user's
// preferences.yml. An invalid user file is reported in YmlError and leaves
// the defaults in place.
func MakePreferences() Preferences {
	preferences := loadDefaultPreferences()
	custom := preferences
	exists, err := ReadCustomConfigYml("preferences.yml", &custom)
	if exists {
		if err == nil && custom.Measures < 1 {
			err = fmt.Errorf("preferences.yml: measures must be at least 1, got %d", custom.Measures)
		}
		if err != nil {
			preferences.YmlError = err
			return preferences
		}
		preferences = custom
	}
	return preferences
}

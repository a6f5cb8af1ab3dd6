package gioui

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	"gopkg.in/yaml.v2"
)

type (
	Preferences struct {
		Title  string          `yaml:"title"`
		Frames int             `yaml:"frames"`
		TickMs int             `yaml:"tickms"`
		Knob   KnobPreferences `yaml:"knob"`
	}

	KnobPreferences struct {
		Diameter       float32 `yaml:"diameter"`
		StrokeWidth    float32 `yaml:"strokewidth"`
		IndicatorWidth float32 `yaml:"indicatorwidth"`
	}
)

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

// ReadCustomConfigYml modifies the target argument, i.e. needs a pointer
func ReadCustomConfigYml(filename string, target interface{}) (exists bool, err error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return false, err
	}
	path := filepath.Join(configDir, "gainknob", filename)
	data, err2 := os.ReadFile(path)
	if err2 != nil {
		return false, err2
	}
	err = yaml.UnmarshalStrict(data, target)
	return true, err
}

// MakePreferences returns the default preferences overridden by the user's
// preferences.yml. The error is non-nil if the user file exists but could
// not be parsed.
func MakePreferences() (Preferences, error) {
	preferences := loadDefaultPreferences()
	exists, err := ReadCustomConfigYml("preferences.yml", &preferences)
	if exists && err != nil {
		return loadDefaultPreferences(), err
	}
	return preferences, nil
}

func (p Preferences) TickInterval() time.Duration {
	if p.TickMs <= 0 {
		return 16 * time.Millisecond
	}
	return time.Duration(p.TickMs) * time.Millisecond
}

// WindowTitle expands the title template. If the template is broken, the
// plain title is returned together with the error.
func (p Preferences) WindowTitle(title, param string) (string, error) {
	t, err := template.New("title").Funcs(sprig.TxtFuncMap()).Parse(p.Title)
	if err != nil {
		return title, fmt.Errorf("window title template: %w", err)
	}
	var b bytes.Buffer
	data := struct{ Title, Param string }{Title: title, Param: param}
	if err := t.Execute(&b, data); err != nil {
		return title, fmt.Errorf("window title template: %w", err)
	}
	return b.String(), nil
}

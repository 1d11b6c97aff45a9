package board

import (
	_ "embed"
	"errors"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

var ErrNoPreset = errors.New("no_such_preset")

// Presets returns the built-in reference boards
func Presets() ([]*Board, error) {
	var raw []Board
	if err := yaml.Unmarshal(presetsYAML, &raw); err != nil {
		return nil, err
	}
	out := make([]*Board, 0, len(raw))
	for i := range raw {
		b, err := finish(&raw[i])
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// Preset returns the built-in board called name
func Preset(name string) (*Board, error) {
	all, err := Presets()
	if err != nil {
		return nil, err
	}
	for _, b := range all {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, ErrNoPreset
}

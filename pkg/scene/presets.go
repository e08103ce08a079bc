package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-blackhole-raytracer/pkg/geometry"
	"github.com/df07/go-blackhole-raytracer/pkg/material"
)

// Preset is a named orbit position for the camera
type Preset struct {
	Name        string
	Description string
	Radius      float64
	Theta       float64
	Phi         float64
}

var presets = []Preset{
	{
		Name:        "default",
		Description: "Slightly above the disk plane at r=10",
		Radius:      10,
		Theta:       math.Pi/2 - 0.2,
	},
	{
		Name:        "edge-on",
		Description: "Almost in the disk plane",
		Radius:      10,
		Theta:       math.Pi/2 - 0.02,
	},
	{
		Name:        "top-down",
		Description: "Looking down the polar axis",
		Radius:      10,
		Theta:       0.05,
	},
	{
		Name:        "close",
		Description: "Just outside the disk's outer edge",
		Radius:      6,
		Theta:       math.Pi/2 - 0.2,
	},
}

// PresetNames returns the preset names in display order
func PresetNames() []string {
	names := make([]string, len(presets))
	for i, p := range presets {
		names[i] = p.Name
	}
	return names
}

// LookupPreset finds a preset by name
func LookupPreset(name string) (Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return Preset{}, false
}

// NewPreset builds a scene from a named camera preset. An empty name selects
// the default preset.
func NewPreset(name string, model Model, aspect float64, sky *material.Skydome) (*Scene, error) {
	if name == "" {
		name = "default"
	}
	p, ok := LookupPreset(name)
	if !ok {
		return nil, fmt.Errorf("unknown scene preset %q (available: %v)", name, PresetNames())
	}

	camera := geometry.NewOrbitingCameraSpherical(p.Radius, p.Theta, p.Phi, aspect, sky)
	return New(model, camera), nil
}

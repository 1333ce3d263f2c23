// Package presets holds named Julia scenes and loads scene files.
package presets

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/qjulia/julia"
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrInvalidConfig = errors.New("invalid rendering config")
)

// DefaultName is the preset used when none is named.
const DefaultName = "classic"

// Preset is a named starting point for a rendering config.
type Preset struct {
	Name        string
	Description string
	Mu          mgl32.Vec4

	// Zero values take the defaults from Base.
	MaxIterations int
	Epsilon       float32
	Light         mgl32.Vec3
	Orig          mgl32.Vec3
}

var presets = map[string]Preset{}

// Register adds a preset. It panics on a duplicate name; presets register from init.
func Register(p Preset) {
	if _, ok := presets[p.Name]; ok {
		panic(fmt.Sprintf("preset %q registered twice", p.Name))
	}
	presets[p.Name] = p
}

// Names returns the registered preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a preset by name.
func Get(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Base returns the configuration every preset starts from.
func Base(width, height int) julia.RenderingConfig {
	cfg := julia.RenderingConfig{
		Width:             width,
		Height:            height,
		SuperSamplingSize: 2,
		EnableShadow:      true,
		MaxIterations:     8,
		Epsilon:           0.003,
		Mu:                mgl32.Vec4{-0.2, 0.4, -0.4, -0.4},
		Light:             mgl32.Vec3{5, 10, 15},
		Camera: julia.Camera{
			Orig:   mgl32.Vec3{1, 2, 8},
			Target: mgl32.Vec3{0, 0, 0},
		},
	}
	cfg.Camera.Update(width, height)
	return cfg
}

// Config builds the rendering config for the preset at the given size.
func (p Preset) Config(width, height int) julia.RenderingConfig {
	cfg := Base(width, height)
	p.Apply(&cfg)
	return cfg
}

// Apply overwrites the fields the preset sets, keeping the image size and flags of cfg.
func (p Preset) Apply(cfg *julia.RenderingConfig) {
	cfg.Mu = p.Mu
	if p.MaxIterations > 0 {
		cfg.MaxIterations = p.MaxIterations
	}
	if p.Epsilon > 0 {
		cfg.Epsilon = p.Epsilon
	}
	if p.Light != (mgl32.Vec3{}) {
		cfg.Light = p.Light
	}
	if p.Orig != (mgl32.Vec3{}) {
		cfg.Camera.Orig = p.Orig
	}
	cfg.Camera.Update(cfg.Width, cfg.Height)
}

// Validate checks what the kernel assumes and never checks itself.
func Validate(cfg *julia.RenderingConfig) error {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	case cfg.MaxIterations <= 0:
		return fmt.Errorf("%w: maxIterations %d", ErrInvalidConfig, cfg.MaxIterations)
	case cfg.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon %v", ErrInvalidConfig, cfg.Epsilon)
	case cfg.SuperSamplingSize <= 0:
		return fmt.Errorf("%w: superSamplingSize %d", ErrInvalidConfig, cfg.SuperSamplingSize)
	case cfg.Camera.Orig == cfg.Camera.Target:
		return fmt.Errorf("%w: camera origin equals target", ErrInvalidConfig)
	}
	return nil
}

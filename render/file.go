package render

import (
	"context"
	"fmt"
	"os"

	"github.com/stewi1014/qjulia/julia"
)

// PassProgress is told after every completed pass how many of total are done.
type PassProgress func(pass, total int)

type FileOptions struct {
	Name          string
	Width, Height int

	// Supersample overrides the configuration's grid size when positive.
	Supersample int
	// Samples renders progressively with that many jittered samples instead of a
	// supersampling grid.
	Samples int
}

// WriteFile renders cfg at the requested size and writes it to opts.Name.
// The format follows the file extension. A partly written file is removed on error.
func WriteFile(ctx context.Context, cfg julia.RenderingConfig, opts FileOptions, progress PassProgress) error {
	format, err := FormatFromName(opts.Name)
	if err != nil {
		return err
	}

	if opts.Width > 0 && opts.Height > 0 {
		cfg.Width, cfg.Height = opts.Width, opts.Height
	}
	if opts.Supersample > 0 {
		cfg.SuperSamplingSize = opts.Supersample
	}
	cfg.FastRendering = false
	cfg.Camera.Update(cfg.Width, cfg.Height)

	var pixels []float32
	if opts.Samples > 0 {
		p := NewProgressive(cfg, opts.Samples, uint64(cfg.Width)<<32|uint64(cfg.Height))
		for p.Samples() < opts.Samples {
			if err := p.Step(ctx); err != nil {
				return err
			}
			if progress != nil {
				progress(p.Samples(), opts.Samples)
			}
		}
		pixels = p.Image()
	} else {
		pixels = make([]float32, cfg.BufferLen())
		if err := Supersample(ctx, pixels, &cfg, progress); err != nil {
			return err
		}
	}

	img := ToImage(pixels, cfg.Width, cfg.Height, 1)

	file, err := os.Create(opts.Name)
	if err != nil {
		return fmt.Errorf("creating %v: %w", opts.Name, err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		os.Remove(opts.Name)
		return fmt.Errorf("encoding %v: %w", opts.Name, err)
	}
	return file.Close()
}

// Package render drives the julia kernel across frames: progressive accumulation,
// supersampling and conversion of the float buffer into images.
package render

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/stewi1014/qjulia/julia"
)

// Progressive accumulates jittered samples of one configuration into a buffer.
//
// Step runs one pass at a time and is meant to be called from a single goroutine.
// Snapshot may be called from any goroutine.
type Progressive struct {
	cfg     julia.RenderingConfig
	accum   []float32
	samples int
	rng     *rand.Rand

	mu           sync.Mutex
	front        []float32
	frontSamples int
	frontWidth   int
	frontHeight  int
	target       int
}

// NewProgressive returns a Progressive for cfg. target is the sample count reported as
// complete by Progress; zero means no target.
func NewProgressive(cfg julia.RenderingConfig, target int, seed uint64) *Progressive {
	p := &Progressive{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		target: target,
	}
	p.Reset(cfg)
	return p
}

// Reset discards the accumulated samples and starts over with cfg.
func (p *Progressive) Reset(cfg julia.RenderingConfig) {
	p.cfg = cfg
	if cap(p.accum) < cfg.BufferLen() {
		p.accum = make([]float32, cfg.BufferLen())
	}
	p.accum = p.accum[:cfg.BufferLen()]
	p.samples = 0

	julia.Logger().Debug("progressive reset", "width", cfg.Width, "height", cfg.Height)
}

// Config returns the configuration being accumulated.
func (p *Progressive) Config() julia.RenderingConfig {
	return p.cfg
}

// Samples returns the number of passes accumulated since the last Reset.
func (p *Progressive) Samples() int {
	return p.samples
}

// Step renders one more sample. The first sample after a Reset is taken at the pixel centre
// and overwrites the buffer; later samples are jittered and accumulate.
func (p *Progressive) Step(ctx context.Context) error {
	sampleX, sampleY := float32(0.5), float32(0.5)
	if p.samples > 0 {
		sampleX, sampleY = p.rng.Float32(), p.rng.Float32()
	}

	err := julia.RenderPass(ctx, p.accum, &p.cfg, p.samples > 0, sampleX, sampleY)
	if err != nil {
		return err
	}
	p.samples++

	p.publish()
	return nil
}

func (p *Progressive) publish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.front = append(p.front[:0], p.accum...)
	p.frontSamples = p.samples
	p.frontWidth = p.cfg.Width
	p.frontHeight = p.cfg.Height
}

// Snapshot copies the last completed accumulation into dst, growing it as needed.
// The values are sums over samples; multiply by 1/samples to normalise.
func (p *Progressive) Snapshot(dst []float32) (buf []float32, width, height, samples int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	dst = append(dst[:0], p.front...)
	return dst, p.frontWidth, p.frontHeight, p.frontSamples
}

// Image returns the normalised accumulation as a float buffer.
func (p *Progressive) Image() []float32 {
	buf, _, _, samples := p.Snapshot(nil)
	if samples > 0 {
		julia.ScaleBuffer(buf, len(buf), 1/float32(samples))
	}
	return buf
}

// Progress reports samples against the target, for progress displays.
func (p *Progressive) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.target <= 0 {
		return 0
	}
	return min(float64(p.frontSamples)/float64(p.target), 1)
}

// Supersample renders cfg.SuperSamplingSize² stratified samples per pixel into pixels and
// normalises the result. progress, when not nil, is called after every pass.
func Supersample(ctx context.Context, pixels []float32, cfg *julia.RenderingConfig, progress PassProgress) error {
	n := max(cfg.SuperSamplingSize, 1)
	total := n * n

	pass := 0
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			sampleX := (float32(i) + 0.5) / float32(n)
			sampleY := (float32(j) + 0.5) / float32(n)

			err := julia.RenderPass(ctx, pixels, cfg, pass > 0, sampleX, sampleY)
			if err != nil {
				return err
			}

			pass++
			if progress != nil {
				progress(pass, total)
			}
		}
	}

	julia.ScaleBuffer(pixels, cfg.BufferLen(), 1/float32(total))
	return nil
}

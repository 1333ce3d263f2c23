package render

import (
	"context"
	"errors"

	"github.com/stewi1014/qjulia/julia"
)

// Background keeps refining one configuration until it reaches its sample limit
// or a new configuration arrives.
type Background struct {
	progressive *Progressive
	updates     chan julia.RenderingConfig
	maxSamples  int

	// onFrame is called from the render goroutine after every pass.
	onFrame func()
}

// NewBackground returns a Background for cfg. maxSamples of zero refines forever.
func NewBackground(cfg julia.RenderingConfig, maxSamples int, onFrame func()) *Background {
	return &Background{
		progressive: NewProgressive(cfg, maxSamples, uint64(cfg.Width*cfg.Height)),
		updates:     make(chan julia.RenderingConfig, 1),
		maxSamples:  maxSamples,
		onFrame:     onFrame,
	}
}

// Progressive returns the accumulation being refined, for Snapshot.
func (b *Background) Progressive() *Progressive {
	return b.progressive
}

// Update replaces the configuration being rendered. If several updates arrive during one pass
// only the last is used.
func (b *Background) Update(cfg julia.RenderingConfig) {
	for {
		select {
		case b.updates <- cfg:
			return
		default:
			select {
			case <-b.updates:
			default:
			}
		}
	}
}

// Run renders until ctx ends, returning its cause.
func (b *Background) Run(ctx context.Context) error {
	for {
		if b.maxSamples > 0 && b.progressive.Samples() >= b.maxSamples {
			select {
			case <-ctx.Done():
				return context.Cause(ctx)
			case cfg := <-b.updates:
				b.progressive.Reset(cfg)
			}
		}

		select {
		case cfg := <-b.updates:
			b.progressive.Reset(cfg)
		default:
		}

		err := b.progressive.Step(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return context.Cause(ctx)
		}
		if err != nil {
			return err
		}

		if b.onFrame != nil {
			b.onFrame()
		}
	}
}

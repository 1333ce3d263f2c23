package julia

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// WorkGroupSize is the dispatch granularity. The global size is rounded up to a multiple of it,
// so the last group usually carries padding indices past the final row.
const WorkGroupSize = 64

var ErrBufferTooSmall = errors.New("pixel buffer too small")

// GlobalSize returns the number of kernel indices dispatched for n pixels.
func GlobalSize(n int) int {
	return (n + WorkGroupSize - 1) / WorkGroupSize * WorkGroupSize
}

// RenderPass runs RenderPixel for every index of the frame across GOMAXPROCS workers.
//
// Workers pull whole work groups, so tasks never share an output slot. The context is checked
// between work groups; an abandoned pass leaves the buffer partially written.
func RenderPass(ctx context.Context, pixels []float32, cfg *RenderingConfig, accumulate bool, sampleX, sampleY float32) error {
	if len(pixels) < cfg.BufferLen() {
		return fmt.Errorf("%w: have %d floats, need %d", ErrBufferTooSmall, len(pixels), cfg.BufferLen())
	}

	start := time.Now()
	globalSize := GlobalSize(cfg.Pixels())
	groups := globalSize / WorkGroupSize
	workers := min(runtime.GOMAXPROCS(0), groups)

	var next atomic.Int64
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}

				group := int(next.Add(1) - 1)
				if group >= groups {
					return
				}

				for gid := group * WorkGroupSize; gid < (group+1)*WorkGroupSize; gid++ {
					RenderPixel(pixels, cfg, gid, accumulate, sampleX, sampleY)
				}
			}
		}()
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("render pass abandoned: %w", err)
	}

	Logger().Debug("render pass",
		"width", cfg.Width,
		"height", cfg.Height,
		"globalSize", globalSize,
		"workers", workers,
		"accumulate", accumulate,
		"elapsed", time.Since(start),
	)
	return nil
}

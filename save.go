package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gotk3/gotk3/glib"
	"github.com/stewi1014/qjulia/julia"
	"github.com/stewi1014/qjulia/render"
)

// save renders in the background behind a pass dialog, then shows the result.
// It must be called from the GTK main loop.
func save(
	parent context.Context,
	window *ConfigWindow,
	opts render.FileOptions,
	cfg julia.RenderingConfig,
) {
	ctx, cancel := context.WithCancelCause(parent)
	AttachErrorDialog(window, ctx, "Saving "+opts.Name)

	app, err := window.GetApplication()
	if err != nil {
		cancel(err)
		return
	}

	dialog, err := NewPassDialog(ctx, window, opts.Name, func() { cancel(context.Canceled) })
	if err != nil {
		cancel(err)
		return
	}

	go func() {
		defer CatchPanicToContext(cancel)

		err := render.WriteFile(ctx, cfg, opts, dialog.Passes)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				err = context.Canceled
			}
			cancel(err)
			return
		}

		summary := fmt.Sprintf("%dx%d, %d×%d samples per pixel, %v",
			opts.Width, opts.Height, opts.Supersample, opts.Supersample,
			dialog.Elapsed().Round(time.Millisecond))

		glib.IdleAdd(func() {
			cancel(context.Canceled)
			_, err := NewSavedImageWindow(app, opts.Name, summary, func() {
				os.Remove(opts.Name)
			})
			if err != nil {
				NewErrorDialog(window, "Opening "+opts.Name, err)
			}
		})
	}()
}

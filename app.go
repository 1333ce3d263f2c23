package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/qjulia/julia"
	"github.com/stewi1014/qjulia/pipe"
)

const applicationID = "com.github.stewi1014.qjulia"

// viewOptions are shared by the interactive front ends.
type viewOptions struct {
	// MaxSamples stops refinement once reached; zero refines forever.
	MaxSamples int
	// Scale is the render resolution relative to the window.
	Scale float32
	Debug bool
}

func NewApplication() (*Application, error) {
	app, err := gtk.ApplicationNew(applicationID, glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	a := &Application{
		Application: app,
	}

	return a, nil
}

type Application struct {
	*gtk.Application
}

// runView opens the render and config windows and blocks until both are closed or one fails.
func runView(ctx context.Context, cfg julia.RenderingConfig, opts viewOptions) error {
	mainContext, mainQuit := context.WithCancelCause(ctx)

	go func() {
		mainQuit(gtkMain(mainContext, cfg, opts))
	}()

	<-mainContext.Done()
	return ignoreCanceled(context.Cause(mainContext))
}

func gtkMain(ctx context.Context, cfg julia.RenderingConfig, opts viewOptions) error {
	runtime.LockOSThread()

	gtk.Init(&os.Args)
	app, err := NewApplication()
	if err != nil {
		return err
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	app.Connect("activate", func() {
		client, listener := pipe.NewListener()
		context.AfterFunc(appContext, func() {
			listener.Close()
		})

		renderWindow := NewRenderWindow(app.Application, client, appContext, appQuit, cfg, opts)
		if renderWindow == nil {
			return
		}
		renderWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		renderWindow.SetTitle("QJulia Render")

		configWindow := NewConfigWindow(app.Application, listener, appContext, appQuit, cfg)
		if configWindow == nil {
			return
		}
		configWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		configWindow.SetTitle("QJulia Config")
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(app.Quit)
	}()
	app.Run(nil)
	return context.Cause(appContext)
}

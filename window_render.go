package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"reflect"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/qjulia/julia"
	"github.com/stewi1014/qjulia/pipe"
	"github.com/stewi1014/qjulia/render"
)

const (
	// radians of orbit per pixel of mouse movement
	orbitSpeed = 0.01
	zoomStep   = 1.1
)

func NewRenderWindow(
	app *gtk.Application,
	conn net.Conn,
	ctx context.Context,
	quit func(error),
	cfg julia.RenderingConfig,
	opts viewOptions,
) *RenderWindow {
	var err error
	w := &RenderWindow{
		ctx:   ctx,
		quit:  quit,
		cfg:   cfg,
		fast:  cfg.FastRendering,
		scale: opts.Scale,
		debug: opts.Debug,
	}
	if w.scale <= 0 {
		w.scale = 1
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(getWindowSize(cfg))

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return nil
	}

	w.gla.SetRequiredVersion(4, 1)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("unrealize", w.glaUnrealize)

	w.gla.SetEvents(
		int(gdk.BUTTON_PRESS_MASK) |
			int(gdk.BUTTON_RELEASE_MASK) |
			int(gdk.POINTER_MOTION_MASK) |
			int(gdk.SCROLL_MASK),
	)
	w.gla.Connect("resize", w.resize)
	w.gla.Connect("scroll-event", w.scroll)
	w.gla.Connect("button-press-event", w.button)
	w.gla.Connect("button-release-event", w.button)
	w.gla.Connect("motion-notify-event", w.motion)

	w.renderer = render.NewBackground(cfg, opts.MaxSamples, func() {
		glib.IdleAdd(w.gla.QueueRender)
	})
	go func() {
		defer CatchPanicToContext(quit)
		if err := w.renderer.Run(ctx); err != nil {
			quit(err)
		}
	}()

	w.messenger = pipe.NewMessenger(ctx, conn, quit, w.handleMessage)

	w.Add(w.gla)
	w.ShowAll()

	return w
}

// getWindowSize fits the configured image size onto the primary monitor.
func getWindowSize(cfg julia.RenderingConfig) (width, height int) {
	width, height = cfg.Width, cfg.Height

	display, err := gdk.DisplayGetDefault()
	if err != nil {
		return
	}

	monitor, err := display.GetPrimaryMonitor()
	if err != nil {
		return
	}

	maxWidth := int(float32(monitor.GetGeometry().GetWidth()) * .8)
	maxHeight := int(float32(monitor.GetGeometry().GetHeight()) * .8)
	for width > maxWidth || height > maxHeight {
		width, height = width*3/4, height*3/4
	}
	return
}

type RenderWindow struct {
	*gtk.ApplicationWindow
	gla *gtk.GLArea

	ctx  context.Context
	quit func(error)

	display   *display
	renderer  *render.Background
	messenger *pipe.Messenger
	debug     bool

	// cfg is owned by the GTK main loop.
	cfg   julia.RenderingConfig
	fast  bool
	scale float32

	width, height int

	dragging bool
	dragX    float64
	dragY    float64
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()

	err := gl.Init()
	if err != nil {
		w.quit(fmt.Errorf("gl.Init: %w", err))
		return
	}

	w.display, err = newDisplay(w.debug)
	if err != nil {
		w.quit(err)
	}
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) {
	if w.display == nil {
		return
	}

	gla.AttachBuffers()
	scale := gla.GetScaleFactor()
	w.display.draw(w.renderer.Progressive(), gla.GetAllocatedWidth()*scale, gla.GetAllocatedHeight()*scale)
}

func (w *RenderWindow) glaUnrealize(gla *gtk.GLArea) {
	if w.display == nil {
		return
	}

	gla.MakeCurrent()
	w.display.delete()
	w.display = nil
}

func (w *RenderWindow) resize(gla *gtk.GLArea, width, height int) {
	width = max(1, int(float32(width)*w.scale))
	height = max(1, int(float32(height)*w.scale))
	if width == w.width && height == w.height {
		return
	}
	w.width, w.height = width, height

	w.cfg.Width, w.cfg.Height = width, height
	w.push()
}

// push hands the current configuration to the renderer.
func (w *RenderWindow) push() {
	cfg := w.cfg
	if w.dragging {
		cfg.FastRendering = true
	}
	cfg.Camera.Update(cfg.Width, cfg.Height)
	w.cfg.Camera = cfg.Camera
	w.renderer.Update(cfg)
}

func (w *RenderWindow) button(gla *gtk.GLArea, event *gdk.Event) {
	button := gdk.EventButtonNewFromEvent(event)
	if button.Button() != gdk.BUTTON_PRIMARY {
		return
	}

	switch button.Type() {
	case gdk.EVENT_BUTTON_PRESS:
		w.dragging = true
		w.dragX, w.dragY = button.MotionVal()
		w.push()

	case gdk.EVENT_BUTTON_RELEASE:
		if !w.dragging {
			return
		}
		w.dragging = false
		w.push()
		w.send()
	}
}

func (w *RenderWindow) motion(gla *gtk.GLArea, event *gdk.Event) {
	if !w.dragging {
		return
	}

	x, y := gdk.EventMotionNewFromEvent(event).MotionVal()
	dx, dy := x-w.dragX, y-w.dragY
	w.dragX, w.dragY = x, y

	w.cfg.Camera.Orbit(-float32(dx)*orbitSpeed, -float32(dy)*orbitSpeed)
	w.push()
}

func (w *RenderWindow) scroll(gla *gtk.GLArea, event *gdk.Event) {
	scroll := gdk.EventScrollNewFromEvent(event)

	switch scroll.Direction() {
	case gdk.SCROLL_DOWN:
		w.cfg.Camera.Zoom(zoomStep)
	case gdk.SCROLL_UP:
		w.cfg.Camera.Zoom(1 / zoomStep)
	default:
		return
	}

	w.push()
	w.send()
}

// send tells the config window where the camera went.
func (w *RenderWindow) send() {
	cfg := w.cfg
	cfg.FastRendering = w.fast
	w.messenger.Send(&cfg)
}

func (w *RenderWindow) handleMessage(v any) {
	switch msg := v.(type) {
	case *julia.RenderingConfig:
		glib.IdleAdd(func() {
			width, height := w.cfg.Width, w.cfg.Height
			w.cfg = *msg
			w.cfg.Width, w.cfg.Height = width, height
			w.fast = msg.FastRendering
			w.push()
		})
	default:
		log.Println("unknown message received", reflect.TypeOf(v))
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/qjulia/julia"
	"github.com/stewi1014/qjulia/presets"
	"github.com/stewi1014/qjulia/render"
)

const keyOrbitStep = 0.05

// runPreview opens a bare GLFW window driven by the keyboard. It blocks until the window closes.
func runPreview(ctx context.Context, cfg julia.RenderingConfig, opts viewOptions) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw.Init failed: %w", err)
	}
	defer glfw.Terminate()

	w, err := NewPreviewWindow(cfg, opts)
	if err != nil {
		return err
	}
	defer w.Destroy()
	defer w.display.delete()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	done := make(chan error, 1)
	go func() {
		var err error
		defer func() {
			done <- err
			glfw.PostEmptyEvent()
		}()
		defer CatchPanicToContext(cancel)
		err = w.renderer.Run(ctx)
	}()

	for !w.ShouldClose() {
		if w.frame.Swap(false) {
			w.draw()
		}

		glfw.WaitEventsTimeout(0.25)

		select {
		case err := <-done:
			if err == nil {
				err = context.Cause(ctx)
			}
			return ignoreCanceled(err)
		default:
		}
	}

	cancel(context.Canceled)
	<-done
	return ignoreCanceled(context.Cause(ctx))
}

func NewPreviewWindow(cfg julia.RenderingConfig, opts viewOptions) (*PreviewWindow, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if opts.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	window, err := glfw.CreateWindow(
		cfg.Width,
		cfg.Height,
		"QJulia Preview",
		nil,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	w := &PreviewWindow{
		Window: window,
		cfg:    cfg,
		fast:   cfg.FastRendering,
		scale:  opts.Scale,
	}
	if w.scale <= 0 {
		w.scale = 1
	}

	w.MakeContextCurrent()
	err = gl.Init()
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("gl.Init failed: %w", err)
	}

	w.display, err = newDisplay(opts.Debug)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	w.renderer = render.NewBackground(cfg, opts.MaxSamples, func() {
		w.frame.Store(true)
		glfw.PostEmptyEvent()
	})

	w.SetFramebufferSizeCallback(w.resize)
	w.SetKeyCallback(w.key)
	w.SetMouseButtonCallback(w.mouseButton)
	w.SetCursorPosCallback(w.cursor)
	w.SetScrollCallback(w.scroll)

	fbWidth, fbHeight := window.GetFramebufferSize()
	w.resize(window, fbWidth, fbHeight)
	return w, nil
}

type PreviewWindow struct {
	*glfw.Window

	display  *display
	renderer *render.Background
	frame    atomic.Bool

	// owned by the GLFW event loop
	cfg   julia.RenderingConfig
	fast  bool
	scale float32

	dragging     bool
	dragX, dragY float64
}

func (w *PreviewWindow) draw() {
	width, height := w.GetFramebufferSize()
	w.display.draw(w.renderer.Progressive(), width, height)
	w.SwapBuffers()
}

func (w *PreviewWindow) push() {
	cfg := w.cfg
	cfg.FastRendering = w.fast || w.dragging
	cfg.Camera.Update(cfg.Width, cfg.Height)
	w.cfg.Camera = cfg.Camera
	w.renderer.Update(cfg)

	mode := "full"
	if cfg.FastRendering {
		mode = "fast"
	}
	w.SetTitle(fmt.Sprintf("QJulia Preview (%d iterations, %s)", cfg.Iterations(), mode))
}

func (w *PreviewWindow) resize(_ *glfw.Window, width, height int) {
	w.cfg.Width = max(1, int(float32(width)*w.scale))
	w.cfg.Height = max(1, int(float32(height)*w.scale))
	w.push()
}

func (w *PreviewWindow) key(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Release {
		return
	}

	switch key {
	case glfw.KeyEscape:
		w.SetShouldClose(true)
		return
	case glfw.KeyLeft:
		w.cfg.Camera.Orbit(keyOrbitStep, 0)
	case glfw.KeyRight:
		w.cfg.Camera.Orbit(-keyOrbitStep, 0)
	case glfw.KeyUp:
		w.cfg.Camera.Orbit(0, keyOrbitStep)
	case glfw.KeyDown:
		w.cfg.Camera.Orbit(0, -keyOrbitStep)
	case glfw.KeyEqual, glfw.KeyKPAdd:
		w.cfg.Camera.Zoom(1 / zoomStep)
	case glfw.KeyMinus, glfw.KeyKPSubtract:
		w.cfg.Camera.Zoom(zoomStep)
	case glfw.KeyS:
		w.cfg.EnableShadow = !w.cfg.EnableShadow
	case glfw.KeyF:
		w.fast = !w.fast
	case glfw.KeyLeftBracket:
		w.cfg.MaxIterations = max(1, w.cfg.MaxIterations-1)
	case glfw.KeyRightBracket:
		w.cfg.MaxIterations++
	case glfw.KeyP:
		w.snapshot()
		return
	default:
		if key < glfw.Key1 || key > glfw.Key9 {
			return
		}
		names := presets.Names()
		i := int(key - glfw.Key1)
		if i >= len(names) {
			return
		}
		p, err := presets.Get(names[i])
		if err != nil {
			log.Println(err)
			return
		}
		p.Apply(&w.cfg)
		log.Printf("preset %v: %v", p.Name, p.Description)
	}

	w.push()
}

// snapshot writes the current view at window resolution to a timestamped PNG.
func (w *PreviewWindow) snapshot() {
	cfg := w.cfg
	cfg.FastRendering = w.fast
	opts := render.FileOptions{
		Name:   fmt.Sprintf("qjulia-%v.png", time.Now().Format("20060102-150405")),
		Width:  cfg.Width,
		Height: cfg.Height,
	}

	go func() {
		err := render.WriteFile(context.Background(), cfg, opts, nil)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Println(err)
			return
		}
		log.Println("saved", opts.Name)
	}()
}

func (w *PreviewWindow) mouseButton(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}

	switch action {
	case glfw.Press:
		w.dragging = true
		w.dragX, w.dragY = w.GetCursorPos()
	case glfw.Release:
		w.dragging = false
	}
	w.push()
}

func (w *PreviewWindow) cursor(_ *glfw.Window, x, y float64) {
	if !w.dragging {
		return
	}

	dx, dy := x-w.dragX, y-w.dragY
	w.dragX, w.dragY = x, y

	w.cfg.Camera.Orbit(-float32(dx)*orbitSpeed, -float32(dy)*orbitSpeed)
	w.push()
}

func (w *PreviewWindow) scroll(_ *glfw.Window, xoff, yoff float64) {
	switch {
	case yoff > 0:
		w.cfg.Camera.Zoom(1 / zoomStep)
	case yoff < 0:
		w.cfg.Camera.Zoom(zoomStep)
	default:
		return
	}
	w.push()
}

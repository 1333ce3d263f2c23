package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"reflect"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/qjulia/julia"
	"github.com/stewi1014/qjulia/pipe"
	"github.com/stewi1014/qjulia/presets"
	"github.com/stewi1014/qjulia/render"
)

var muLabels = [4]string{"Real", "i", "j", "k"}

func NewConfigWindow(
	app *gtk.Application,
	listener net.Listener,
	ctx context.Context,
	quit func(error),
	cfg julia.RenderingConfig,
) *ConfigWindow {
	var err error
	w := &ConfigWindow{
		ctx:  ctx,
		quit: quit,
		cfg:  cfg,
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(320, 640)

	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 6)
	if err != nil {
		quit(fmt.Errorf("gtk.BoxNew: %w", err))
		return nil
	}
	box.SetMarginStart(10)
	box.SetMarginEnd(10)
	box.SetMarginTop(10)
	box.SetMarginBottom(10)

	if err := w.build(box); err != nil {
		quit(err)
		return nil
	}

	w.Add(box)
	w.ShowAll()

	go func() {
		defer CatchPanicToContext(quit)
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() == nil {
				quit(fmt.Errorf("accepting render window: %w", err))
			}
			return
		}

		m := pipe.NewMessenger(ctx, conn, quit, w.handleMessage)
		glib.IdleAdd(func() {
			w.messenger = m
		})
	}()

	return w
}

type ConfigWindow struct {
	*gtk.ApplicationWindow

	ctx  context.Context
	quit func(error)

	// cfg mirrors what the render window shows; it is owned by the GTK main loop.
	cfg       julia.RenderingConfig
	messenger *pipe.Messenger

	// set while widgets are being filled from cfg
	loading bool

	preset      *gtk.ComboBoxText
	mu          [4]*gtk.Scale
	iterations  *gtk.SpinButton
	epsilon     *gtk.SpinButton
	supersample *gtk.SpinButton
	shadows     *gtk.CheckButton
	fast        *gtk.CheckButton
	saveWidth   *gtk.SpinButton
	saveHeight  *gtk.SpinButton
}

func (w *ConfigWindow) build(box *gtk.Box) error {
	var err error

	w.preset, err = gtk.ComboBoxTextNew()
	if err != nil {
		return fmt.Errorf("gtk.ComboBoxTextNew: %w", err)
	}
	for _, name := range presets.Names() {
		w.preset.AppendText(name)
	}
	w.preset.Connect("changed", w.presetChanged)
	addRow(box, "Preset", w.preset)

	for i := range w.mu {
		w.mu[i], err = gtk.ScaleNewWithRange(gtk.ORIENTATION_HORIZONTAL, -1.5, 1.5, 0.001)
		if err != nil {
			return fmt.Errorf("gtk.ScaleNewWithRange: %w", err)
		}
		w.mu[i].SetDigits(3)
		w.mu[i].SetHExpand(true)
		w.mu[i].Connect("value-changed", w.changed)
		addRow(box, "Mu "+muLabels[i], w.mu[i])
	}

	w.iterations, err = gtk.SpinButtonNewWithRange(1, 64, 1)
	if err != nil {
		return fmt.Errorf("gtk.SpinButtonNewWithRange: %w", err)
	}
	w.iterations.Connect("value-changed", w.changed)
	addRow(box, "Iterations", w.iterations)

	w.epsilon, err = gtk.SpinButtonNewWithRange(0.0001, 0.1, 0.0005)
	if err != nil {
		return fmt.Errorf("gtk.SpinButtonNewWithRange: %w", err)
	}
	w.epsilon.SetDigits(4)
	w.epsilon.Connect("value-changed", w.changed)
	addRow(box, "Epsilon", w.epsilon)

	w.supersample, err = gtk.SpinButtonNewWithRange(1, 8, 1)
	if err != nil {
		return fmt.Errorf("gtk.SpinButtonNewWithRange: %w", err)
	}
	w.supersample.Connect("value-changed", w.changed)
	addRow(box, "Supersampling", w.supersample)

	w.shadows, err = gtk.CheckButtonNewWithLabel("Shadows")
	if err != nil {
		return fmt.Errorf("gtk.CheckButtonNewWithLabel: %w", err)
	}
	w.shadows.Connect("toggled", w.changed)
	box.PackStart(w.shadows, false, false, 0)

	w.fast, err = gtk.CheckButtonNewWithLabel("Fast rendering")
	if err != nil {
		return fmt.Errorf("gtk.CheckButtonNewWithLabel: %w", err)
	}
	w.fast.Connect("toggled", w.changed)
	box.PackStart(w.fast, false, false, 0)

	w.saveWidth, err = gtk.SpinButtonNewWithRange(16, 16384, 16)
	if err != nil {
		return fmt.Errorf("gtk.SpinButtonNewWithRange: %w", err)
	}
	w.saveWidth.SetValue(1920)
	addRow(box, "Image width", w.saveWidth)

	w.saveHeight, err = gtk.SpinButtonNewWithRange(16, 16384, 16)
	if err != nil {
		return fmt.Errorf("gtk.SpinButtonNewWithRange: %w", err)
	}
	w.saveHeight.SetValue(1080)
	addRow(box, "Image height", w.saveHeight)

	saveImage, err := gtk.ButtonNewWithLabel("Save Image")
	if err != nil {
		return fmt.Errorf("gtk.ButtonNewWithLabel: %w", err)
	}
	saveImage.Connect("clicked", w.saveImage)
	box.PackEnd(saveImage, false, false, 0)

	saveScene, err := gtk.ButtonNewWithLabel("Save Scene")
	if err != nil {
		return fmt.Errorf("gtk.ButtonNewWithLabel: %w", err)
	}
	saveScene.Connect("clicked", w.saveScene)
	box.PackEnd(saveScene, false, false, 0)

	w.load()
	return nil
}

func addRow(box *gtk.Box, label string, widget gtk.IWidget) {
	row, _ := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 6)
	l, _ := gtk.LabelNew(label)
	l.SetWidthChars(12)
	l.SetXAlign(0)
	row.PackStart(l, false, false, 0)
	row.PackStart(widget, true, true, 0)
	box.PackStart(row, false, false, 0)
}

// load fills the widgets from cfg without echoing the changes back.
func (w *ConfigWindow) load() {
	w.loading = true
	defer func() { w.loading = false }()

	for i := range w.mu {
		w.mu[i].SetValue(float64(w.cfg.Mu[i]))
	}
	w.iterations.SetValue(float64(w.cfg.MaxIterations))
	w.epsilon.SetValue(float64(w.cfg.Epsilon))
	w.supersample.SetValue(float64(w.cfg.SuperSamplingSize))
	w.shadows.SetActive(w.cfg.EnableShadow)
	w.fast.SetActive(w.cfg.FastRendering)
}

// changed reads every widget back into cfg and sends it to the render window.
func (w *ConfigWindow) changed() {
	if w.loading {
		return
	}

	for i := range w.mu {
		w.cfg.Mu[i] = float32(w.mu[i].GetValue())
	}
	w.cfg.MaxIterations = w.iterations.GetValueAsInt()
	w.cfg.Epsilon = float32(w.epsilon.GetValue())
	w.cfg.SuperSamplingSize = w.supersample.GetValueAsInt()
	w.cfg.EnableShadow = w.shadows.GetActive()
	w.cfg.FastRendering = w.fast.GetActive()

	w.send()
}

func (w *ConfigWindow) presetChanged() {
	if w.loading {
		return
	}

	p, err := presets.Get(w.preset.GetActiveText())
	if err != nil {
		log.Println(err)
		return
	}

	p.Apply(&w.cfg)
	w.load()
	w.send()
}

func (w *ConfigWindow) send() {
	if w.messenger == nil {
		return
	}
	cfg := w.cfg
	w.messenger.Send(&cfg)
}

func (w *ConfigWindow) handleMessage(v any) {
	switch msg := v.(type) {
	case *julia.RenderingConfig:
		glib.IdleAdd(func() {
			w.cfg = *msg
			w.load()
		})
	default:
		log.Println("unknown message received", reflect.TypeOf(v))
	}
}

func (w *ConfigWindow) saveImage() {
	name, ok := w.chooseFile("Save Image", "qjulia.png")
	if !ok {
		return
	}

	opts := render.FileOptions{
		Name:        name,
		Width:       w.saveWidth.GetValueAsInt(),
		Height:      w.saveHeight.GetValueAsInt(),
		Supersample: w.cfg.SuperSamplingSize,
	}
	save(w.ctx, w, opts, w.cfg)
}

func (w *ConfigWindow) saveScene() {
	name, ok := w.chooseFile("Save Scene", "scene.json")
	if !ok {
		return
	}

	if err := presets.Save(name, w.cfg); err != nil {
		NewErrorDialog(w, "Saving "+name, err)
	}
}

func (w *ConfigWindow) chooseFile(title, suggested string) (string, bool) {
	dialog, err := gtk.FileChooserDialogNewWith2Buttons(
		title,
		w,
		gtk.FILE_CHOOSER_ACTION_SAVE,
		"Cancel", gtk.RESPONSE_CANCEL,
		"Save", gtk.RESPONSE_ACCEPT,
	)
	if err != nil {
		NewErrorDialog(w, title, err)
		return "", false
	}
	defer dialog.Destroy()

	dialog.SetDoOverwriteConfirmation(true)
	dialog.SetCurrentName(suggested)

	if dialog.Run() != gtk.RESPONSE_ACCEPT {
		return "", false
	}
	return dialog.GetFilename(), true
}

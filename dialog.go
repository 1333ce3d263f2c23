package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

func CatchPanicToContext(ctxCancel context.CancelCauseFunc) {
	if v := recover(); v != nil {
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", v)
		}
		err = fmt.Errorf("%w\n%v", err, string(debug.Stack()))
		if ctxCancel != nil {
			ctxCancel(err)
		}
	}
}

// AttachErrorDialog reports the cause of ctx under the given action once it ends,
// unless it was a plain cancellation.
func AttachErrorDialog(parent gtk.IWindow, ctx context.Context, action string) {
	context.AfterFunc(ctx, func() {
		err := context.Cause(ctx)
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Printf("%v: %v", action, err)
		glib.IdleAdd(func() {
			NewErrorDialog(parent, action, err)
		})
	})
}

// NewErrorDialog shows err as the detail of a failed action and blocks until it is closed.
func NewErrorDialog(parent gtk.IWindow, action string, err error) {
	dialog := gtk.MessageDialogNew(
		parent,
		gtk.DIALOG_MODAL|gtk.DIALOG_DESTROY_WITH_PARENT,
		gtk.MESSAGE_ERROR,
		gtk.BUTTONS_CLOSE,
		"%s failed",
		action,
	)
	defer dialog.Destroy()

	dialog.FormatSecondaryText("%s", err.Error())
	dialog.SetKeepAbove(true)
	dialog.Run()
}

// PassDialog follows a render to file pass by pass and offers to cancel it.
// It closes itself when ctx ends.
type PassDialog struct {
	*gtk.Dialog
	bar   *gtk.ProgressBar
	label *gtk.Label

	name    string
	started time.Time

	// written by the render goroutine
	pass  atomic.Int64
	total atomic.Int64
}

func NewPassDialog(
	ctx context.Context,
	parent gtk.IWindow,
	name string,
	onCancel func(),
) (*PassDialog, error) {
	d := &PassDialog{
		name:    name,
		started: time.Now(),
	}

	var err error
	d.Dialog, err = gtk.DialogNewWithButtons(
		"Save Image",
		parent,
		gtk.DIALOG_DESTROY_WITH_PARENT,
		[]interface{}{"Cancel", gtk.RESPONSE_CANCEL},
	)
	if err != nil {
		return nil, fmt.Errorf("gtk.DialogNewWithButtons: %w", err)
	}

	d.SetKeepAbove(true)
	d.Connect("response", func(_ *gtk.Dialog, response gtk.ResponseType) {
		if response == gtk.RESPONSE_CANCEL {
			onCancel()
		}
	})

	ca, err := d.GetContentArea()
	if err != nil {
		return nil, fmt.Errorf("GetContentArea: %w", err)
	}

	d.label, _ = gtk.LabelNew(fmt.Sprintf("Rendering %v", name))
	ca.Add(d.label)

	d.bar, _ = gtk.ProgressBarNew()
	d.bar.SetShowText(true)
	d.bar.SetText("waiting for the first pass")
	d.bar.SetSizeRequest(500, 40)
	ca.Add(d.bar)

	d.ShowAll()

	go d.follow(ctx)
	return d, nil
}

// Passes records how far the render has got. It may be called from any goroutine.
func (d *PassDialog) Passes(pass, total int) {
	d.total.Store(int64(total))
	d.pass.Store(int64(pass))
}

// Elapsed is the time since the dialog opened.
func (d *PassDialog) Elapsed() time.Duration {
	return time.Since(d.started)
}

func (d *PassDialog) follow(ctx context.Context) {
	ticker := time.NewTicker(time.Second / 10)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			glib.IdleAdd(d.refresh)
		case <-ctx.Done():
			glib.IdleAdd(d.Destroy)
			return
		}
	}
}

func (d *PassDialog) refresh() {
	pass, total := d.pass.Load(), d.total.Load()
	if total == 0 {
		return
	}

	d.bar.SetFraction(float64(pass) / float64(total))
	d.bar.SetText(fmt.Sprintf("pass %d of %d", pass, total))

	elapsed := d.Elapsed().Round(time.Second)
	if pass == 0 {
		d.label.SetText(fmt.Sprintf("Rendering %v (%v)", d.name, elapsed))
		return
	}
	remaining := (d.Elapsed() / time.Duration(pass) * time.Duration(total-pass)).Round(time.Second)
	d.label.SetText(fmt.Sprintf("Rendering %v (%v, about %v left)", d.name, elapsed, remaining))
}

// NewSavedImageWindow shows a freshly written image with how it was made,
// and lets the user keep or delete it.
func NewSavedImageWindow(
	app *gtk.Application,
	filename string,
	summary string,
	onDelete func(),
) (*gtk.ApplicationWindow, error) {
	w, err := gtk.ApplicationWindowNew(app)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationWindowNew: %w", err)
	}
	w.SetTitle(filename)

	preview, err := gtk.ImageNewFromFile(filename)
	if err != nil {
		return nil, fmt.Errorf("gtk.ImageNewFromFile: %w", err)
	}
	preview.SetHExpand(true)
	preview.SetVExpand(true)

	info, _ := gtk.LabelNew(summary)
	info.SetHExpand(true)

	deleteButton, _ := gtk.ButtonNewWithLabel("Delete")
	deleteButton.Connect("clicked", func() {
		onDelete()
		w.Destroy()
	})

	keepButton, _ := gtk.ButtonNewWithLabel("Keep")
	keepButton.Connect("clicked", w.Destroy)

	grid, _ := gtk.GridNew()
	grid.Attach(preview, 0, 0, 3, 1)
	grid.Attach(keepButton, 0, 1, 1, 1)
	grid.Attach(info, 1, 1, 1, 1)
	grid.Attach(deleteButton, 2, 1, 1, 1)

	w.Add(grid)
	w.ShowAll()

	return w, nil
}

package render

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFile(t *testing.T) {
	cfg := testConfig(8, 8)
	name := filepath.Join(t.TempDir(), "out.png")

	var lastPass, lastTotal int
	err := WriteFile(context.Background(), cfg, FileOptions{
		Name:        name,
		Width:       12,
		Height:      6,
		Supersample: 2,
	}, func(pass, total int) { lastPass, lastTotal = pass, total })
	if err != nil {
		t.Fatal(err)
	}
	if lastPass != 4 || lastTotal != 4 {
		t.Fatalf("final progress %d/%d, want 4/4", lastPass, lastTotal)
	}

	f, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 6 {
		t.Fatalf("image %v, want 12x6", b)
	}
}

func TestWriteFileProgressive(t *testing.T) {
	cfg := testConfig(4, 4)
	name := filepath.Join(t.TempDir(), "out.bmp")

	var passes []int
	err := WriteFile(context.Background(), cfg, FileOptions{Name: name, Samples: 2}, func(pass, total int) {
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
		passes = append(passes, pass)
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(passes) != 2 || passes[1] != 2 {
		t.Fatalf("passes %v, want [1 2]", passes)
	}
	if _, err := os.Stat(name); err != nil {
		t.Fatal(err)
	}
}

func TestWriteFileErrors(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(4, 4)

	err := WriteFile(context.Background(), cfg, FileOptions{Name: filepath.Join(dir, "out.gif")}, nil)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}

	missing := filepath.Join(dir, "no-such-dir", "out.png")
	err = WriteFile(context.Background(), cfg, FileOptions{Name: missing}, nil)
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not exist", err)
	}
	if !strings.Contains(err.Error(), "creating "+missing) {
		t.Fatalf("err %q does not name the file being created", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	name := filepath.Join(dir, "cancelled.png")
	err = WriteFile(ctx, cfg, FileOptions{Name: name}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(name); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("cancelled render left %v behind", name)
	}
}

package presets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAllPresetsValid(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("no presets registered")
	}

	for _, name := range names {
		p, err := Get(name)
		if err != nil {
			t.Fatal(err)
		}
		cfg := p.Config(320, 240)
		if err := Validate(&cfg); err != nil {
			t.Fatalf("preset %s: %v", name, err)
		}
		if cfg.Mu != p.Mu {
			t.Fatalf("preset %s: mu %v, want %v", name, cfg.Mu, p.Mu)
		}
		if !mgl32.FloatEqualThreshold(cfg.Camera.Dir.Len(), 1, 1e-5) {
			t.Fatalf("preset %s: camera basis not updated", name)
		}
	}

	if _, err := Get(DefaultName); err != nil {
		t.Fatalf("default preset: %v", err)
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("no-such-preset"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("err = %v, want ErrUnknownPreset", err)
	}
}

func TestApplyKeepsUnsetFields(t *testing.T) {
	cfg := Base(100, 50)
	cfg.EnableShadow = false
	cfg.MaxIterations = 5

	Preset{Name: "bare", Mu: mgl32.Vec4{1, 2, 3, 4}}.Apply(&cfg)

	if cfg.MaxIterations != 5 || cfg.EnableShadow || cfg.Width != 100 {
		t.Fatalf("apply changed unset fields: %+v", cfg)
	}
	if cfg.Mu != (mgl32.Vec4{1, 2, 3, 4}) {
		t.Fatalf("mu = %v", cfg.Mu)
	}
}

func TestValidate(t *testing.T) {
	good := Base(10, 10)
	if err := Validate(&good); err != nil {
		t.Fatal(err)
	}

	bad := []func(){
		func() { good.Width = 0 },
		func() { good.MaxIterations = 0 },
		func() { good.Epsilon = -1 },
		func() { good.SuperSamplingSize = 0 },
		func() { good.Camera.Orig = good.Camera.Target },
	}
	for i, mutate := range bad {
		good = Base(10, 10)
		mutate()
		if err := Validate(&good); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("case %d: err = %v, want ErrInvalidConfig", i, err)
		}
	}
}

func TestLoadOverlaysBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	scene := `{
		"width": 64,
		"mu": [0.1, 0.2, 0.3, 0.4],
		"camera": {"orig": [0, 0, 5], "target": [0, 0, 0]}
	}`
	if err := os.WriteFile(path, []byte(scene), 0o644); err != nil {
		t.Fatal(err)
	}

	base := Base(32, 32)
	cfg, err := Load(path, base)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Width != 64 || cfg.Height != 32 {
		t.Fatalf("size %dx%d, want 64x32", cfg.Width, cfg.Height)
	}
	if cfg.Mu != (mgl32.Vec4{0.1, 0.2, 0.3, 0.4}) {
		t.Fatalf("mu = %v", cfg.Mu)
	}
	if cfg.MaxIterations != base.MaxIterations || cfg.Light != base.Light {
		t.Fatalf("unset fields not taken from base: %+v", cfg)
	}
	if !cfg.Camera.Dir.ApproxEqual(mgl32.Vec3{0, 0, -1}) {
		t.Fatalf("camera dir %v, want -z", cfg.Camera.Dir)
	}

	// the wide aspect stretches X
	if !mgl32.FloatEqualThreshold(cfg.Camera.X.Len(), 2*cfg.Camera.Y.Len(), 1e-5) {
		t.Fatalf("x %v y %v for a 2:1 image", cfg.Camera.X, cfg.Camera.Y)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	base := Base(8, 8)

	if _, err := Load(filepath.Join(dir, "missing.json"), base); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want not exist", err)
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"maxIterations": 0}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid, base); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte(`{"width": `), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(broken, base); err == nil {
		t.Fatal("broken JSON loaded")
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	cfg := Base(40, 30)
	cfg.Mu = mgl32.Vec4{0.5, -0.25, 0, 1}
	cfg.FastRendering = true

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path, Base(1, 1))
	if err != nil {
		t.Fatal(err)
	}
	if got.Mu != cfg.Mu || got.Width != 40 || !got.FastRendering {
		t.Fatalf("loaded %+v", got)
	}
}

package presets

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/stewi1014/qjulia/julia"
)

// Load reads a JSON scene file over base. Fields missing from the file keep the value from base.
// The camera basis is recomputed and the result validated.
func Load(path string, base julia.RenderingConfig) (julia.RenderingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading scene: %w", err)
	}

	cfg := base
	if err := json.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parsing scene %s: %w", path, err)
	}

	cfg.Camera.Update(cfg.Width, cfg.Height)
	if err := Validate(&cfg); err != nil {
		return base, fmt.Errorf("scene %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes cfg as an indented JSON scene file.
func Save(path string, cfg julia.RenderingConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding scene: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing scene: %w", err)
	}
	return nil
}

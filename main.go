package main

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/stewi1014/qjulia/julia"
	"github.com/stewi1014/qjulia/presets"
	"github.com/stewi1014/qjulia/render"
)

func init() {
	gob.Register(&julia.RenderingConfig{})
}

type rootOptions struct {
	preset  string
	scene   string
	width   int
	height  int
	verbose bool
}

// config resolves the preset and optional scene file into a validated configuration.
func (o *rootOptions) config() (julia.RenderingConfig, error) {
	p, err := presets.Get(o.preset)
	if err != nil {
		return julia.RenderingConfig{}, err
	}

	cfg := p.Config(o.width, o.height)
	if o.scene != "" {
		return presets.Load(o.scene, cfg)
	}
	return cfg, presets.Validate(&cfg)
}

func (o *rootOptions) viewOptions(cmd *cobra.Command) viewOptions {
	maxSamples, _ := cmd.Flags().GetInt("max-samples")
	scale, _ := cmd.Flags().GetFloat32("scale")
	return viewOptions{
		MaxSamples: maxSamples,
		Scale:      scale,
		Debug:      o.verbose,
	}
}

func mainCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "qjulia",
		Short:         "Ray marched quaternion Julia sets",
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.verbose {
				julia.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.preset, "preset", presets.DefaultName, "named scene to start from")
	flags.StringVar(&opts.scene, "scene", "", "JSON scene file applied over the preset")
	flags.IntVar(&opts.width, "width", 1024, "image width in pixels")
	flags.IntVar(&opts.height, "height", 768, "image height in pixels")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log render passes and GL debug output")

	cmd.AddCommand(
		viewCmd(opts),
		previewCmd(opts),
		renderCmd(opts),
		presetsCmd(),
	)

	return cmd
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-samples", 64, "stop refining after this many samples, 0 for never")
	cmd.Flags().Float32("scale", 1, "render resolution relative to the window")
}

func viewCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Interactive viewer with a render window and a config window",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			return runView(cmd.Context(), cfg, opts.viewOptions(cmd))
		},
	}
	addViewFlags(cmd)

	return cmd
}

func previewCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Keyboard driven viewer in a single window",
		Long: `Keyboard driven viewer in a single window.

  arrows   orbit the camera        + -   zoom
  s        toggle shadows          f     toggle fast rendering
  [ ]      fewer or more iterations
  1-9      switch preset           p     save a PNG of the current view
  esc      quit`,
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			return runPreview(cmd.Context(), cfg, opts.viewOptions(cmd))
		},
	}
	addViewFlags(cmd)

	return cmd
}

func renderCmd(opts *rootOptions) *cobra.Command {
	var (
		out         string
		samples     int
		supersample int
		saveScene   string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a single image to a file",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			if saveScene != "" {
				if err := presets.Save(saveScene, cfg); err != nil {
					return err
				}
			}

			last := -1
			err = render.WriteFile(cmd.Context(), cfg, render.FileOptions{
				Name:        out,
				Width:       cfg.Width,
				Height:      cfg.Height,
				Supersample: supersample,
				Samples:     samples,
			}, func(pass, total int) {
				if decile := pass * 10 / total; decile != last {
					last = decile
					log.Printf("rendering %v: pass %d of %d", out, pass, total)
				}
			})
			if err != nil {
				return err
			}

			log.Println("saved", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "qjulia.png", "output file; .png, .tiff or .bmp")
	cmd.Flags().IntVar(&samples, "samples", 0, "jittered progressive samples per pixel instead of a supersampling grid")
	cmd.Flags().IntVar(&supersample, "supersample", 0, "supersampling grid size, overriding the scene")
	cmd.Flags().StringVar(&saveScene, "save-scene", "", "also write the resolved scene as JSON")

	return cmd
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named scenes",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range presets.Names() {
				p, err := presets.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", p.Name, p.Description)
			}
			return nil
		},
	}
}

// ignoreCanceled treats a plain cancellation, such as closing a window, as success.
func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := mainCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Fatalln(err)
	}
}

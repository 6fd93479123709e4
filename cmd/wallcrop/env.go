package main

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/dixieflatline76/wallcrop/config"
	"github.com/dixieflatline76/wallcrop/pkg/crop"
	"github.com/dixieflatline76/wallcrop/pkg/wallpaper"
	"github.com/dixieflatline76/wallcrop/util/log"
	"github.com/spf13/cobra"
)

// newPreferences opens the persistent preference store. Tests swap it for an in-memory one.
var newPreferences = func() fyne.Preferences {
	return app.NewWithID(config.AppID).Preferences()
}

// env is what every command needs: preferences, tuning and the display to lay out for.
type env struct {
	cfg     *config.AppConfig
	tuning  wallpaper.TuningConfig
	display crop.Display
	opts    wallpaper.PreviewOptions
}

func newEnv(cmd *cobra.Command, g *globalOptions) (*env, error) {
	cfg := config.NewAppConfig(newPreferences())

	tuningPath, err := config.GetTuningFilename()
	if err != nil {
		return nil, err
	}
	tuning, err := wallpaper.LoadTuning(tuningPath)
	if err != nil {
		log.Printf("Ignoring tuning file: %v", err)
	}

	display := crop.Display{Real: g.screen.size}
	if !g.screen.set {
		display, err = wallpaper.DisplayFromOS(wallpaper.DefaultOS())
		if err != nil {
			return nil, fmt.Errorf("detecting screen size (use --screen WxH): %w", err)
		}
	}

	// Flags given on the command line win and are remembered.
	flags := cmd.Flags()
	if flags.Changed("rtl") {
		cfg.SetRTL(g.rtl)
	}
	if flags.Changed("large-screen") {
		cfg.SetLargeScreen(g.largeScreen)
	}
	if flags.Changed("smart") {
		cfg.SetSmartCenter(g.smartCenter)
	}

	return &env{
		cfg:     cfg,
		tuning:  tuning,
		display: display,
		opts: wallpaper.PreviewOptions{
			RTL:         cfg.GetRTL(),
			LargeScreen: cfg.GetLargeScreen(),
			SmartCenter: cfg.GetSmartCenter(),
			Tuning:      tuning,
		},
	}, nil
}

// viewOptions adjust the initial view before it is shown or committed.
type viewOptions struct {
	zoom float64
	panX float64
	panY float64
	// Arrow steps of the tuning pan step, applied after the pixel pan.
	stepX int
	stepY int
}

func addViewFlags(cmd *cobra.Command, v *viewOptions) {
	cmd.Flags().Float64Var(&v.zoom, "zoom", 0, "zoom level (default: cover the crop surface)")
	cmd.Flags().Float64Var(&v.panX, "pan-x", 0, "horizontal pan in screen pixels")
	cmd.Flags().Float64Var(&v.panY, "pan-y", 0, "vertical pan in screen pixels")
	cmd.Flags().IntVar(&v.stepX, "step-x", 0, "horizontal pan in arrow steps (negative moves left)")
	cmd.Flags().IntVar(&v.stepY, "step-y", 0, "vertical pan in arrow steps (negative moves up)")
}

// openPreview loads path and applies the view adjustments.
func (e *env) openPreview(ctx context.Context, path string, v viewOptions) (*wallpaper.Preview, error) {
	p := wallpaper.NewPreview(wallpaper.NewFileAsset(path), e.display, e.opts)
	if err := p.Load(ctx); err != nil {
		return nil, err
	}
	if v.zoom > 0 {
		p.ZoomTo(v.zoom)
	}
	if v.panX != 0 || v.panY != 0 {
		p.Pan(v.panX, v.panY)
	}
	if v.stepX != 0 || v.stepY != 0 {
		p.PanSteps(v.stepX, v.stepY)
	}
	return p, nil
}

// newController wires the file persister for the running desktop.
func (e *env) newController() (*wallpaper.Controller, string, error) {
	dir, err := config.GetCroppedDir()
	if err != nil {
		return nil, "", err
	}
	fm := wallpaper.NewFileManager(dir)
	if err := fm.EnsureDirs(); err != nil {
		return nil, "", err
	}
	persister := wallpaper.NewFilePersister(wallpaper.DefaultOS(), fm, e.tuning)
	return wallpaper.NewController(persister, e.cfg), dir, nil
}

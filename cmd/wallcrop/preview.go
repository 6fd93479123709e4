package main

import (
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/wallcrop/pkg/crop"
	"github.com/spf13/cobra"
)

func newPreviewCmd(g *globalOptions) *cobra.Command {
	var v viewOptions
	var render string

	cmd := &cobra.Command{
		Use:   "preview <image>",
		Short: "Show the initial view and crop rect for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			p, err := e.openPreview(cmd.Context(), args[0], v)
			if err != nil {
				return err
			}

			view := p.View()
			rect, zoom, err := p.CropRect()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "image      %s\n", p.ImageSize())
			fmt.Fprintf(out, "screen     %s\n", p.ScreenSize())
			fmt.Fprintf(out, "surface    %s\n", p.CropSurfaceSize())
			fmt.Fprintf(out, "zoom       %.3f (min %.3f, max %.3f)\n", view.Zoom, view.Range.Min, view.Range.Max)
			fmt.Fprintf(out, "center     %.1f,%.1f\n", view.Center.X, view.Center.Y)
			fmt.Fprintf(out, "visible    %v\n", p.VisibleRect())
			fmt.Fprintf(out, "crop       %v\n", rect)
			fmt.Fprintf(out, "source     %v\n", crop.ToImageSpace(rect, zoom))
			fmt.Fprintf(out, "downsample %g\n", p.DownsampleZoom())

			if render != "" {
				img, err := p.RenderPreview(cmd.Context())
				if err != nil {
					return err
				}
				if err := imaging.Save(img, render); err != nil {
					return fmt.Errorf("saving preview: %w", err)
				}
				fmt.Fprintf(out, "rendered   %s\n", render)
			}
			return nil
		},
	}
	addViewFlags(cmd, &v)
	cmd.Flags().StringVar(&render, "render", "", "write the downsampled preview bitmap to this file")
	return cmd
}

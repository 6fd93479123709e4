package main

import (
	"errors"
	"fmt"

	"github.com/dixieflatline76/wallcrop/pkg/wallpaper"
	"github.com/dixieflatline76/wallcrop/util/log"
	"github.com/spf13/cobra"
)

func newSetCmd(g *globalOptions) *cobra.Command {
	var v viewOptions
	var destName string
	var retries int

	cmd := &cobra.Command{
		Use:   "set <image>",
		Short: "Set the cropped image as the wallpaper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("dest") {
				if last := e.cfg.GetLastDestination(); last != "" {
					destName = last
				}
			}
			dest, err := wallpaper.ParseDestination(destName)
			if err != nil {
				return err
			}

			p, err := e.openPreview(cmd.Context(), args[0], v)
			if err != nil {
				return err
			}
			c, _, err := e.newController()
			if err != nil {
				return err
			}

			paths, err := c.SetWallpaper(cmd.Context(), p, dest)
			for i := 0; err != nil && i < retries; i++ {
				var setErr *wallpaper.SetError
				if errors.As(err, &setErr) && setErr.OutOfMemory() {
					break
				}
				log.Printf("Set failed, retrying (%d/%d): %v", i+1, retries, err)
				paths, err = c.Retry(cmd.Context(), p, err)
			}
			if err != nil {
				return err
			}

			for _, path := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	addViewFlags(cmd, &v)
	cmd.Flags().StringVar(&destName, "dest", "both", "wallpaper to set: home, lock or both")
	cmd.Flags().IntVar(&retries, "retries", 0, "retry a failed set this many times")
	return cmd
}

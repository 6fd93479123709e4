package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dixieflatline76/wallcrop/config"
	"github.com/dixieflatline76/wallcrop/pkg/api"
	"github.com/dixieflatline76/wallcrop/pkg/wallpaper"
	"github.com/dixieflatline76/wallcrop/util/log"
	"github.com/spf13/cobra"
)

func newServeCmd(g *globalOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local preview/set API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ok, err := acquireLock()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("another instance of %s is already running", config.AppName)
			}
			defer releaseLock()

			e, err := newEnv(cmd, g)
			if err != nil {
				return err
			}
			c, dir, err := e.newController()
			if err != nil {
				return err
			}

			server := api.NewServer(addr)
			server.SetHistoryRoot(dir)
			server.SetSetHandler(e.setHandler(c))
			c.AddNotifier(server)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, server)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAPIAddr, "listen address")
	return cmd
}

func runServer(ctx context.Context, server *api.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Stop(shutdownCtx)
	}
}

// setHandler commits API set requests through c.
func (e *env) setHandler(c *wallpaper.Controller) api.SetHandler {
	return func(ctx context.Context, req api.SetRequest) ([]string, error) {
		dest, err := wallpaper.ParseDestination(req.Destination)
		if err != nil {
			return nil, err
		}
		pe := *e
		pe.opts.RTL = req.RTL || e.opts.RTL
		p, err := pe.openPreview(ctx, req.Path, viewOptions{zoom: req.Zoom, panX: req.PanX, panY: req.PanY})
		if err != nil {
			return nil, err
		}
		return c.SetWallpaper(ctx, p, dest)
	}
}

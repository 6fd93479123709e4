package main

import (
	"fmt"
	"os"

	"github.com/dixieflatline76/wallcrop/config"
	"github.com/dixieflatline76/wallcrop/pkg/crop"
	"github.com/dixieflatline76/wallcrop/pkg/sysinfo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type globalOptions struct {
	screen      sizeValue
	rtl         bool
	largeScreen bool
	smartCenter bool
}

// sizeValue is a WxH flag.
type sizeValue struct {
	size crop.Size
	set  bool
}

var _ pflag.Value = (*sizeValue)(nil)

func (v *sizeValue) String() string {
	if !v.set {
		return ""
	}
	return v.size.String()
}

func (v *sizeValue) Set(s string) error {
	size, err := sysinfo.ParseSize(s)
	if err != nil {
		return err
	}
	v.size = size
	v.set = true
	return nil
}

func (v *sizeValue) Type() string { return "WxH" }

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "wallcrop",
		Short:        "Preview and set cropped wallpapers",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath())
			}
			return cmd.Help()
		},
		Args: cobra.ArbitraryArgs,
	}
	cmd.Version = config.AppVersion

	flags := cmd.PersistentFlags()
	flags.Var(&g.screen, "screen", "screen size to preview for (default: detected)")
	flags.BoolVar(&g.rtl, "rtl", false, "align the crop surface for a right-to-left layout")
	flags.BoolVar(&g.largeScreen, "large-screen", false, "use the large-screen crop surface")
	flags.BoolVar(&g.smartCenter, "smart", false, "center the initial view on the most interesting region")

	cmd.AddCommand(
		newPreviewCmd(g),
		newSetCmd(g),
		newServeCmd(g),
	)
	return cmd
}

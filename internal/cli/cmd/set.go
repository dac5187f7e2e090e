package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/matjam/setroot/internal/ipc"
	"github.com/matjam/setroot/internal/wallpaper"
	"github.com/spf13/cobra"
)

func NewSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set [wallpaper.png]",
		Short: "Make the daemon fade in one image",
		Long: `Asks the running daemon to fade in the given image. The playlist is not
changed, so the next rotation continues from where it was.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := absPaths(args)
			if err != nil {
				return err
			}
			if err := ipc.SendSet(paths[0]); err != nil {
				return fmt.Errorf("failed to send 'set' command: %w", err)
			}
			log.Infof("Set command sent for %s", paths[0])
			return nil
		},
	}
}

func NewColorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color [#RRGGBB]",
		Short: "Make the daemon set a solid colour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := wallpaper.ParseColor(args[0]); err != nil {
				return err
			}
			if err := ipc.SendColor(args[0]); err != nil {
				return fmt.Errorf("failed to send 'color' command: %w", err)
			}
			log.Infof("Color command sent for %s", args[0])
			return nil
		},
	}
}

func NewCopyRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy-root",
		Short: "Make the daemon copy the root window into the background",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ipc.SendCopyRoot(); err != nil {
				return fmt.Errorf("failed to send 'copy_root' command: %w", err)
			}
			log.Info("Copy root command sent")
			return nil
		},
	}
}

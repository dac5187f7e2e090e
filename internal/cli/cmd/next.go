package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/matjam/setroot/internal/ipc"
	"github.com/spf13/cobra"
)

func NewNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Switch to the next wallpaper",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ipc.SendNext(); err != nil {
				return fmt.Errorf("failed to send 'next' command: %w", err)
			}
			log.Info("Next wallpaper command sent")
			return nil
		},
	}
}

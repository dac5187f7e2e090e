package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/matjam/setroot/internal/ipc"
	"github.com/spf13/cobra"
)

func NewStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the setroot daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ipc.SendStop(); err != nil {
				return fmt.Errorf("failed to send 'stop' command: %w", err)
			}
			log.Info("Stop command sent")
			return nil
		},
	}
}

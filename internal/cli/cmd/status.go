package cmd

import (
	"fmt"

	"github.com/matjam/setroot/internal/cli/cmd/utils"
	"github.com/matjam/setroot/internal/ipc"
	"github.com/spf13/cobra"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get setroot daemon status",
		Long:  `Returns the current status of the running setroot daemon.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			response, err := ipc.SendCommand(ipc.Command{
				Type: ipc.CommandStatus,
			})
			if err != nil {
				return fmt.Errorf("error sending command: %w", err)
			}

			utils.PrintJSONColored(response.Data)
			return nil
		},
	}
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/matjam/setroot/internal/cli/cmd/utils"
	"github.com/matjam/setroot/internal/ipc"
	"github.com/spf13/cobra"
)

func NewLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load [wallpaper1.jpg] [wallpaper2.png] ...",
		Short: "Load a new list of wallpapers into the daemon",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := absPaths(args)
			if err != nil {
				return err
			}
			if err := ipc.SendLoad(paths); err != nil {
				return fmt.Errorf("failed to send 'load' command: %w", err)
			}
			log.Infof("Loaded %d wallpapers", len(paths))
			return nil
		},
	}
}

// absPaths resolves paths against the working directory, since the daemon
// runs with a different one.
func absPaths(args []string) ([]string, error) {
	paths := make([]string, len(args))
	for i, arg := range args {
		p, err := filepath.Abs(utils.CanonicalPath(arg))
		if err != nil {
			return nil, err
		}
		paths[i] = p
	}
	return paths, nil
}

package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/matjam/setroot/internal/cli/cmd/utils"
	"github.com/matjam/setroot/internal/wallpaper"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func NewSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot [output.png]",
		Short: "Save the current background as a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			setter := wallpaper.NewX11Setter(viper.GetString("display"), wallpaper.Options{})
			path := utils.CanonicalPath(args[0])
			if err := setter.Snapshot(path); err != nil {
				return err
			}
			log.Infof("Background saved to %s", path)
			return nil
		},
	}
}

/*
Copyright © 2025 Nathan Ollerenshaw <chrome@stupendous.net>
*/
package cli

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/matjam/setroot"
	"github.com/matjam/setroot/internal/cli/cmd"
	"github.com/matjam/setroot/internal/cli/cmd/utils"
	"github.com/matjam/setroot/internal/wallpaper"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "setroot",
	Short: "Set or fade the X11 root window background",
	Long: `setroot sets the desktop background of an X11 session by talking to the
X server directly. It can fade a new image in over the current background,
set a solid colour, or capture what is on screen (a boot splash, say) and
keep it as the background so the desktop comes up without a flash.

The background pixmap is published in the _XROOTPMAP_ID and ESETROOT_PMAP_ID
root window properties and outlives setroot itself.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, err := cmd.Flags().GetBool("show-config"); err == nil && v {
			log.Infof("Using config file: %v", viper.ConfigFileUsed())
			log.Infof("All settings:")
			utils.PrintJSONColored(viper.AllSettings())
			return nil
		}

		if v, err := cmd.Flags().GetBool("version"); err == nil && v {
			printVersion()
			return nil
		}

		if v, err := cmd.Flags().GetBool("installconfig"); err == nil && v {
			return utils.InstallDefaultConfig()
		}

		return runSet(cmd)
	},
}

func printVersion() {
	babyBlue := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("76"))
	log.Infof("%v version %v © 2025 %v",
		babyBlue.Render("setroot "),
		green.Render(strings.Trim(setroot.Version, "\n\r ")),
		yellow.Render("Nathan Ollerenshaw"))
}

var errNoSource = errors.New("one of --copy-root-window, --image or --color is required")

// runSet performs the one-shot background change selected by the source
// flags.
func runSet(cmd *cobra.Command) error {
	copyRoot, _ := cmd.Flags().GetBool("copy-root-window")
	imagePath, _ := cmd.Flags().GetString("image")
	colour, _ := cmd.Flags().GetString("color")

	if !copyRoot && imagePath == "" && colour == "" {
		return errNoSource
	}

	opts, err := utils.SetterOptions()
	if err != nil {
		return err
	}
	if noReclaim, _ := cmd.Flags().GetBool("no-reclaim"); noReclaim {
		opts.Reclaim = false
	}
	setter := wallpaper.NewX11Setter(viper.GetString("display"), opts)

	switch {
	case copyRoot:
		_, err = setter.CopyRootWindow()
	case imagePath != "":
		_, err = setter.SetImage(utils.CanonicalPath(imagePath))
	default:
		c, perr := wallpaper.ParseColor(colour)
		if perr != nil {
			return perr
		}
		_, err = setter.SetColor(c)
	}
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	RegisterFlags(rootCmd)

	rootCmd.AddCommand(cmd.NewServeCmd())
	rootCmd.AddCommand(cmd.NewStatusCmd())
	rootCmd.AddCommand(cmd.NewStopCmd())
	rootCmd.AddCommand(cmd.NewNextCmd())
	rootCmd.AddCommand(cmd.NewLoadCmd())
	rootCmd.AddCommand(cmd.NewSetCmd())
	rootCmd.AddCommand(cmd.NewColorCmd())
	rootCmd.AddCommand(cmd.NewCopyRootCmd())
	rootCmd.AddCommand(cmd.NewSnapshotCmd())
	rootCmd.AddCommand(cmd.NewGenManCmd(rootCmd))
}

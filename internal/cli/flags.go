package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

func RegisterFlags(rootCmd *cobra.Command) {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/setroot/setroot.toml)")
	rootCmd.PersistentFlags().BoolP("installconfig", "i", false, "Install a default config file")
	rootCmd.PersistentFlags().Bool("show-config", false, "Dump resolved config")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Print version")
	rootCmd.PersistentFlags().BoolP("help", "h", false, "Print usage")
	rootCmd.PersistentFlags().String("display", "", "X display to connect to (default is $DISPLAY)")

	flags := rootCmd.Flags()
	flags.Bool("copy-root-window", false, "Capture the root window, splash screens included, and make it the background")
	flags.String("image", "", "Fade the image at `path` in over the current background")
	flags.String("color", "", "Set a solid `#RRGGBB` colour as the background")
	rootCmd.MarkFlagsMutuallyExclusive("copy-root-window", "image", "color")

	flags.Int("fade-secs", 0, "Fade duration in seconds; 0 sets the background at once")
	flags.Int("fade-fps", 20, "Frames per second of the fade")
	flags.String("scale", "stretched", "Scaling mode: stretched, center, horizontal or vertical")
	flags.String("easing", "linear", "Fade curve: linear, ease-in, ease-out or ease-in-out")
	flags.Bool("no-reclaim", false, "Keep the previous background pixmap alive")

	bindFlags(rootCmd)
}

// bindFlags ties flags to the config keys they override.
func bindFlags(rootCmd *cobra.Command) {
	persistent := rootCmd.PersistentFlags()
	viper.BindPFlag("config", persistent.Lookup("config"))
	viper.BindPFlag("debug", persistent.Lookup("debug"))
	viper.BindPFlag("display", persistent.Lookup("display"))

	flags := rootCmd.Flags()
	viper.BindPFlag("fade_secs", flags.Lookup("fade-secs"))
	viper.BindPFlag("fade_fps", flags.Lookup("fade-fps"))
	viper.BindPFlag("scale_mode", flags.Lookup("scale"))
	viper.BindPFlag("easing", flags.Lookup("easing"))
}

package cli

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("setroot")
		viper.SetConfigType("toml")
		viper.AddConfigPath("$HOME/.config/setroot")
		viper.AddConfigPath("/etc/xdg/setroot")
	}

	viper.SetDefault("wallpapers", "~/Pictures/wallpapers")
	viper.SetDefault("shuffle", true)
	viper.SetDefault("delay", 0)
	viper.SetDefault("scale_mode", "stretched")
	viper.SetDefault("easing", "linear")
	viper.SetDefault("fade_secs", 0)
	viper.SetDefault("fade_fps", 20)
	viper.SetDefault("reclaim", true)
	viper.SetDefault("display", "")
	viper.SetDefault("debug", false)

	viper.SetEnvPrefix("setroot")
	viper.AutomaticEnv() // read environment variables that match

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		// running without a config file is fine
		err = nil
	}
	cobra.CheckErr(err)

	if viper.GetBool("debug") {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	}
	log.Debugf("Using config file: %v", viper.ConfigFileUsed())
}

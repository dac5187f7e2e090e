package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matjam/setroot"
	"github.com/matjam/setroot/internal/background"
	"github.com/matjam/setroot/internal/types"
	"github.com/matjam/setroot/internal/wallpaper"
	"github.com/spf13/viper"
	"github.com/tidwall/pretty"
)

func CanonicalPath(path string) string {
	if path == "" {
		return ""
	}

	if path == "~" {
		return os.Getenv("HOME")
	}

	if strings.HasPrefix(path, "~/") {
		homeDir := os.Getenv("HOME")
		return strings.Replace(path, "~", homeDir, 1)
	}

	return path
}

func PrintJSONColored(data interface{}) {
	j, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Errorf("Error marshalling JSON: %v", err)
		return
	}

	jPretty := pretty.Color(j, nil)
	log.Info(string(jPretty))
}

// ConfigPath is where InstallDefaultConfig writes the config file.
func ConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "setroot", "setroot.toml")
}

func InstallDefaultConfig() error {
	configPath := ConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		log.Warnf("Config file already exists at %v", configPath)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(setroot.DefaultConfig), 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	log.Infof("Installed default config file at %v", configPath)
	return nil
}

// SetterOptions builds the background change options from the resolved
// configuration.
func SetterOptions() (wallpaper.Options, error) {
	scale := types.ScalingMode(viper.GetString("scale_mode"))
	switch scale {
	case types.ScalingModeStretch, types.ScalingModeCenter,
		types.ScalingModeFitHorizontal, types.ScalingModeFitVertical:
	default:
		return wallpaper.Options{}, fmt.Errorf("unknown scale mode %q", scale)
	}

	easing := types.EasingMode(viper.GetString("easing"))
	if !background.ValidEasing(easing) {
		return wallpaper.Options{}, fmt.Errorf("unknown easing %q", easing)
	}

	return wallpaper.Options{
		ScaleMode:    scale,
		Easing:       easing,
		FadeDuration: time.Duration(viper.GetInt("fade_secs")) * time.Second,
		FPS:          viper.GetInt("fade_fps"),
		Reclaim:      viper.GetBool("reclaim"),
	}, nil
}

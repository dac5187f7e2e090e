package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matjam/setroot"
	"github.com/matjam/setroot/internal/types"
	"github.com/spf13/viper"
)

func TestCanonicalPath(t *testing.T) {
	t.Setenv("HOME", "/home/alice")

	tests := map[string]string{
		"":              "",
		"~":             "/home/alice",
		"~/walls/a.png": "/home/alice/walls/a.png",
		"/abs/b.png":    "/abs/b.png",
		"rel/~/c.png":   "rel/~/c.png",
	}
	for in, want := range tests {
		if got := CanonicalPath(in); got != want {
			t.Errorf("CanonicalPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInstallDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	if err := InstallDefaultConfig(); err != nil {
		t.Fatalf("InstallDefaultConfig() error: %v", err)
	}
	path := filepath.Join(dir, "setroot", "setroot.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if string(data) != setroot.DefaultConfig {
		t.Fatal("installed config differs from the default")
	}

	// an existing file is left alone
	if err := os.WriteFile(path, []byte("mine"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := InstallDefaultConfig(); err != nil {
		t.Fatalf("InstallDefaultConfig() error: %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "mine" {
		t.Fatal("existing config was overwritten")
	}
}

func TestDefaultConfigParses(t *testing.T) {
	v := viper.New()
	v.SetConfigType("toml")
	path := filepath.Join(t.TempDir(), "setroot.toml")
	if err := os.WriteFile(path, []byte(setroot.DefaultConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("default config does not parse: %v", err)
	}
	if v.GetInt("fade_fps") != 20 || v.GetString("scale_mode") != "stretched" || !v.GetBool("reclaim") {
		t.Fatalf("unexpected defaults: %v", v.AllSettings())
	}
}

func TestSetterOptions(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Set("scale_mode", "vertical")
	viper.Set("easing", "ease-out")
	viper.Set("fade_secs", 3)
	viper.Set("fade_fps", 30)
	viper.Set("reclaim", true)

	opts, err := SetterOptions()
	if err != nil {
		t.Fatalf("SetterOptions() error: %v", err)
	}
	if opts.ScaleMode != types.ScalingModeFitVertical || opts.Easing != types.EasingEaseOut ||
		opts.FadeDuration != 3*time.Second || opts.FPS != 30 || !opts.Reclaim {
		t.Fatalf("SetterOptions() = %+v", opts)
	}

	viper.Set("scale_mode", "tiled")
	if _, err := SetterOptions(); err == nil {
		t.Fatal("expected error for unknown scale mode")
	}

	viper.Set("scale_mode", "center")
	viper.Set("easing", "bounce")
	if _, err := SetterOptions(); err == nil {
		t.Fatal("expected error for unknown easing")
	}
}

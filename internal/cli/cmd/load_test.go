package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAbsPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	got, err := absPaths([]string{"a.png", "~/b.png", "/c.png"})
	if err != nil {
		t.Fatalf("absPaths() error: %v", err)
	}
	want := []string{filepath.Join(wd, "a.png"), filepath.Join(home, "b.png"), "/c.png"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("absPaths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewLoadCmd_RequiresArgs(t *testing.T) {
	cmd := NewLoadCmd()
	cmd.SetArgs([]string{})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without wallpapers")
	}
}

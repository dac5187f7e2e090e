package changer

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestNextWallpaper_Rotates(t *testing.T) {
	c := NewChanger([]string{"a", "b", "c"})

	var got []string
	for i := 0; i < 5; i++ {
		got = append(got, c.NextWallpaper())
	}
	want := []string{"a", "b", "c", "a", "b"}
	if !slices.Equal(got, want) {
		t.Fatalf("rotation = %v, want %v", got, want)
	}
	if c.CurrentWallpaper() != "b" {
		t.Fatalf("CurrentWallpaper() = %q, want b", c.CurrentWallpaper())
	}
}

func TestNextWallpaper_Empty(t *testing.T) {
	c := NewChanger(nil)
	if got := c.NextWallpaper(); got != "" {
		t.Fatalf("NextWallpaper() = %q, want empty", got)
	}
}

func TestSetWallpapers_KeepsCurrentUntilNext(t *testing.T) {
	c := NewChanger([]string{"a"})
	c.NextWallpaper()
	c.SetWallpapers([]string{"x", "y"})

	if c.CurrentWallpaper() != "a" {
		t.Fatalf("CurrentWallpaper() = %q, want a", c.CurrentWallpaper())
	}
	if got := c.NextWallpaper(); got != "x" {
		t.Fatalf("NextWallpaper() = %q, want x", got)
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestShuffle_KeepsElements(t *testing.T) {
	in := []string{"1", "2", "3", "4", "5", "6", "7", "8"}
	c := NewChanger(in)
	c.Shuffle()

	got := c.GetWallpapers()
	slices.Sort(got)
	if !slices.Equal(got, in) {
		t.Fatalf("shuffled list = %v, want a permutation of %v", got, in)
	}
}

func TestGetWallpapers_ReturnsCopy(t *testing.T) {
	c := NewChanger([]string{"a", "b"})
	got := c.GetWallpapers()
	got[0] = "z"
	if c.NextWallpaper() != "a" {
		t.Fatal("mutating the returned slice changed the changer")
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.PNG", "a.jpg", "notes.txt", "c.webp"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Scan(dir)
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.jpg"),
		filepath.Join(dir, "b.PNG"),
		filepath.Join(dir, "c.webp"),
	}
	if !slices.Equal(got, want) {
		t.Fatalf("Scan() = %v, want %v", got, want)
	}

	if _, err := Scan(filepath.Join(dir, "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

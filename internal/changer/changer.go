// Package changer keeps the rotation order of the wallpapers the daemon
// cycles through.
package changer

import (
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// imageExtensions are the file types the raster codec can decode.
var imageExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Changer is a rotating list of wallpaper paths. It is safe for concurrent
// use.
type Changer struct {
	sync.Mutex
	wallpapers []string
	current    string
}

func NewChanger(wallpapers []string) *Changer {
	return &Changer{wallpapers: slices.Clone(wallpapers)}
}

// Scan lists the image files directly inside dir, sorted by name.
func Scan(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsImage(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}

// IsImage reports whether name has a decodable image extension.
func IsImage(name string) bool {
	return slices.Contains(imageExtensions, strings.ToLower(filepath.Ext(name)))
}

func (c *Changer) GetWallpapers() []string {
	c.Lock()
	defer c.Unlock()
	return slices.Clone(c.wallpapers)
}

// SetWallpapers replaces the list. The current wallpaper is kept until the
// next call to NextWallpaper.
func (c *Changer) SetWallpapers(wallpapers []string) {
	c.Lock()
	defer c.Unlock()
	c.wallpapers = slices.Clone(wallpapers)
}

// NextWallpaper moves the head of the list to its tail and returns it. It
// returns "" if the list is empty.
func (c *Changer) NextWallpaper() string {
	c.Lock()
	defer c.Unlock()
	if len(c.wallpapers) == 0 {
		return ""
	}
	next := c.wallpapers[0]
	c.wallpapers = append(c.wallpapers[1:], next)
	c.current = next
	return next
}

func (c *Changer) CurrentWallpaper() string {
	c.Lock()
	defer c.Unlock()
	return c.current
}

func (c *Changer) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.wallpapers)
}

func (c *Changer) Shuffle() {
	c.Lock()
	defer c.Unlock()

	rand.Shuffle(len(c.wallpapers), func(i, j int) {
		c.wallpapers[i], c.wallpapers[j] = c.wallpapers[j], c.wallpapers[i]
	})
}

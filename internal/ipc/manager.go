package ipc

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matjam/setroot/internal/changer"
	"github.com/matjam/setroot/internal/types"
	"github.com/matjam/setroot/internal/wallpaper"
)

// Setter changes the background. *wallpaper.Setter implements it.
type Setter interface {
	SetImage(path string) (types.Pixmap, error)
	SetColor(c color.Color) (types.Pixmap, error)
	CopyRootWindow() (types.Pixmap, error)
}

// Manager runs every background change of the daemon, one at a time, on the
// goroutine that calls Run.
type Manager struct {
	sync.Mutex
	changer    *changer.Changer
	setter     Setter
	cmds       chan Command
	delay      time.Duration
	shuffle    bool
	current    string
	background types.Pixmap
}

// NewManager creates a manager for the given wallpapers. A delay of zero
// disables automatic rotation.
func NewManager(wallpapers []string, setter Setter, delay time.Duration, shuffle bool) *Manager {
	m := &Manager{
		changer: changer.NewChanger(wallpapers),
		setter:  setter,
		cmds:    make(chan Command, 16),
		delay:   delay,
		shuffle: shuffle,
	}
	if shuffle {
		m.changer.Shuffle()
	}
	return m
}

func (m *Manager) CurrentWallpaper() string {
	m.Lock()
	defer m.Unlock()
	return m.current
}

func (m *Manager) Background() types.Pixmap {
	m.Lock()
	defer m.Unlock()
	return m.background
}

func (m *Manager) Wallpapers() int {
	return m.changer.Len()
}

func (m *Manager) GetWallpapers() []string {
	return m.changer.GetWallpapers()
}

func (m *Manager) setCurrent(wallpaper string, p types.Pixmap) {
	m.Lock()
	defer m.Unlock()
	m.current = wallpaper
	m.background = p
}

// EnqueueCommand queues cmd for Run. It blocks while the queue is full.
func (m *Manager) EnqueueCommand(cmd Command) {
	m.cmds <- cmd
}

func (m *Manager) Stop() {
	m.EnqueueCommand(Command{Type: CommandStop})
}

// Run sets the first wallpaper and then processes commands until it
// receives a stop command.
func (m *Manager) Run() {
	log.Info("Starting wallpaper manager ...")

	var tick <-chan time.Time
	var ticker *time.Ticker
	if m.delay > 0 {
		ticker = time.NewTicker(m.delay)
		defer ticker.Stop()
		tick = ticker.C
	}
	resetTimer := func() {
		if ticker != nil {
			ticker.Reset(m.delay)
		}
	}

	if m.changer.Len() > 0 {
		m.Next()
	}

	for {
		select {
		case cmd := <-m.cmds:
			if cmd.Type == CommandStop {
				log.Info("Stopping wallpaper manager ...")
				return
			}
			if m.handle(cmd) {
				resetTimer()
			}
		case <-tick:
			log.Infof("Changing wallpaper after %v", m.delay)
			m.Next()
		}
	}
}

// handle runs one command and reports whether the background changed.
func (m *Manager) handle(cmd Command) bool {
	switch cmd.Type {
	case CommandNext:
		log.Info("Received next command")
		return m.Next()
	case CommandLoad:
		log.Info("Received load command")
		if len(cmd.Args) == 0 {
			log.Error("No wallpapers specified for load command")
			return false
		}
		m.changer.SetWallpapers(cmd.Args)
		if m.shuffle {
			m.changer.Shuffle()
		}
		log.Infof("Loaded %d wallpapers", len(cmd.Args))
		return m.Next()
	case CommandSet:
		if len(cmd.Args) != 1 {
			log.Error("set command needs exactly one image")
			return false
		}
		return m.run(cmd.Args[0], func() (types.Pixmap, error) {
			return m.setter.SetImage(cmd.Args[0])
		})
	case CommandColor:
		if len(cmd.Args) != 1 {
			log.Error("color command needs exactly one colour")
			return false
		}
		c, err := wallpaper.ParseColor(cmd.Args[0])
		if err != nil {
			log.Error(err)
			return false
		}
		return m.run(cmd.Args[0], func() (types.Pixmap, error) {
			return m.setter.SetColor(c)
		})
	case CommandCopyRoot:
		return m.run("root window", m.setter.CopyRootWindow)
	default:
		log.Errorf("Unknown command: %v", cmd.Type)
		return false
	}
}

// Next switches to the next wallpaper in the rotation.
func (m *Manager) Next() bool {
	next := m.changer.NextWallpaper()
	if next == "" {
		log.Error("No wallpapers to switch to")
		return false
	}
	return m.run(next, func() (types.Pixmap, error) {
		return m.setter.SetImage(next)
	})
}

func (m *Manager) run(name string, set func() (types.Pixmap, error)) bool {
	log.Infof("Setting background: %s", name)
	p, err := set()
	if err != nil {
		log.Errorf("Failed to set %s: %v", name, err)
		return false
	}
	m.setCurrent(name, p)
	log.Infof("Background is now %s (pixmap 0x%x)", name, uint32(p))
	return true
}

func formatPixmap(p types.Pixmap) string {
	if p == types.PixmapNone {
		return ""
	}
	return fmt.Sprintf("0x%x", uint32(p))
}

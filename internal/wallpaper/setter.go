// Package wallpaper implements the user level operations of setroot on top
// of the background engine: setting an image, a colour or a copy of the root
// window as the desktop background.
package wallpaper

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matjam/setroot/internal/background"
	"github.com/matjam/setroot/internal/raster"
	"github.com/matjam/setroot/internal/types"
	"github.com/matjam/setroot/internal/x11"
	"go.uber.org/multierr"
)

// Conn is a primary connection: a session that can also composite.
type Conn interface {
	background.Session
	background.Compositor
}

// Dialer opens a primary connection.
type Dialer func() (Conn, error)

type Options struct {
	ScaleMode    types.ScalingMode
	Easing       types.EasingMode
	FadeDuration time.Duration
	FPS          int
	// Reclaim frees the previous background once it has been replaced.
	Reclaim bool
}

// Setter performs one background change per call. Every call opens its own
// primary connection and closes it before returning.
type Setter struct {
	dial         Dialer
	dialRetained background.RetainedDialer
	opts         Options
	sleep        func(time.Duration)
}

func NewSetter(dial Dialer, dialRetained background.RetainedDialer, opts Options) *Setter {
	return &Setter{
		dial:         dial,
		dialRetained: dialRetained,
		opts:         opts,
		sleep:        time.Sleep,
	}
}

// NewX11Setter returns a Setter talking to the named display, or $DISPLAY
// if display is empty.
func NewX11Setter(display string, opts Options) *Setter {
	return NewSetter(
		func() (Conn, error) {
			c, err := x11.ConnectDisplay(display)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		func() (background.Session, error) {
			c, err := x11.ConnectRetainedDisplay(display)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		opts,
	)
}

// session bundles what one operation needs on its primary connection.
type session struct {
	conn      Conn
	store     *background.Store
	persister *background.Persister
}

func (s *Setter) withSession(fn func(*session) error) (err error) {
	conn, err := s.dial()
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, conn.Close())
	}()

	return fn(&session{
		conn:      conn,
		store:     background.NewStore(conn),
		persister: background.NewPersister(s.dialRetained),
	})
}

// CopyRootWindow captures what is currently on screen, splash screens
// included, into a retained pixmap and makes it the background.
func (s *Setter) CopyRootWindow() (types.Pixmap, error) {
	var p types.Pixmap
	err := s.withSession(func(ss *session) error {
		previous, err := ss.store.Reclaimable()
		if err != nil {
			return err
		}

		p, err = ss.persister.CaptureRootWindow()
		if err != nil {
			return err
		}
		if err := s.publish(ss.store, p); err != nil {
			p = types.PixmapNone
			return err
		}

		log.Infof("root window copied to pixmap 0x%x", uint32(p))
		s.reclaim(ss.store, previous, p)
		return nil
	})
	return p, err
}

// SetImage decodes the image at path, scales it to the screen and fades it
// in over the current background.
func (s *Setter) SetImage(path string) (types.Pixmap, error) {
	img, format, err := raster.Load(path)
	if err != nil {
		return types.PixmapNone, err
	}
	log.Debugf("decoded %s image %s: %dx%d", format, path, img.Bounds().Dx(), img.Bounds().Dy())

	var p types.Pixmap
	err = s.withSession(func(ss *session) error {
		p, err = s.fade(ss, img)
		return err
	})
	return p, err
}

// SetColor makes a solid colour the background. With a fade duration set it
// fades the colour in like an image; otherwise it needs no current
// background.
func (s *Setter) SetColor(c color.Color) (types.Pixmap, error) {
	var p types.Pixmap
	err := s.withSession(func(ss *session) error {
		if s.opts.FadeDuration > 0 {
			g := ss.conn.Geometry()
			img := image.NewRGBA(image.Rect(0, 0, int(g.Width), int(g.Height)))
			draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
			var err error
			p, err = s.fade(ss, img)
			return err
		}

		previous, err := ss.store.Reclaimable()
		if err != nil {
			return err
		}

		pixel := raster.FormatFor(ss.conn.Geometry()).Pixel(c)
		p, err = ss.persister.Solid(pixel)
		if err != nil {
			return err
		}
		if err := s.publish(ss.store, p); err != nil {
			p = types.PixmapNone
			return err
		}

		log.Infof("background set to solid pixel 0x%06x", pixel)
		s.reclaim(ss.store, previous, p)
		return nil
	})
	return p, err
}

func (s *Setter) fade(ss *session, img image.Image) (types.Pixmap, error) {
	g := ss.conn.Geometry()
	scaled := raster.ScaleImage(img, int(g.Width), int(g.Height), s.opts.ScaleMode)
	src, err := raster.ToNative(scaled, raster.FormatFor(g))
	if err != nil {
		return types.PixmapNone, err
	}

	previous, err := ss.store.Reclaimable()
	if err != nil {
		return types.PixmapNone, err
	}

	plan := background.NewPlan(s.opts.FadeDuration, s.opts.FPS, s.opts.Easing)
	fader := background.NewFader(ss.store, ss.persister, ss.conn)
	fader.SetSleep(s.sleep)

	start := time.Now()
	p, err := fader.Fade(src, plan)
	if err != nil {
		return types.PixmapNone, err
	}
	log.Infof("faded in pixmap 0x%x in %d steps (%v)", uint32(p), plan.Steps, time.Since(start).Round(time.Millisecond))

	s.reclaim(ss.store, previous, p)
	return p, nil
}

// publish makes a freshly retained pixmap the background. If that fails
// nothing refers to the pixmap, so it is freed.
func (s *Setter) publish(store *background.Store, p types.Pixmap) error {
	if err := store.Publish(p); err != nil {
		return multierr.Append(err, store.Reclaim(p, types.PixmapNone))
	}
	return nil
}

// reclaim frees the previous background if enabled. Failing to do so only
// leaks a pixmap, so it is logged rather than returned.
func (s *Setter) reclaim(store *background.Store, previous, current types.Pixmap) {
	if !s.opts.Reclaim {
		return
	}
	if err := store.Reclaim(previous, current); err != nil {
		log.Warnf("could not free previous background: %v", err)
	}
}

// Current returns the pixmap named by the background record.
func (s *Setter) Current() (types.Pixmap, error) {
	var p types.Pixmap
	err := s.withSession(func(ss *session) error {
		var err error
		p, err = ss.store.CurrentBackground()
		return err
	})
	return p, err
}

// Snapshot writes the current background to path as a PNG.
func (s *Setter) Snapshot(path string) error {
	return s.withSession(func(ss *session) error {
		p, err := ss.store.CurrentBackground()
		if err != nil {
			return err
		}
		if p == types.PixmapNone {
			return background.ErrMissingBackground
		}

		img, err := ss.store.Snapshot(p)
		if err != nil {
			return err
		}
		return writePNG(path, img)
	})
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

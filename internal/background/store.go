package background

import (
	"fmt"
	"image"

	"github.com/BurntSushi/xgb"
	"github.com/charmbracelet/log"
	"github.com/matjam/setroot/internal/raster"
	"github.com/matjam/setroot/internal/types"
	"go.uber.org/multierr"
)

// Root window properties holding the background pixmap. Both are always
// written together.
const (
	AtomRootPixmap = "_XROOTPMAP_ID"
	AtomEsetroot   = "ESETROOT_PMAP_ID"
)

// recordAtoms lists the record atoms in lookup order.
var recordAtoms = []string{AtomRootPixmap, AtomEsetroot}

// Store reads and writes the background record of one session and manages
// screen sized pixmaps on it.
type Store struct {
	s Session
}

func NewStore(s Session) *Store {
	return &Store{s: s}
}

// CurrentBackground returns the pixmap named by _XROOTPMAP_ID, falling back
// to ESETROOT_PMAP_ID. It returns types.PixmapNone if neither is set.
func (st *Store) CurrentBackground() (types.Pixmap, error) {
	for _, name := range recordAtoms {
		p, err := st.readRecord(name)
		if err != nil {
			return types.PixmapNone, err
		}
		if p != types.PixmapNone {
			return p, nil
		}
	}
	return types.PixmapNone, nil
}

// Reclaimable returns the current background only if both record atoms agree
// on it. Only such a pixmap is known to have been set by a well behaved
// setter on a connection of its own.
func (st *Store) Reclaimable() (types.Pixmap, error) {
	root, err := st.readRecord(AtomRootPixmap)
	if err != nil {
		return types.PixmapNone, err
	}
	eset, err := st.readRecord(AtomEsetroot)
	if err != nil {
		return types.PixmapNone, err
	}
	if root != eset {
		return types.PixmapNone, nil
	}
	return root, nil
}

func (st *Store) readRecord(name string) (types.Pixmap, error) {
	atom, err := st.s.InternAtom(name)
	if err != nil {
		return types.PixmapNone, err
	}
	prop, err := st.s.GetProperty(st.s.Root(), atom, types.AtomPixmap)
	if err != nil {
		return types.PixmapNone, fmt.Errorf("reading %s: %w", name, err)
	}
	if prop == nil {
		return types.PixmapNone, nil
	}
	if prop.Format != 32 || len(prop.Value) != 4 {
		return types.PixmapNone, fmt.Errorf("%w: %s has format %d and %d bytes",
			ErrMalformedRecord, name, prop.Format, len(prop.Value))
	}
	return types.Pixmap(xgb.Get32(prop.Value)), nil
}

// CaptureRootWindow copies the visible contents of the root window, child
// windows included, into a new screen sized pixmap at the root depth.
func (st *Store) CaptureRootWindow() (types.Pixmap, error) {
	return st.copyInto(types.Drawable(st.s.Root()), true)
}

// CopyPixmap copies a screen sized pixmap into a new one.
func (st *Store) CopyPixmap(src types.Pixmap) (types.Pixmap, error) {
	return st.copyInto(types.Drawable(src), false)
}

func (st *Store) copyInto(src types.Drawable, includeInferiors bool) (types.Pixmap, error) {
	g := st.s.Geometry()
	p, err := st.s.CreatePixmap(g.Width, g.Height, g.Depth)
	if err != nil {
		return types.PixmapNone, err
	}

	err = st.withGC(types.Drawable(p), types.GCParams{IncludeInferiors: includeInferiors}, func(gc types.GC) error {
		return st.s.CopyArea(src, types.Drawable(p), gc, g.Bounds())
	})
	if err != nil {
		return types.PixmapNone, multierr.Append(err, st.s.FreePixmap(p))
	}
	return p, nil
}

// SolidPixmap creates a screen sized pixmap filled with pixel.
func (st *Store) SolidPixmap(pixel uint32) (types.Pixmap, error) {
	g := st.s.Geometry()
	p, err := st.s.CreatePixmap(g.Width, g.Height, g.Depth)
	if err != nil {
		return types.PixmapNone, err
	}

	params := types.GCParams{SetForeground: true, Foreground: pixel}
	err = st.withGC(types.Drawable(p), params, func(gc types.GC) error {
		return st.s.FillRectangle(types.Drawable(p), gc, g.Bounds())
	})
	if err != nil {
		return types.PixmapNone, multierr.Append(err, st.s.FreePixmap(p))
	}
	return p, nil
}

// withGC runs fn with a graphics context that is freed afterwards.
func (st *Store) withGC(drawable types.Drawable, params types.GCParams, fn func(types.GC) error) (err error) {
	gc, err := st.s.CreateGC(drawable, params)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, st.s.FreeGC(gc))
	}()
	return fn(gc)
}

// Publish makes p the background: it writes both record atoms, sets the
// root window background and repaints the screen.
func (st *Store) Publish(p types.Pixmap) error {
	root := st.s.Root()
	data := make([]byte, 4)
	xgb.Put32(data, uint32(p))

	for _, name := range recordAtoms {
		atom, err := st.s.InternAtom(name)
		if err != nil {
			return err
		}
		if err := st.s.ChangeProperty(root, atom, types.AtomPixmap, 32, data); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	if err := st.s.SetWindowBackground(root, p); err != nil {
		return err
	}
	if err := st.s.ClearArea(root, st.s.Geometry().Bounds()); err != nil {
		return err
	}
	return st.s.Flush()
}

// Snapshot reads a screen sized pixmap back from the server.
func (st *Store) Snapshot(p types.Pixmap) (*image.RGBA, error) {
	g := st.s.Geometry()
	data, err := st.s.GetImage(types.Drawable(p), g.Bounds())
	if err != nil {
		return nil, err
	}
	return raster.FromNative(data, int(g.Width), int(g.Height), raster.FormatFor(g))
}

// Reclaim frees the resources of the client that created previous, once
// current has replaced it. Nothing happens if there is no previous
// background or it is still current.
func (st *Store) Reclaim(previous, current types.Pixmap) error {
	if previous == types.PixmapNone || previous == current {
		return nil
	}
	log.Debugf("reclaiming previous background pixmap 0x%x", uint32(previous))
	if err := st.s.KillClient(uint32(previous)); err != nil {
		return fmt.Errorf("reclaiming pixmap 0x%x: %w", uint32(previous), err)
	}
	return st.s.Flush()
}

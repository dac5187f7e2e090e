package background

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/matjam/setroot/internal/types"
	"go.uber.org/multierr"
)

// Persister builds pixmaps that outlive the connection they were created on.
// Each pixmap gets a dedicated connection, so it can later be freed on its
// own with KillClient.
type Persister struct {
	dial RetainedDialer
}

func NewPersister(dial RetainedDialer) *Persister {
	return &Persister{dial: dial}
}

// Retain opens a dedicated retaining connection, runs build against a Store
// on it, then flushes and closes the connection. The returned pixmap is valid
// on any connection afterwards.
func (p *Persister) Retain(build func(*Store) (types.Pixmap, error)) (types.Pixmap, error) {
	s, err := p.dial()
	if err != nil {
		return types.PixmapNone, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if !s.RetainsOnDisconnect() {
		err := fmt.Errorf("%w: connection does not retain its resources", ErrPersistence)
		return types.PixmapNone, multierr.Append(err, s.Close())
	}

	pixmap, err := build(NewStore(s))
	if err != nil {
		return types.PixmapNone, multierr.Append(err, s.Close())
	}

	if err := s.Close(); err != nil {
		return types.PixmapNone, fmt.Errorf("%w: closing retained connection: %w", ErrPersistence, err)
	}

	log.Debugf("retained pixmap 0x%x", uint32(pixmap))
	return pixmap, nil
}

// CaptureRootWindow captures the root window into a retained pixmap.
func (p *Persister) CaptureRootWindow() (types.Pixmap, error) {
	return p.Retain(func(st *Store) (types.Pixmap, error) {
		return st.CaptureRootWindow()
	})
}

// CopyOf copies src into a retained pixmap.
func (p *Persister) CopyOf(src types.Pixmap) (types.Pixmap, error) {
	return p.Retain(func(st *Store) (types.Pixmap, error) {
		return st.CopyPixmap(src)
	})
}

// Solid creates a retained pixmap filled with pixel.
func (p *Persister) Solid(pixel uint32) (types.Pixmap, error) {
	return p.Retain(func(st *Store) (types.Pixmap, error) {
		return st.SolidPixmap(pixel)
	})
}

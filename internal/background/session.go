// Package background implements the root window background transition
// engine: reading and publishing the background record, keeping pixmaps
// alive past the connection that built them, and fading new images in.
package background

import (
	"github.com/matjam/setroot/internal/raster"
	"github.com/matjam/setroot/internal/types"
)

// Session is a connection to the X server. *x11.Connection implements it.
type Session interface {
	Geometry() types.Geometry
	Root() types.Window
	RetainsOnDisconnect() bool

	InternAtom(name string) (types.Atom, error)
	GetProperty(win types.Window, atom, typ types.Atom) (*types.Property, error)
	ChangeProperty(win types.Window, atom, typ types.Atom, format byte, data []byte) error

	CreatePixmap(width, height uint16, depth byte) (types.Pixmap, error)
	FreePixmap(p types.Pixmap) error
	CreateGC(drawable types.Drawable, params types.GCParams) (types.GC, error)
	FreeGC(gc types.GC) error
	CopyArea(src, dst types.Drawable, gc types.GC, rect types.Rect) error
	FillRectangle(drawable types.Drawable, gc types.GC, rect types.Rect) error
	SetWindowBackground(win types.Window, p types.Pixmap) error
	ClearArea(win types.Window, rect types.Rect) error
	GetImage(drawable types.Drawable, rect types.Rect) ([]byte, error)
	KillClient(resource uint32) error

	Flush() error
	Close() error
}

// Compositor creates alpha blending surfaces.
type Compositor interface {
	NewSurface(dst types.Pixmap, src *raster.Raster) (types.Surface, error)
}

// RetainedDialer opens a connection that has already been put in
// retain-on-disconnect mode.
type RetainedDialer func() (Session, error)

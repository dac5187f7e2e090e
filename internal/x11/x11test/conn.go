package x11test

import (
	"fmt"
	"slices"

	"github.com/matjam/setroot/internal/raster"
	"github.com/matjam/setroot/internal/types"
)

// Conn is one client connection to a Server.
type Conn struct {
	srv    *Server
	id     int
	retain bool
	closed bool
}

// ID is the client number, as used for pixmap ownership.
func (c *Conn) ID() int {
	return c.id
}

func (c *Conn) Closed() bool {
	c.srv.mu.Lock()
	defer c.srv.mu.Unlock()
	return c.closed
}

// begin locks the server and checks the connection and failure injection
// for op. The caller must unlock.
func (c *Conn) begin(op string) error {
	c.srv.mu.Lock()
	if c.closed || c.srv.killed[c.id] {
		return ErrClosed
	}
	return c.srv.failures[op]
}

func (c *Conn) end() {
	c.srv.mu.Unlock()
}

func (c *Conn) Geometry() types.Geometry {
	return c.srv.geometry
}

func (c *Conn) Root() types.Window {
	return rootWindow
}

func (c *Conn) RetainsOnDisconnect() bool {
	return c.retain
}

func (c *Conn) InternAtom(name string) (types.Atom, error) {
	defer c.end()
	if err := c.begin("InternAtom"); err != nil {
		return types.AtomNone, err
	}
	return c.srv.intern(name), nil
}

func (c *Conn) GetProperty(win types.Window, atom, typ types.Atom) (*types.Property, error) {
	defer c.end()
	if err := c.begin("GetProperty"); err != nil {
		return nil, err
	}
	if win != rootWindow {
		return nil, fmt.Errorf("BadWindow: 0x%x", uint32(win))
	}
	prop, ok := c.srv.props[atom]
	if !ok {
		return nil, nil
	}
	if typ != types.AtomNone && prop.Type != typ {
		return nil, fmt.Errorf("property %d has type %d, want %d", atom, prop.Type, typ)
	}
	prop.Value = slices.Clone(prop.Value)
	return &prop, nil
}

func (c *Conn) ChangeProperty(win types.Window, atom, typ types.Atom, format byte, data []byte) error {
	defer c.end()
	if err := c.begin("ChangeProperty"); err != nil {
		return err
	}
	if win != rootWindow {
		return fmt.Errorf("BadWindow: 0x%x", uint32(win))
	}
	c.srv.props[atom] = types.Property{Type: typ, Format: format, Value: slices.Clone(data)}
	return nil
}

func (c *Conn) CreatePixmap(width, height uint16, depth byte) (types.Pixmap, error) {
	defer c.end()
	if err := c.begin("CreatePixmap"); err != nil {
		return types.PixmapNone, err
	}
	if width == 0 || height == 0 {
		return types.PixmapNone, fmt.Errorf("BadValue: %dx%d", width, height)
	}
	return c.srv.createPixmap(c.id, width, height, depth, 0), nil
}

func (c *Conn) FreePixmap(p types.Pixmap) error {
	defer c.end()
	if err := c.begin("FreePixmap"); err != nil {
		return err
	}
	if _, ok := c.srv.pixmaps[p]; !ok {
		return fmt.Errorf("BadPixmap: 0x%x", uint32(p))
	}
	delete(c.srv.pixmaps, p)
	return nil
}

func (c *Conn) CreateGC(drawable types.Drawable, params types.GCParams) (types.GC, error) {
	defer c.end()
	if err := c.begin("CreateGC"); err != nil {
		return 0, err
	}
	if _, _, err := c.srv.pixelOf(drawable); err != nil {
		return 0, err
	}
	gc := types.GC(c.srv.allocID())
	c.srv.gcs[gc] = params
	return gc, nil
}

func (c *Conn) FreeGC(gc types.GC) error {
	defer c.end()
	if err := c.begin("FreeGC"); err != nil {
		return err
	}
	if _, ok := c.srv.gcs[gc]; !ok {
		return fmt.Errorf("BadGC: 0x%x", uint32(gc))
	}
	delete(c.srv.gcs, gc)
	return nil
}

func (c *Conn) CopyArea(src, dst types.Drawable, gc types.GC, rect types.Rect) error {
	defer c.end()
	if err := c.begin("CopyArea"); err != nil {
		return err
	}
	params, ok := c.srv.gcs[gc]
	if !ok {
		return fmt.Errorf("BadGC: 0x%x", uint32(gc))
	}
	pixel, from, err := c.srv.pixelOf(src)
	if err != nil {
		return err
	}
	_, to, err := c.srv.pixelOf(dst)
	if err != nil {
		return err
	}
	if to == nil {
		return fmt.Errorf("BadMatch: copy into window 0x%x", uint32(dst))
	}
	to.Pixel = pixel
	to.CopiedFrom = src
	to.CopyGC = params
	if from != nil {
		to.Alphas = slices.Clone(from.Alphas)
	}
	return nil
}

func (c *Conn) FillRectangle(drawable types.Drawable, gc types.GC, rect types.Rect) error {
	defer c.end()
	if err := c.begin("PolyFillRectangle"); err != nil {
		return err
	}
	params, ok := c.srv.gcs[gc]
	if !ok {
		return fmt.Errorf("BadGC: 0x%x", uint32(gc))
	}
	_, p, err := c.srv.pixelOf(drawable)
	if err != nil {
		return err
	}
	if p != nil && params.SetForeground {
		p.Pixel = params.Foreground
	}
	return nil
}

func (c *Conn) SetWindowBackground(win types.Window, p types.Pixmap) error {
	defer c.end()
	if err := c.begin("ChangeWindowAttributes"); err != nil {
		return err
	}
	if _, ok := c.srv.pixmaps[p]; !ok && p != types.PixmapNone {
		return fmt.Errorf("BadPixmap: 0x%x", uint32(p))
	}
	c.srv.background = p
	c.srv.published = append(c.srv.published, p)
	return nil
}

func (c *Conn) ClearArea(win types.Window, rect types.Rect) error {
	defer c.end()
	return c.begin("ClearArea")
}

func (c *Conn) GetImage(drawable types.Drawable, rect types.Rect) ([]byte, error) {
	defer c.end()
	if err := c.begin("GetImage"); err != nil {
		return nil, err
	}
	pixel, _, err := c.srv.pixelOf(drawable)
	if err != nil {
		return nil, err
	}
	return encodePixels(c.srv.geometry, pixel, int(rect.Width), int(rect.Height)), nil
}

// KillClient frees every resource of the client that created resource,
// and disconnects it if it is still connected.
func (c *Conn) KillClient(resource uint32) error {
	defer c.end()
	if err := c.begin("KillClient"); err != nil {
		return err
	}
	p, ok := c.srv.pixmaps[types.Pixmap(resource)]
	if !ok {
		return fmt.Errorf("BadValue: 0x%x", resource)
	}
	c.srv.killed[p.Owner] = true
	c.srv.destroyOwnedBy(p.Owner)
	return nil
}

func (c *Conn) Flush() error {
	defer c.end()
	return c.begin("GetInputFocus")
}

// Close disconnects. Pixmaps created on the connection are destroyed unless
// it retains them.
func (c *Conn) Close() error {
	s := c.srv
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.closed = true
	if !c.retain {
		s.destroyOwnedBy(c.id)
	}
	return s.failures["Close"]
}

func (c *Conn) NewSurface(dst types.Pixmap, src *raster.Raster) (types.Surface, error) {
	defer c.end()
	if err := c.begin("CreatePicture"); err != nil {
		return nil, err
	}
	if _, ok := c.srv.pixmaps[dst]; !ok {
		return nil, fmt.Errorf("BadDrawable: 0x%x", uint32(dst))
	}
	sf := &Surface{srv: c.srv, dst: dst, Source: src}
	c.srv.surfaces = append(c.srv.surfaces, sf)
	return sf, nil
}

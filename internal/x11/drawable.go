package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/matjam/setroot/internal/types"
)

// CreatePixmap creates an off-screen pixmap on the default screen.
func (c *Connection) CreatePixmap(width, height uint16, depth byte) (types.Pixmap, error) {
	pid, err := xproto.NewPixmapId(c.conn)
	if err != nil {
		return types.PixmapNone, protocolError("NewPixmapId", err)
	}

	err = xproto.CreatePixmapChecked(c.conn, depth, pid, xproto.Drawable(c.screen.Root), width, height).Check()
	if err != nil {
		return types.PixmapNone, protocolError("CreatePixmap", err)
	}
	return types.Pixmap(pid), nil
}

func (c *Connection) FreePixmap(p types.Pixmap) error {
	return protocolError("FreePixmap", xproto.FreePixmapChecked(c.conn, xproto.Pixmap(p)).Check())
}

// CreateGC creates a GXcopy, solid fill graphics context.
func (c *Connection) CreateGC(drawable types.Drawable, params types.GCParams) (types.GC, error) {
	gc, err := xproto.NewGcontextId(c.conn)
	if err != nil {
		return 0, protocolError("NewGcontextId", err)
	}

	// values must be listed in mask bit order
	mask := uint32(xproto.GcFunction | xproto.GcFillStyle)
	values := []uint32{xproto.GxCopy}
	if params.SetForeground {
		mask |= xproto.GcForeground
		values = append(values, params.Foreground)
	}
	values = append(values, xproto.FillStyleSolid)
	if params.IncludeInferiors {
		mask |= xproto.GcSubwindowMode
		values = append(values, xproto.SubwindowModeIncludeInferiors)
	}

	err = xproto.CreateGCChecked(c.conn, gc, xproto.Drawable(drawable), mask, values).Check()
	if err != nil {
		return 0, protocolError("CreateGC", err)
	}
	return types.GC(gc), nil
}

func (c *Connection) FreeGC(gc types.GC) error {
	return protocolError("FreeGC", xproto.FreeGCChecked(c.conn, xproto.Gcontext(gc)).Check())
}

// CopyArea copies rect from src to the same position in dst.
func (c *Connection) CopyArea(src, dst types.Drawable, gc types.GC, rect types.Rect) error {
	err := xproto.CopyAreaChecked(c.conn, xproto.Drawable(src), xproto.Drawable(dst), xproto.Gcontext(gc),
		rect.X, rect.Y, rect.X, rect.Y, rect.Width, rect.Height).Check()
	return protocolError("CopyArea", err)
}

func (c *Connection) FillRectangle(drawable types.Drawable, gc types.GC, rect types.Rect) error {
	err := xproto.PolyFillRectangleChecked(c.conn, xproto.Drawable(drawable), xproto.Gcontext(gc),
		[]xproto.Rectangle{{X: rect.X, Y: rect.Y, Width: rect.Width, Height: rect.Height}}).Check()
	return protocolError("PolyFillRectangle", err)
}

// SetWindowBackground sets the background-pixmap attribute of a window.
func (c *Connection) SetWindowBackground(win types.Window, p types.Pixmap) error {
	err := xproto.ChangeWindowAttributesChecked(c.conn, xproto.Window(win),
		xproto.CwBackPixmap, []uint32{uint32(p)}).Check()
	return protocolError("ChangeWindowAttributes", err)
}

// ClearArea repaints rect of a window with its background.
func (c *Connection) ClearArea(win types.Window, rect types.Rect) error {
	err := xproto.ClearAreaChecked(c.conn, false, xproto.Window(win),
		rect.X, rect.Y, rect.Width, rect.Height).Check()
	return protocolError("ClearArea", err)
}

// KillClient destroys every resource owned by the client that created
// resource, including clients that closed in RetainPermanent mode.
func (c *Connection) KillClient(resource uint32) error {
	return protocolError("KillClient", xproto.KillClientChecked(c.conn, resource).Check())
}

// GetImage reads rect of a drawable as a ZPixmap image.
func (c *Connection) GetImage(drawable types.Drawable, rect types.Rect) ([]byte, error) {
	reply, err := xproto.GetImage(c.conn, xproto.ImageFormatZPixmap, xproto.Drawable(drawable),
		rect.X, rect.Y, rect.Width, rect.Height, ^uint32(0)).Reply()
	if err != nil {
		return nil, protocolError("GetImage", err)
	}
	return reply.Data, nil
}

package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/matjam/setroot/internal/raster"
	"github.com/matjam/setroot/internal/types"
	"go.uber.org/multierr"
)

// Surface composites a source image onto a destination pixmap with XRender.
type Surface struct {
	c       *Connection
	src     types.Pixmap
	srcPict render.Picture
	dstPict render.Picture
	width   uint16
	height  uint16
}

// NewSurface uploads src to the server and binds it to dst for painting.
func (c *Connection) NewSurface(dst types.Pixmap, src *raster.Raster) (types.Surface, error) {
	if err := c.initRender(); err != nil {
		return nil, err
	}

	pix, err := c.CreatePixmap(uint16(src.Width), uint16(src.Height), c.geometry.Depth)
	if err != nil {
		return nil, err
	}
	s := &Surface{
		c:      c,
		src:    pix,
		width:  uint16(src.Width),
		height: uint16(src.Height),
	}

	if err := c.PutRaster(types.Drawable(pix), src); err != nil {
		return nil, multierr.Append(err, s.Close())
	}
	if s.srcPict, err = c.newPicture(types.Drawable(pix)); err != nil {
		return nil, multierr.Append(err, s.Close())
	}
	if s.dstPict, err = c.newPicture(types.Drawable(dst)); err != nil {
		return nil, multierr.Append(err, s.Close())
	}
	return s, nil
}

func (c *Connection) initRender() error {
	if c.renderReady {
		return nil
	}
	if err := render.Init(c.conn); err != nil {
		return protocolError("render.Init", err)
	}
	// solid fill pictures need RENDER 0.10
	version, err := render.QueryVersion(c.conn, 0, 11).Reply()
	if err != nil {
		return protocolError("render.QueryVersion", err)
	}
	if version.MajorVersion == 0 && version.MinorVersion < 10 {
		return fmt.Errorf("x11: RENDER %d.%d is too old, need 0.10", version.MajorVersion, version.MinorVersion)
	}

	formats, err := render.QueryPictFormats(c.conn).Reply()
	if err != nil {
		return protocolError("render.QueryPictFormats", err)
	}
	format, err := findVisualFormat(formats.Screens, c.screen.RootVisual)
	if err != nil {
		return err
	}

	c.pictFormat = format
	c.renderReady = true
	return nil
}

func findVisualFormat(screens []render.Pictscreen, visual xproto.Visualid) (render.Pictformat, error) {
	for _, s := range screens {
		for _, d := range s.Depths {
			for _, v := range d.Visuals {
				if v.Visual == visual {
					return v.Format, nil
				}
			}
		}
	}
	return 0, fmt.Errorf("x11: no picture format for root visual %d", visual)
}

func (c *Connection) newPicture(drawable types.Drawable) (render.Picture, error) {
	pid, err := render.NewPictureId(c.conn)
	if err != nil {
		return 0, protocolError("render.NewPictureId", err)
	}
	err = render.CreatePictureChecked(c.conn, pid, xproto.Drawable(drawable), c.pictFormat, 0, nil).Check()
	if err != nil {
		return 0, protocolError("render.CreatePicture", err)
	}
	return pid, nil
}

// PaintWithAlpha composites the source over the destination, scaling the
// source by a constant alpha.
func (s *Surface) PaintWithAlpha(alpha float64) (err error) {
	alpha = math.Max(0, math.Min(1, alpha))

	mask, err := render.NewPictureId(s.c.conn)
	if err != nil {
		return protocolError("render.NewPictureId", err)
	}
	color := render.Color{Alpha: uint16(math.Round(alpha * 0xffff))}
	if err := render.CreateSolidFillChecked(s.c.conn, mask, color).Check(); err != nil {
		return protocolError("render.CreateSolidFill", err)
	}
	defer func() {
		err = multierr.Append(err, protocolError("render.FreePicture", render.FreePictureChecked(s.c.conn, mask).Check()))
	}()

	err = render.CompositeChecked(s.c.conn, render.PictOpOver, s.srcPict, mask, s.dstPict,
		0, 0, 0, 0, 0, 0, s.width, s.height).Check()
	return protocolError("render.Composite", err)
}

// Close frees the pictures and the uploaded source pixmap.
func (s *Surface) Close() error {
	var err error
	if s.dstPict != 0 {
		err = multierr.Append(err, protocolError("render.FreePicture", render.FreePictureChecked(s.c.conn, s.dstPict).Check()))
		s.dstPict = 0
	}
	if s.srcPict != 0 {
		err = multierr.Append(err, protocolError("render.FreePicture", render.FreePictureChecked(s.c.conn, s.srcPict).Check()))
		s.srcPict = 0
	}
	if s.src != types.PixmapNone {
		err = multierr.Append(err, s.c.FreePixmap(s.src))
		s.src = types.PixmapNone
	}
	return err
}

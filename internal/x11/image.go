package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/matjam/setroot/internal/raster"
	"github.com/matjam/setroot/internal/types"
	"go.uber.org/multierr"
)

// maxRequestBytes is the largest request the server accepts without the
// BIG-REQUESTS extension.
func (c *Connection) maxRequestBytes() int {
	return int(c.setup.MaximumRequestLength) * 4
}

// PutRaster uploads a raster to the top left corner of drawable. Images
// larger than one request are sent in row aligned chunks.
func (c *Connection) PutRaster(drawable types.Drawable, r *raster.Raster) (err error) {
	if r.Width > 0xffff || r.Height > 0xffff {
		return fmt.Errorf("x11: raster %dx%d is too large", r.Width, r.Height)
	}

	gc, err := c.CreateGC(drawable, types.GCParams{})
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, c.FreeGC(gc))
	}()

	return ChunkedWrite(r.Pix, r.Stride, c.maxRequestBytes()-putImageHeader, func(row, rows int, chunk []byte) error {
		err := xproto.PutImageChecked(c.conn, xproto.ImageFormatZPixmap,
			xproto.Drawable(drawable), xproto.Gcontext(gc),
			uint16(r.Width), uint16(rows), 0, int16(row), 0,
			c.geometry.Depth, chunk).Check()
		return protocolError("PutImage", err)
	})
}

package background

import (
	"image"
	"testing"

	"github.com/matjam/setroot/internal/raster"
	"github.com/matjam/setroot/internal/types"
	"github.com/matjam/setroot/internal/x11/x11test"
)

func retainedDialer(srv *x11test.Server) RetainedDialer {
	return func() (Session, error) {
		c, err := srv.DialRetained()
		if err != nil {
			return nil, err
		}
		return c, nil
	}
}

func newTestStore(t *testing.T, g types.Geometry) (*x11test.Server, *x11test.Conn, *Store) {
	t.Helper()
	srv := x11test.NewServer(g)
	conn, err := srv.Dial()
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	return srv, conn, NewStore(conn)
}

func testRaster(t *testing.T, g types.Geometry) *raster.Raster {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, int(g.Width), int(g.Height)))
	r, err := raster.ToNative(img, raster.FormatFor(g))
	if err != nil {
		t.Fatalf("ToNative() error: %v", err)
	}
	return r
}

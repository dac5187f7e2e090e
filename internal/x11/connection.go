// Package x11 talks to the X server over the wire protocol. It provides the
// connection type used for reading and writing the root window background.
package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/charmbracelet/log"
	"github.com/matjam/setroot/internal/types"
)

func init() {
	// xgb logs unexpected events and errors on its own; route them through
	// our logger.
	xgb.Logger = log.StandardLog(log.StandardLogOptions{ForceLevel: log.WarnLevel})
}

// Connection manages an X11 connection and the default screen it was opened on.
type Connection struct {
	conn     *xgb.Conn
	xu       *xgbutil.XUtil // nil for retained connections
	setup    *xproto.SetupInfo
	screen   *xproto.ScreenInfo
	geometry types.Geometry
	retained bool

	renderReady bool
	pictFormat  render.Pictformat
}

// Connect opens the primary connection on $DISPLAY.
func Connect() (*Connection, error) {
	return ConnectDisplay("")
}

// ConnectDisplay opens the primary connection to the named display. Atoms
// interned on it are cached by xgbutil.
func ConnectDisplay(display string) (*Connection, error) {
	xu, err := xgbutil.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}

	c, err := newConnection(xu.Conn())
	if err != nil {
		xu.Conn().Close()
		return nil, err
	}
	c.xu = xu
	return c, nil
}

// ConnectRetained opens a connection whose resources survive its closure.
func ConnectRetained() (*Connection, error) {
	return ConnectRetainedDisplay("")
}

// ConnectRetainedDisplay opens a bare xgb connection and sets the
// RetainPermanent close-down mode before returning it, so nothing can be
// created on the connection before the directive is in place. xgbutil is not
// used here because it creates a window of its own while connecting.
func ConnectRetainedDisplay(display string) (*Connection, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}

	err = xproto.SetCloseDownModeChecked(conn, xproto.CloseDownRetainPermanent).Check()
	if err != nil {
		conn.Close()
		return nil, protocolError("SetCloseDownMode", err)
	}

	c, err := newConnection(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	c.retained = true
	return c, nil
}

func newConnection(conn *xgb.Conn) (*Connection, error) {
	setup := xproto.Setup(conn)
	if setup == nil || len(setup.Roots) == 0 {
		return nil, fmt.Errorf("x11: connection setup has no screens")
	}
	screen := setup.DefaultScreen(conn)

	geometry, err := geometryFromSetup(setup, screen)
	if err != nil {
		return nil, err
	}

	log.Debugf("x11: screen %dx%d depth %d bpp %d %v",
		geometry.Width, geometry.Height, geometry.Depth, geometry.BitsPerPixel, geometry.ByteOrder)

	return &Connection{
		conn:     conn,
		setup:    setup,
		screen:   screen,
		geometry: geometry,
	}, nil
}

// geometryFromSetup reads the screen size, root depth, pixel size and colour
// masks of the root visual out of the setup block.
func geometryFromSetup(setup *xproto.SetupInfo, screen *xproto.ScreenInfo) (types.Geometry, error) {
	g := types.Geometry{
		Width:     screen.WidthInPixels,
		Height:    screen.HeightInPixels,
		Depth:     screen.RootDepth,
		ByteOrder: types.LSBFirst,
	}
	if setup.ImageByteOrder == xproto.ImageOrderMSBFirst {
		g.ByteOrder = types.MSBFirst
	}

	for _, f := range setup.PixmapFormats {
		if f.Depth == screen.RootDepth {
			g.BitsPerPixel = f.BitsPerPixel
			break
		}
	}
	if g.BitsPerPixel == 0 {
		return g, fmt.Errorf("x11: no pixmap format for root depth %d", screen.RootDepth)
	}

	for _, d := range screen.AllowedDepths {
		for _, v := range d.Visuals {
			if v.VisualId == screen.RootVisual {
				g.RedMask = v.RedMask
				g.GreenMask = v.GreenMask
				g.BlueMask = v.BlueMask
				return g, nil
			}
		}
	}
	return g, fmt.Errorf("x11: root visual %d not found", screen.RootVisual)
}

// Geometry returns the default screen geometry read at connect time.
func (c *Connection) Geometry() types.Geometry {
	return c.geometry
}

// Root returns the root window of the default screen.
func (c *Connection) Root() types.Window {
	return types.Window(c.screen.Root)
}

// RetainsOnDisconnect reports whether resources created on this connection
// outlive it.
func (c *Connection) RetainsOnDisconnect() bool {
	return c.retained
}

// Flush blocks until the server has processed every request sent so far.
// xgb writes requests as they are made, so a round trip is what makes them
// observable to other clients.
func (c *Connection) Flush() error {
	_, err := xproto.GetInputFocus(c.conn).Reply()
	return protocolError("GetInputFocus", err)
}

// Close flushes and then cleanly disconnects from the X11 server. Retained
// resources are only kept by the server after this.
func (c *Connection) Close() error {
	err := c.Flush()
	c.conn.Close()
	return err
}

package types

type ScalingMode string

const (
	ScalingModeCenter        ScalingMode = "center"
	ScalingModeStretch       ScalingMode = "stretched"
	ScalingModeFitHorizontal ScalingMode = "horizontal"
	ScalingModeFitVertical   ScalingMode = "vertical"
)

type EasingMode string

const (
	EasingLinear    EasingMode = "linear"
	EasingEaseIn    EasingMode = "ease-in"
	EasingEaseOut   EasingMode = "ease-out"
	EasingEaseInOut EasingMode = "ease-in-out"
)

// Server side resource identifiers. They are global to the X server, so a
// handle obtained on one connection is valid on any other.
type (
	Window   uint32
	Pixmap   uint32
	Drawable uint32
	Atom     uint32
	GC       uint32
)

const (
	PixmapNone Pixmap = 0
	AtomNone   Atom   = 0

	// AtomPixmap is the predefined PIXMAP property type.
	AtomPixmap Atom = 20
)

type ByteOrder byte

const (
	LSBFirst ByteOrder = 0
	MSBFirst ByteOrder = 1
)

func (o ByteOrder) String() string {
	if o == MSBFirst {
		return "msb-first"
	}
	return "lsb-first"
}

// Geometry describes the default screen as reported in the connection setup.
// It is read once per connection and never refreshed.
type Geometry struct {
	Width        uint16
	Height       uint16
	Depth        byte
	BitsPerPixel byte
	ByteOrder    ByteOrder
	RedMask      uint32
	GreenMask    uint32
	BlueMask     uint32
}

// Bounds is the full screen rectangle.
func (g Geometry) Bounds() Rect {
	return Rect{Width: g.Width, Height: g.Height}
}

type Rect struct {
	X      int16
	Y      int16
	Width  uint16
	Height uint16
}

// GCParams are the graphics context values we care about. The function is
// always GXcopy and the fill style always solid.
type GCParams struct {
	IncludeInferiors bool
	SetForeground    bool
	Foreground       uint32
}

// Property is a raw property value as returned by the server.
type Property struct {
	Type   Atom
	Format byte
	Value  []byte
}

// Surface is a compositing context bound to a destination pixmap with a
// source image already attached.
type Surface interface {
	PaintWithAlpha(alpha float64) error
	Close() error
}

package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/bits"

	"github.com/matjam/setroot/internal/types"
)

// Format is the server side pixel layout of a ZPixmap image.
type Format struct {
	ByteOrder    types.ByteOrder
	BitsPerPixel int
	RedMask      uint32
	GreenMask    uint32
	BlueMask     uint32
}

// FormatFor derives the pixel layout from the screen geometry.
func FormatFor(g types.Geometry) Format {
	return Format{
		ByteOrder:    g.ByteOrder,
		BitsPerPixel: int(g.BitsPerPixel),
		RedMask:      g.RedMask,
		GreenMask:    g.GreenMask,
		BlueMask:     g.BlueMask,
	}
}

func (f Format) validate() error {
	if f.BitsPerPixel != 32 {
		return fmt.Errorf("unsupported pixel size: %d bits per pixel", f.BitsPerPixel)
	}
	if f.RedMask == 0 || f.GreenMask == 0 || f.BlueMask == 0 {
		return fmt.Errorf("visual has no colour masks")
	}
	return nil
}

// Pixel packs a colour into a pixel value for this format.
func (f Format) Pixel(c color.Color) uint32 {
	r, g, b, _ := c.RGBA()
	return pack(uint8(r>>8), f.RedMask) | pack(uint8(g>>8), f.GreenMask) | pack(uint8(b>>8), f.BlueMask)
}

func pack(v uint8, mask uint32) uint32 {
	shift := bits.TrailingZeros32(mask)
	width := bits.OnesCount32(mask)
	if width < 8 {
		return (uint32(v) >> (8 - width)) << shift & mask
	}
	return uint32(v) << (shift + width - 8) & mask
}

func unpack(p, mask uint32) uint8 {
	shift := bits.TrailingZeros32(mask)
	width := bits.OnesCount32(mask)
	v := (p & mask) >> shift
	if width < 8 {
		return uint8(v << (8 - width))
	}
	return uint8(v >> (width - 8))
}

// Raster is an image already laid out the way the server stores it.
type Raster struct {
	Width  int
	Height int
	Stride int
	Pix    []byte
	Format Format
}

// ToNative converts an image to the server's pixel layout. This is the only
// place that looks at the byte order.
func ToNative(img image.Image, f Format) (*Raster, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	r := &Raster{
		Width:  w,
		Height: h,
		Stride: w * 4,
		Pix:    make([]byte, w*h*4),
		Format: f,
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := y*rgba.Stride + x*4
			p := pack(rgba.Pix[src], f.RedMask) |
				pack(rgba.Pix[src+1], f.GreenMask) |
				pack(rgba.Pix[src+2], f.BlueMask)
			putPixel(r.Pix[y*r.Stride+x*4:], p, f.ByteOrder)
		}
	}
	return r, nil
}

// FromNative converts a ZPixmap buffer as returned by GetImage back into an
// RGBA image.
func FromNative(data []byte, width, height int, f Format) (*image.RGBA, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	stride := width * 4
	if len(data) < stride*height {
		return nil, fmt.Errorf("image data too short: got %d bytes, want %d", len(data), stride*height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := getPixel(data[y*stride+x*4:], f.ByteOrder)
			dst := y*img.Stride + x*4
			img.Pix[dst] = unpack(p, f.RedMask)
			img.Pix[dst+1] = unpack(p, f.GreenMask)
			img.Pix[dst+2] = unpack(p, f.BlueMask)
			img.Pix[dst+3] = 0xff
		}
	}
	return img, nil
}

// Image converts the raster back to RGBA.
func (r *Raster) Image() (*image.RGBA, error) {
	return FromNative(r.Pix, r.Width, r.Height, r.Format)
}

func putPixel(b []byte, p uint32, order types.ByteOrder) {
	if order == types.MSBFirst {
		b[0], b[1], b[2], b[3] = byte(p>>24), byte(p>>16), byte(p>>8), byte(p)
		return
	}
	b[0], b[1], b[2], b[3] = byte(p), byte(p>>8), byte(p>>16), byte(p>>24)
}

func getPixel(b []byte, order types.ByteOrder) uint32 {
	if order == types.MSBFirst {
		return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

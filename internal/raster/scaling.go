package raster

import (
	"image"

	"github.com/matjam/setroot/internal/types"
	"golang.org/x/image/draw"
)

// ScaleImage scales the image according to the scaling mode onto a canvas of
// the target size. Areas the image does not cover are left black.
func ScaleImage(img image.Image, targetW, targetH int, mode types.ScalingMode) *image.RGBA {
	var dstRect image.Rectangle
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()

	switch mode {
	case types.ScalingModeStretch:
		dstRect = image.Rect(0, 0, targetW, targetH)
	case types.ScalingModeFitHorizontal:
		scale := float64(targetW) / float64(srcW)
		h := int(float64(srcH) * scale)
		y := (targetH - h) / 2
		dstRect = image.Rect(0, y, targetW, y+h)
	case types.ScalingModeFitVertical:
		scale := float64(targetH) / float64(srcH)
		w := int(float64(srcW) * scale)
		x := (targetW - w) / 2
		dstRect = image.Rect(x, 0, x+w, targetH)
	case types.ScalingModeCenter:
		fallthrough
	default:
		// Keep original size, center inside target canvas
		x := (targetW - srcW) / 2
		y := (targetH - srcH) / 2
		dstRect = image.Rect(x, y, x+srcW, y+srcH)
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	if dstRect.Dx() == srcW && dstRect.Dy() == srcH {
		draw.Draw(dst, dstRect, img, img.Bounds().Min, draw.Over)
		return dst
	}
	d := draw.CatmullRom
	d.Scale(dst, dstRect, img, img.Bounds(), draw.Over, nil)
	return dst
}

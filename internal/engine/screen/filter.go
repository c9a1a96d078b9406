package screen

import (
	"image"
	"image/color"
)

// ChatColors are the text colours worth reading: plain chat, Amascut's two
// dialogue colours and Tumeken's gold.
var ChatColors = []color.RGBA{
	{R: 255, G: 255, B: 255, A: 255},
	{R: 69, G: 131, B: 145, A: 255},
	{R: 153, G: 255, B: 153, A: 255},
	{R: 196, G: 184, B: 72, A: 255},
}

// FilterChatColors keeps only pixels close to one of palette and renders
// them black on white, which is what the OCR engine reads best.
func FilterChatColors(img image.Image, palette []color.RGBA, tolerance float64) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := rgba8(img, x, y)
			v := uint8(255)
			for _, c := range palette {
				if colorSimilar(r, g, bl, uint32(c.R), uint32(c.G), uint32(c.B), tolerance) {
					v = 0
					break
				}
			}
			out.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: v})
		}
	}
	return out
}

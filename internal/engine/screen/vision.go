package screen

import (
	"fmt"
	"image"
	_ "image/png" // Register PNG decoder for image.Decode
	"math"
	"os"

	"github.com/kbinani/screenshot"

	"github.com/ConserveLee/barricade-timer/internal/constants"
)

// Searcher captures one display and finds template images in captures.
// Coordinates are local to the display: (0,0) is its top-left corner.
type Searcher struct {
	DisplayIndex int

	debugFunc func(string, ...interface{})
}

// NewSearcher creates a searcher for the main display.
func NewSearcher() *Searcher {
	return &Searcher{
		DisplayIndex: 0,
		debugFunc:    func(string, ...interface{}) {},
	}
}

// SetDisplayID sets the display index used for capturing.
func (s *Searcher) SetDisplayID(index int) {
	s.DisplayIndex = index
}

// SetDebugFunc sets the debug logging function.
func (s *Searcher) SetDebugFunc(f func(string, ...interface{})) {
	s.debugFunc = f
}

// LoadImage loads an image from the filesystem.
func (s *Searcher) LoadImage(path string) (image.Image, error) {
	return LoadImage(path)
}

// LoadImage decodes a PNG file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// DisplayBounds returns the selected display's rectangle in desktop
// coordinates.
func (s *Searcher) DisplayBounds() (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if s.DisplayIndex < 0 || s.DisplayIndex >= n {
		return image.Rectangle{}, fmt.Errorf("%w: display %d of %d", ErrNoDisplay, s.DisplayIndex, n)
	}
	return screenshot.GetDisplayBounds(s.DisplayIndex), nil
}

// CaptureScreen returns the whole selected display.
func (s *Searcher) CaptureScreen() (image.Image, error) {
	bounds, err := s.DisplayBounds()
	if err != nil {
		return nil, err
	}
	return s.CaptureRect(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
}

// CaptureRect captures r, given in display-local coordinates. The returned
// image has its origin at r.Min.
func (s *Searcher) CaptureRect(r image.Rectangle) (image.Image, error) {
	bounds, err := s.DisplayBounds()
	if err != nil {
		return nil, err
	}
	abs := r.Add(bounds.Min).Intersect(bounds)
	if abs.Empty() {
		return nil, fmt.Errorf("%w: %v is off display %d", ErrNotFound, r, s.DisplayIndex)
	}

	img, err := screenshot.CaptureRect(abs)
	if err != nil {
		// The capture only fails this way when the OS refuses it.
		return nil, fmt.Errorf("%w: display %d: %v", ErrPermission, s.DisplayIndex, err)
	}
	rgba := *img
	rgba.Rect = img.Rect.Add(abs.Min.Sub(bounds.Min))
	return &rgba, nil
}

// FindTemplate searches for templateImg inside area of screenImg and
// returns the first match. An empty area searches the whole image.
func (s *Searcher) FindTemplate(screenImg, templateImg image.Image, area image.Rectangle, tolerance float64) (image.Point, bool) {
	matches := s.find(screenImg, templateImg, area, tolerance, 1)
	if len(matches) == 0 {
		return image.Point{}, false
	}
	return matches[0], true
}

// FindAllTemplates returns the top-left corner of every match in area.
func (s *Searcher) FindAllTemplates(screenImg, templateImg image.Image, area image.Rectangle, tolerance float64) []image.Point {
	return s.find(screenImg, templateImg, area, tolerance, 0)
}

func (s *Searcher) find(screenImg, templateImg image.Image, area image.Rectangle, tolerance float64, limit int) []image.Point {
	sBounds := screenImg.Bounds()
	if area.Empty() {
		area = sBounds
	}
	area = area.Intersect(sBounds)

	tBounds := templateImg.Bounds()
	tWidth, tHeight := tBounds.Dx(), tBounds.Dy()
	if area.Dx() < tWidth || area.Dy() < tHeight || tWidth == 0 || tHeight == 0 {
		return nil
	}

	// Key pixels for quick rejection: top-left, centre, bottom-right
	keys := []image.Point{
		{0, 0},
		{tWidth / 2, tHeight / 2},
		{tWidth - 1, tHeight - 1},
	}

	var matches []image.Point
	for y := area.Min.Y; y <= area.Max.Y-tHeight; y++ {
	scan:
		for x := area.Min.X; x <= area.Max.X-tWidth; x++ {
			for _, k := range keys {
				tr, tg, tb, ta := rgba8(templateImg, tBounds.Min.X+k.X, tBounds.Min.Y+k.Y)
				if ta == 0 {
					continue
				}
				sr, sg, sb, _ := rgba8(screenImg, x+k.X, y+k.Y)
				if !colorSimilar(sr, sg, sb, tr, tg, tb, tolerance) {
					continue scan
				}
			}

			if match(screenImg, templateImg, x, y, tolerance) {
				matches = append(matches, image.Point{X: x, Y: y})
				if limit > 0 && len(matches) >= limit {
					return matches
				}
				x += tWidth / 2
			}
		}
	}
	if len(matches) > 0 {
		s.debugFunc("[Vision] %d template matches in %v", len(matches), area)
	}
	return matches
}

// rgba8 returns the colour at (x, y) with 8-bit components.
func rgba8(img image.Image, x, y int) (r, g, b, a uint32) {
	r, g, b, a = img.At(x, y).RGBA()
	return r >> 8, g >> 8, b >> 8, a >> 8
}

func colorSimilar(r1, g1, b1, r2, g2, b2 uint32, tolerance float64) bool {
	dr := float64(r1) - float64(r2)
	dg := float64(g1) - float64(g2)
	db := float64(b1) - float64(b2)
	return math.Sqrt(dr*dr+dg*dg+db*db) <= tolerance
}

// match compares every opaque template pixel at (sx, sy). Up to
// MaxFailRate of them may differ, which absorbs chat text drawn over the
// anchor's edges.
func match(screenImg, templateImg image.Image, sx, sy int, tolerance float64) bool {
	tBounds := templateImg.Bounds()
	total, failed := 0, 0

	for ty := 0; ty < tBounds.Dy(); ty++ {
		for tx := 0; tx < tBounds.Dx(); tx++ {
			tr, tg, tb, ta := rgba8(templateImg, tBounds.Min.X+tx, tBounds.Min.Y+ty)
			// Transparent template pixels are wildcards
			if ta == 0 {
				continue
			}
			total++
			sr, sg, sb, _ := rgba8(screenImg, sx+tx, sy+ty)
			if !colorSimilar(sr, sg, sb, tr, tg, tb, tolerance) {
				failed++
				if total > 100 && float64(failed)/float64(total) > constants.MaxFailRate {
					return false
				}
			}
		}
	}
	if total == 0 {
		return false
	}
	return float64(failed)/float64(total) <= constants.MaxFailRate
}

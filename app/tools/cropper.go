package tools

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// CropperWidget displays a capture and lets the user drag out a rectangle.
type CropperWidget struct {
	widget.BaseWidget

	img        image.Image
	startPos   fyne.Position
	currentPos fyne.Position
	isDragging bool

	raster    *canvas.Image
	selection *canvas.Rectangle

	// OnSelected receives the selection in image pixel coordinates.
	OnSelected func(rect image.Rectangle)
}

func NewCropperWidget(img image.Image, onSelected func(image.Rectangle)) *CropperWidget {
	c := &CropperWidget{
		img:        img,
		OnSelected: onSelected,
	}
	c.ExtendBaseWidget(c)

	c.raster = canvas.NewImageFromImage(img)
	c.raster.ScaleMode = canvas.ImageScalePixels // No smoothing, the anchor is matched per pixel
	c.raster.FillMode = canvas.ImageFillContain

	c.selection = canvas.NewRectangle(color.RGBA{R: 255, A: 60})
	c.selection.StrokeColor = color.RGBA{R: 255, A: 255}
	c.selection.StrokeWidth = 2
	c.selection.Hide()

	return c
}

func (c *CropperWidget) CreateRenderer() fyne.WidgetRenderer {
	return &cropperRenderer{
		cropper: c,
		objects: []fyne.CanvasObject{c.raster, c.selection},
	}
}

func (c *CropperWidget) Dragged(e *fyne.DragEvent) {
	if !c.isDragging {
		c.isDragging = true
		c.startPos = e.Position.Subtract(e.Dragged)
		c.selection.Show()
	}
	c.currentPos = e.Position
	c.Refresh()
}

func (c *CropperWidget) DragEnd() {
	c.isDragging = false
	c.Refresh()
	if c.OnSelected == nil {
		return
	}
	r := selectionToPixels(c.Size(), c.img.Bounds(), c.startPos, c.currentPos)
	if !r.Empty() {
		c.OnSelected(r)
	}
}

func (c *CropperWidget) Tapped(e *fyne.PointEvent) {
	c.startPos = e.Position
	c.currentPos = e.Position
	c.selection.Hide()
	c.Refresh()
}

func (c *CropperWidget) Cursor() desktop.Cursor {
	return desktop.CrosshairCursor
}

// fitContain returns where an image of bounds b is drawn inside view with
// ImageFillContain: the top-left offset and the drawn size.
func fitContain(view fyne.Size, b image.Rectangle) (fyne.Position, fyne.Size) {
	if view.Width == 0 || view.Height == 0 || b.Dx() == 0 || b.Dy() == 0 {
		return fyne.Position{}, fyne.Size{}
	}
	aspect := float32(b.Dx()) / float32(b.Dy())

	if view.Width/view.Height > aspect {
		// View is wider: fit height
		w := view.Height * aspect
		return fyne.NewPos((view.Width-w)/2, 0), fyne.NewSize(w, view.Height)
	}
	// View is taller: fit width
	h := view.Width / aspect
	return fyne.NewPos(0, (view.Height-h)/2), fyne.NewSize(view.Width, h)
}

// selectionToPixels maps a drag between two widget positions onto the
// image's pixel grid, clipped to the drawn image.
func selectionToPixels(view fyne.Size, b image.Rectangle, a, z fyne.Position) image.Rectangle {
	off, drawn := fitContain(view, b)
	if drawn.Width == 0 {
		return image.Rectangle{}
	}

	x0 := max(off.X, min(a.X, z.X))
	y0 := max(off.Y, min(a.Y, z.Y))
	x1 := min(off.X+drawn.Width, max(a.X, z.X))
	y1 := min(off.Y+drawn.Height, max(a.Y, z.Y))
	if x1 <= x0 || y1 <= y0 {
		return image.Rectangle{}
	}

	sx := float32(b.Dx()) / drawn.Width
	sy := float32(b.Dy()) / drawn.Height
	r := image.Rect(
		b.Min.X+int((x0-off.X)*sx),
		b.Min.Y+int((y0-off.Y)*sy),
		b.Min.X+int((x1-off.X)*sx),
		b.Min.Y+int((y1-off.Y)*sy),
	)
	// Float math can overshoot by a pixel.
	return r.Intersect(b)
}

type cropperRenderer struct {
	cropper *CropperWidget
	objects []fyne.CanvasObject
}

func (r *cropperRenderer) Layout(s fyne.Size) {
	r.objects[0].Resize(s)
	r.objects[0].Move(fyne.NewPos(0, 0))
	r.layoutSelection()
}

func (r *cropperRenderer) layoutSelection() {
	c := r.cropper
	minX := min(c.startPos.X, c.currentPos.X)
	minY := min(c.startPos.Y, c.currentPos.Y)
	maxX := max(c.startPos.X, c.currentPos.X)
	maxY := max(c.startPos.Y, c.currentPos.Y)

	r.objects[1].Move(fyne.NewPos(minX, minY))
	r.objects[1].Resize(fyne.NewSize(maxX-minX, maxY-minY))
}

func (r *cropperRenderer) MinSize() fyne.Size {
	return fyne.NewSize(100, 100)
}

func (r *cropperRenderer) Refresh() {
	r.layoutSelection()
	canvas.Refresh(r.cropper)
}

func (r *cropperRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *cropperRenderer) Destroy() {}

// Package tools is the calibration tab: anchor cropping, debug captures and
// chat region measurement.
package tools

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-vgo/robotgo"
	"github.com/kbinani/screenshot"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ConserveLee/barricade-timer/internal/config"
)

// DebugDir receives full captures for cmd/debug_ocr.
const DebugDir = "assets/debug"

const markDelay = 3 * time.Second

// Options wires the tab to the running reader.
type Options struct {
	AnchorPath string
	Display    func() int
	// Anchor returns the last anchor match in display-local coordinates.
	Anchor func() (image.Point, bool)
	// OnAnchorSaved hands a newly cropped anchor to the reader.
	OnAnchorSaved func(image.Image)
}

// NewToolsPanel creates the UI panel for calibration tools.
func NewToolsPanel(win fyne.Window, opts Options) fyne.CanvasObject {
	infoLabel := widget.NewLabel("1. Open the game with the chatbox visible\n2. Capture & Crop the anchor icon\n3. Start monitoring, then mark the chat corners")
	infoLabel.Alignment = fyne.TextAlignCenter

	capture := func() (image.Image, bool) {
		bounds := screenshot.GetDisplayBounds(opts.Display())
		img, err := screenshot.CaptureRect(bounds)
		if err != nil {
			dialog.ShowError(err, win)
			return nil, false
		}
		return img, true
	}

	cropBtn := widget.NewButton("Capture & Crop", func() {
		if img, ok := capture(); ok {
			showCropperWindow(img, opts)
		}
	})
	cropBtn.Importance = widget.HighImportance

	snapBtn := widget.NewButton("Save Debug Screenshot", func() {
		img, ok := capture()
		if !ok {
			return
		}
		path, err := savePNG(DebugDir, getNextFileName(DebugDir), img)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		dialog.ShowInformation("Saved", path, win)
	})

	// Region calibration
	var topLeft, bottomRight *image.Point
	regionOut := widget.NewEntry()
	regionOut.MultiLine = true
	regionOut.SetPlaceHolder("chat region appears here")

	update := func() {
		if topLeft == nil || bottomRight == nil {
			return
		}
		anchor, ok := opts.Anchor()
		if !ok {
			regionOut.SetText("Anchor not found yet - start monitoring first")
			return
		}
		origin := screenshot.GetDisplayBounds(opts.Display()).Min
		r := regionFromPoints(anchor, origin, *topLeft, *bottomRight)
		regionOut.SetText(regionYAML(r))
	}

	markBtn := func(label string, dst **image.Point) *widget.Button {
		var b *widget.Button
		b = widget.NewButton(label, func() {
			b.Disable()
			b.SetText(fmt.Sprintf("%s (hover now...)", label))
			time.AfterFunc(markDelay, func() {
				x, y := robotgo.Location()
				fyne.Do(func() {
					p := image.Pt(x, y)
					*dst = &p
					b.SetText(fmt.Sprintf("%s: %d,%d", label, x, y))
					b.Enable()
					update()
				})
			})
		})
		return b
	}

	openDirBtn := widget.NewButton("Open Assets", func() {
		openDir("assets")
	})

	return container.NewVBox(
		infoLabel,
		widget.NewSeparator(),
		cropBtn,
		snapBtn,
		widget.NewSeparator(),
		widget.NewLabel("Chat region (hover each corner after clicking):"),
		container.NewHBox(
			markBtn("Top-left", &topLeft),
			markBtn("Bottom-right", &bottomRight),
		),
		regionOut,
		widget.NewSeparator(),
		openDirBtn,
	)
}

// regionFromPoints converts two global cursor positions into a region
// relative to the anchor. anchor is display-local, origin is the display's
// top-left in global coordinates.
func regionFromPoints(anchor, origin, a, b image.Point) config.Rect {
	r := image.Rectangle{Min: a, Max: b}.Canon().Sub(origin).Sub(anchor)
	return config.Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

func regionYAML(r config.Rect) string {
	return fmt.Sprintf("chat:\n  region: {x: %d, y: %d, width: %d, height: %d}", r.X, r.Y, r.Width, r.Height)
}

func openDir(path string) {
	var cmd *exec.Cmd
	absPath, _ := filepath.Abs(path)

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("explorer", absPath)
	default:
		cmd = exec.Command("xdg-open", absPath)
	}
	cmd.Run() //nolint:errcheck
}

func showCropperWindow(fullImg image.Image, opts Options) {
	w := fyne.CurrentApp().NewWindow("Crop Anchor")
	w.Resize(fyne.NewSize(800, 600))

	lbl := widget.NewLabel("Drag a box around the anchor icon...")
	lbl.Alignment = fyne.TextAlignCenter

	saveBtn := widget.NewButton("Save Selection", nil)
	saveBtn.Disable()

	var currentSelection image.Rectangle

	cropper := NewCropperWidget(fullImg, func(rect image.Rectangle) {
		currentSelection = rect
		lbl.SetText(fmt.Sprintf("Selected: %v (click save)", rect))
		saveBtn.Enable()
	})

	saveBtn.OnTapped = func() {
		if currentSelection.Empty() {
			return
		}
		sub, ok := fullImg.(interface {
			SubImage(r image.Rectangle) image.Image
		})
		if !ok {
			dialog.ShowError(fmt.Errorf("image type does not support cropping"), w)
			return
		}
		showSaveForm(w, sub.SubImage(currentSelection), opts)
	}

	w.SetContent(container.NewBorder(
		nil,
		container.NewVBox(lbl, saveBtn),
		nil, nil,
		cropper,
	))
	w.Show()
}

func showSaveForm(win fyne.Window, img image.Image, opts Options) {
	preview := canvas.NewImageFromImage(img)
	preview.FillMode = canvas.ImageFillContain
	preview.ScaleMode = canvas.ImageScalePixels
	preview.SetMinSize(fyne.NewSize(100, 100))

	const (
		targetAnchor = "Chat anchor"
		targetDebug  = "Debug crop"
	)
	target := widget.NewRadioGroup([]string{targetAnchor, targetDebug}, nil)
	target.SetSelected(targetAnchor)

	content := container.NewVBox(
		widget.NewLabel("Save this crop?"),
		container.NewCenter(preview),
		target,
	)

	dialog.ShowCustomConfirm("Save Template", "Save", "Cancel", content, func(confirm bool) {
		if !confirm {
			return
		}

		var path string
		var err error
		if target.Selected == targetAnchor {
			path, err = savePNG(filepath.Dir(opts.AnchorPath), filepath.Base(opts.AnchorPath), img)
			if err == nil && opts.OnAnchorSaved != nil {
				opts.OnAnchorSaved(img)
			}
		} else {
			path, err = savePNG(DebugDir, getNextFileName(DebugDir), img)
		}
		if err != nil {
			dialog.ShowError(err, win)
			return
		}

		dialog.ShowInformation("Saved", path, win)
		win.Close()
	}, win)
}

func savePNG(dir, name string, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	return path, nil
}

// getNextFileName suggests the next free N.png in dir.
func getNextFileName(dir string) string {
	files, _ := filepath.Glob(filepath.Join(dir, "*.png"))

	maxIdx := 0
	for _, f := range files {
		base := filepath.Base(f)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		// "12-anchor" -> "12"
		parts := strings.FieldsFunc(name, func(r rune) bool {
			return r < '0' || r > '9'
		})
		if len(parts) == 0 {
			continue
		}
		if idx, err := strconv.Atoi(parts[0]); err == nil && idx > maxIdx {
			maxIdx = idx
		}
	}
	return fmt.Sprintf("%d.png", maxIdx+1)
}

package screen

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

var (
	background = color.RGBA{R: 30, G: 30, B: 30, A: 255}
	anchorRed  = color.RGBA{R: 200, G: 30, B: 30, A: 255}
	anchorBlue = color.RGBA{R: 30, G: 30, B: 200, A: 255}
)

func newAnchor() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 6, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 6; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, anchorRed)
			} else {
				img.Set(x, y, anchorBlue)
			}
		}
	}
	return img
}

func newScreen(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)
	return img
}

func paint(dst *image.RGBA, src image.Image, at image.Point) {
	r := src.Bounds().Sub(src.Bounds().Min).Add(at)
	draw.Draw(dst, r, src, src.Bounds().Min, draw.Src)
}

func erase(dst *image.RGBA, r image.Rectangle) {
	draw.Draw(dst, r, &image.Uniform{C: background}, image.Point{}, draw.Src)
}

type fakeCapture struct {
	screen *image.RGBA
	err    error
}

func (f *fakeCapture) CaptureScreen() (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.screen, nil
}

func (f *fakeCapture) CaptureRect(r image.Rectangle) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.screen.SubImage(r), nil
}

type fakeOCR struct {
	text string
	got  image.Rectangle
}

func (f *fakeOCR) Recognize(img image.Image) (string, error) {
	f.got = img.Bounds()
	return f.text, nil
}

func TestFindTemplate(t *testing.T) {
	s := NewSearcher()
	anchor := newAnchor()
	scr := newScreen(200, 120)
	paint(scr, anchor, image.Pt(50, 70))

	p, ok := s.FindTemplate(scr, anchor, image.Rectangle{}, 60)
	if !ok || p != image.Pt(50, 70) {
		t.Fatalf("FindTemplate = %v %v, want (50,70)", p, ok)
	}

	if _, ok := s.FindTemplate(scr, anchor, image.Rect(0, 0, 40, 40), 60); ok {
		t.Error("found the anchor outside the search area")
	}

	paint(scr, anchor, image.Pt(120, 10))
	all := s.FindAllTemplates(scr, anchor, image.Rectangle{}, 60)
	if len(all) != 2 || all[0] != image.Pt(120, 10) || all[1] != image.Pt(50, 70) {
		t.Errorf("FindAllTemplates = %v", all)
	}
}

func TestTransparentTemplatePixelsAreWildcards(t *testing.T) {
	s := NewSearcher()
	anchor := newAnchor()
	for x := 0; x < 6; x++ {
		anchor.Set(x, 0, color.RGBA{}) // fully transparent top row
	}
	scr := newScreen(40, 40)
	paint(scr, newAnchor(), image.Pt(10, 10))
	// Scribble over the row the template no longer cares about.
	for x := 10; x < 16; x++ {
		scr.Set(x, 10, color.RGBA{R: 255, G: 255, B: 0, A: 255})
	}

	if p, ok := s.FindTemplate(scr, anchor, image.Rectangle{}, 60); !ok || p != image.Pt(10, 10) {
		t.Errorf("FindTemplate = %v %v", p, ok)
	}
}

func TestFilterChatColors(t *testing.T) {
	src := image.NewRGBA(image.Rect(100, 100, 104, 101))
	src.Set(100, 100, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(101, 100, color.RGBA{R: 70, G: 130, B: 146, A: 255})
	src.Set(102, 100, background)
	src.Set(103, 100, color.RGBA{R: 190, G: 180, B: 80, A: 255})

	out := FilterChatColors(src, ChatColors, 40)
	if out.Bounds() != image.Rect(0, 0, 4, 1) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	want := []uint8{0, 0, 255, 0}
	for x, w := range want {
		if got := out.GrayAt(x, 0).Y; got != w {
			t.Errorf("pixel %d = %d, want %d", x, got, w)
		}
	}
}

func newReader(scr *image.RGBA, ocr *fakeOCR) (*ChatReader, *fakeCapture) {
	capture := &fakeCapture{screen: scr}
	cfg := ChatConfig{
		Anchor: newAnchor(),
		Region: image.Rect(10, -60, 150, 0),
	}
	return NewChatReader(NewSearcher(), capture, ocr, cfg), capture
}

func TestChatReaderLocateAndPoll(t *testing.T) {
	scr := newScreen(200, 120)
	paint(scr, newAnchor(), image.Pt(50, 70))
	ocr := &fakeOCR{text: "Amascut, the Devourer: Grovel!\n\n   Enough  \n"}
	r, _ := newReader(scr, ocr)

	if r.Available() {
		t.Fatal("available before locate")
	}
	if err := r.Locate(); err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if p, ok := r.Anchor(); !ok || p != image.Pt(50, 70) {
		t.Fatalf("anchor = %v %v", p, ok)
	}

	lines, err := r.Poll()
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(lines) != 2 || lines[0] != "Amascut, the Devourer: Grovel!" || lines[1] != "Enough" {
		t.Errorf("lines = %q", lines)
	}
	if ocr.got.Dx() != 140 || ocr.got.Dy() != 60 {
		t.Errorf("ocr saw %v, want a 140x60 region", ocr.got)
	}
}

func TestChatReaderLosesAndReacquiresAnchor(t *testing.T) {
	scr := newScreen(200, 120)
	paint(scr, newAnchor(), image.Pt(50, 70))
	r, _ := newReader(scr, &fakeOCR{})
	if err := r.Locate(); err != nil {
		t.Fatalf("Locate: %v", err)
	}

	erase(scr, image.Rect(50, 70, 56, 74))
	paint(scr, newAnchor(), image.Pt(120, 100))

	if _, err := r.Poll(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Poll error = %v, want ErrNotFound", err)
	}
	if r.Available() {
		t.Error("still available after losing the anchor")
	}

	if err := r.Locate(); err != nil {
		t.Fatalf("re-Locate: %v", err)
	}
	if p, _ := r.Anchor(); p != image.Pt(120, 100) {
		t.Errorf("anchor = %v, want (120,100)", p)
	}
}

func TestChatReaderErrors(t *testing.T) {
	r, capture := newReader(newScreen(100, 100), &fakeOCR{})
	if err := r.Locate(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Locate on a blank screen = %v", err)
	}
	if _, err := r.Poll(); !errors.Is(err, ErrNotFound) {
		t.Errorf("Poll before locate = %v", err)
	}

	capture.err = ErrPermission
	if err := r.Locate(); !errors.Is(err, ErrPermission) {
		t.Errorf("Locate with capture denied = %v", err)
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines(" a \n\n\tb\r\n  ")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("SplitLines = %q", got)
	}
}

func TestChatReaderWithoutAnchor(t *testing.T) {
	scr := newScreen(300, 200)
	paint(scr, newAnchor(), image.Pt(40, 60))
	s := NewSearcher()
	capture := &fakeCapture{screen: scr}
	r := NewChatReader(s, capture, &fakeOCR{}, ChatConfig{Region: image.Rect(0, 10, 100, 40)})

	if err := r.Locate(); !errors.Is(err, ErrNoAnchor) {
		t.Fatalf("Locate without template = %v", err)
	}

	r.SetAnchor(newAnchor())
	if err := r.Locate(); err != nil {
		t.Fatalf("Locate after SetAnchor: %v", err)
	}
	if p, ok := r.Anchor(); !ok || p != image.Pt(40, 60) {
		t.Errorf("anchor = %v %v", p, ok)
	}

	r.SetAnchor(newAnchor())
	if r.Available() {
		t.Error("replacing the template should forget the old position")
	}
}

func TestChatReaderReturnsOnlyNewLines(t *testing.T) {
	scr := newScreen(200, 120)
	paint(scr, newAnchor(), image.Pt(50, 70))
	ocr := &fakeOCR{text: "[00:12:45] The scarab is sucked into portal"}
	r, _ := newReader(scr, ocr)
	if err := r.Locate(); err != nil {
		t.Fatalf("Locate: %v", err)
	}

	lines, err := r.Poll()
	if err != nil || len(lines) != 1 {
		t.Fatalf("first poll = %q, %v", lines, err)
	}
	for i := 0; i < 3; i++ {
		lines, err = r.Poll()
		if err != nil {
			t.Fatalf("poll %d: %v", i, err)
		}
		if len(lines) != 0 {
			t.Fatalf("poll %d of unchanged chat returned %q", i, lines)
		}
	}

	ocr.text = "[00:12:45] The scarab is sucked into portal\n[00:12:50] Amascut: You are nothing!"
	lines, _ = r.Poll()
	if len(lines) != 1 || lines[0] != "[00:12:50] Amascut: You are nothing!" {
		t.Errorf("after a new line = %q", lines)
	}

	r.SetAnchor(newAnchor())
	if err := r.Locate(); err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if lines, _ = r.Poll(); len(lines) != 2 {
		t.Errorf("a new anchor should start from a clean read, got %q", lines)
	}
}

func TestNewLines(t *testing.T) {
	tests := []struct {
		name      string
		prev, cur []string
		want      []string
	}{
		{"first read", nil, []string{"a", "b"}, []string{"a", "b"}},
		{"unchanged", []string{"a", "b"}, []string{"a", "b"}, nil},
		{"one scrolled in", []string{"a", "b", "c"}, []string{"b", "c", "d"}, []string{"d"}},
		{"two scrolled in", []string{"a", "b", "c"}, []string{"c", "d", "e"}, []string{"d", "e"}},
		{"all replaced", []string{"a", "b"}, []string{"x", "y"}, []string{"x", "y"}},
		{"repeated text", []string{"grovel", "grovel"}, []string{"grovel", "grovel", "grovel"}, []string{"grovel"}},
		{"chat cleared", []string{"a"}, nil, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NewLines(tc.prev, tc.cur)
			if len(got) != len(tc.want) {
				t.Fatalf("NewLines = %q, want %q", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("NewLines = %q, want %q", got, tc.want)
				}
			}
		})
	}
}

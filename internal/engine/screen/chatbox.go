package screen

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/ConserveLee/barricade-timer/internal/constants"
)

// Capturer grabs pixels from the display. Searcher is the real one.
type Capturer interface {
	CaptureScreen() (image.Image, error)
	CaptureRect(r image.Rectangle) (image.Image, error)
}

// Recognizer turns a filtered chat image into text.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// ChatConfig describes where the chat lines sit.
type ChatConfig struct {
	Anchor         image.Image     // Template found next to the chatbox
	Region         image.Rectangle // Chat lines, relative to the anchor's top-left
	Tolerance      float64         // Anchor match tolerance
	ColorTolerance float64         // Chat colour filter tolerance
}

// ChatReader reads chat lines from the screen: it locates the anchor,
// captures the region next to it and runs OCR on the filtered pixels.
type ChatReader struct {
	searcher *Searcher
	capture  Capturer
	ocr      Recognizer
	cfg      ChatConfig

	mu     sync.Mutex
	anchor image.Point
	found  bool // Anchor currently on screen
	seen   bool // Anchor found at least once
	last   []string

	debugFunc func(string, ...interface{})
}

// NewChatReader wires a reader. capture is usually the searcher itself.
func NewChatReader(searcher *Searcher, capture Capturer, ocr Recognizer, cfg ChatConfig) *ChatReader {
	if cfg.Tolerance == 0 {
		cfg.Tolerance = constants.DefaultTolerance
	}
	if cfg.ColorTolerance == 0 {
		cfg.ColorTolerance = constants.ChatColorTolerance
	}
	return &ChatReader{
		searcher:  searcher,
		capture:   capture,
		ocr:       ocr,
		cfg:       cfg,
		debugFunc: func(string, ...interface{}) {},
	}
}

// SetDebugFunc sets the debug logging function.
func (c *ChatReader) SetDebugFunc(f func(string, ...interface{})) {
	c.debugFunc = f
}

// SetAnchor replaces the anchor template. The previous position is
// forgotten.
func (c *ChatReader) SetAnchor(tmpl image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Anchor = tmpl
	c.found = false
	c.seen = false
	c.last = nil
}

// Available reports whether the anchor was found and has not been lost.
func (c *ChatReader) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.found
}

// Anchor returns the last known anchor position.
func (c *ChatReader) Anchor() (image.Point, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anchor, c.found
}

func anchorRect(tmpl image.Image, at image.Point) image.Rectangle {
	b := tmpl.Bounds()
	return image.Rect(at.X, at.Y, at.X+b.Dx(), at.Y+b.Dy())
}

// Locate searches the display for the anchor. Around the previous position
// first, then everywhere.
func (c *ChatReader) Locate() error {
	c.mu.Lock()
	tmpl := c.cfg.Anchor
	c.mu.Unlock()
	if tmpl == nil {
		return ErrNoAnchor
	}

	screenImg, err := c.capture.CaptureScreen()
	if err != nil {
		return err
	}

	c.mu.Lock()
	last, seen := c.anchor, c.seen
	c.mu.Unlock()

	if seen {
		roi := anchorRect(tmpl, last).Inset(-constants.AnchorROIMargin)
		if p, ok := c.searcher.FindTemplate(screenImg, tmpl, roi, c.cfg.Tolerance); ok {
			c.debugFunc("[Chat] ROI fast path: anchor at (%d, %d)", p.X, p.Y)
			c.setAnchor(p)
			return nil
		}
		c.debugFunc("[Chat] ROI scan empty, falling back to full screen")
	}

	p, ok := c.searcher.FindTemplate(screenImg, tmpl, image.Rectangle{}, c.cfg.Tolerance)
	if !ok {
		c.mu.Lock()
		c.found = false
		c.mu.Unlock()
		return ErrNotFound
	}
	c.setAnchor(p)
	return nil
}

func (c *ChatReader) setAnchor(p image.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anchor = p
	c.found = true
	c.seen = true
}

// Poll re-checks the anchor and reads the chat region. Only lines that were
// not visible on the previous poll are returned. Losing the anchor returns
// ErrNotFound.
func (c *ChatReader) Poll() ([]string, error) {
	c.mu.Lock()
	at, found, tmpl := c.anchor, c.found, c.cfg.Anchor
	c.mu.Unlock()
	if !found || tmpl == nil {
		return nil, ErrNotFound
	}

	anchorImg, err := c.capture.CaptureRect(anchorRect(tmpl, at))
	if err != nil {
		return nil, err
	}
	if _, ok := c.searcher.FindTemplate(anchorImg, tmpl, image.Rectangle{}, c.cfg.Tolerance); !ok {
		c.mu.Lock()
		c.found = false
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: anchor moved from (%d, %d)", ErrNotFound, at.X, at.Y)
	}

	chatImg, err := c.capture.CaptureRect(c.cfg.Region.Add(at))
	if err != nil {
		return nil, err
	}
	lines, err := c.Read(chatImg)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fresh := NewLines(c.last, lines)
	c.last = lines
	return fresh, nil
}

// NewLines returns the lines of cur that scrolled in after prev. Chat grows
// at the bottom, so the longest tail of prev that is also a head of cur is
// the part both reads share.
func NewLines(prev, cur []string) []string {
	n := len(prev)
	if len(cur) < n {
		n = len(cur)
	}
	for k := n; k > 0; k-- {
		if equalLines(prev[len(prev)-k:], cur[:k]) {
			return cur[k:]
		}
	}
	return cur
}

func equalLines(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Read filters and recognizes an already captured chat image.
func (c *ChatReader) Read(chatImg image.Image) ([]string, error) {
	filtered := FilterChatColors(chatImg, ChatColors, c.cfg.ColorTolerance)
	text, err := c.ocr.Recognize(filtered)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}
	return SplitLines(text), nil
}

// SplitLines breaks OCR output into trimmed, non-empty lines.
func SplitLines(text string) []string {
	var lines []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

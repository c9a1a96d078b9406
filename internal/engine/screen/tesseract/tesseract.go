// Package tesseract recognizes chat text with the Tesseract OCR engine.
// It needs libtesseract at build time, so it is kept apart from the rest
// of the screen package.
package tesseract

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps one gosseract client. Recognize calls are serialized.
type Client struct {
	mu     sync.Mutex
	client *gosseract.Client
}

// New creates a client for lang (e.g. "eng"). Chat is read as a block of
// uniform lines.
func New(lang string) (*Client, error) {
	c := gosseract.NewClient()
	if err := c.SetLanguage(lang); err != nil {
		c.Close()
		return nil, fmt.Errorf("set language %q: %w", lang, err)
	}
	if err := c.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		c.Close()
		return nil, fmt.Errorf("set page segmentation: %w", err)
	}
	return &Client{client: c}, nil
}

// Recognize returns the text found in img.
func (c *Client) Recognize(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	return c.client.Text()
}

// Close releases the Tesseract handle.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client.Close()
}

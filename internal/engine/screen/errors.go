package screen

import "errors"

var (
	// ErrNotFound means the chatbox anchor is not on screen.
	ErrNotFound = errors.New("chatbox not found")
	// ErrNoDisplay means the configured display does not exist.
	ErrNoDisplay = errors.New("display not found")
	// ErrPermission means the OS refused the screen capture.
	ErrPermission = errors.New("screen capture not permitted")
	// ErrNoAnchor means no anchor template has been loaded.
	ErrNoAnchor = errors.New("no chat anchor template")
)

package engine

import (
	"errors"

	"github.com/ConserveLee/barricade-timer/internal/constants"
	"github.com/ConserveLee/barricade-timer/internal/engine/screen"
)

// StatusMessage maps a source error to the text shown in the status region.
func StatusMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, screen.ErrNotFound):
		return constants.MsgLookingForChat
	case errors.Is(err, screen.ErrNoDisplay):
		return constants.MsgErrNotFound
	case errors.Is(err, screen.ErrPermission):
		return constants.MsgErrPermission
	case errors.Is(err, screen.ErrNoAnchor):
		return constants.MsgErrNoAnchor
	default:
		return constants.MsgErrUnknown
	}
}

// transient reports whether err only means "keep looking".
func transient(err error) bool {
	return errors.Is(err, screen.ErrNotFound)
}

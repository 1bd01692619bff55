package tp

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument reports invalid caller-supplied arguments, detected
// before any I/O is performed.
var ErrInvalidArgument = errors.New("invalid argument")

// ProtocolError reports malformed or unexpected Transport Protocol data:
// an unrecognized header, a session ID change mid-file, an unknown message
// type tag, or a payload whose length does not match its layout. It is
// fatal to the parse; the parser performs no recovery.
type ProtocolError struct {
	Reason string
	Tag    byte // offending message type tag, 0 if not tag-related
}

func (e *ProtocolError) Error() string {
	if e.Tag != 0 {
		return fmt.Sprintf("tp: %s (tag 0x%02x)", e.Reason, e.Tag)
	}
	return "tp: " + e.Reason
}

func protocolErrorf(format string, args ...any) error {
	return &ProtocolError{Reason: fmt.Sprintf(format, args...)}
}

func invalidArgumentf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

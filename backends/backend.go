// Package backends provides the byte channels frames travel over. The link
// layer treats a backend's stream as an opaque, unreliable byte pipe; any
// synchronization inside a backend is the backend's concern.
package backends

import (
	"errors"
	"fmt"
	"io"
)

var ErrUnknownBackend = errors.New("unknown backend")

// Backend opens one end of a point-to-point byte channel.
type Backend interface {
	// Dial opens the sending end.
	Dial() (io.ReadWriteCloser, error)
	// Listen waits for a peer and opens the receiving end.
	Listen() (io.ReadWriteCloser, error)
}

// NewBackend selects a backend by name.
func NewBackend(name string, addr string) (Backend, error) {
	switch name {
	case "native":
		return NewNativeBackend(addr), nil
	case "tcp":
		return NewTCPBackend(addr), nil
	case "loopback":
		return NewLoopback(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

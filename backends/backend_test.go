package backends

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBackendSelection(t *testing.T) {
	backend, err := NewBackend("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	assert.IsType(t, &TCPBackend{}, backend)

	backend, err = NewBackend("native", "127.0.0.1:0")
	require.NoError(t, err)
	assert.IsType(t, &NativeBackend{}, backend)

	backend, err = NewBackend("loopback", "")
	require.NoError(t, err)
	assert.IsType(t, &Loopback{}, backend)

	_, err = NewBackend("carrier-pigeon", "")
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}

func TestLoopbackPipe(t *testing.T) {
	lo := NewLoopback()
	dialEnd, err := lo.Dial()
	require.NoError(t, err)
	listenEnd, err := lo.Listen()
	require.NoError(t, err)

	go func() {
		dialEnd.Write([]byte("ping"))
	}()
	buf := make([]byte, 4)
	_, err = io.ReadFull(listenEnd, buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("ping"), buf)

	go func() {
		listenEnd.Write([]byte("pong"))
	}()
	_, err = io.ReadFull(dialEnd, buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("pong"), buf)
}

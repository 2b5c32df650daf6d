package framelink

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkuran/framelink/backends"
)

type loopbackLink struct {
	tx     *Layer
	rx     *Layer
	out    chan []byte
	cancel context.CancelFunc
}

func newLoopbackLink(t *testing.T, codecName string) *loopbackLink {
	lo := backends.NewLoopback()
	rxLink, err := lo.Listen()
	require.NoError(t, err)
	txLink, err := lo.Dial()
	require.NoError(t, err)
	txCodec, err := NewCodec(codecName)
	require.NoError(t, err)
	rxCodec, err := NewCodec(codecName)
	require.NoError(t, err)

	link := &loopbackLink{
		tx:  NewLayer(txCodec, txLink),
		rx:  NewLayer(rxCodec, rxLink),
		out: make(chan []byte, 64),
	}
	var ctx context.Context
	ctx, link.cancel = context.WithCancel(context.Background())
	go NewReceiver(link.rx).MainLoop(ctx, link.out)
	t.Cleanup(link.cancel)
	return link
}

func (l *loopbackLink) waitPayload(t *testing.T) []byte {
	t.Helper()
	select {
	case payload, ok := <-l.out:
		require.True(t, ok, "receiver closed early")
		return payload
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for payload")
		return nil
	}
}

func TestEmptyPayloadEndToEnd(t *testing.T) {
	for _, name := range []string{CodecHamming, CodecCRC} {
		t.Run(name, func(t *testing.T) {
			link := newLoopbackLink(t, name)
			require.NoError(t, link.tx.Send(nil))
			assert.Len(t, link.waitPayload(t), 0)
		})
	}
}

func TestSingleByteEndToEnd(t *testing.T) {
	for _, name := range []string{CodecHamming, CodecCRC} {
		t.Run(name, func(t *testing.T) {
			link := newLoopbackLink(t, name)
			require.NoError(t, link.tx.Send([]byte{0x41}))
			assert.Equal(t, []byte{0x41}, link.waitPayload(t))
		})
	}
}

func TestMultiChunkEndToEnd(t *testing.T) {
	link := newLoopbackLink(t, CodecHamming)
	message := bytes.Repeat([]byte{'a'}, 16)
	require.NoError(t, link.tx.Send(message))

	received := append([]byte{}, link.waitPayload(t)...)
	received = append(received, link.waitPayload(t)...)
	assert.Equal(t, message, received)

	assert.Equal(t, uint64(2), link.tx.Stats().FramesSent)
	assert.Equal(t, uint64(2), link.rx.Stats().FramesReceived)
}

func TestProcessFrameMissingStartTag(t *testing.T) {
	codec, err := NewCodec(CodecCRC)
	require.NoError(t, err)
	layer := NewLayer(codec, nil)

	_, err = layer.ProcessFrame([]byte{0x00, 0x7D})
	assert.True(t, errors.Is(err, ErrMissingStartTag))
	assert.Equal(t, uint64(1), layer.Stats().FramesDropped)
}

func TestProcessFrameChecksumDrop(t *testing.T) {
	codec, err := NewCodec(CodecCRC)
	require.NoError(t, err)
	layer := NewLayer(codec, nil)

	// Valid body for payload 0x41 with the final checksum byte corrupted.
	frame := Wrap([]byte{0x41, 0x6B, 0xE9})
	_, err = layer.ProcessFrame(frame)
	assert.True(t, errors.Is(err, ErrChecksumMismatch))
	assert.Equal(t, uint64(1), layer.Stats().FramesDropped)
	assert.Equal(t, uint64(0), layer.Stats().FramesReceived)
}

func TestProcessFrameParityCorrected(t *testing.T) {
	codec, err := NewCodec(CodecHamming)
	require.NoError(t, err)
	layer := NewLayer(codec, nil)

	// Codeword for 0x41 with its first parity bit flipped: recovered, not
	// dropped.
	frame := Wrap([]byte{0x09, 0x10})
	payload, err := layer.ProcessFrame(frame)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41}, payload)

	stats := layer.Stats()
	assert.Equal(t, uint64(1), stats.ParityCorrections)
	assert.Equal(t, uint64(1), stats.FramesReceived)
	assert.Equal(t, uint64(0), stats.FramesDropped)
}

func TestTagHeavyPayloadEndToEnd(t *testing.T) {
	// Payload made entirely of delimiter values survives framing plus both
	// codecs.
	for _, name := range []string{CodecHamming, CodecCRC} {
		codec, err := NewCodec(name)
		require.NoError(t, err)
		layer := NewLayer(codec, nil)

		payload := []byte{0x7B, 0x7D, 0x5C}
		body, err := codec.Encode(payload)
		require.NoError(t, err)
		recovered, err := layer.ProcessFrame(Wrap(body))
		require.NoError(t, err)
		assert.Equal(t, payload, recovered, name)
	}
}

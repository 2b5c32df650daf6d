package framelink

import (
	"context"
	"io"

	"github.com/mkuran/framelink/log"
)

// Receiver drives the receive side of a layer: it accumulates bytes from
// the link until an unescaped stop tag completes a frame, then hands the
// frame to the layer. Failed frames are dropped and the loop keeps going.
type Receiver struct {
	layer  *Layer
	logger *log.Logger
}

func NewReceiver(layer *Layer) *Receiver {
	return &Receiver{
		layer:  layer,
		logger: log.NewLogger("receiver"),
	}
}

// MainLoop reads the link byte by byte and emits one payload per completed
// frame on out. It returns when the context is cancelled or the link
// closes; out is closed on return.
func (r *Receiver) MainLoop(ctx context.Context, out chan<- []byte) {
	defer close(out)
	buf := make([]byte, 0, 64)
	single := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("shutting down")
			return
		default:
		}
		n, err := r.layer.link.Read(single)
		if err != nil {
			if err != io.EOF {
				r.logger.WithField("error", err).Error("link read failed")
			}
			return
		}
		if n == 0 {
			continue
		}
		buf = append(buf, single[0])
		if !FrameComplete(buf) {
			continue
		}
		payload, err := r.layer.ProcessFrame(buf)
		buf = buf[:0]
		if err != nil {
			continue
		}
		select {
		case out <- payload:
		case <-ctx.Done():
			r.logger.Info("shutting down")
			return
		}
	}
}

package framelink

import (
	"github.com/mkuran/framelink/protocol"
)

// Wrap frames a frame body: start tag, body with every tag-valued byte
// preceded by the escape tag, stop tag. Chunking to MaxPayloadSize happens
// before encoding, so Wrap itself never rejects on size. An empty body
// yields the 2-byte frame.
func Wrap(body []byte) []byte {
	frame := make([]byte, 0, len(body)*2+2)
	frame = append(frame, protocol.StartTag)
	for _, b := range body {
		if protocol.IsTag(b) {
			frame = append(frame, protocol.EscapeTag)
		}
		frame = append(frame, b)
	}
	frame = append(frame, protocol.StopTag)
	return frame
}

// FrameComplete reports whether buf ends in a complete frame: at least two
// bytes, the last one a stop tag not preceded by an escape tag.
func FrameComplete(buf []byte) bool {
	if len(buf) < 2 {
		return false
	}
	return buf[len(buf)-1] == protocol.StopTag && buf[len(buf)-2] != protocol.EscapeTag
}

// Unwrap strips the framing from a complete frame and undoes the escaping:
// any byte after an escape tag is taken literally, and the scan stops just
// before the unescaped stop tag.
func Unwrap(frame []byte) ([]byte, error) {
	if len(frame) == 0 || frame[0] != protocol.StartTag {
		return nil, ErrMissingStartTag
	}
	body := make([]byte, 0, len(frame)-2)
	for i := 1; i < len(frame); i++ {
		b := frame[i]
		if b == protocol.EscapeTag {
			i++
			if i < len(frame) {
				body = append(body, frame[i])
			}
			continue
		}
		if b == protocol.StopTag {
			break
		}
		body = append(body, b)
	}
	return body, nil
}

package framelink

import (
	"io"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/mkuran/framelink/log"
	"github.com/mkuran/framelink/protocol"
	"github.com/spf13/viper"
)

// Config selects the codec and transport of a link. Values come from viper:
// defaults below, overridden by a config file or flags.
type Config struct {
	Codec     string
	Backend   string
	Addr      string
	Tracefile string
}

func init() {
	viper.SetDefault("Codec", CodecCRC)
	viper.SetDefault("Backend", "tcp")
	viper.SetDefault("Addr", "127.0.0.1:7878")
	viper.SetDefault("Tracefile", "")
}

func ConfigFromViper() Config {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.NewLogger("config").WithField("error", err).Fatal("cannot unmarshal config")
	}
	return config
}

// Stats counts frame-level events since the layer was created.
type Stats struct {
	FramesSent        uint64
	FramesReceived    uint64
	FramesDropped     uint64
	ParityCorrections uint64
}

// Layer binds a codec to a byte channel. The send path chunks, encodes and
// frames payloads; the receive path is driven by a Receiver feeding
// ProcessFrame one accumulated frame at a time.
type Layer struct {
	codec  Codec
	link   io.ReadWriteCloser
	logger *log.Logger
	mu     sync.Mutex
	stats  Stats
}

func NewLayer(codec Codec, link io.ReadWriteCloser) *Layer {
	return &Layer{
		codec:  codec,
		link:   link,
		logger: log.NewLogger("layer-" + codec.Name()),
	}
}

// Trace mirrors this layer's frame events into trace files next to path.
func (l *Layer) Trace(path string) {
	log.AddTracer(l.logger, path)
}

// Send chunks data into pieces of at most protocol.MaxPayloadSize bytes and
// transmits one frame per chunk. An empty payload still produces one frame
// carrying the codec's empty body.
func (l *Layer) Send(data []byte) error {
	chunks := make([][]byte, 0, len(data)/protocol.MaxPayloadSize+1)
	if len(data) == 0 {
		chunks = append(chunks, nil)
	}
	for begin := 0; begin < len(data); begin += protocol.MaxPayloadSize {
		end := begin + protocol.MaxPayloadSize
		if end > len(data) {
			end = len(data)
		}
		chunks = append(chunks, data[begin:end])
	}
	for _, chunk := range chunks {
		body, err := l.codec.Encode(chunk)
		if err != nil {
			return err
		}
		frame := Wrap(body)
		if _, err := l.link.Write(frame); err != nil {
			return err
		}
		l.count(func(s *Stats) { s.FramesSent++ })
		l.logger.WithField("bytes", len(frame)).Debug("frame sent")
	}
	return nil
}

// ProcessFrame unwraps and decodes one accumulated frame. Framing and
// checksum failures are terminal for the frame: the error is returned and
// the frame is counted as dropped, never delivered best-effort.
func (l *Layer) ProcessFrame(buf []byte) ([]byte, error) {
	body, err := Unwrap(buf)
	if err != nil {
		l.count(func(s *Stats) { s.FramesDropped++ })
		l.logger.WithField("error", err).Warn("frame dropped")
		return nil, err
	}
	payload, err := l.codec.Decode(body)
	if err != nil {
		l.count(func(s *Stats) { s.FramesDropped++ })
		l.logger.WithField("error", err).Warn("frame dropped")
		return nil, err
	}
	l.count(func(s *Stats) { s.FramesReceived++ })
	l.logger.WithField("bytes", len(payload)).Debug("frame received")
	return payload, nil
}

func (l *Layer) count(update func(*Stats)) {
	l.mu.Lock()
	update(&l.stats)
	l.mu.Unlock()
}

// Stats returns a snapshot of the counters.
func (l *Layer) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	var snapshot Stats
	if err := copier.Copy(&snapshot, &l.stats); err != nil {
		l.logger.WithField("error", err).Error("cannot copy stats")
	}
	if hamming, ok := l.codec.(*HammingCodec); ok {
		snapshot.ParityCorrections = hamming.Corrections()
	}
	return snapshot
}

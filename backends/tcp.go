package backends

import (
	"io"
	"net"

	"github.com/mkuran/framelink/log"
)

// TCPBackend carries frames over a single TCP connection.
type TCPBackend struct {
	addr   string
	logger *log.Logger
}

func NewTCPBackend(addr string) *TCPBackend {
	return &TCPBackend{
		addr:   addr,
		logger: log.NewLogger("BackendTCP"),
	}
}

func (b *TCPBackend) Dial() (io.ReadWriteCloser, error) {
	conn, err := net.Dial("tcp", b.addr)
	if err != nil {
		return nil, err
	}
	b.logger.WithField("addr", b.addr).Info("connected")
	return conn, nil
}

// Listen accepts exactly one peer; the link layer owns a point-to-point
// channel, not a connection pool.
func (b *TCPBackend) Listen() (io.ReadWriteCloser, error) {
	ln, err := net.Listen("tcp", b.addr)
	if err != nil {
		return nil, err
	}
	defer ln.Close()
	b.logger.WithField("addr", b.addr).Info("waiting for peer")
	conn, err := ln.Accept()
	if err != nil {
		return nil, err
	}
	return conn, nil
}

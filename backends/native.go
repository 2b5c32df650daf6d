package backends

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io"
	"math/big"
	"time"

	quic "github.com/lucas-clemente/quic-go"
	"github.com/mkuran/framelink/log"
	"github.com/spf13/viper"
)

var logger *log.Logger

func init() {
	logger = log.NewLogger("BackendNative")
}

func init() {
	viper.SetDefault("NativeTimeout", 2*time.Second)
	viper.SetDefault("Protocols", []string{"framelink"})
}

// NativeBackend carries frames over a single bidirectional QUIC stream.
type NativeBackend struct {
	addr      string
	tlsconfig *tls.Config
	config    *quic.Config
}

type NativeBackendConfig struct {
	Protocols     []string
	NativeTimeout time.Duration
}

func getConfig() *NativeBackendConfig {
	var config NativeBackendConfig
	viper.Unmarshal(&config)
	return &config
}

func NewNativeBackend(addr string) *NativeBackend {
	cfg := getConfig()
	tlsConf := &tls.Config{
		InsecureSkipVerify: true,
		NextProtos:         cfg.Protocols,
	}
	config := &quic.Config{
		HandshakeTimeout: cfg.NativeTimeout,
		KeepAlive:        true,
		MaxIdleTimeout:   time.Second * 60,
	}
	logger.WithField("config", cfg).Info("creating new backend")
	return &NativeBackend{
		addr:      addr,
		config:    config,
		tlsconfig: tlsConf,
	}
}

func (b *NativeBackend) Dial() (io.ReadWriteCloser, error) {
	session, err := quic.DialAddr(b.addr, b.tlsconfig, b.config)
	if err != nil {
		return nil, err
	}
	stream, err := session.OpenStreamSync(context.Background())
	if err != nil {
		return nil, err
	}
	return stream, nil
}

func (b *NativeBackend) Listen() (io.ReadWriteCloser, error) {
	cfg := getConfig()
	tlsConf, err := serverTLSConfig(cfg.Protocols)
	if err != nil {
		return nil, err
	}
	ln, err := quic.ListenAddr(b.addr, tlsConf, b.config)
	if err != nil {
		return nil, err
	}
	logger.WithField("addr", b.addr).Info("waiting for peer")
	session, err := ln.Accept(context.Background())
	if err != nil {
		return nil, err
	}
	stream, err := session.AcceptStream(context.Background())
	if err != nil {
		return nil, err
	}
	return stream, nil
}

// serverTLSConfig builds a throwaway self-signed certificate. The channel
// is treated as unreliable and untrusted anyway; peers dial with
// verification disabled.
func serverTLSConfig(protocols []string) (*tls.Config, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	template := x509.Certificate{SerialNumber: big.NewInt(1)}
	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, err
	}
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	tlsCert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{tlsCert},
		NextProtos:   protocols,
	}, nil
}

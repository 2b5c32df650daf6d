package cmd

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/sha3"

	"github.com/mkuran/framelink/backends"
	"github.com/mkuran/framelink/framelink"
	"github.com/mkuran/framelink/log"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run a loopback self-test through both codecs",
	Long: `Pushes a test buffer through the full send/receive path over the
in-memory loopback backend, once per codec, and compares cSHAKE digests of
the sent and received bytes.`,
	Run: check,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func check(cmd *cobra.Command, args []string) {
	logger := log.NewLogger("check")
	for _, tc := range []struct {
		codec   string
		message []byte
	}{
		{framelink.CodecHamming, bytes.Repeat([]byte{'a'}, 512)},
		{framelink.CodecCRC, []byte{'A'}},
	} {
		if err := runCheck(tc.codec, tc.message); err != nil {
			logger.WithField("codec", tc.codec).WithField("error", err).Fatal("self-test failed")
		}
		logger.WithField("codec", tc.codec).Info("self-test passed")
	}
}

func runCheck(name string, message []byte) error {
	lo := backends.NewLoopback()
	rxLink, err := lo.Listen()
	if err != nil {
		return err
	}
	txLink, err := lo.Dial()
	if err != nil {
		return err
	}
	txCodec, err := framelink.NewCodec(name)
	if err != nil {
		return err
	}
	rxCodec, err := framelink.NewCodec(name)
	if err != nil {
		return err
	}
	txLayer := framelink.NewLayer(txCodec, txLink)
	rxLayer := framelink.NewLayer(rxCodec, rxLink)

	out := make(chan []byte, 1024)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go framelink.NewReceiver(rxLayer).MainLoop(ctx, out)

	go func() {
		txLayer.Send(message)
		txLink.Close()
	}()

	var received []byte
	timeout := time.After(10 * time.Second)
	for len(received) < len(message) {
		select {
		case payload, ok := <-out:
			if !ok {
				return fmt.Errorf("link closed after %d of %d bytes", len(received), len(message))
			}
			received = append(received, payload...)
		case <-timeout:
			return fmt.Errorf("timed out after %d of %d bytes", len(received), len(message))
		}
	}

	if !bytes.Equal(digest(message), digest(received)) {
		return fmt.Errorf("digest mismatch")
	}
	return nil
}

func digest(data []byte) []byte {
	hash := sha3.NewCShake256(nil, []byte("framelink-check"))
	hash.Write(data)
	sum := make([]byte, 32)
	hash.Read(sum)
	return sum
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkuran/framelink/backends"
	"github.com/mkuran/framelink/framelink"
	"github.com/mkuran/framelink/log"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Receive frames and print the recovered payloads",
	Long: `Waits for a peer, reassembles incoming bytes into frames and prints
every successfully decoded payload to stdout. Frames with a missing start tag
or a failing checksum are dropped; Hamming frames with a single flipped bit
are corrected and delivered.`,
	Run: listen,
}

func init() {
	rootCmd.AddCommand(listenCmd)
}

func listen(cmd *cobra.Command, args []string) {
	logger := log.NewLogger("listen")
	config := framelink.ConfigFromViper()
	backend, err := backends.NewBackend(config.Backend, config.Addr)
	if err != nil {
		logger.WithField("error", err).Fatal("cannot create backend")
	}
	link, err := backend.Listen()
	if err != nil {
		logger.WithField("error", err).Fatal("cannot listen")
	}
	defer link.Close()
	codec, err := framelink.NewCodec(config.Codec)
	if err != nil {
		logger.WithField("error", err).Fatal("cannot create codec")
	}
	layer := framelink.NewLayer(codec, link)
	if config.Tracefile != "" {
		layer.Trace(config.Tracefile)
	}
	receiver := framelink.NewReceiver(layer)

	out := make(chan []byte, 1024)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go receiver.MainLoop(ctx, out)
	for payload := range out {
		fmt.Print(string(payload))
	}
	stats := layer.Stats()
	logger.WithField("received", stats.FramesReceived).
		WithField("dropped", stats.FramesDropped).
		WithField("corrected", stats.ParityCorrections).
		Info("link closed")
}

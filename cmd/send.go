package cmd

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkuran/framelink/backends"
	"github.com/mkuran/framelink/framelink"
	"github.com/mkuran/framelink/log"
)

var sendCmd = &cobra.Command{
	Use:   "send [message...]",
	Short: "Chunk, encode, frame and transmit a message",
	Long: `Connects to the peer, splits the message into chunks, protects each
chunk with the configured codec and transmits one frame per chunk. With no
arguments, lines are read from stdin and sent one payload per line.`,
	Run: send,
}

func init() {
	rootCmd.AddCommand(sendCmd)
}

func send(cmd *cobra.Command, args []string) {
	logger := log.NewLogger("send")
	config := framelink.ConfigFromViper()
	backend, err := backends.NewBackend(config.Backend, config.Addr)
	if err != nil {
		logger.WithField("error", err).Fatal("cannot create backend")
	}
	link, err := backend.Dial()
	if err != nil {
		logger.WithField("error", err).Fatal("cannot dial peer")
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

	if len(args) > 0 {
		if err := layer.Send([]byte(strings.Join(args, " "))); err != nil {
			logger.WithField("error", err).Fatal("send failed")
		}
		stats := layer.Stats()
		logger.WithField("frames", stats.FramesSent).Info("done")
		return
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		text, err := reader.ReadString('\n')
		if len(text) > 0 {
			if err := layer.Send([]byte(text)); err != nil {
				logger.WithField("error", err).Fatal("send failed")
			}
		}
		if err != nil {
			return
		}
	}
}

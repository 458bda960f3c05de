package main

import (
	"fmt"
	"io"
	"net"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jcorbin/tuneshell/internal/flushio"
	"github.com/jcorbin/tuneshell/internal/host"
)

func (a *app) serveCmd() *cobra.Command {
	var listen, transcript string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sessions over TCP, one client at a time",
		Long: `Listen for TCP connections, as from telnet or a serial bridge, and run one
session per connection. Clients are served one at a time; tunables keep
their values across sessions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen == "" {
				listen = a.cfg.Listen
			}

			var tw flushio.WriteFlusher
			if transcript != "" {
				f, err := os.OpenFile(transcript, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("transcript: %w", err)
				}
				defer f.Close()
				tw = flushio.NewWriteFlusher(f)
				defer tw.Flush()
			}

			ln, err := net.Listen("tcp", listen)
			if err != nil {
				return err
			}

			reg := a.newRegistry()
			return host.Serve(cmd.Context(), ln, a.log, func(conn net.Conn) *host.Session {
				var out io.Writer = conn
				if tw != nil {
					out = flushio.Mirror(flushio.NewWriteFlusher(conn), tw, func(err error) {
						a.log.Warn("transcript stopped", zap.Error(err))
					})
				}
				sess := host.NewSession(out, a.log, a.editorOptions(reg)...)
				sess.Editor.RegisterBuiltins()
				return sess
			})
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "TCP address to listen on (default from config)")
	cmd.Flags().StringVar(&transcript, "transcript", "", "append session output to this file")
	return cmd
}

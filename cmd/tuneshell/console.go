package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jcorbin/tuneshell/internal/host"
)

func (a *app) consoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Run a session on this terminal",
		Long: `Run a session on standard input and output. A terminal is switched to
raw mode so every key reaches the editor; Ctrl-C or Ctrl-D ends the session.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, out := cmd.InOrStdin(), cmd.OutOrStdout()
			if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				state, err := term.MakeRaw(int(f.Fd()))
				if err != nil {
					return fmt.Errorf("raw mode: %w", err)
				}
				defer term.Restore(int(f.Fd()), state)
			}

			sess := host.NewSession(out, a.log, a.editorOptions(a.newRegistry())...)
			sess.Editor.RegisterBuiltins()
			err := sess.Run(cmd.Context(), interruptReader{in})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

// interruptReader ends input at the first ^C or ^D, which a raw terminal
// delivers as plain bytes.
type interruptReader struct{ r io.Reader }

func (ir interruptReader) Read(p []byte) (int, error) {
	n, err := ir.r.Read(p)
	if i := bytes.IndexAny(p[:n], "\x03\x04"); i >= 0 {
		return i, io.EOF
	}
	return n, err
}

func (ir interruptReader) Close() error {
	if cl, ok := ir.r.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jcorbin/tuneshell/internal/fileinput"
)

func (a *app) execCmd() *cobra.Command {
	var keepGoing bool
	cmd := &cobra.Command{
		Use:   "exec [FILE...]",
		Short: "Run command lines from files",
		Long: `Run each line of the given files, or of standard input when none are
given or a file is "-", as a command line. Blank lines and lines starting
with # are skipped. Responses go to standard output; failures are reported
with their file and line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := fileinput.Input{}
			for _, name := range args {
				if name == "-" {
					in.Queue = append(in.Queue, cmd.InOrStdin())
					continue
				}
				f, err := os.Open(name)
				if err != nil {
					in.Close()
					return err
				}
				in.Queue = append(in.Queue, f)
			}
			if len(in.Queue) == 0 {
				in.Queue = append(in.Queue, cmd.InOrStdin())
			}
			defer in.Close()
			return a.runScript(&in, cmd.OutOrStdout(), cmd.ErrOrStderr(), keepGoing)
		},
	}
	cmd.Flags().BoolVarP(&keepGoing, "keep-going", "k", false, "continue past failed lines")
	return cmd
}

func (a *app) runScript(in *fileinput.Input, out, errOut io.Writer, keepGoing bool) error {
	reg := a.newRegistry()
	failed := 0
	for {
		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return err
		}

		text := strings.TrimSpace(line.Text)
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		ok, resp := reg.Process(text)
		if !ok {
			failed++
			a.log.Debug("line failed", zap.Stringer("at", line.Location), zap.String("line", text))
			fmt.Fprintf(errOut, "%v: %s\n", line.Location, resp)
			if !keepGoing {
				return fmt.Errorf("%v: %s", line.Location, text)
			}
			continue
		}
		if resp != "" {
			fmt.Fprintln(out, resp)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d lines failed", failed)
	}
	return nil
}

// Command tuneshell hosts a tuneshell Editor on the local terminal, on a TCP
// socket, or over script files, with a handful of demo commands and tunable
// variables.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jcorbin/tuneshell"
	"github.com/jcorbin/tuneshell/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		stop()
		os.Exit(1)
	}
}

type app struct {
	configPath string
	verbose    bool

	cfg  *config.Config
	log  *zap.Logger
	vars *tunables
}

func newRootCmd() *cobra.Command {
	var a app
	root := &cobra.Command{
		Use:   "tuneshell",
		Short: "Interactive shell for tuning live variables",
		Long: `tuneshell runs a line editing command shell like the ones built into
device firmware: type a command name and its arguments, or a variable name
followed by an operator and a value, e.g. "speed mult 1.5".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error { return a.setup(cmd) },
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML settings file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(
		a.consoleCmd(),
		a.serveCmd(),
		a.execCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	if a.verbose {
		level = zapcore.DebugLevel
	}

	enc := zap.NewDevelopmentEncoderConfig()
	a.cfg = cfg
	a.log = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(cmd.ErrOrStderr()),
		level,
	)).Named(cmd.Name())
	a.vars = newTunables(cfg.Vars)
	return nil
}

// newRegistry builds a registry holding the demo commands and a math
// command for each tunable.
func (a *app) newRegistry() *tuneshell.Registry {
	reg := tuneshell.NewRegistry(tuneshell.WithLogger(a.log))
	registerDemo(reg, a.vars)
	a.vars.register(reg)
	return reg
}

func (a *app) editorOptions(reg *tuneshell.Registry) []tuneshell.EditorOption {
	return []tuneshell.EditorOption{
		tuneshell.WithRegistry(reg),
		tuneshell.WithPrompt(a.cfg.Prompt),
		tuneshell.WithBanner(a.cfg.Banner),
		tuneshell.WithHistory(a.cfg.History.Size, a.cfg.History.BlockOnEmpty),
	}
}

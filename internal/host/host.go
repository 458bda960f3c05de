// Package host runs tuneshell editors the way a firmware main loop would:
// one goroutine blocks reading the transport and feeds a Pipe, while the
// pump loop wakes on input and lets the Editor handle it.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jcorbin/tuneshell"
	"github.com/jcorbin/tuneshell/internal/panicerr"
)

// Session is one editing session bound to a transport.
type Session struct {
	ID     string
	Editor *tuneshell.Editor
	Pipe   *tuneshell.Pipe
	Log    *zap.Logger
}

// NewSession creates a session writing to w. Its logger, also given to the
// Editor, carries the session id.
func NewSession(w io.Writer, log *zap.Logger, opts ...tuneshell.EditorOption) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.NewString()
	log = log.With(zap.String("session", id))
	pipe := tuneshell.NewPipe(w)
	opts = append(opts[:len(opts):len(opts)], tuneshell.WithLogger(log))
	return &Session{
		ID:     id,
		Editor: tuneshell.New(pipe, opts...),
		Pipe:   pipe,
		Log:    log,
	}
}

// Run starts the editor and pumps input read from r until r ends, ctx is
// done, or the session's stream fails. If r is an io.Closer it is closed
// when ctx is done, to unblock the reader.
//
// Closing does not interrupt a Read already blocked on a terminal file, so
// once ctx is done Run returns without waiting for the reader goroutine;
// it exits whenever its Read does.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	if err := s.Editor.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	readErr := make(chan error, 1)
	go func() {
		_, err := s.Pipe.ReadFrom(r)
		readErr <- err
	}()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		if cl, ok := r.(io.Closer); ok {
			cl.Close()
		}
		return nil
	})

	g.Go(func() error {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-s.Pipe.Ready():
				if err := s.Editor.Pump(); err != nil {
					return err
				}
			case <-s.Pipe.Done():
				return s.Editor.Pump()
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}

	// the pump only ends cleanly once input is closed, so the reader is done
	if err := <-readErr; err != nil {
		return fmt.Errorf("read: %w", err)
	}
	return nil
}

// Serve accepts connections from ln one at a time, running a session
// created by start for each until it ends. Returns nil once ctx is done.
func Serve(ctx context.Context, ln net.Listener, log *zap.Logger, start func(conn net.Conn) *Session) error {
	if log == nil {
		log = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	log.Info("serving", zap.Stringer("addr", ln.Addr()))
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		sess := start(conn)
		sess.Log.Info("session started", zap.Stringer("remote", conn.RemoteAddr()))
		err = panicerr.Recover("session "+sess.ID, func() error {
			return sess.Run(ctx, conn)
		})
		conn.Close()

		logSessionEnd(sess.Log, err)
		if ctx.Err() != nil {
			return nil
		}
	}
}

func logSessionEnd(log *zap.Logger, err error) {
	switch {
	case err == nil || errors.Is(err, context.Canceled):
		log.Info("session ended")
	case panicerr.IsPanic(err):
		log.Error("session panicked",
			zap.Error(err),
			zap.String("stack", panicerr.PanicStack(err)))
	case panicerr.IsExit(err):
		log.Warn("session goroutine exited", zap.Error(err))
	default:
		log.Warn("session failed", zap.Error(err))
	}
}

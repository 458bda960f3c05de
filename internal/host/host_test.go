package host_test

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jcorbin/tuneshell"
	"github.com/jcorbin/tuneshell/internal/host"
	"github.com/jcorbin/tuneshell/internal/logio"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRegistry(speed *float64) *tuneshell.Registry {
	reg := tuneshell.NewRegistry()
	reg.RegisterMath("speed", tuneshell.Bind(speed), nil, "motor speed")
	return reg
}

func Test_Session_Run(t *testing.T) {
	speed := 10.0
	var out bytes.Buffer
	sess := host.NewSession(&out, logio.NewLogger(t.Logf),
		tuneshell.WithRegistry(newRegistry(&speed)),
		tuneshell.WithPrompt("> "))
	require.NotEmpty(t, sess.ID)

	err := sess.Run(context.Background(), strings.NewReader("speed add 5\r\nspeed\r\n"))
	require.NoError(t, err)
	assert.Equal(t, 15.0, speed)
	assert.Equal(t,
		"> speed add 5\r\nspeed = 15\r\n> speed\r\nspeed = 15\r\n> ",
		out.String())
	assert.Equal(t, tuneshell.Both, sess.Editor.LineEnding())
}

func Test_Session_Run_cancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	sess := host.NewSession(&out, logio.NewLogger(t.Logf))

	ctx, cancel := context.WithCancel(context.Background())
	errch := make(chan error, 1)
	go func() { errch <- sess.Run(ctx, pr) }()

	_, err := pw.Write([]byte("he"))
	require.NoError(t, err)
	cancel()

	select {
	case err := <-errch:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("session did not stop")
	}
}

// stuckReader blocks in Read, ignoring Close, until released, as a read of
// a blocking terminal file does.
type stuckReader struct{ release chan struct{} }

func (sr stuckReader) Read([]byte) (int, error) {
	<-sr.release
	return 0, io.EOF
}

func (sr stuckReader) Close() error { return nil }

func Test_Session_Run_stuckReader(t *testing.T) {
	sr := stuckReader{make(chan struct{})}
	defer close(sr.release)

	var out bytes.Buffer
	sess := host.NewSession(&out, logio.NewLogger(t.Logf))

	ctx, cancel := context.WithCancel(context.Background())
	errch := make(chan error, 1)
	go func() { errch <- sess.Run(ctx, sr) }()
	cancel()

	select {
	case err := <-errch:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("session waited on a blocked reader")
	}
}

func Test_Session_Run_readError(t *testing.T) {
	var out bytes.Buffer
	sess := host.NewSession(&out, logio.NewLogger(t.Logf))
	boom := errors.New("line noise")
	err := sess.Run(context.Background(), io.MultiReader(strings.NewReader("ab"), errReader{boom}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "ab", sess.Editor.Line(), "expected input read before the error to be handled")
}

type errReader struct{ err error }

func (er errReader) Read([]byte) (int, error) { return 0, er.err }

func Test_Serve(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	speed := 10.0
	reg := newRegistry(&speed)
	log := logio.NewLogger(t.Logf)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	served := make(chan error, 1)
	go func() {
		served <- host.Serve(ctx, ln, log, func(conn net.Conn) *host.Session {
			return host.NewSession(conn, log, tuneshell.WithRegistry(reg))
		})
	}()

	for i, step := range []struct {
		send, expect string
	}{
		{"speed mult 3\r\n", "speed = 30"},
		{"speed sub 1\r\n", "speed = 29"},
	} {
		conn, err := net.Dial("tcp", ln.Addr().String())
		require.NoError(t, err, "dial %v", i)
		require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
		_, err = conn.Write([]byte(step.send))
		require.NoError(t, err)
		expectLine(t, bufio.NewReader(conn), step.expect)
		require.NoError(t, conn.Close())
	}

	cancel()
	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
	assert.Equal(t, 29.0, speed)
}

func expectLine(t *testing.T, r *bufio.Reader, want string) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err, "reading for %q", want)
		if strings.TrimRight(line, "\r\n") == want {
			return
		}
	}
}

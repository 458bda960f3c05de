package tuneshell_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/tuneshell"
)

// plainWriter hides any buffer methods, so that Pipe must buffer for it.
type plainWriter struct{ sb strings.Builder }

func (pw *plainWriter) Write(p []byte) (int, error) { return pw.sb.Write(p) }

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func Test_Pipe(t *testing.T) {
	var out plainWriter
	p := tuneshell.NewPipe(&out)

	assert.Equal(t, 0, p.Available())
	_, err := p.ReadByte()
	assert.ErrorIs(t, err, io.EOF)
	assert.False(t, isClosed(p.Ready()))

	p.Feed([]byte("ab"))
	p.Feed(nil)
	p.Feed([]byte("c"))
	assert.Equal(t, 3, p.Available())
	assert.True(t, isClosed(p.Ready()), "expected a ready signal")
	assert.False(t, isClosed(p.Ready()), "expected signals to coalesce")

	b, err := p.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), b)

	p.CloseInput()
	assert.False(t, isClosed(p.Done()), "expected done to wait for queued input")
	for _, want := range []byte("bc") {
		b, err := p.ReadByte()
		require.NoError(t, err)
		assert.Equal(t, want, b)
	}
	assert.True(t, isClosed(p.Done()))
	p.CloseInput()

	_, err = p.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "", out.sb.String(), "expected output to be buffered")
	require.NoError(t, p.Flush())
	assert.Equal(t, "hello", out.sb.String())
}

func Test_Pipe_ReadFrom(t *testing.T) {
	p := tuneshell.NewPipe(nil)
	n, err := p.ReadFrom(strings.NewReader("speed\r\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.Equal(t, 7, p.Available())
	assert.False(t, isClosed(p.Done()))

	for p.Available() > 0 {
		_, err := p.ReadByte()
		require.NoError(t, err)
	}
	assert.True(t, isClosed(p.Done()))

	p = tuneshell.NewPipe(nil)
	boom := errors.New("boom")
	_, err = p.ReadFrom(io.MultiReader(strings.NewReader("x"), &failReader{boom}))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, p.Available())
}

type failReader struct{ err error }

func (fr *failReader) Read([]byte) (int, error) { return 0, fr.err }

func Test_Pipe_Editor(t *testing.T) {
	var out plainWriter
	p := tuneshell.NewPipe(&out)
	ed := tuneshell.New(p, tuneshell.WithPrompt("> "))
	ed.Registry().Register("ping", "", func(tuneshell.Args) string { return "pong" }, "")

	require.NoError(t, ed.Start())
	p.Feed([]byte("ping\r"))
	require.NoError(t, ed.Pump())
	assert.Equal(t, "> ping\r\npong\r\n> ", out.sb.String())
}

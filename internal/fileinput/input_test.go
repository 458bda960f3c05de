package fileinput_test

import (
	"io"
	"strings"
	"testing"

	"github.com/jcorbin/tuneshell/internal/fileinput"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedReader struct {
	io.Reader
	name   string
	closed bool
}

func (nr *namedReader) Name() string { return nr.name }
func (nr *namedReader) Close() error { nr.closed = true; return nil }

func named(name, content string) *namedReader {
	return &namedReader{Reader: strings.NewReader(content), name: name}
}

func Test_Input(t *testing.T) {
	a := named("a.tsh", "speed\r\nspeed add 5\n")
	b := named("b.tsh", "\nstatus")
	in := fileinput.Input{Queue: []io.Reader{a, b}}

	var got []string
	for {
		line, err := in.ReadLine()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, line.String())
	}
	assert.Equal(t, []string{
		`a.tsh:1 "speed"`,
		`a.tsh:2 "speed add 5"`,
		`b.tsh:1 ""`,
		`b.tsh:2 "status"`,
	}, got)
	assert.True(t, a.closed, "expected a to be closed")
	assert.True(t, b.closed, "expected b to be closed")

	_, err := in.ReadLine()
	assert.Equal(t, io.EOF, err, "expected EOF to stick")
}

func Test_Input_Close(t *testing.T) {
	a := named("a", "one\ntwo\n")
	b := named("b", "three\n")
	in := fileinput.Input{Queue: []io.Reader{a, b}}
	line, err := in.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "one", line.Text)
	require.NoError(t, in.Close())
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}

func Test_Input_unnamed(t *testing.T) {
	in := fileinput.Input{Queue: []io.Reader{strings.NewReader("x")}}
	line, err := in.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "<unnamed *strings.Reader>:1", line.Location.String())
}

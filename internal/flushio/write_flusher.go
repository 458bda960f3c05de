// Package flushio batches terminal output: an editor writes echo a byte
// at a time, and flushes once per batch of handled input.
package flushio

import (
	"bufio"
	"bytes"
	"io"
	"strings"
)

// WriteFlusher is an io.Writer whose output may be held until Flush.
type WriteFlusher interface {
	io.Writer
	Flush() error
}

// BufferSize is the output buffer used for writers that need one; it holds
// a redrawn line along with a typical response.
const BufferSize = 512

// Discard is a WriteFlusher that drops everything.
var Discard WriteFlusher = passThrough{io.Discard}

// NewWriteFlusher returns w if it already flushes, and Discard for nil or
// io.Discard. In memory buffers are written through as is; any other
// writer, like a connection or terminal, gets a BufferSize bufio.Writer.
func NewWriteFlusher(w io.Writer) WriteFlusher {
	switch w := w.(type) {
	case nil:
		return Discard
	case WriteFlusher:
		return w
	case *bytes.Buffer, *strings.Builder:
		return passThrough{w}
	}
	if w == io.Discard {
		return Discard
	}
	return bufio.NewWriterSize(w, BufferSize)
}

type passThrough struct{ io.Writer }

func (passThrough) Flush() error { return nil }

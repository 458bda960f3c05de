package tuneshell

import (
	"io"
	"sync"

	"github.com/jcorbin/tuneshell/internal/flushio"
)

// Stream is the byte duplex an Editor owns for the life of a session.
// Available and ReadByte must not block: the Editor only reads bytes that
// Available reports.
type Stream interface {
	// Available returns how many bytes ReadByte can return without waiting.
	Available() int
	io.ByteReader
	io.Writer
	Flush() error
}

// Pipe is a Stream fed from another goroutine, typically one blocked
// reading a terminal or connection, with output buffered until Flush.
type Pipe struct {
	out flushio.WriteFlusher

	mu     sync.Mutex
	buf    []byte
	ready  chan struct{}
	done   chan struct{}
	closed bool
}

// NewPipe creates a pipe writing its output to w, which should be a
// flushio.WriteFlusher if it needs flushing beyond Flush's own buffering.
func NewPipe(w io.Writer) *Pipe {
	return &Pipe{
		out:   flushio.NewWriteFlusher(w),
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Feed queues p as input, waking any receiver of Ready.
func (p *Pipe) Feed(b []byte) {
	if len(b) == 0 {
		return
	}
	p.mu.Lock()
	p.buf = append(p.buf, b...)
	p.mu.Unlock()
	select {
	case p.ready <- struct{}{}:
	default:
	}
}

// ReadFrom feeds everything read from r until it fails, then closes the
// pipe's input. A clean end of input returns a nil error.
func (p *Pipe) ReadFrom(r io.Reader) (n int64, err error) {
	defer p.CloseInput()
	buf := make([]byte, 256)
	for {
		m, rerr := r.Read(buf)
		if m > 0 {
			n += int64(m)
			p.Feed(buf[:m])
		}
		if rerr == io.EOF {
			return n, nil
		} else if rerr != nil {
			return n, rerr
		}
	}
}

// CloseInput marks the end of input; Done is closed once every fed byte
// has been read.
func (p *Pipe) CloseInput() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		p.checkDone()
	}
}

// Ready receives a value after input is fed.
func (p *Pipe) Ready() <-chan struct{} { return p.ready }

// Done is closed when input has ended and been fully read.
func (p *Pipe) Done() <-chan struct{} { return p.done }

// Available returns the number of queued input bytes.
func (p *Pipe) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.buf)
}

// ReadByte returns the next queued byte, or io.EOF if none is queued.
func (p *Pipe) ReadByte() (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.buf) == 0 {
		return 0, io.EOF
	}
	b := p.buf[0]
	p.buf = p.buf[1:]
	if len(p.buf) == 0 {
		p.buf = nil
		p.checkDone()
	}
	return b, nil
}

func (p *Pipe) checkDone() {
	if p.closed && len(p.buf) == 0 {
		select {
		case <-p.done:
		default:
			close(p.done)
		}
	}
}

// Write buffers output bytes.
func (p *Pipe) Write(b []byte) (int, error) { return p.out.Write(b) }

// Flush writes any buffered output.
func (p *Pipe) Flush() error { return p.out.Flush() }

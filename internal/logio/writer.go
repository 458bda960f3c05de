package logio

import (
	"bytes"
	"sync"

	"go.uber.org/zap/zapcore"
)

// Writer is a zapcore.WriteSyncer that hands each completed line to Logf,
// such as testing.T.Logf, without its line ending. A partial line is held
// until the rest of it arrives or Sync is called.
type Writer struct {
	Logf func(string, ...interface{})

	mu      sync.Mutex
	partial []byte
}

var _ zapcore.WriteSyncer = (*Writer)(nil)

// Write is safe to call from multiple goroutines.
func (lw *Writer) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	rest := p
	for {
		line, after, found := bytes.Cut(rest, []byte{'\n'})
		if !found {
			lw.partial = append(lw.partial, rest...)
			return len(p), nil
		}
		lw.emit(line)
		rest = after
	}
}

// Sync passes on any partial line.
func (lw *Writer) Sync() error {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if len(lw.partial) > 0 {
		lw.emit(nil)
	}
	return nil
}

func (lw *Writer) emit(line []byte) {
	if len(lw.partial) > 0 {
		lw.partial = append(lw.partial, line...)
		line = lw.partial
	}
	lw.Logf("%s", bytes.TrimSuffix(line, []byte{'\r'}))
	lw.partial = lw.partial[:0]
}

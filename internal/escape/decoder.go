// Package escape decodes the minimal set of ANSI CSI sequences a dumb
// terminal sends for its cursor keys: ESC [ A through ESC [ D.
package escape

import "fmt"

// ESC starts every sequence recognized by Decoder.
const ESC = 0x1b

// Action names a key bound to a CSI final letter.
type Action byte

// Cursor key actions, valued by their CSI final letter.
const (
	Up    Action = 'A'
	Down  Action = 'B'
	Right Action = 'C'
	Left  Action = 'D'
)

func (a Action) String() string {
	switch a {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Right:
		return "Right"
	case Left:
		return "Left"
	}
	return fmt.Sprintf("Action(%q)", byte(a))
}

// Decoder tracks a single in-flight escape sequence.
// The zero value is idle with no actions bound.
type Decoder struct {
	buf      [2]byte
	n        int
	handlers map[Action]func()
}

// Bind sets the handler invoked when the sequence for a completes; a nil
// handler unbinds it.
func (d *Decoder) Bind(a Action, handler func()) {
	if handler == nil {
		delete(d.handlers, a)
		return
	}
	if d.handlers == nil {
		d.handlers = make(map[Action]func(), 4)
	}
	d.handlers[a] = handler
}

// Started returns true while a sequence is being accumulated.
func (d *Decoder) Started() bool { return d.n > 0 }

// Reset drops any in-flight sequence.
func (d *Decoder) Reset() { d.n = 0 }

// Feed advances the decoder by one byte.
//
// Any bytes accumulated by a sequence that b aborts or restarts are returned
// as abandoned; the returned slice is only valid until the next call.
// Consumed is false when b does not belong to any sequence and should be
// handled by the caller as ordinary input.
func (d *Decoder) Feed(b byte) (abandoned []byte, consumed bool) {
	if b == ESC {
		abandoned = d.take()
		d.buf[0], d.n = ESC, 1
		return abandoned, true
	}
	switch d.n {
	case 1:
		if b == '[' {
			d.buf[1], d.n = b, 2
			return nil, true
		}
	case 2:
		if 'A' <= b && b <= 'Z' {
			d.n = 0
			if handler := d.handlers[Action(b)]; handler != nil {
				handler()
			}
			return nil, true
		}
	}
	return d.take(), false
}

func (d *Decoder) take() []byte {
	if d.n == 0 {
		return nil
	}
	seq := d.buf[:d.n]
	d.n = 0
	return seq
}

package tuneshell

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jcorbin/tuneshell/internal/escape"
	"github.com/jcorbin/tuneshell/internal/history"
	"github.com/jcorbin/tuneshell/internal/runeio"
)

// Input bytes with editing meaning.
const (
	keyBackspace = 0x08
	keyTab       = 0x09
	keyLF        = 0x0a
	keyCR        = 0x0d
	keyDelete    = 0x7f
)

var crlf = []byte("\r\n")

// LineEnding is the byte sequence a terminal sends to submit a line.
type LineEnding int

// Line endings; an Editor starts out Unknown and identifies the terminal's
// ending from the first line submitted.
const (
	Unknown LineEnding = iota
	LineFeed
	CarriageReturn
	Both
)

func (le LineEnding) String() string {
	switch le {
	case Unknown:
		return "Unknown"
	case LineFeed:
		return "LineFeed"
	case CarriageReturn:
		return "CarriageReturn"
	case Both:
		return "Both"
	}
	return fmt.Sprintf("LineEnding(%d)", int(le))
}

// Editor is a single line editing session over a Stream: it echoes typed
// bytes, handles backspace, cursor keys, history recall and tab completion,
// and dispatches each submitted line to its Registry.
//
// An Editor never blocks; the host calls Pump whenever its Stream may have
// input, or HandleByte for each byte it reads itself.
type Editor struct {
	stream Stream
	reg    *Registry
	log    *zap.Logger
	hist   *history.Ring
	dec    escape.Decoder

	prompt string
	banner string

	line   []byte
	cursor int

	ending      LineEnding
	identifying bool // the last byte was the first CR ever seen

	err error
}

// New creates an Editor owning stream.
func New(stream Stream, opts ...EditorOption) *Editor {
	ed := &Editor{
		stream: stream,
		log:    zap.NewNop(),
	}
	ed.apply(opts...)
	if ed.reg == nil {
		ed.reg = NewRegistry(WithLogger(ed.log))
	}
	ed.dec.Bind(escape.Up, ed.historyUp)
	ed.dec.Bind(escape.Down, ed.historyDown)
	ed.dec.Bind(escape.Left, ed.cursorLeft)
	ed.dec.Bind(escape.Right, ed.cursorRight)
	return ed
}

func (ed *Editor) apply(opts ...EditorOption) {
	for _, opt := range defaultEditorOptions {
		opt.applyEditor(ed)
	}
	for _, opt := range opts {
		if opt != nil {
			opt.applyEditor(ed)
		}
	}
}

// Registry returns the registry lines are dispatched to.
func (ed *Editor) Registry() *Registry { return ed.reg }

// Line returns the text being edited.
func (ed *Editor) Line() string { return string(ed.line) }

// Cursor returns the cursor offset into Line, from 0 to len(Line()).
func (ed *Editor) Cursor() int { return ed.cursor }

// LineEnding returns the identified line ending of the terminal.
func (ed *Editor) LineEnding() LineEnding { return ed.ending }

// History returns the recorded command lines, oldest first.
func (ed *Editor) History() []string { return ed.hist.Entries() }

// Err returns the first stream error encountered; once set, the Editor
// writes nothing more.
func (ed *Editor) Err() error { return ed.err }

// Start writes any banner and the first prompt.
func (ed *Editor) Start() error {
	if ed.banner != "" {
		ed.writeText(ed.banner)
		ed.write(crlf)
	}
	ed.writeString(ed.prompt)
	return ed.flush()
}

// Pump handles every byte the stream has available, then flushes output.
func (ed *Editor) Pump() error {
	for ed.err == nil && ed.stream.Available() > 0 {
		b, err := ed.stream.ReadByte()
		if err != nil {
			ed.err = err
			break
		}
		ed.handle(b)
	}
	return ed.flush()
}

// HandleByte handles one input byte and flushes output.
func (ed *Editor) HandleByte(b byte) error {
	if ed.err == nil {
		ed.handle(b)
	}
	return ed.flush()
}

func (ed *Editor) handle(b byte) {
	if ed.identifying {
		ed.identifying = false
		if b == keyLF {
			ed.identify(Both)
			return
		}
		ed.identify(CarriageReturn)
	}

	if b == escape.ESC || ed.dec.Started() {
		abandoned, consumed := ed.dec.Feed(b)
		for _, ab := range abandoned {
			if isPrintable(ab) {
				ed.insert(ab)
			}
		}
		if consumed {
			return
		}
	}

	switch b {
	case keyBackspace, keyDelete:
		ed.backspace()
	case keyTab:
		ed.complete()
	case keyCR:
		ed.carriageReturn()
	case keyLF:
		ed.lineFeed()
	default:
		if isPrintable(b) {
			ed.insert(b)
		} else {
			ed.log.Debug("ignored input", zap.String("byte", runeio.ByteName(b)))
		}
	}
}

func isPrintable(b byte) bool { return 0x20 <= b && b < 0x7f }

func (ed *Editor) identify(le LineEnding) {
	ed.ending = le
	ed.log.Info("identified line ending", zap.Stringer("ending", le))
}

func (ed *Editor) carriageReturn() {
	switch ed.ending {
	case Unknown:
		ed.identifying = true
		fallthrough
	case CarriageReturn:
		ed.write(crlf)
		ed.submit()
	case Both:
		ed.write(crlf)
	}
}

func (ed *Editor) lineFeed() {
	switch ed.ending {
	case Unknown:
		ed.identify(LineFeed)
		ed.submit()
	case LineFeed, Both:
		ed.submit()
	}
}

func (ed *Editor) submit() {
	line := string(ed.line)
	ed.line = ed.line[:0]
	ed.cursor = 0

	if strings.TrimSpace(line) != "" {
		ok, resp := ed.reg.Process(line)
		ed.log.Debug("processed", zap.String("line", line), zap.Bool("ok", ok))
		ed.hist.Add(line)
		if resp != "" {
			ed.writeText(resp)
			ed.write(crlf)
		}
	}
	ed.hist.Last()
	ed.writeString(ed.prompt)
}

func (ed *Editor) insert(b byte) {
	if ed.cursor == len(ed.line) {
		ed.line = append(ed.line, b)
		ed.cursor++
		ed.write([]byte{b})
		return
	}
	ed.line = append(ed.line, 0)
	copy(ed.line[ed.cursor+1:], ed.line[ed.cursor:])
	ed.line[ed.cursor] = b
	ed.write(ed.line[ed.cursor:])
	ed.cursor++
	ed.moveLeft(len(ed.line) - ed.cursor)
}

func (ed *Editor) backspace() {
	if ed.cursor == 0 {
		return
	}
	ed.line = append(ed.line[:ed.cursor-1], ed.line[ed.cursor:]...)
	ed.cursor--
	ed.redraw()
}

func (ed *Editor) complete() {
	descriptions, names := ed.reg.TabComplete(string(ed.line))
	ed.log.Debug("complete", zap.String("line", string(ed.line)), zap.Strings("names", names))
	switch len(names) {
	case 0:
		return
	case 1:
		ed.write(crlf)
		ed.writeString(names[0] + " : " + descriptions[0])
		ed.write(crlf)
		ed.setLine(names[0])
	default:
		ed.write(crlf)
		for i, name := range names {
			ed.writeString(name + ": " + descriptions[i])
			ed.write(crlf)
		}
		ed.setLine(CommonPrefix(names))
	}
}

func (ed *Editor) historyUp()   { ed.setLine(ed.hist.Up()) }
func (ed *Editor) historyDown() { ed.setLine(ed.hist.Down()) }

func (ed *Editor) cursorLeft() {
	if ed.cursor > 0 {
		ed.cursor--
		ed.writeString("\x1b[D")
	}
}

func (ed *Editor) cursorRight() {
	if ed.cursor < len(ed.line) {
		ed.cursor++
		ed.writeString("\x1b[C")
	}
}

// setLine replaces the line, leaving the cursor at its end.
func (ed *Editor) setLine(s string) {
	ed.line = append(ed.line[:0], s...)
	ed.cursor = len(ed.line)
	ed.redraw()
}

// redraw rewrites the prompt and line over the current terminal line, then
// moves the terminal cursor back to the edit cursor.
func (ed *Editor) redraw() {
	ed.writeString("\r\x1b[K")
	ed.writeString(ed.prompt)
	ed.write(ed.line)
	ed.moveLeft(len(ed.line) - ed.cursor)
}

func (ed *Editor) moveLeft(n int) {
	if n > 0 {
		ed.writeString("\x1b[" + strconv.Itoa(n) + "D")
	}
}

func (ed *Editor) write(p []byte) {
	if ed.err == nil && len(p) > 0 {
		_, ed.err = ed.stream.Write(p)
	}
}

func (ed *Editor) writeString(s string) {
	if ed.err == nil && s != "" {
		_, ed.err = ed.stream.Write([]byte(s))
	}
}

// writeText writes response text, which may hold bare line feeds.
func (ed *Editor) writeText(s string) {
	if ed.err == nil {
		_, ed.err = runeio.WriteTerminalString(ed.stream, s)
	}
}

func (ed *Editor) flush() error {
	if ferr := ed.stream.Flush(); ed.err == nil {
		ed.err = ferr
	}
	if ed.err != nil {
		return fmt.Errorf("tuneshell: %w", ed.err)
	}
	return nil
}

package runeio

import (
	"io"
	"unicode/utf8"
)

// AppendTerminal appends s to dst in the form a raw mode terminal needs,
// since it does no output translation of its own:
//   - a line feed not already preceded by a carriage return gains one
//   - NEL becomes \r\n
//   - other C1 controls take their 7-bit escaped form, e.g. "\x9b" becomes
//     "\x1b[" for CSI
//   - everything else is written as UTF-8
func AppendTerminal(dst []byte, s string) []byte {
	prev := rune(-1)
	for _, r := range s {
		switch {
		case r == '\n':
			if prev != '\r' {
				dst = append(dst, '\r')
			}
			dst = append(dst, '\n')
		case r == 0x85:
			dst = append(dst, '\r', '\n')
		case 0x80 <= r && r <= 0x9f:
			dst = append(dst, 0x1b, byte(r^0xc0))
		default:
			dst = utf8.AppendRune(dst, r)
		}
		prev = r
	}
	return dst
}

// WriteTerminalString writes s, translated by AppendTerminal, to w in a
// single Write call.
func WriteTerminalString(w io.Writer, s string) (n int, err error) {
	return w.Write(AppendTerminal(make([]byte, 0, len(s)+8), s))
}

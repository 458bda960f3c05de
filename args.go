package tuneshell

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ArgKind is a signature type code, naming the kind of one argument.
type ArgKind byte

// Signature type codes. KindAbsent is never written in a signature; it is
// the kind of the Absent argument.
const (
	KindAbsent   ArgKind = 0
	KindDouble   ArgKind = 'd'
	KindUnsigned ArgKind = 'u'
	KindSigned   ArgKind = 'i'
	KindString   ArgKind = 's'

	// OptionalMark is not an argument: every kind after it in a signature
	// is optional.
	OptionalMark = 'o'
)

func (k ArgKind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindDouble:
		return "double"
	case KindUnsigned:
		return "unsigned"
	case KindSigned:
		return "signed"
	case KindString:
		return "string"
	}
	return fmt.Sprintf("ArgKind(%q)", byte(k))
}

func (k ArgKind) parseError() *Error {
	switch k {
	case KindDouble:
		return argError(InvalidDouble)
	case KindUnsigned:
		return argError(InvalidUnsignedInteger)
	case KindSigned:
		return argError(InvalidInteger)
	default:
		return argError(InvalidString)
	}
}

// Arg is one parsed command argument: a Double, Unsigned, Signed, Text, or
// the Absent value left by an optional argument that did not parse.
type Arg interface {
	Kind() ArgKind
	String() string
}

// Argument variants.
type (
	Double   float64
	Unsigned uint64
	Signed   int64
	Text     string
)

type absent struct{}

// Absent stands in for every optional argument from the first one that
// failed to parse onward.
var Absent Arg = absent{}

func (Double) Kind() ArgKind   { return KindDouble }
func (Unsigned) Kind() ArgKind { return KindUnsigned }
func (Signed) Kind() ArgKind   { return KindSigned }
func (Text) Kind() ArgKind     { return KindString }
func (absent) Kind() ArgKind   { return KindAbsent }

func (d Double) String() string   { return strconv.FormatFloat(float64(d), 'g', -1, 64) }
func (u Unsigned) String() string { return strconv.FormatUint(uint64(u), 10) }
func (i Signed) String() string   { return strconv.FormatInt(int64(i), 10) }
func (s Text) String() string     { return string(s) }
func (absent) String() string     { return "<absent>" }

// Args is the argument list passed to a command callback, one per kind in
// its signature.
type Args []Arg

// Present returns true if argument i exists and is not Absent.
func (args Args) Present(i int) bool {
	return i >= 0 && i < len(args) && args[i].Kind() != KindAbsent
}

// Double returns argument i if it is a Double.
func (args Args) Double(i int) (float64, bool) {
	if i >= 0 && i < len(args) {
		v, ok := args[i].(Double)
		return float64(v), ok
	}
	return 0, false
}

// Unsigned returns argument i if it is Unsigned.
func (args Args) Unsigned(i int) (uint64, bool) {
	if i >= 0 && i < len(args) {
		v, ok := args[i].(Unsigned)
		return uint64(v), ok
	}
	return 0, false
}

// Signed returns argument i if it is Signed.
func (args Args) Signed(i int) (int64, bool) {
	if i >= 0 && i < len(args) {
		v, ok := args[i].(Signed)
		return int64(v), ok
	}
	return 0, false
}

// Text returns argument i if it is Text.
func (args Args) Text(i int) (string, bool) {
	if i >= 0 && i < len(args) {
		v, ok := args[i].(Text)
		return string(v), ok
	}
	return "", false
}

func (args Args) String() string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = fmt.Sprintf("%v:%v", arg.Kind(), arg)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Signature is a string of type codes, one per argument, optionally
// containing an OptionalMark.
type Signature string

// Valid returns true if every code in sig is one of d, u, i, s or o.
func (sig Signature) Valid() bool {
	for i := 0; i < len(sig); i++ {
		switch sig[i] {
		case 'd', 'u', 'i', 's', OptionalMark:
		default:
			return false
		}
	}
	return true
}

// Arity returns the number of arguments sig produces.
func (sig Signature) Arity() int {
	return len(sig) - strings.Count(string(sig), string(rune(OptionalMark)))
}

var errInvalidSignature = errors.New("invalid signature")

// ParseArgs parses text into one argument per kind declared by sig.
//
// A required argument that fails to parse fails the whole parse. Once past
// an OptionalMark, the first failure instead yields Absent for that and
// every later argument. Text left after the last argument is ignored if
// sig has an OptionalMark, and is otherwise a TooManyArguments error.
func ParseArgs(sig Signature, text string) (Args, error) {
	if !sig.Valid() {
		return nil, fmt.Errorf("%w %q", errInvalidSignature, string(sig))
	}

	sc := argScanner{s: text}
	args := make(Args, 0, sig.Arity())
	optional, gave := false, false
	for i := 0; i < len(sig); i++ {
		kind := ArgKind(sig[i])
		if kind == OptionalMark {
			optional = true
			continue
		}
		if gave {
			args = append(args, Absent)
			continue
		}
		sc.skipSpace()
		arg, ok := sc.scan(kind)
		if ok {
			args = append(args, arg)
		} else if optional {
			gave = true
			args = append(args, Absent)
		} else {
			return nil, kind.parseError()
		}
	}

	if !optional {
		if sc.skipSpace(); sc.more() {
			return nil, argError(TooManyArguments)
		}
	}
	return args, nil
}

type argScanner struct {
	s string
	i int
}

func (sc *argScanner) more() bool { return sc.i < len(sc.s) }

func (sc *argScanner) rest() string { return sc.s[sc.i:] }

func (sc *argScanner) skipSpace() {
	for sc.i < len(sc.s) && isSpace(sc.s[sc.i]) {
		sc.i++
	}
}

// skipSeparator consumes one whitespace byte, if any.
func (sc *argScanner) skipSeparator() {
	if sc.i < len(sc.s) && isSpace(sc.s[sc.i]) {
		sc.i++
	}
}

func (sc *argScanner) scan(kind ArgKind) (Arg, bool) {
	switch kind {
	case KindDouble:
		if v, ok := sc.scanDouble(); ok {
			return Double(v), true
		}
	case KindUnsigned:
		if v, ok := sc.scanUnsigned(); ok {
			return Unsigned(v), true
		}
	case KindSigned:
		if v, ok := sc.scanSigned(); ok {
			return Signed(v), true
		}
	case KindString:
		if v, ok := sc.scanString(); ok {
			return Text(v), true
		}
	}
	return nil, false
}

// scanDouble parses the longest floating point prefix of the remaining
// text, leaving the scanner untouched on failure.
func (sc *argScanner) scanDouble() (float64, bool) {
	n := floatPrefix(sc.rest())
	if n == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(sc.s[sc.i:sc.i+n], 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	sc.i += n
	return v, true
}

func (sc *argScanner) scanUnsigned() (uint64, bool) {
	mag, _, n := intPrefix(sc.rest(), false)
	if n == 0 {
		return 0, false
	}
	sc.i += n
	sc.skipSeparator()
	return mag, true
}

func (sc *argScanner) scanSigned() (int64, bool) {
	mag, neg, n := intPrefix(sc.rest(), true)
	if n == 0 {
		return 0, false
	}
	sc.i += n
	sc.skipSeparator()
	v := int64(mag) // 1<<63 wraps to MinInt64, which is its own negation
	if neg {
		v = -v
	}
	return v, true
}

func (sc *argScanner) scanString() (string, bool) {
	rest := sc.rest()
	if rest == "" {
		return "", false
	}
	if rest[0] == '"' {
		body := rest[1:]
		if end := strings.IndexByte(body, '"'); end >= 0 {
			sc.i += end + 2
			return body[:end], true
		}
		sc.i = len(sc.s)
		return body, true
	}
	end := strings.IndexFunc(rest, func(r rune) bool { return r < 0x80 && isSpace(byte(r)) })
	if end < 0 {
		end = len(rest)
	}
	sc.i += end
	sc.skipSeparator()
	return rest[:end], true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// floatPrefix returns the length of the longest prefix of s matching
// [+-]? ( inf | infinity | nan | digits [. digits] | . digits ) ( [eE] [+-]? digits )?
// with the words matched case-insensitively, or 0 if there is none.
func floatPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for _, word := range [...]string{"infinity", "inf", "nan"} {
		if len(s)-i >= len(word) && strings.EqualFold(s[i:i+len(word)], word) {
			return i + len(word)
		}
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

// intPrefix parses an integer magnitude from the front of s: a sign (only
// if signed), an optional 0b, 0o or 0x base prefix, and one or more digits.
// Returns the number of bytes consumed, or 0 if no digits were found or the
// value would not fit: accumulation stops before exceeding MaxUint64 for
// unsigned, MaxInt64 for positive signed, and -MinInt64 for negative signed.
func intPrefix(s string, signed bool) (mag uint64, neg bool, n int) {
	i := 0
	if signed && i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	base := uint64(10)
	if i+1 < len(s) && s[i] == '0' {
		switch s[i+1] {
		case 'b':
			base = 2
		case 'o':
			base = 8
		case 'x':
			base = 16
		}
		if base != 10 {
			i += 2
		}
	}

	limit := uint64(math.MaxUint64)
	if signed {
		limit = math.MaxInt64
		if neg {
			limit++
		}
	}

	start := i
	for ; i < len(s); i++ {
		digit := digitValue(s[i])
		if digit >= base {
			break
		}
		if mag > (limit-digit)/base {
			return 0, false, 0
		}
		mag = mag*base + digit
	}
	if i == start {
		return 0, false, 0
	}
	return mag, neg, i
}

func digitValue(b byte) uint64 {
	switch {
	case '0' <= b && b <= '9':
		return uint64(b - '0')
	case 'a' <= b && b <= 'z':
		return uint64(b-'a') + 10
	case 'A' <= b && b <= 'Z':
		return uint64(b-'A') + 10
	}
	return math.MaxUint64
}

package tuneshell

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Accessor reads and writes a live numeric variable owned by the caller.
type Accessor interface {
	Get() float64
	Set(float64)
}

// Number is any Go type Bind can build an Accessor for.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Bind returns an Accessor over *p. Values set into integer storage are
// truncated toward zero by Go conversion rules.
func Bind[T Number](p *T) Accessor { return boundNumber[T]{p} }

type boundNumber[T Number] struct{ p *T }

func (b boundNumber[T]) Get() float64  { return float64(*b.p) }
func (b boundNumber[T]) Set(v float64) { *b.p = T(v) }

// AccessorFuncs adapts a pair of functions to the Accessor interface, for
// variables that need more than a plain pointer, like a setter that
// reprograms hardware.
type AccessorFuncs struct {
	GetFunc func() float64
	SetFunc func(float64)
}

// Get calls GetFunc.
func (af AccessorFuncs) Get() float64 { return af.GetFunc() }

// Set calls SetFunc.
func (af AccessorFuncs) Set(v float64) { af.SetFunc(v) }

// Operator is a math command operation.
type Operator int

// Math operators; OpNone reports the current value without changing it.
const (
	OpNone Operator = iota
	OpAdd
	OpSub
	OpMult
	OpDiv
	OpMod
	OpPow
	OpSet
)

var operators = [...]struct {
	name  string
	usage string
}{
	OpNone: {"", ""},
	OpAdd:  {"add", "v + value"},
	OpSub:  {"sub", "v - value"},
	OpMult: {"mult", "v * value"},
	OpDiv:  {"div", "v / value"},
	OpMod:  {"mod", "remainder of v / value"},
	OpPow:  {"pow", "v raised to value"},
	OpSet:  {"set", "v = value"},
}

func (op Operator) String() string {
	if op >= 0 && int(op) < len(operators) {
		return operators[op].name
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Apply returns the result of op on the current value v. Division by zero
// and domain errors are left to IEEE-754, producing Inf or NaN.
func (op Operator) Apply(v, value float64) float64 {
	switch op {
	case OpAdd:
		return v + value
	case OpSub:
		return v - value
	case OpMult:
		return v * value
	case OpDiv:
		return v / value
	case OpMod:
		return math.Mod(v, value)
	case OpPow:
		return math.Pow(v, value)
	case OpSet:
		return value
	}
	return v
}

func parseOperator(token string) (Operator, bool) {
	token = strings.ToLower(token)
	for op := OpAdd; op <= OpSet; op++ {
		if operators[op].name == token {
			return op, true
		}
	}
	return OpNone, false
}

// MathFunc formats a math command's response from the variable's value
// after op was applied.
type MathFunc func(value float64, op Operator) string

// MathCommand binds a name to a numeric variable that can be read and
// changed with "<name> [op value]".
type MathCommand struct {
	Name        string
	Accessor    Accessor
	Func        MathFunc
	Description string
}

// RegisterMath adds a math command, replacing any prior math command of the
// same name. A nil fn reports "<name> = <value>". Returns false if acc is
// nil.
func (r *Registry) RegisterMath(name string, acc Accessor, fn MathFunc, description string) bool {
	if acc == nil {
		r.log.Warn("rejected math command", zap.String("name", name))
		return false
	}
	name = normalize(name)
	if fn == nil {
		fn = func(value float64, _ Operator) string {
			return name + " = " + strconv.FormatFloat(value, 'g', -1, 64)
		}
	}
	r.put(entry{name: name, math: &MathCommand{
		Name:        name,
		Accessor:    acc,
		Func:        fn,
		Description: description,
	}})
	r.log.Debug("registered math command", zap.String("name", name))
	return true
}

// RemoveMath removes the math command called name, returning true if there
// was one.
func (r *Registry) RemoveMath(name string) bool {
	return r.remove(normalize(name), func(e entry) bool { return e.math != nil })
}

// LookupMath returns the math command called name.
func (r *Registry) LookupMath(name string) (MathCommand, bool) {
	if mc := r.math(normalize(name)); mc != nil {
		return *mc, true
	}
	return MathCommand{}, false
}

func (r *Registry) evalMath(mc *MathCommand, rest string) (string, error) {
	sc := argScanner{s: rest}
	if sc.skipSpace(); !sc.more() {
		return r.call(mc.Name, func() string { return mc.Func(mc.Accessor.Get(), OpNone) })
	}

	token, _ := sc.scanString()
	op, ok := parseOperator(token)
	if !ok {
		return "", &Error{Kind: UnknownMathOperator, Token: token}
	}
	if sc.skipSpace(); !sc.more() {
		return "", &Error{Kind: MissingMathValue, Token: token}
	}
	value, ok := sc.scanDouble()
	if !ok {
		return "", argError(InvalidDouble)
	}
	if sc.skipSpace(); sc.more() {
		return "", argError(TooManyArguments)
	}

	r.log.Debug("math",
		zap.String("name", mc.Name),
		zap.Stringer("op", op),
		zap.Float64("value", value))
	return r.call(mc.Name, func() string {
		mc.Accessor.Set(op.Apply(mc.Accessor.Get(), value))
		return mc.Func(mc.Accessor.Get(), op)
	})
}

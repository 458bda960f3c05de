package tuneshell

import "fmt"

// ErrorKind classifies the non-fatal errors produced while dispatching a
// command line.
type ErrorKind int

// Error kinds reported by Dispatch.
const (
	UnknownCommand ErrorKind = iota + 1
	InvalidDouble
	InvalidUnsignedInteger
	InvalidInteger
	InvalidString
	TooManyArguments
	UnknownMathOperator
	MissingMathValue
	CommandFailed
)

var kindNames = [...]string{
	UnknownCommand:         "UnknownCommand",
	InvalidDouble:          "InvalidDouble",
	InvalidUnsignedInteger: "InvalidUnsignedInteger",
	InvalidInteger:         "InvalidInteger",
	InvalidString:          "InvalidString",
	TooManyArguments:       "TooManyArguments",
	UnknownMathOperator:    "UnknownMathOperator",
	MissingMathValue:       "MissingMathValue",
	CommandFailed:          "CommandFailed",
}

func (k ErrorKind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for use with errors.Is; any *Error of the same Kind matches.
var (
	ErrUnknownCommand         = &Error{Kind: UnknownCommand}
	ErrInvalidDouble          = &Error{Kind: InvalidDouble}
	ErrInvalidUnsignedInteger = &Error{Kind: InvalidUnsignedInteger}
	ErrInvalidInteger         = &Error{Kind: InvalidInteger}
	ErrInvalidString          = &Error{Kind: InvalidString}
	ErrTooManyArguments       = &Error{Kind: TooManyArguments}
	ErrUnknownMathOperator    = &Error{Kind: UnknownMathOperator}
	ErrMissingMathValue       = &Error{Kind: MissingMathValue}
	ErrCommandFailed          = &Error{Kind: CommandFailed}
)

// Error is a dispatch failure. Its message is the response text sent back
// to the terminal.
type Error struct {
	Kind ErrorKind

	// Token is the offending input, if any.
	Token string

	// Cause is set for CommandFailed.
	Cause error
}

func (err *Error) Error() string {
	switch err.Kind {
	case UnknownCommand:
		return "Error: Unknown command."
	case InvalidDouble:
		return "Error: Invalid double argument."
	case InvalidUnsignedInteger:
		return "Error: Invalid unsigned integer argument."
	case InvalidInteger:
		return "Error: Invalid integer argument."
	case InvalidString:
		return "Error: Invalid string argument."
	case TooManyArguments:
		return "Error: Too many arguments."
	case UnknownMathOperator:
		return fmt.Sprintf("Error: Unknown math operator '%s'.", err.Token)
	case MissingMathValue:
		return fmt.Sprintf("Error: Missing value for math operator '%s'.", err.Token)
	case CommandFailed:
		return "Error: Command failed."
	}
	return fmt.Sprintf("Error: %v.", err.Kind)
}

// Is matches any *Error of the same Kind.
func (err *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == err.Kind
}

func (err *Error) Unwrap() error { return err.Cause }

func argError(kind ErrorKind) *Error { return &Error{Kind: kind} }

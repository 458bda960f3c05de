package tuneshell

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jcorbin/tuneshell/internal/panicerr"
)

// CommandFunc implements a command, returning the response text sent back
// to the terminal; an empty response prints nothing.
type CommandFunc func(args Args) string

// Command is a named callback taking arguments described by a Signature.
type Command struct {
	Name        string
	Signature   Signature
	Func        CommandFunc
	Description string
}

// Registry holds commands and math commands in one case-insensitive
// namespace, and dispatches command lines to them.
//
// A Registry does no locking: registration and dispatch must not race.
type Registry struct {
	log *zap.Logger

	// registration order across both kinds
	entries []entry
}

type entry struct {
	name string
	cmd  *Command
	math *MathCommand
}

func (e entry) description() string {
	if e.cmd != nil {
		return e.cmd.Description
	}
	return e.math.Description
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{log: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt.applyRegistry(r)
		}
	}
	return r
}

func normalize(name string) string { return strings.ToLower(name) }

// Register adds a command, replacing any prior command of the same name.
// Returns false, registering nothing, if the signature holds an invalid
// type code.
func (r *Registry) Register(name string, sig Signature, fn CommandFunc, description string) bool {
	if !sig.Valid() || fn == nil {
		r.log.Warn("rejected command",
			zap.String("name", name),
			zap.String("signature", string(sig)))
		return false
	}
	name = normalize(name)
	r.put(entry{name: name, cmd: &Command{
		Name:        name,
		Signature:   sig,
		Func:        fn,
		Description: description,
	}})
	r.log.Debug("registered command",
		zap.String("name", name),
		zap.String("signature", string(sig)))
	return true
}

// Remove removes the command called name, returning true if there was one.
func (r *Registry) Remove(name string) bool {
	return r.remove(normalize(name), func(e entry) bool { return e.cmd != nil })
}

// RemoveAny removes both any command and any math command called name.
func (r *Registry) RemoveAny(name string) bool {
	removed := r.Remove(name)
	if r.RemoveMath(name) {
		removed = true
	}
	return removed
}

// Lookup returns the command called name.
func (r *Registry) Lookup(name string) (Command, bool) {
	if cmd := r.command(normalize(name)); cmd != nil {
		return *cmd, true
	}
	return Command{}, false
}

// Names returns every registered name in registration order. A name used
// by both a command and a math command is listed once.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	seen := make(map[string]struct{}, len(r.entries))
	for _, e := range r.entries {
		if _, dup := seen[e.name]; !dup {
			seen[e.name] = struct{}{}
			names = append(names, e.name)
		}
	}
	return names
}

// Help returns one line per registered entry: its name, signature or math
// operator usage, and description.
func (r *Registry) Help() string {
	var sb strings.Builder
	for _, e := range r.entries {
		usage := "[op value]"
		if e.cmd != nil {
			usage = usageOf(e.cmd.Signature)
		}
		fmt.Fprintf(&sb, "%-12s %-16s %s\n", e.name, usage, e.description())
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func usageOf(sig Signature) string {
	var parts []string
	optional := false
	for i := 0; i < len(sig); i++ {
		kind := ArgKind(sig[i])
		if kind == OptionalMark {
			optional = true
			continue
		}
		if optional {
			parts = append(parts, "["+kind.String()+"]")
		} else {
			parts = append(parts, "<"+kind.String()+">")
		}
	}
	return strings.Join(parts, " ")
}

// Process dispatches line, returning whether it succeeded and the response
// text, which for a failure is the error message.
func (r *Registry) Process(line string) (bool, string) {
	resp, err := r.Dispatch(line)
	if err != nil {
		return false, err.Error()
	}
	return true, resp
}

// Dispatch parses and runs line, a command or math command name followed by
// its arguments. Any failure is an *Error; no callback runs and no value
// changes when parsing fails.
func (r *Registry) Dispatch(line string) (string, error) {
	name, rest := splitName(line)
	key := normalize(name)

	if cmd := r.command(key); cmd != nil {
		args, err := ParseArgs(cmd.Signature, rest)
		if err != nil {
			r.log.Debug("parse failed", zap.String("name", key), zap.Error(err))
			return "", err
		}
		r.log.Debug("dispatch", zap.String("name", key), zap.Stringer("args", args))
		return r.call(key, func() string { return cmd.Func(args) })
	}

	if mc := r.math(key); mc != nil {
		return r.evalMath(mc, rest)
	}

	r.log.Debug("unknown command", zap.String("name", name))
	return "", &Error{Kind: UnknownCommand, Token: name}
}

// call runs fn, reporting a panic as a CommandFailed error.
func (r *Registry) call(name string, fn func() string) (resp string, err error) {
	if perr := panicerr.Guard(name, func() error {
		resp = fn()
		return nil
	}); perr != nil {
		r.log.Error("command panicked",
			zap.String("name", name),
			zap.Error(perr),
			zap.String("stack", panicerr.PanicStack(perr)))
		return "", &Error{Kind: CommandFailed, Token: name, Cause: perr}
	}
	return resp, nil
}

func splitName(line string) (name, rest string) {
	line = strings.TrimLeft(line, " \t\r\n\v\f")
	i := strings.IndexAny(line, " \t\r\n\v\f")
	if i < 0 {
		return line, ""
	}
	return line[:i], line[i+1:]
}

func (r *Registry) command(key string) *Command {
	for _, e := range r.entries {
		if e.cmd != nil && e.name == key {
			return e.cmd
		}
	}
	return nil
}

func (r *Registry) math(key string) *MathCommand {
	for _, e := range r.entries {
		if e.math != nil && e.name == key {
			return e.math
		}
	}
	return nil
}

// put replaces the entry of the same name and kind in place, or appends.
func (r *Registry) put(ent entry) {
	for i, e := range r.entries {
		if e.name == ent.name && (e.cmd != nil) == (ent.cmd != nil) {
			r.entries[i] = ent
			return
		}
	}
	r.entries = append(r.entries, ent)
}

func (r *Registry) remove(key string, match func(e entry) bool) bool {
	for i, e := range r.entries {
		if e.name == key && match(e) {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			r.log.Debug("removed", zap.String("name", key))
			return true
		}
	}
	return false
}

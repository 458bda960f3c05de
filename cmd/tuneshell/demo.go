package main

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/jcorbin/tuneshell"
)

var defaultVars = map[string]float64{
	"speed": 10,
	"gain":  1,
}

// tunables are the live variables exposed as math commands.
type tunables struct {
	names   []string
	initial map[string]float64
	values  map[string]*float64

	// retries exercises integer binding; math results are truncated.
	retries int
}

func newTunables(seed map[string]float64) *tunables {
	if len(seed) == 0 {
		seed = defaultVars
	}
	tv := &tunables{
		names:   slices.Sorted(maps.Keys(seed)),
		initial: maps.Clone(seed),
		values:  make(map[string]*float64, len(seed)),
		retries: 3,
	}
	for name, v := range seed {
		tv.values[name] = &v
	}
	return tv
}

func (tv *tunables) register(reg *tuneshell.Registry) {
	for _, name := range tv.names {
		reg.RegisterMath(name, tuneshell.Bind(tv.values[name]), nil, "tunable "+name)
	}
	reg.RegisterMath("retries", tuneshell.Bind(&tv.retries), func(value float64, op tuneshell.Operator) string {
		if op == tuneshell.OpNone {
			return fmt.Sprintf("retries = %d", tv.retries)
		}
		return fmt.Sprintf("retries = %d (%v)", tv.retries, op)
	}, "attempts before giving up, a whole number")
}

func (tv *tunables) reset(name string) bool {
	if name == "" {
		for n, v := range tv.initial {
			*tv.values[n] = v
		}
		return true
	}
	p, ok := tv.values[name]
	if ok {
		*p = tv.initial[name]
	}
	return ok
}

func (tv *tunables) String() string {
	var sb strings.Builder
	for _, name := range tv.names {
		fmt.Fprintf(&sb, "%s = %g\n", name, *tv.values[name])
	}
	fmt.Fprintf(&sb, "retries = %d", tv.retries)
	return sb.String()
}

func registerDemo(reg *tuneshell.Registry, tv *tunables) {
	reg.Register("echo", "sosss", func(args tuneshell.Args) string {
		var words []string
		for i := range args {
			if s, ok := args.Text(i); ok {
				words = append(words, s)
			}
		}
		return strings.Join(words, " ")
	}, "repeat up to four words")

	reg.Register("sum", "dd", func(args tuneshell.Args) string {
		a, _ := args.Double(0)
		b, _ := args.Double(1)
		return fmt.Sprint(a + b)
	}, "add two numbers")

	reg.Register("hex", "u", func(args tuneshell.Args) string {
		u, _ := args.Unsigned(0)
		return fmt.Sprintf("%#x", u)
	}, "show a whole number in hexadecimal")

	reg.Register("neg", "i", func(args tuneshell.Args) string {
		i, _ := args.Signed(0)
		return fmt.Sprint(-i)
	}, "negate an integer")

	reg.Register("status", "", func(tuneshell.Args) string {
		return tv.String()
	}, "show every tunable")

	reg.Register("reset", "os", func(args tuneshell.Args) string {
		name, _ := args.Text(0)
		if !tv.reset(name) {
			return fmt.Sprintf("no tunable %q", name)
		}
		return tv.String()
	}, "restore one or all tunables to their starting values")
}

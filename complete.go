package tuneshell

import "strings"

// TabComplete returns the names, and matching descriptions, of every
// command and math command whose name starts with prefix, in registration
// order.
//
// A name used by both a command and a math command is listed once, with
// the command's description, since the command is the one dispatched.
//
// When nothing matches and prefix is a math command name followed by a
// partial operator, the completions are instead the full lines naming each
// matching operator, like "speed add".
func (r *Registry) TabComplete(prefix string) (descriptions, names []string) {
	key := normalize(prefix)
	at := make(map[string]int)
	for _, e := range r.entries {
		if !strings.HasPrefix(e.name, key) {
			continue
		}
		if i, dup := at[e.name]; dup {
			if e.cmd != nil {
				descriptions[i] = e.description()
			}
			continue
		}
		at[e.name] = len(names)
		descriptions = append(descriptions, e.description())
		names = append(names, e.name)
	}
	if len(names) == 0 {
		descriptions, names = r.completeOperator(key)
	}
	return descriptions, names
}

func (r *Registry) completeOperator(key string) (descriptions, names []string) {
	name, partial := splitName(key)
	if partial = strings.TrimLeft(partial, " \t"); strings.ContainsAny(partial, " \t") {
		return nil, nil
	}
	mc := r.math(name)
	if mc == nil || name == key {
		return nil, nil
	}
	for op := OpAdd; op <= OpSet; op++ {
		if strings.HasPrefix(operators[op].name, partial) {
			descriptions = append(descriptions, operators[op].usage)
			names = append(names, mc.Name+" "+operators[op].name)
		}
	}
	return descriptions, names
}

// CommonPrefix returns the longest prefix shared by every string in ss.
func CommonPrefix(ss []string) string {
	if len(ss) == 0 {
		return ""
	}
	prefix := ss[0]
	for _, s := range ss[1:] {
		i := 0
		for i < len(prefix) && i < len(s) && prefix[i] == s[i] {
			i++
		}
		prefix = prefix[:i]
	}
	return prefix
}

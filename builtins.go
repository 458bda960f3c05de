package tuneshell

import (
	"fmt"
	"strings"
)

// RegisterBuiltins adds the help and history commands to the editor's
// registry.
func (ed *Editor) RegisterBuiltins() {
	ed.reg.Register("help", "", func(Args) string {
		return ed.reg.Help()
	}, "list commands")

	ed.reg.Register("history", "", func(Args) string {
		var sb strings.Builder
		for i, line := range ed.hist.Entries() {
			if i > 0 {
				sb.WriteByte('\n')
			}
			fmt.Fprintf(&sb, "%3d  %s", i+1, line)
		}
		return sb.String()
	}, "list recent command lines")
}

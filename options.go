package tuneshell

import (
	"go.uber.org/zap"

	"github.com/jcorbin/tuneshell/internal/history"
)

// EditorOption configures an Editor created by New.
type EditorOption interface{ applyEditor(ed *Editor) }

// RegistryOption configures a Registry created by NewRegistry.
type RegistryOption interface{ applyRegistry(r *Registry) }

// WithLogger sets the logger of an Editor or Registry; a nil logger
// disables logging. An Editor passes its logger on to the Registry it
// creates when none is given by WithRegistry.
func WithLogger(log *zap.Logger) loggerOption { return loggerOption{log} }

// WithRegistry makes an Editor dispatch to reg instead of a new Registry.
func WithRegistry(reg *Registry) EditorOption { return registryOption{reg} }

// WithPrompt sets the text written before each line.
func WithPrompt(prompt string) EditorOption { return promptOption(prompt) }

// WithBanner sets text written once by Start, before the first prompt.
func WithBanner(banner string) EditorOption { return bannerOption(banner) }

// WithHistory sets the history capacity and whether browsing skips back
// off of empty slots.
func WithHistory(size int, blockOnEmpty bool) EditorOption {
	return historyOption{size, blockOnEmpty}
}

var defaultEditorOptions = []EditorOption{
	WithHistory(history.DefaultSize, true),
}

type loggerOption struct{ log *zap.Logger }
type registryOption struct{ reg *Registry }
type promptOption string
type bannerOption string
type historyOption struct {
	size         int
	blockOnEmpty bool
}

func (o loggerOption) applyEditor(ed *Editor)      { ed.log = o.logger() }
func (o loggerOption) applyRegistry(r *Registry)   { r.log = o.logger() }
func (o registryOption) applyEditor(ed *Editor)    { ed.reg = o.reg }
func (prompt promptOption) applyEditor(ed *Editor) { ed.prompt = string(prompt) }
func (banner bannerOption) applyEditor(ed *Editor) { ed.banner = string(banner) }
func (o historyOption) applyEditor(ed *Editor) {
	ed.hist = history.New(o.size, o.blockOnEmpty)
}

func (o loggerOption) logger() *zap.Logger {
	if o.log == nil {
		return zap.NewNop()
	}
	return o.log
}

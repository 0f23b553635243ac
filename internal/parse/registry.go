// Package parse turns classified envelopes into Discord embeds. It hosts
// the detail-formatter registry plus the alarm and event-bus formatters.
package parse

import "sync"

// DetailFormatter renders an event detail mapping into embed body text.
// A returned error triggers the generic JSON fallback at the call site;
// it is never propagated to the caller of the event formatter.
type DetailFormatter func(detail map[string]any) (string, error)

var (
	mu         sync.RWMutex
	formatters = make(map[string]DetailFormatter)
)

// Register installs a formatter for the given detail-type. A later
// registration for the same key overwrites the earlier one.
func Register(detailType string, fn DetailFormatter) {
	mu.Lock()
	defer mu.Unlock()
	formatters[detailType] = fn
}

// Lookup returns the formatter registered for the detail-type. A missing
// entry is not an error; it means the generic fallback applies.
func Lookup(detailType string) (DetailFormatter, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := formatters[detailType]
	return fn, ok
}

// RegisterBuiltins installs the built-in detail formatters. The explicit
// list keeps startup order deterministic; call it once before serving.
func RegisterBuiltins() {
	builtins := map[string]DetailFormatter{
		"ECS Task State Change": formatTaskStateChange,
		"ECS Service Action":    formatServiceAction,
	}
	for detailType, fn := range builtins {
		Register(detailType, fn)
	}
}

package accesslog

import (
	"fmt"
	"os"
	"sync"

	json "github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
)

// Fallback appends one-line diagnostics to the access-log file from contexts
// that have no live connection, such as dataset parsing. It holds its own
// handle to the same path the pipeline writes; the two may interleave at
// OS append-write granularity, which is relied on for whole-line atomicity.
//
// The file is opened once, at construction. A failed open is cached as
// "unavailable" for the rest of the process and never retried; construction
// happens at startup so the outcome is visible immediately rather than on
// some later first use.
type Fallback struct {
	mu   sync.Mutex
	file *os.File // nil when the open failed
}

// NewFallback opens the error-log file in append-create mode. On failure it
// reports once and returns a handle whose writes degrade to stderr
// diagnostics.
func NewFallback(path string) *Fallback {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("cannot open error log")
		return &Fallback{}
	}
	return &Fallback{file: file}
}

// LogError appends "ERROR - <v>" with v rendered as JSON, serialized under
// the mutex. Failures are reported to stderr and never propagate.
func (f *Fallback) LogError(v any) {
	rendered, err := json.Marshal(v)
	if err != nil {
		rendered = []byte(fmt.Sprintf("%v", v))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.file == nil {
		log.Error().Str("value", string(rendered)).Msg("error log unavailable")
		return
	}
	if _, err := fmt.Fprintf(f.file, "ERROR - %s\n", rendered); err != nil {
		log.Error().Err(err).Msg("error writing to error log")
	}
}

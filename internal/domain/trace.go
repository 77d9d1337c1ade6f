package domain

import (
	"context"
	"maps"
	"sync"
)

type errorTraceKey struct{}

// ErrorTrace collects the codes recorded while serving one call. Unlike the
// service-wide error bag it starts empty, so a code seen before still shows.
type ErrorTrace struct {
	mu    sync.Mutex
	codes map[ErrorCode]string
}

func WithErrorTrace(ctx context.Context) (context.Context, *ErrorTrace) {
	trace := &ErrorTrace{codes: make(map[ErrorCode]string)}
	return context.WithValue(ctx, errorTraceKey{}, trace), trace
}

// TraceError adds code to the trace carried by ctx, if any.
func TraceError(ctx context.Context, code ErrorCode) {
	trace, ok := ctx.Value(errorTraceKey{}).(*ErrorTrace)
	if !ok {
		return
	}
	trace.mu.Lock()
	trace.codes[code] = string(code)
	trace.mu.Unlock()
}

func (t *ErrorTrace) Codes() map[ErrorCode]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.codes)
}

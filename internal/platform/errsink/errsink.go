// Package errsink forwards non-fatal errors to an aggregation backend.
// Side-effect failures in the service lifecycle are reported here instead of
// propagating to the caller; the sink is the only place they surface besides
// logs.
package errsink

import (
	"context"
	"log/slog"
	"sync"

	"registrar/pkg/requestcontext"
)

// Sink receives errors from side effects that are recorded but not returned.
type Sink interface {
	Report(ctx context.Context, err error, attrs ...any)
}

// SlogSink reports errors to the process logger. The default sink.
type SlogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

func (s *SlogSink) Report(ctx context.Context, err error, attrs ...any) {
	if s.logger == nil || err == nil {
		return
	}
	args := append([]any{"error", err, "request_id", requestcontext.RequestID(ctx)}, attrs...)
	s.logger.ErrorContext(ctx, "side effect failed", args...)
}

// Recorder captures reported errors in memory. Test double.
type Recorder struct {
	mu     sync.Mutex
	errors []error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Report(_ context.Context, err error, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, err)
}

// Errors returns a copy of the reported errors.
func (r *Recorder) Errors() []error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]error{}, r.errors...)
}

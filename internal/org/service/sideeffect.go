package service

import "context"

// SideEffect is the recorded outcome of one best-effort collaborator call.
// A nil Err means the effect applied. Failed effects are logged, counted and
// reported to the error sink, never propagated to the caller.
type SideEffect struct {
	Name string
	Err  error
}

// SideEffects collects the outcomes of a lifecycle operation, in the order
// the effects ran.
type SideEffects []SideEffect

// Failed returns only the effects that errored.
func (s SideEffects) Failed() SideEffects {
	var out SideEffects
	for _, e := range s {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// effect runs fn, records the outcome, and swallows any error after logging
// and reporting it.
func (s *Service) effect(ctx context.Context, effects *SideEffects, name string, attrs []any, fn func() error) {
	err := fn()
	*effects = append(*effects, SideEffect{Name: name, Err: err})
	if err == nil {
		return
	}
	args := append([]any{"effect", name, "error", err}, attrs...)
	s.logger.ErrorContext(ctx, "side effect failed", args...)
	s.sink.Report(ctx, err, append([]any{"effect", name}, attrs...)...)
	s.metrics.IncrementSideEffectFailure(name)
}

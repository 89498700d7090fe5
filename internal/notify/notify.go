package notify

import (
	"context"
	"sync"
)

// Email is a rendered message ready for dispatch.
type Email struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

// Dispatcher sends notification emails. Lifecycle operations treat dispatch
// as best-effort; a failed send never fails the operation.
type Dispatcher interface {
	Send(ctx context.Context, msg Email) error
}

// Recorder is a Dispatcher for tests that captures sent messages.
type Recorder struct {
	mu   sync.Mutex
	sent []Email

	// Err, when set, is returned by every Send.
	Err error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(_ context.Context, msg Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, msg)
	return nil
}

// Sent returns a copy of the captured messages.
func (r *Recorder) Sent() []Email {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Email(nil), r.sent...)
}

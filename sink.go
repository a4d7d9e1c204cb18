package pandagraph

import "sync"

// ErrorSink is the append-only log of recoverable failures shared by an
// adapter and every sequence derived from it. Nested sequences record into
// the same sink the root caller inspects, so it is passed by pointer and
// guarded by a mutex.
//
// The sink is never cleared implicitly; the query driver decides when to
// inspect or Drain it.
type ErrorSink struct {
	mu   sync.Mutex
	errs []error
}

// NewErrorSink returns an empty sink.
func NewErrorSink() *ErrorSink {
	return &ErrorSink{}
}

// Record appends err to the sink. Nil errors are ignored.
func (s *ErrorSink) Record(err error) {
	if err == nil {
		return
	}
	s.mu.Lock()
	s.errs = append(s.errs, err)
	s.mu.Unlock()
}

// Errors returns a snapshot of the recorded errors in recording order.
func (s *ErrorSink) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errs) == 0 {
		return nil
	}
	out := make([]error, len(s.errs))
	copy(out, s.errs)
	return out
}

// Len returns the number of recorded errors.
func (s *ErrorSink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.errs)
}

// Drain returns the recorded errors and empties the sink.
func (s *ErrorSink) Drain() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	errs := s.errs
	s.errs = nil
	return errs
}

// Err returns the recorded errors combined into one error, or nil.
func (s *ErrorSink) Err() error {
	return NewAggregateError(s.Errors()...)
}

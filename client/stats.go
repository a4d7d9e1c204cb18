package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// RequestStats holds request statistics.
type RequestStats struct {
	// TotalRequests is the total number of requests issued.
	TotalRequests atomic.Int64
	// TotalDuration is the total time spent waiting on requests.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowRequests is the count of requests exceeding the slow threshold.
	SlowRequests atomic.Int64
	// Errors is the count of failed requests.
	Errors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *RequestStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalRequests: s.TotalRequests.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowRequests:  s.SlowRequests.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *RequestStats) Reset() {
	s.TotalRequests.Store(0)
	s.TotalDuration.Store(0)
	s.SlowRequests.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time snapshot of request statistics.
type StatsSnapshot struct {
	TotalRequests int64
	TotalDuration time.Duration
	SlowRequests  int64
	Errors        int64
}

// AvgDuration returns the average request duration.
func (s StatsSnapshot) AvgDuration() time.Duration {
	if s.TotalRequests == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.TotalRequests)
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"requests=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalRequests, s.TotalDuration, s.AvgDuration(), s.SlowRequests, s.Errors,
	)
}

// SlowRequestHook is called when a slow request is detected.
type SlowRequestHook func(ctx context.Context, req *Request, duration time.Duration)

// StatsTransport wraps a Transport with request statistics collection.
type StatsTransport struct {
	next          Transport
	stats         *RequestStats
	metrics       *Metrics
	slowThreshold time.Duration
	slowHook      SlowRequestHook
	mu            sync.RWMutex
}

// StatsOption configures the StatsTransport.
type StatsOption func(*StatsTransport)

// WithSlowThreshold sets the threshold for slow request detection.
// Default is 1s.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsTransport) {
		s.slowThreshold = d
	}
}

// WithSlowRequestHook sets a callback for slow requests.
func WithSlowRequestHook(hook SlowRequestHook) StatsOption {
	return func(s *StatsTransport) {
		s.slowHook = hook
	}
}

// WithSlowRequestLog logs slow requests to the default logger.
func WithSlowRequestLog() StatsOption {
	return WithSlowRequestHook(func(_ context.Context, req *Request, duration time.Duration) {
		slog.Warn("slow request detected", "duration", duration, "op", req.Op, "path", req.Path)
	})
}

// WithMetrics also reports every request to m.
func WithMetrics(m *Metrics) StatsOption {
	return func(s *StatsTransport) {
		s.metrics = m
	}
}

// NewStatsTransport wraps next with statistics collection.
//
// Example:
//
//	var stats *client.StatsTransport
//	c, _ := client.New(token, client.WithMiddleware(func(t client.Transport) client.Transport {
//	    stats = client.NewStatsTransport(t,
//	        client.WithSlowThreshold(500*time.Millisecond),
//	        client.WithSlowRequestLog(),
//	    )
//	    return stats
//	}))
//
//	// Later, check statistics:
//	fmt.Println(stats.RequestStats().Stats())
func NewStatsTransport(next Transport, opts ...StatsOption) *StatsTransport {
	s := &StatsTransport{
		next:          next,
		stats:         &RequestStats{},
		slowThreshold: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestStats returns the underlying RequestStats for reading statistics.
func (t *StatsTransport) RequestStats() *RequestStats {
	return t.stats
}

// SlowThreshold returns the current slow request threshold.
func (t *StatsTransport) SlowThreshold() time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.slowThreshold
}

// SetSlowThreshold updates the slow request threshold.
func (t *StatsTransport) SetSlowThreshold(threshold time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.slowThreshold = threshold
}

// Do executes the request and records statistics.
func (t *StatsTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()
	resp, err := t.next.Do(ctx, req)
	t.record(ctx, req, start, resp, err)
	return resp, err
}

func (t *StatsTransport) record(ctx context.Context, req *Request, start time.Time, resp *Response, err error) {
	duration := time.Since(start)
	t.stats.TotalRequests.Add(1)
	t.stats.TotalDuration.Add(int64(duration))
	if err != nil {
		t.stats.Errors.Add(1)
	}
	if t.metrics != nil {
		t.metrics.observe(req.Op, statusOf(resp, err), duration)
	}

	t.mu.RLock()
	threshold := t.slowThreshold
	hook := t.slowHook
	t.mu.RUnlock()

	if duration > threshold {
		t.stats.SlowRequests.Add(1)
		if hook != nil {
			hook(ctx, req, duration)
		}
	}
}

// statusOf returns the HTTP status of an outcome, or 0 when the request
// never got one.
func statusOf(resp *Response, err error) int {
	if resp != nil {
		return resp.StatusCode
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// DebugTransport wraps a Transport with debug logging.
type DebugTransport struct {
	next Transport
	log  func(context.Context, ...any)
}

// DebugOption configures the DebugTransport.
type DebugOption func(*DebugTransport)

// DebugWithLog sets a custom log function.
func DebugWithLog(logFunc func(context.Context, ...any)) DebugOption {
	return func(d *DebugTransport) {
		d.log = logFunc
	}
}

// NewDebugTransport wraps next with debug logging.
func NewDebugTransport(next Transport, opts ...DebugOption) *DebugTransport {
	d := &DebugTransport{
		next: next,
		log: func(ctx context.Context, v ...any) {
			slog.DebugContext(ctx, fmt.Sprint(v...))
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Do logs the request and executes it.
func (d *DebugTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	d.log(ctx, fmt.Sprintf("request: %s %s %s query: %s", req.Op, req.Method, req.Path, req.Query.Encode()))
	resp, err := d.next.Do(ctx, req)
	if err != nil {
		d.log(ctx, fmt.Sprintf("request failed: %s: %v", req.Op, err))
	}
	return resp, err
}

// Ensure interfaces are implemented.
var (
	_ Transport = (*HTTPTransport)(nil)
	_ Transport = (*StatsTransport)(nil)
	_ Transport = (*DebugTransport)(nil)
	_ Transport = TransportFunc(nil)
)

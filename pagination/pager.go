// Package pagination flattens a paged listing into a single lazy sequence.
//
// A Pager fetches one page at a time, only when its buffer runs dry, and
// follows the continuation cursor each page returns. A failed fetch is
// recorded once and ends the sequence; items already yielded stay valid.
package pagination

import (
	pandagraph "github.com/syssam/pandagraph"
	"github.com/syssam/pandagraph/iterator"
)

// Recorder receives the failure that ends a sequence early.
// *pandagraph.ErrorSink implements it.
type Recorder interface {
	Record(err error)
}

// FetchFunc fetches the page at cursor. It returns the page items and the
// cursor of the following page, nil when there is none.
type FetchFunc[T, C any] func(cursor C) (items []T, next *C, err error)

// State is the position of a Pager in its lifecycle.
type State int

// Pager states.
const (
	// Pending means the buffer is empty and a page remains to be fetched.
	Pending State = iota
	// Buffered means items from the last fetched page remain.
	Buffered
	// Exhausted means no further items will be produced.
	Exhausted
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Buffered:
		return "buffered"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Pager is a lazy sequence over every item of a paged listing.
// It is not safe for concurrent use.
type Pager[T, C any] struct {
	op       string
	fetch    FetchFunc[T, C]
	recorder Recorder

	state  State
	buffer []T
	cursor *C
	pages  int
}

// New returns a Pager that starts at first. op names the listing in the
// EndpointError recorded on failure. Nothing is fetched until Next.
func New[T, C any](recorder Recorder, op string, first C, fetch FetchFunc[T, C]) *Pager[T, C] {
	return &Pager[T, C]{
		op:       op,
		fetch:    fetch,
		recorder: recorder,
		state:    Pending,
		cursor:   &first,
	}
}

// Next returns the next item, fetching the next page when the buffer is
// empty.
func (p *Pager[T, C]) Next() (T, bool) {
	for {
		switch p.state {
		case Buffered:
			if len(p.buffer) > 0 {
				v := p.buffer[0]
				var zero T
				p.buffer[0] = zero
				p.buffer = p.buffer[1:]
				return v, true
			}
			if p.cursor == nil {
				p.finish()
			} else {
				p.state = Pending
			}
		case Pending:
			p.load()
		default:
			var zero T
			return zero, false
		}
	}
}

// load fetches the page at the current cursor.
func (p *Pager[T, C]) load() {
	items, next, err := p.fetch(*p.cursor)
	p.pages++
	if err != nil {
		if p.recorder != nil {
			p.recorder.Record(pandagraph.NewEndpointError(p.op, err))
		}
		p.finish()
		return
	}
	if len(items) == 0 {
		p.finish()
		return
	}
	p.buffer = items
	p.cursor = next
	p.state = Buffered
}

func (p *Pager[T, C]) finish() {
	p.state = Exhausted
	p.buffer = nil
	p.cursor = nil
}

// State returns the current state.
func (p *Pager[T, C]) State() State {
	return p.state
}

// Pages returns the number of fetches attempted so far.
func (p *Pager[T, C]) Pages() int {
	return p.pages
}

var _ iterator.Iterator[int] = (*Pager[int, int])(nil)

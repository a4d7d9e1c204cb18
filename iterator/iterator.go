// Package iterator defines the pull-based lazy sequence every resolver
// returns, along with the small set of combinators the resolvers need.
//
// A sequence does no work until Next is called, and each call does only
// the work needed for one element. Callers that stop pulling early leave
// the remaining work undone; there is nothing to close.
//
//	it := iterator.Map(iterator.Of(1, 2, 3), func(n int) string {
//	    return strconv.Itoa(n)
//	})
//	for s, ok := it.Next(); ok; s, ok = it.Next() {
//	    fmt.Println(s)
//	}
package iterator

// Iterator is a lazy, single-pass sequence.
type Iterator[T any] interface {
	// Next returns the next element and true, or the zero value and false
	// once the sequence is exhausted. Calling Next after it has returned
	// false keeps returning false.
	Next() (T, bool)
}

// Func adapts a plain function to Iterator.
type Func[T any] func() (T, bool)

// Next calls f.
func (f Func[T]) Next() (T, bool) { return f() }

type empty[T any] struct{}

func (empty[T]) Next() (T, bool) {
	var zero T
	return zero, false
}

// Empty returns a sequence with no elements.
func Empty[T any]() Iterator[T] {
	return empty[T]{}
}

type slice[T any] struct {
	items []T
}

func (s *slice[T]) Next() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	v := s.items[0]
	s.items = s.items[1:]
	return v, true
}

// Of returns a sequence over the given items.
func Of[T any](items ...T) Iterator[T] {
	return &slice[T]{items: items}
}

type deferred[T any] struct {
	build func() Iterator[T]
	inner Iterator[T]
}

func (d *deferred[T]) Next() (T, bool) {
	if d.inner == nil {
		d.inner = d.build()
		d.build = nil
	}
	return d.inner.Next()
}

// Defer returns a sequence whose elements come from the iterator built by
// fn. fn runs on the first call to Next, not before.
func Defer[T any](fn func() Iterator[T]) Iterator[T] {
	return &deferred[T]{build: fn}
}

// Lazy returns a sequence of at most one element produced by fn on the
// first call to Next. A false second result yields an empty sequence.
func Lazy[T any](fn func() (T, bool)) Iterator[T] {
	return Defer(func() Iterator[T] {
		if v, ok := fn(); ok {
			return Of(v)
		}
		return Empty[T]()
	})
}

// Map returns a sequence applying fn to each element of it.
func Map[T, U any](it Iterator[T], fn func(T) U) Iterator[U] {
	return Func[U](func() (U, bool) {
		v, ok := it.Next()
		if !ok {
			var zero U
			return zero, false
		}
		return fn(v), true
	})
}

// FilterMap returns a sequence applying fn to each element of it and
// keeping only the results fn accepts. Order is preserved.
func FilterMap[T, U any](it Iterator[T], fn func(T) (U, bool)) Iterator[U] {
	return Func[U](func() (U, bool) {
		for {
			v, ok := it.Next()
			if !ok {
				var zero U
				return zero, false
			}
			if u, keep := fn(v); keep {
				return u, true
			}
		}
	})
}

// Take returns a sequence of at most n elements of it. A non-positive n
// means no limit.
func Take[T any](it Iterator[T], n int) Iterator[T] {
	if n <= 0 {
		return it
	}
	taken := 0
	return Func[T](func() (T, bool) {
		if taken >= n {
			var zero T
			return zero, false
		}
		v, ok := it.Next()
		if ok {
			taken++
		}
		return v, ok
	})
}

// Collect drains it into a slice.
func Collect[T any](it Iterator[T]) []T {
	var out []T
	for v, ok := it.Next(); ok; v, ok = it.Next() {
		out = append(out, v)
	}
	return out
}

package adapter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/syssam/pandagraph/adapter"
	"github.com/syssam/pandagraph/client"
)

// fakeAPI is an in-memory API. Listings are paged by the page and per_page
// query parameters and advertise the total through X-Total.
type fakeAPI struct {
	mu     sync.Mutex
	lists  map[string][]any
	items  map[string]any
	failOn map[string]int // path -> failing page (1 for single entities)
	calls  []*client.Request

	delay    time.Duration
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		lists:  make(map[string][]any),
		items:  make(map[string]any),
		failOn: make(map[string]int),
	}
}

func (f *fakeAPI) Do(ctx context.Context, req *client.Request) (*client.Response, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)

	page := atoiOr(req.Query.Get("page"), 1)
	if p, ok := f.failOn[req.Path]; ok && p == page {
		return nil, &client.APIError{StatusCode: http.StatusInternalServerError, Message: "upstream unavailable"}
	}

	if all, ok := f.lists[req.Path]; ok {
		perPage := atoiOr(req.Query.Get("per_page"), len(all))
		start := min((page-1)*perPage, len(all))
		end := min(start+perPage, len(all))
		return respond(all[start:end], http.Header{"X-Total": {strconv.Itoa(len(all))}})
	}
	if item, ok := f.items[req.Path]; ok {
		return respond(item, http.Header{})
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "not found"}
}

func respond(v any, h http.Header) (*client.Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &client.Response{StatusCode: http.StatusOK, Header: h, Body: body}, nil
}

func atoiOr(s string, def int) int {
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return def
}

func (f *fakeAPI) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Path
	}
	return out
}

func (f *fakeAPI) lastQuery() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1].Query
}

// newAdapter returns an adapter over api with the given page size.
func newAdapter(t *testing.T, api *fakeAPI, pageSize int) *adapter.Adapter {
	t.Helper()
	c, err := client.New("test-token", client.WithTransport(api), client.WithPageSize(pageSize))
	require.NoError(t, err)
	return adapter.New(c)
}

// =============================================================================
// Fixtures
// =============================================================================

func league(id int, name string) map[string]any {
	return map[string]any{"id": id, "name": name, "slug": name, "modified_at": "2024-01-01T00:00:00Z"}
}

func team(id int, name string, players ...map[string]any) map[string]any {
	if players == nil {
		players = []map[string]any{}
	}
	return map[string]any{"id": id, "name": name, "modified_at": "2024-01-01T00:00:00Z", "players": players}
}

func member(id int, name string) map[string]any {
	return map[string]any{"id": id, "name": name}
}

func player(id int, name string) map[string]any {
	return map[string]any{"id": id, "name": name, "modified_at": "2024-01-01T00:00:00Z"}
}

func match(id int, winnerType any, winnerID any) map[string]any {
	return map[string]any{
		"id":            id,
		"name":          "match " + strconv.Itoa(id),
		"tournament_id": 30,
		"serie_id":      20,
		"league_id":     10,
		"modified_at":   "2024-01-01T00:00:00Z",
		"match_type":    "best_of",
		"status":        "finished",
		"winner_type":   winnerType,
		"winner_id":     winnerID,
	}
}

func matches(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = match(i+1, nil, nil)
	}
	return out
}

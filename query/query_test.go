package query_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pandagraph "github.com/syssam/pandagraph"
	"github.com/syssam/pandagraph/adapter"
	"github.com/syssam/pandagraph/client"
	"github.com/syssam/pandagraph/graph"
	"github.com/syssam/pandagraph/iterator"
	"github.com/syssam/pandagraph/query"
)

const tournamentsQuery = `
root: Tournaments
params: {game: lol, search: LEC}
limit: 2
fields: [name, tier]
edges:
  winner:
    coerce: WinnerTeam
    fields: id
    edges:
      team: {fields: [name, acronym]}
  matches: {limit: 1, fields: [name, match_status]}
`

// =============================================================================
// Parsing
// =============================================================================

func TestParse(t *testing.T) {
	t.Parallel()

	q, err := query.Parse([]byte(tournamentsQuery))
	require.NoError(t, err)

	assert.Equal(t, "Tournaments", q.Root)
	assert.Equal(t, map[string]any{"game": "lol", "search": "LEC"}, q.Params)
	assert.Equal(t, 2, q.Limit)
	assert.Equal(t, query.FieldList{"name", "tier"}, q.Fields)
	require.Contains(t, q.Edges, "winner")
	assert.Equal(t, "WinnerTeam", q.Edges["winner"].Coerce)
	assert.Equal(t, query.FieldList{"id"}, q.Edges["winner"].Fields, "a single field name is accepted")
	assert.Equal(t, 1, q.Edges["matches"].Limit)
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := query.Parse(nil)
	assert.Error(t, err)

	_, err = query.Parse([]byte("root: Teams\nfilter: x\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = query.Parse([]byte("root: Teams\nfields: {a: b}\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "q.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: Teams\nfields: [name]\n"), 0o644))

	q, err := query.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Teams", q.Root)

	_, err = query.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

// =============================================================================
// Validation
// =============================================================================

func TestValidate(t *testing.T) {
	t.Parallel()

	schema := graph.Default()

	tests := []struct {
		name string
		doc  string
		want []string // expected error fragments; empty means valid
	}{
		{name: "valid", doc: tournamentsQuery},
		{name: "missing root", doc: "fields: [name]", want: []string{"missing root"}},
		{name: "unknown root", doc: "root: Games", want: []string{"unknown root edge"}},
		{name: "unknown param", doc: "root: Teams\nparams: {region: eu}", want: []string{`unknown parameter "region"`}},
		{name: "unknown field", doc: "root: Teams\nfields: [salary]", want: []string{`Team has no property "salary"`}},
		{name: "edge as field", doc: "root: Teams\nfields: [players]", want: []string{`no property "players"`}},
		{name: "unknown edge", doc: "root: Teams\nedges: {coach: {}}", want: []string{`Team has no edge "coach"`}},
		{name: "negative limit", doc: "root: Teams\nlimit: -1", want: []string{"negative limit"}},
		{
			name: "coerce to unrelated type",
			doc:  "root: Matches\nedges: {winner: {coerce: Team}}",
			want: []string{"Team is not a subtype of Winner"},
		},
		{
			name: "coerce to unknown type",
			doc:  "root: Matches\nedges: {winner: {coerce: Coach}}",
			want: []string{"unknown type Coach"},
		},
		{
			name: "field of subtype without coercion",
			doc:  "root: Matches\nedges: {winner: {edges: {team: {}}}}",
			want: []string{`Winner has no edge "team"`},
		},
		{
			name: "several problems",
			doc:  "root: Teams\nfields: [a, b]",
			want: []string{`no property "a"`, `no property "b"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, err := query.Parse([]byte(tt.doc))
			require.NoError(t, err)

			err = q.Validate(schema)
			if len(tt.want) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, frag := range tt.want {
				assert.Contains(t, err.Error(), frag)
			}
			var qe *query.Error
			assert.True(t, errors.As(err, &qe))
		})
	}
}

// =============================================================================
// Execution
// =============================================================================

// api serves fixed JSON bodies by path.
type api map[string]any

func (a api) Do(_ context.Context, req *client.Request) (*client.Response, error) {
	v, ok := a[req.Path]
	if !ok {
		return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "not found"}
	}
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &client.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: body}, nil
}

func newExecutor(t *testing.T, fake api) (*query.Executor, *adapter.Adapter) {
	t.Helper()
	c, err := client.New("token", client.WithTransport(fake))
	require.NoError(t, err)
	a := adapter.New(c)
	return query.NewExecutor(a), a
}

func TestRun(t *testing.T) {
	t.Parallel()

	fake := api{
		"/lol/tournaments": []any{
			map[string]any{"id": 1, "name": "Playoffs", "tier": "s", "winner_type": "Team", "winner_id": 7},
			map[string]any{"id": 2, "name": "Regular", "tier": "a", "winner_type": "Player", "winner_id": 9},
			map[string]any{"id": 3, "name": "Never reached"},
		},
		"/teams/7":   map[string]any{"id": 7, "name": "Fnatic", "acronym": "FNC"},
		"/players/9": map[string]any{"id": 9, "name": "Caps"},
		"/tournaments/1/matches": []any{
			map[string]any{"id": 11, "name": "Final", "status": "finished"},
			map[string]any{"id": 12, "name": "Semi", "status": "finished"},
		},
		"/tournaments/2/matches": []any{},
	}
	exec, a := newExecutor(t, fake)

	q, err := query.Parse([]byte(tournamentsQuery))
	require.NoError(t, err)
	rows, err := exec.Run(context.Background(), q)
	require.NoError(t, err)

	got := iterator.Collect(rows)
	require.Len(t, got, 2, "root limit")

	assert.Equal(t, query.Result{
		"name": "Playoffs",
		"tier": "s",
		"winner": []query.Result{{
			"id":   int64(7),
			"team": []query.Result{{"name": "Fnatic", "acronym": "FNC"}},
		}},
		"matches": []query.Result{{"name": "Final", "match_status": "finished"}},
	}, got[0])

	assert.Equal(t, query.Result{
		"name":    "Regular",
		"tier":    "a",
		"winner":  []query.Result{},
		"matches": []query.Result{},
	}, got[1], "player winners are filtered out by the coercion")

	assert.Equal(t, 0, a.Errors().Len())
}

func TestRunRejectsInvalidQuery(t *testing.T) {
	t.Parallel()

	exec, _ := newExecutor(t, api{})
	q, err := query.Parse([]byte("root: Teams\nfields: [salary]"))
	require.NoError(t, err)

	_, err = exec.Run(context.Background(), q)
	assert.Error(t, err)
}

func TestRunRecordsInvalidGame(t *testing.T) {
	t.Parallel()

	exec, a := newExecutor(t, api{})
	q, err := query.Parse([]byte("root: Teams\nparams: {game: dota3}\nfields: [name]"))
	require.NoError(t, err)

	rows, err := exec.Run(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, iterator.Collect(rows))

	errs := a.Errors().Drain()
	require.Len(t, errs, 1)
	assert.True(t, pandagraph.IsInvalidFilterValue(errs[0]))
	assert.Equal(t, 0, a.Errors().Len(), "drained")
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/pandagraph/client"
	"github.com/syssam/pandagraph/query"
)

// =============================================================================
// Positional arguments
// =============================================================================

func TestParseArgs(t *testing.T) {
	t.Parallel()

	n, params, err := parseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultMaxResults, n)
	assert.Nil(t, params)

	n, params, err = parseArgs([]string{"5", "game", "lol", "limit", "3", "ratio", "1.5", "live", "true", "search", "T1"})
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, map[string]any{
		"game":   "lol",
		"limit":  int64(3),
		"ratio":  1.5,
		"live":   true,
		"search": "T1",
	}, params)

	_, _, err = parseArgs([]string{"many"})
	assert.Error(t, err)
	_, _, err = parseArgs([]string{"-1"})
	assert.Error(t, err)
	_, _, err = parseArgs([]string{"2", "game"})
	assert.ErrorContains(t, err, `"game" has no value`)
}

func TestInferValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want any
	}{
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"0.25", 0.25},
		{"1e3", 1000.0},
		{"true", true},
		{"false", false},
		{"True", "True"},
		{"lol", "lol"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, inferValue(tt.in), "input %q", tt.in)
	}
}

// =============================================================================
// Output
// =============================================================================

var rows = []query.Result{
	{"name": "Playoffs", "tier": "s", "winner": []query.Result{{"id": int64(7)}}},
	{"name": "Regular", "tier": nil, "winner": []query.Result{}},
}

func encodeAll(t *testing.T, format string) string {
	t.Helper()
	var buf bytes.Buffer
	enc, err := newEncoder(format, &buf, []string{"name", "tier", "winner"})
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, enc.Encode(row))
	}
	require.NoError(t, enc.Close())
	return buf.String()
}

func TestTableEncoder(t *testing.T) {
	t.Parallel()

	lines := strings.Split(strings.TrimRight(encodeAll(t, formatTable), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"Name", "Tier", "Winner"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"Playoffs", "s", `[{"id":7}]`}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"Regular", "-", "[]"}, strings.Fields(lines[2]))
}

func TestHeaders(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Match Status", "Id", "Video Game"}, headers([]string{"match_status", "id", "video_game"}))
}

func TestJSONEncoder(t *testing.T) {
	t.Parallel()

	dec := json.NewDecoder(strings.NewReader(encodeAll(t, formatJSON)))
	var first map[string]any
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "Playoffs", first["name"])
	assert.Equal(t, []any{map[string]any{"id": 7.0}}, first["winner"])
}

func TestYAMLEncoder(t *testing.T) {
	t.Parallel()

	out := encodeAll(t, formatYAML)
	assert.Contains(t, out, "name: Playoffs")
	assert.Contains(t, out, "---", "one document per row")
}

func TestMsgpackEncoder(t *testing.T) {
	t.Parallel()

	dec := msgpack.NewDecoder(strings.NewReader(encodeAll(t, formatMsgpack)))
	var first map[string]any
	require.NoError(t, dec.Decode(&first))
	assert.Equal(t, "Playoffs", first["name"])
}

func TestUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := newEncoder("xml", &bytes.Buffer{}, nil)
	assert.Error(t, err)
}

// =============================================================================
// Run
// =============================================================================

// fakeAPI serves fixed JSON bodies by path.
func fakeAPI(bodies map[string]string) client.TransportFunc {
	return func(_ context.Context, req *client.Request) (*client.Response, error) {
		body, ok := bodies[req.Path]
		if !ok {
			return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "not found"}
		}
		return &client.Response{StatusCode: http.StatusOK, Header: http.Header{}, Body: []byte(body)}, nil
	}
}

var tournaments = map[string]string{
	"/lol/tournaments": `[
		{"id": 1, "name": "Playoffs", "tier": "s", "winner_type": "Team", "winner_id": 7},
		{"id": 2, "name": "Regular", "tier": "a"}
	]`,
	"/teams/7": `{"id": 7, "name": "Fnatic", "acronym": "FNC"}`,
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pandagraph.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: test-token\nlog_level: error\n"), 0o644))
	return path
}

func TestRunDefaultQuery(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"-config", writeConfig(t), "-format", formatJSON, "0"},
		env{stdout: &stdout, stderr: &stderr, transport: fakeAPI(tournaments)},
	)
	require.NoError(t, err)
	assert.Empty(t, stderr.String())

	dec := json.NewDecoder(&stdout)
	var got []map[string]any
	for dec.More() {
		var row map[string]any
		require.NoError(t, dec.Decode(&row))
		got = append(got, row)
	}
	require.Len(t, got, 2)
	assert.Equal(t, "Playoffs", got[0]["name"])
	assert.Equal(t, []any{map[string]any{
		"team": []any{map[string]any{"name": "Fnatic", "acronym": "FNC", "location": nil}},
	}}, got[0]["winner"])
	assert.Equal(t, []any{}, got[1]["winner"])
}

func TestRunMaxResults(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"-config", writeConfig(t), "-format", formatTable},
		env{stdout: &stdout, stderr: &stderr, transport: fakeAPI(tournaments)},
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	assert.Len(t, lines, 2, "header plus the default single result")
	assert.Contains(t, lines[1], "Playoffs")
}

func TestRunReportsErrors(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"-config", writeConfig(t), "0", "game", "dota3"},
		env{stdout: &stdout, stderr: &stderr, transport: fakeAPI(tournaments)},
	)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), `invalid value "dota3" for filter "game"`)
}

func TestRunQueryFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "q.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: Tournaments\nfields: [name]\n"), 0o644))
	bodies := map[string]string{"/tournaments": `[{"id": 3, "name": "Worlds"}]`}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"-config", writeConfig(t), "-query", path, "-format", formatYAML},
		env{stdout: &stdout, stderr: &stderr, transport: fakeAPI(bodies)},
	)
	require.NoError(t, err)
	assert.Equal(t, "name: Worlds\n", stdout.String())
}

func TestRunRejectsInvalidQuery(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(),
		[]string{"-config", writeConfig(t), "1", "region", "eu"},
		env{stdout: &stdout, stderr: &stderr, transport: fakeAPI(tournaments)},
	)
	assert.ErrorContains(t, err, `unknown parameter "region"`)
}

func TestRunFlags(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-schema"}, env{stdout: &stdout, stderr: &stderr})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "type Tournament")

	err = run(context.Background(), []string{"-watch"}, env{stdout: &stdout, stderr: &stderr})
	assert.ErrorContains(t, err, "-watch needs -query")
}

func TestColumns(t *testing.T) {
	t.Parallel()

	sel := &query.Selection{
		Fields: query.FieldList{"name", "tier"},
		Edges:  map[string]*query.Selection{"winner": {}, "matches": {}},
	}
	assert.Equal(t, []string{"name", "tier", "matches", "winner"}, columns(sel))
}

// =============================================================================
// Watch
// =============================================================================

func TestWatchFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "q.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: Teams\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- watchFile(ctx, path, slog.New(slog.DiscardHandler), func() error {
			select {
			case calls <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// Writes repeat until the watcher has been registered.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644)
		_ = os.WriteFile(path, []byte("root: Players\n"), 0o644)
		select {
		case <-calls:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

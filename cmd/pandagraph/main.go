// Command pandagraph runs graph queries against the PandaScore esports API
// and streams the results.
//
// Usage:
//
//	pandagraph [flags] [max-results] [key value ...]
//
// The first positional argument caps the number of results (default 1, 0
// for no cap). The remaining arguments are key value pairs overriding the
// root parameters of the query; values are typed as integer, float,
// boolean or string, in that order:
//
//	PANDASCORE_TOKEN=... pandagraph -query lec.yaml -format table 5 game lol
//
// Without -query, the built-in query lists tournaments with their winning
// team. Errors met while resolving are printed to stderr; streaming stops
// at the first one.
package main

import (
	"context"
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	pandagraph "github.com/syssam/pandagraph"
	"github.com/syssam/pandagraph/adapter"
	"github.com/syssam/pandagraph/client"
	"github.com/syssam/pandagraph/config"
	"github.com/syssam/pandagraph/graph"
	"github.com/syssam/pandagraph/iterator"
	"github.com/syssam/pandagraph/query"
)

//go:embed default.yaml
var defaultQuery []byte

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], env{stdout: os.Stdout, stderr: os.Stderr})
	if err != nil && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(os.Stderr, "pandagraph: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// env is the process environment run works against.
type env struct {
	stdout, stderr io.Writer
	// transport replaces the HTTP transport when set.
	transport client.Transport
}

type flags struct {
	config      string
	query       string
	format      string
	watch       bool
	logLevel    string
	logFormat   string
	metricsAddr string
	schema      bool
	stats       bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, []string, error) {
	f := &flags{}
	fs := flag.NewFlagSet("pandagraph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "pandagraph.yaml", "configuration file (missing file means defaults)")
	fs.StringVar(&f.query, "query", "", "query document (YAML); the built-in query when empty")
	fs.StringVar(&f.format, "format", formatJSON, "output format: json, yaml, msgpack or table")
	fs.BoolVar(&f.watch, "watch", false, "re-run the query whenever the query file changes")
	fs.StringVar(&f.logLevel, "log-level", "", "log level, overriding the configuration")
	fs.StringVar(&f.logFormat, "log-format", "", "log format (text or json), overriding the configuration")
	fs.StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, overriding the configuration")
	fs.BoolVar(&f.schema, "schema", false, "print the graph schema and exit")
	fs.BoolVar(&f.stats, "stats", false, "log request statistics after each run")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: pandagraph [flags] [max-results] [key value ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if f.watch && f.query == "" {
		return nil, nil, errors.New("-watch needs -query")
	}
	return f, fs.Args(), nil
}

func run(ctx context.Context, args []string, e env) error {
	f, positional, err := parseFlags(args, e.stderr)
	if err != nil {
		return err
	}
	if f.schema {
		_, err := io.WriteString(e.stdout, graph.Source())
		return err
	}
	maxResults, params, err := parseArgs(positional)
	if err != nil {
		return err
	}

	cfg, err := config.Load(f.config)
	if err != nil {
		return err
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}
	if f.metricsAddr != "" {
		cfg.MetricsAddr = f.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := cfg.Logger(e.stderr)
	slog.SetDefault(logger)

	var metrics *client.Metrics
	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = client.NewMetrics(reg)
		shutdown, err := serveMetrics(cfg.MetricsAddr, reg, logger)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
	}

	var stats *client.StatsTransport
	opts := append(cfg.ClientOptions(),
		client.WithLogger(logger),
		client.WithMiddleware(func(t client.Transport) client.Transport {
			stats = client.NewStatsTransport(t,
				client.WithSlowThreshold(cfg.SlowThreshold),
				client.WithSlowRequestLog(),
				client.WithMetrics(metrics),
			)
			return stats
		}),
	)
	if logger.Enabled(ctx, slog.LevelDebug) {
		opts = append(opts, client.WithMiddleware(func(t client.Transport) client.Transport {
			return client.NewDebugTransport(t, client.DebugWithLog(func(ctx context.Context, v ...any) {
				logger.DebugContext(ctx, fmt.Sprint(v...))
			}))
		}))
	}
	if e.transport != nil {
		opts = append(opts, client.WithTransport(e.transport))
	}
	c, err := client.New(cfg.Token, opts...)
	if err != nil {
		return err
	}

	a := adapter.New(c, adapter.WithLogger(logger))
	r := &runner{
		exec:       query.NewExecutor(a),
		errors:     a.Errors(),
		format:     f.format,
		maxResults: maxResults,
		params:     params,
		stdout:     e.stdout,
		stderr:     e.stderr,
	}
	once := func() error {
		q, err := loadQuery(f.query)
		if err != nil {
			return err
		}
		err = r.run(ctx, q)
		if f.stats {
			logger.Info("request statistics", "stats", stats.RequestStats().Stats().String())
		}
		return err
	}

	if !f.watch {
		return once()
	}
	if err := once(); err != nil {
		logger.Error("query failed", "error", err)
	}
	return watchFile(ctx, f.query, logger, once)
}

func loadQuery(path string) (*query.Query, error) {
	if path == "" {
		return query.Parse(defaultQuery)
	}
	return query.Load(path)
}

// runner executes queries and streams their rows.
type runner struct {
	exec       *query.Executor
	errors     *pandagraph.ErrorSink
	format     string
	maxResults int
	params     map[string]any
	stdout     io.Writer
	stderr     io.Writer
}

// run executes q with the command-line parameters applied and writes its
// rows. Errors collected by the adapter are reported before the first row,
// between rows (ending the stream) and after the last row.
func (r *runner) run(ctx context.Context, q *query.Query) error {
	if len(r.params) > 0 {
		if q.Params == nil {
			q.Params = make(map[string]any, len(r.params))
		}
		maps.Copy(q.Params, r.params)
	}
	rows, err := r.exec.Run(ctx, q)
	if err != nil {
		return err
	}
	enc, err := newEncoder(r.format, r.stdout, columns(&q.Selection))
	if err != nil {
		return err
	}
	rows = iterator.Take(rows, r.maxResults)

	r.report()
	for row, ok := rows.Next(); ok; row, ok = rows.Next() {
		if r.report() {
			break
		}
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	r.report()
	return enc.Close()
}

// report prints and clears the collected errors. It reports whether there
// were any.
func (r *runner) report() bool {
	errs := r.errors.Drain()
	for _, err := range errs {
		fmt.Fprintln(r.stderr, err)
	}
	return len(errs) > 0
}

// columns lists the fields, then the edges, of a selection.
func columns(sel *query.Selection) []string {
	out := slices.Clone([]string(sel.Fields))
	return append(out, slices.Sorted(maps.Keys(sel.Edges))...)
}

// serveMetrics serves the Prometheus registry on addr in the background.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) (func(context.Context) error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", ln.Addr().String())
	return srv.Shutdown, nil
}

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-openapi/inflect"

	"github.com/syssam/pandagraph/model"
)

// Defaults applied by New.
const (
	DefaultBaseURL  = "https://api.pandascore.co"
	DefaultPageSize = 50
	DefaultTimeout  = 10 * time.Second

	// MaxPageSize is the largest page size the API serves.
	MaxPageSize = 100
)

// ErrMissingToken is returned by New when the API token is empty.
var ErrMissingToken = errors.New("client: API token is required")

// Game selects a per-game variant of a listing.
type Game string

// Supported games. AllGames lists across every game.
const (
	AllGames        Game = ""
	LeagueOfLegends Game = "lol"
)

// ParseGame returns the Game named by s. Only the games this client
// supports are accepted.
func ParseGame(s string) (Game, bool) {
	switch Game(s) {
	case LeagueOfLegends:
		return LeagueOfLegends, true
	default:
		return AllGames, false
	}
}

// Entity kinds, named as in the graph schema. Resource paths are derived
// from them.
const (
	KindLeague     = "League"
	KindSeries     = "Series"
	KindTournament = "Tournament"
	KindMatch      = "Match"
	KindTeam       = "Team"
	KindPlayer     = "Player"
)

var rules = func() *inflect.Ruleset {
	r := inflect.NewDefaultRuleset()
	r.AddUncountable("series")
	return r
}()

// Resource returns the collection name of an entity kind
// (e.g., "Match" -> "matches").
func Resource(kind string) string {
	return rules.Pluralize(rules.Underscore(kind))
}

// Client is the esports statistics API client.
//
// A Client holds no per-request state and may be shared; the adapter
// serializes the calls it makes.
type Client struct {
	transport Transport
	token     string
	pageSize  int
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*options) error

type options struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	transport  Transport
	middleware []func(Transport) Transport
	pageSize   int
	logger     *slog.Logger
}

// WithBaseURL sets the API base URL. Default is DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(o *options) error {
		if u == "" {
			return errors.New("client: base URL cannot be empty")
		}
		o.baseURL = u
		return nil
	}
}

// WithHTTPClient sets the HTTP client used by the default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client: HTTP client cannot be nil")
		}
		o.httpClient = hc
		return nil
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
// It has no effect together with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d <= 0 {
			return fmt.Errorf("client: timeout must be positive, got %s", d)
		}
		o.timeout = d
		return nil
	}
}

// WithTransport replaces the HTTP transport entirely. Middleware still
// applies on top of it.
func WithTransport(t Transport) Option {
	return func(o *options) error {
		if t == nil {
			return errors.New("client: transport cannot be nil")
		}
		o.transport = t
		return nil
	}
}

// WithMiddleware wraps the transport. Middleware is applied in order, so
// the last one given sees each request first.
//
//	client.New(token,
//	    client.WithMiddleware(func(t client.Transport) client.Transport {
//	        return client.NewStatsTransport(t, client.WithSlowRequestLog())
//	    }),
//	)
func WithMiddleware(mw func(Transport) Transport) Option {
	return func(o *options) error {
		o.middleware = append(o.middleware, mw)
		return nil
	}
}

// WithPageSize sets the page size requested by listings that do not set
// their own. It must be between 1 and MaxPageSize.
func WithPageSize(n int) Option {
	return func(o *options) error {
		if n < 1 || n > MaxPageSize {
			return fmt.Errorf("client: page size must be between 1 and %d, got %d", MaxPageSize, n)
		}
		o.pageSize = n
		return nil
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		o.logger = l
		return nil
	}
}

// New returns a Client authenticating with token.
func New(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	o := &options{
		baseURL:  DefaultBaseURL,
		timeout:  DefaultTimeout,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	transport := o.transport
	if transport == nil {
		hc := o.httpClient
		if hc == nil {
			hc = &http.Client{Timeout: o.timeout}
		}
		ht, err := NewHTTPTransport(o.baseURL, hc)
		if err != nil {
			return nil, err
		}
		transport = ht
	}
	for _, mw := range o.middleware {
		transport = mw(transport)
	}

	return &Client{
		transport: transport,
		token:     token,
		pageSize:  o.pageSize,
		logger:    o.logger,
	}, nil
}

// PageSize returns the default page size.
func (c *Client) PageSize() int {
	return c.pageSize
}

func (c *Client) do(ctx context.Context, req *Request) (*Response, error) {
	if req.Header == nil {
		req.Header = http.Header{}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	return c.transport.Do(ctx, req)
}

// list fetches one page of a listing.
func list[T any](ctx context.Context, c *Client, op, path string, opts ListOptions) (*Page[T], error) {
	if opts.PerPage == 0 {
		opts.PerPage = c.pageSize
	}
	resp, err := c.do(ctx, &Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   path,
		Query:  opts.Values(),
	})
	if err != nil {
		return nil, err
	}
	var items []T
	if err := json.Unmarshal(resp.Body, &items); err != nil {
		return nil, fmt.Errorf("client: decode %s: %w", op, err)
	}
	return &Page[T]{Items: items, Next: nextPage(resp.Header, opts, len(items))}, nil
}

// get fetches a single entity.
func get[T any](ctx context.Context, c *Client, op, path string) (*T, error) {
	resp, err := c.do(ctx, &Request{
		Op:     op,
		Method: http.MethodGet,
		Path:   path,
	})
	if err != nil {
		return nil, err
	}
	var v T
	if err := json.Unmarshal(resp.Body, &v); err != nil {
		return nil, fmt.Errorf("client: decode %s: %w", op, err)
	}
	return &v, nil
}

func collectionPath(game Game, kind string) string {
	if game == AllGames {
		return "/" + Resource(kind)
	}
	return "/" + string(game) + "/" + Resource(kind)
}

func itemPath(kind string, id uint64) string {
	return "/" + Resource(kind) + "/" + strconv.FormatUint(id, 10)
}

func childPath(kind string, id uint64, child string) string {
	return itemPath(kind, id) + "/" + Resource(child)
}

// Operation names of the child listings and single-entity fetches, as
// carried in Request.Op.
const (
	OpLeagueSeries      = "league.series"
	OpSeriesTournaments = "series.tournaments"
	OpTournamentTeams   = "tournament.teams"
	OpTournamentMatches = "tournament.matches"
	OpGetLeague         = "league.get"
	OpGetSeries         = "series.get"
	OpGetTournament     = "tournament.get"
	OpGetTeam           = "team.get"
	OpGetPlayer         = "player.get"
)

// ListOp returns the operation name of a root listing
// (e.g., "lol.matches.list").
func ListOp(game Game, kind string) string {
	if game == AllGames {
		return Resource(kind) + ".list"
	}
	return string(game) + "." + Resource(kind) + ".list"
}

// =============================================================================
// Root listings
// =============================================================================

// ListLeagues lists leagues, across every game or for one game.
func (c *Client) ListLeagues(ctx context.Context, game Game, opts ListOptions) (*Page[model.League], error) {
	return list[model.League](ctx, c, ListOp(game, KindLeague), collectionPath(game, KindLeague), opts)
}

// ListSeries lists series, across every game or for one game.
func (c *Client) ListSeries(ctx context.Context, game Game, opts ListOptions) (*Page[model.Series], error) {
	return list[model.Series](ctx, c, ListOp(game, KindSeries), collectionPath(game, KindSeries), opts)
}

// ListTournaments lists tournaments, across every game or for one game.
func (c *Client) ListTournaments(ctx context.Context, game Game, opts ListOptions) (*Page[model.Tournament], error) {
	return list[model.Tournament](ctx, c, ListOp(game, KindTournament), collectionPath(game, KindTournament), opts)
}

// ListMatches lists matches, across every game or for one game.
func (c *Client) ListMatches(ctx context.Context, game Game, opts ListOptions) (*Page[model.Match], error) {
	return list[model.Match](ctx, c, ListOp(game, KindMatch), collectionPath(game, KindMatch), opts)
}

// ListTeams lists teams, across every game or for one game.
func (c *Client) ListTeams(ctx context.Context, game Game, opts ListOptions) (*Page[model.Team], error) {
	return list[model.Team](ctx, c, ListOp(game, KindTeam), collectionPath(game, KindTeam), opts)
}

// ListPlayers lists players, across every game or for one game.
func (c *Client) ListPlayers(ctx context.Context, game Game, opts ListOptions) (*Page[model.Player], error) {
	return list[model.Player](ctx, c, ListOp(game, KindPlayer), collectionPath(game, KindPlayer), opts)
}

// =============================================================================
// Child listings
// =============================================================================

// ListLeagueSeries lists the series of a league.
func (c *Client) ListLeagueSeries(ctx context.Context, leagueID uint64, opts ListOptions) (*Page[model.Series], error) {
	return list[model.Series](ctx, c, OpLeagueSeries, childPath(KindLeague, leagueID, KindSeries), opts)
}

// ListSeriesTournaments lists the tournaments of a series.
func (c *Client) ListSeriesTournaments(ctx context.Context, seriesID uint64, opts ListOptions) (*Page[model.Tournament], error) {
	return list[model.Tournament](ctx, c, OpSeriesTournaments, childPath(KindSeries, seriesID, KindTournament), opts)
}

// ListTournamentTeams lists the teams taking part in a tournament.
func (c *Client) ListTournamentTeams(ctx context.Context, tournamentID uint64, opts ListOptions) (*Page[model.Team], error) {
	return list[model.Team](ctx, c, OpTournamentTeams, childPath(KindTournament, tournamentID, KindTeam), opts)
}

// ListTournamentMatches lists the matches of a tournament.
func (c *Client) ListTournamentMatches(ctx context.Context, tournamentID uint64, opts ListOptions) (*Page[model.Match], error) {
	return list[model.Match](ctx, c, OpTournamentMatches, childPath(KindTournament, tournamentID, KindMatch), opts)
}

// =============================================================================
// Single entities
// =============================================================================

// GetLeague fetches a league by id.
func (c *Client) GetLeague(ctx context.Context, id uint64) (*model.League, error) {
	return get[model.League](ctx, c, OpGetLeague, itemPath(KindLeague, id))
}

// GetSeries fetches a series by id.
func (c *Client) GetSeries(ctx context.Context, id uint64) (*model.Series, error) {
	return get[model.Series](ctx, c, OpGetSeries, itemPath(KindSeries, id))
}

// GetTournament fetches a tournament by id.
func (c *Client) GetTournament(ctx context.Context, id uint64) (*model.Tournament, error) {
	return get[model.Tournament](ctx, c, OpGetTournament, itemPath(KindTournament, id))
}

// GetTeam fetches a team by id.
func (c *Client) GetTeam(ctx context.Context, id uint64) (*model.Team, error) {
	return get[model.Team](ctx, c, OpGetTeam, itemPath(KindTeam, id))
}

// GetPlayer fetches a player by id.
func (c *Client) GetPlayer(ctx context.Context, id uint64) (*model.Player, error) {
	return get[model.Player](ctx, c, OpGetPlayer, itemPath(KindPlayer, id))
}

package adapter

import (
	"context"
	"fmt"

	pandagraph "github.com/syssam/pandagraph"
	"github.com/syssam/pandagraph/client"
	"github.com/syssam/pandagraph/iterator"
	"github.com/syssam/pandagraph/model"
)

// Root edge parameters.
const (
	ParamGame   = "game"
	ParamSearch = "search"
)

// root lists every vertex of one kind for a game.
type root func(a *Adapter, ctx context.Context, game client.Game, opts client.ListOptions) iterator.Iterator[Vertex]

var roots = map[string]root{
	"Leagues": func(a *Adapter, ctx context.Context, game client.Game, opts client.ListOptions) iterator.Iterator[Vertex] {
		return paginate(a, ctx, client.ListOp(game, client.KindLeague), opts,
			func(ctx context.Context, o client.ListOptions) (*client.Page[model.League], error) {
				return a.client.ListLeagues(ctx, game, o)
			}, newLeague)
	},
	"Series": func(a *Adapter, ctx context.Context, game client.Game, opts client.ListOptions) iterator.Iterator[Vertex] {
		return paginate(a, ctx, client.ListOp(game, client.KindSeries), opts,
			func(ctx context.Context, o client.ListOptions) (*client.Page[model.Series], error) {
				return a.client.ListSeries(ctx, game, o)
			}, newSeries)
	},
	"Tournaments": func(a *Adapter, ctx context.Context, game client.Game, opts client.ListOptions) iterator.Iterator[Vertex] {
		return paginate(a, ctx, client.ListOp(game, client.KindTournament), opts,
			func(ctx context.Context, o client.ListOptions) (*client.Page[model.Tournament], error) {
				return a.client.ListTournaments(ctx, game, o)
			}, newTournament)
	},
	"Matches": func(a *Adapter, ctx context.Context, game client.Game, opts client.ListOptions) iterator.Iterator[Vertex] {
		return paginate(a, ctx, client.ListOp(game, client.KindMatch), opts,
			func(ctx context.Context, o client.ListOptions) (*client.Page[model.Match], error) {
				return a.client.ListMatches(ctx, game, o)
			}, newMatch)
	},
	"Teams": func(a *Adapter, ctx context.Context, game client.Game, opts client.ListOptions) iterator.Iterator[Vertex] {
		return paginate(a, ctx, client.ListOp(game, client.KindTeam), opts,
			func(ctx context.Context, o client.ListOptions) (*client.Page[model.Team], error) {
				return a.client.ListTeams(ctx, game, o)
			}, newTeam)
	},
	"Players": func(a *Adapter, ctx context.Context, game client.Game, opts client.ListOptions) iterator.Iterator[Vertex] {
		return paginate(a, ctx, client.ListOp(game, client.KindPlayer), opts,
			func(ctx context.Context, o client.ListOptions) (*client.Page[model.Player], error) {
				return a.client.ListPlayers(ctx, game, o)
			}, newPlayer)
	},
}

// Start lists the vertices of a root edge lazily, page by page.
//
// An absent or nil "game" parameter lists across every game; "lol" lists
// League of Legends only. Any other value is recorded in the error sink as
// an InvalidFilterValueError and yields an empty sequence without touching
// the network. A "search" parameter filters by name on the server.
//
// An unknown root edge panics with a ContractError.
func (a *Adapter) Start(ctx context.Context, edge string, params Params) iterator.Iterator[Vertex] {
	list, ok := roots[edge]
	if !ok {
		pandagraph.Unreachable("attempted to resolve starting vertices for unexpected edge name: %s", edge)
	}

	game, ok := a.game(params)
	if !ok {
		return iterator.Empty[Vertex]()
	}
	var opts client.ListOptions
	if search, ok := params[ParamSearch]; ok && search != nil {
		opts = opts.WithSearch("name", fmt.Sprint(search))
	}
	return list(a, ctx, game, opts)
}

// game reads the game parameter, recording an invalid value.
func (a *Adapter) game(params Params) (client.Game, bool) {
	raw, ok := params[ParamGame]
	if !ok || raw == nil {
		return client.AllGames, true
	}
	s, isString := raw.(string)
	if !isString {
		s = fmt.Sprint(raw)
	}
	if game, ok := client.ParseGame(s); ok && isString {
		return game, true
	}
	a.sink.Record(pandagraph.NewInvalidFilterValueError(ParamGame, s))
	return client.AllGames, false
}

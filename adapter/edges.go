package adapter

import (
	"context"

	pandagraph "github.com/syssam/pandagraph"
	"github.com/syssam/pandagraph/client"
	"github.com/syssam/pandagraph/iterator"
	"github.com/syssam/pandagraph/model"
	"github.com/syssam/pandagraph/pagination"
)

// neighbors resolves one edge of one vertex.
type neighbors func(Vertex) iterator.Iterator[Vertex]

// Neighbor resolves an edge for every context: each outcome carries a
// fresh lazy sequence of the neighboring vertices, and nothing is fetched
// until that sequence is pulled. A context without an active vertex gets
// an empty sequence.
//
// Paged edges record a failed page in the error sink and end early.
// Single-hop fetches (direct references, team members, winners) drop a
// failed fetch and record nothing.
//
// No edge currently takes parameters; params is accepted for symmetry with
// Start. Unknown type or edge names panic with a ContractError when
// Neighbor is called.
func (a *Adapter) Neighbor(ctx context.Context, contexts iterator.Iterator[Context], typeName, edge string, params Params) iterator.Iterator[Outcome[iterator.Iterator[Vertex]]] {
	resolve := a.edge(ctx, typeName, edge)
	return iterator.Map(contexts, func(c Context) Outcome[iterator.Iterator[Vertex]] {
		v := c.ActiveVertex()
		if v == nil {
			return Outcome[iterator.Iterator[Vertex]]{Context: c, Value: iterator.Empty[Vertex]()}
		}
		return Outcome[iterator.Iterator[Vertex]]{Context: c, Value: resolve(v)}
	})
}

func (a *Adapter) edge(ctx context.Context, typeName, edge string) neighbors {
	var resolve neighbors
	switch typeName {
	case TypeLeague:
		resolve = a.leagueEdge(ctx, edge)
	case TypeSeries:
		resolve = a.seriesEdge(ctx, edge)
	case TypeTournament:
		resolve = a.tournamentEdge(ctx, edge)
	case TypeMatch:
		resolve = a.matchEdge(ctx, edge)
	case TypeTeam:
		resolve = a.teamEdge(ctx, edge)
	case TypePlayer:
		resolve = a.playerEdge(ctx, edge)
	case TypeWinnerTeam:
		if edge == "team" {
			resolve = on(typeName, func(v *WinnerTeamVertex) iterator.Iterator[Vertex] {
				return iterator.Of[Vertex](newTeam(v.Team))
			})
		}
	case TypeWinnerPlayer:
		if edge == "player" {
			resolve = on(typeName, func(v *WinnerPlayerVertex) iterator.Iterator[Vertex] {
				return iterator.Of[Vertex](newPlayer(v.Player))
			})
		}
	default:
		pandagraph.Unreachable("attempted to resolve edge %q on unexpected type %s", edge, typeName)
	}
	if resolve == nil {
		pandagraph.Unreachable("attempted to resolve unexpected edge %q on type %s", edge, typeName)
	}
	return resolve
}

// on adapts a resolver for one vertex kind to any vertex, checking the kind.
func on[V Vertex](typeName string, fn func(V) iterator.Iterator[Vertex]) neighbors {
	return func(v Vertex) iterator.Iterator[Vertex] {
		return fn(as[V](v, typeName))
	}
}

func (a *Adapter) leagueEdge(ctx context.Context, edge string) neighbors {
	if edge == "series" {
		return on(TypeLeague, func(v *LeagueVertex) iterator.Iterator[Vertex] {
			id := v.League.ID
			return paginate(a, ctx, client.OpLeagueSeries, client.ListOptions{},
				func(ctx context.Context, opts client.ListOptions) (*client.Page[model.Series], error) {
					return a.client.ListLeagueSeries(ctx, id, opts)
				}, newSeries)
		})
	}
	return nil
}

func (a *Adapter) seriesEdge(ctx context.Context, edge string) neighbors {
	switch edge {
	case "tournaments":
		return on(TypeSeries, func(v *SeriesVertex) iterator.Iterator[Vertex] {
			id := v.Series.ID
			return paginate(a, ctx, client.OpSeriesTournaments, client.ListOptions{},
				func(ctx context.Context, opts client.ListOptions) (*client.Page[model.Tournament], error) {
					return a.client.ListSeriesTournaments(ctx, id, opts)
				}, newTournament)
		})
	case "winner":
		return on(TypeSeries, func(v *SeriesVertex) iterator.Iterator[Vertex] {
			return a.winner(ctx, v.Series.Winner)
		})
	case "league":
		return on(TypeSeries, func(v *SeriesVertex) iterator.Iterator[Vertex] {
			return a.league(ctx, v.Series.LeagueID)
		})
	}
	return nil
}

func (a *Adapter) tournamentEdge(ctx context.Context, edge string) neighbors {
	switch edge {
	case "teams":
		return on(TypeTournament, func(v *TournamentVertex) iterator.Iterator[Vertex] {
			id := v.Tournament.ID
			return paginate(a, ctx, client.OpTournamentTeams, client.ListOptions{},
				func(ctx context.Context, opts client.ListOptions) (*client.Page[model.Team], error) {
					return a.client.ListTournamentTeams(ctx, id, opts)
				}, newTeam)
		})
	case "matches":
		return on(TypeTournament, func(v *TournamentVertex) iterator.Iterator[Vertex] {
			id := v.Tournament.ID
			return paginate(a, ctx, client.OpTournamentMatches, client.ListOptions{},
				func(ctx context.Context, opts client.ListOptions) (*client.Page[model.Match], error) {
					return a.client.ListTournamentMatches(ctx, id, opts)
				}, newMatch)
		})
	case "video_game":
		return on(TypeTournament, func(v *TournamentVertex) iterator.Iterator[Vertex] {
			return iterator.Of[Vertex](&VideoGameVertex{VideoGame: &v.Tournament.VideoGame})
		})
	case "winner":
		return on(TypeTournament, func(v *TournamentVertex) iterator.Iterator[Vertex] {
			return a.winner(ctx, v.Tournament.Winner)
		})
	case "league":
		return on(TypeTournament, func(v *TournamentVertex) iterator.Iterator[Vertex] {
			return a.league(ctx, v.Tournament.LeagueID)
		})
	case "series":
		return on(TypeTournament, func(v *TournamentVertex) iterator.Iterator[Vertex] {
			return a.series(ctx, v.Tournament.SerieID)
		})
	}
	return nil
}

func (a *Adapter) matchEdge(ctx context.Context, edge string) neighbors {
	switch edge {
	case "winner":
		return on(TypeMatch, func(v *MatchVertex) iterator.Iterator[Vertex] {
			return a.winner(ctx, v.Match.Winner)
		})
	case "league":
		return on(TypeMatch, func(v *MatchVertex) iterator.Iterator[Vertex] {
			return a.league(ctx, v.Match.LeagueID)
		})
	case "series":
		return on(TypeMatch, func(v *MatchVertex) iterator.Iterator[Vertex] {
			return a.series(ctx, v.Match.SerieID)
		})
	case "tournament":
		return on(TypeMatch, func(v *MatchVertex) iterator.Iterator[Vertex] {
			id := v.Match.TournamentID
			return fetch(a, ctx, client.OpGetTournament, func(ctx context.Context) (*model.Tournament, error) {
				return a.client.GetTournament(ctx, id)
			}, newTournament)
		})
	}
	return nil
}

func (a *Adapter) teamEdge(ctx context.Context, edge string) neighbors {
	if edge == "players" {
		return on(TypeTeam, func(v *TeamVertex) iterator.Iterator[Vertex] {
			return a.members(ctx, v.Team.Players)
		})
	}
	return nil
}

func (a *Adapter) playerEdge(ctx context.Context, edge string) neighbors {
	if edge == "current_team" {
		return on(TypePlayer, func(v *PlayerVertex) iterator.Iterator[Vertex] {
			ref := v.Player.CurrentTeam
			if ref == nil {
				return iterator.Empty[Vertex]()
			}
			id := ref.ID
			return fetch(a, ctx, client.OpGetTeam, func(ctx context.Context) (*model.Team, error) {
				return a.client.GetTeam(ctx, id)
			}, newTeam)
		})
	}
	return nil
}

// =============================================================================
// Resolution shapes
// =============================================================================

// paginate walks a paged listing lazily. A failed page is recorded in the
// sink as an EndpointError and ends the sequence.
func paginate[T any](
	a *Adapter,
	ctx context.Context,
	op string,
	first client.ListOptions,
	list func(context.Context, client.ListOptions) (*client.Page[T], error),
	wrap func(*T) Vertex,
) iterator.Iterator[Vertex] {
	pager := pagination.New(a.sink, op, first, func(cursor client.ListOptions) ([]T, *client.ListOptions, error) {
		var page *client.Page[T]
		err := a.exec.do(ctx, op, func(ctx context.Context) error {
			var err error
			page, err = list(ctx, cursor)
			return err
		})
		if err != nil {
			return nil, nil, err
		}
		return page.Items, page.Next, nil
	})
	return iterator.Map[T, Vertex](pager, func(item T) Vertex {
		return wrap(&item)
	})
}

// fetch resolves a single reference on first pull. A failed fetch yields
// nothing and is only logged.
func fetch[T any](
	a *Adapter,
	ctx context.Context,
	op string,
	get func(context.Context) (*T, error),
	wrap func(*T) Vertex,
) iterator.Iterator[Vertex] {
	return iterator.Lazy(func() (Vertex, bool) {
		v, ok := lookup(a, ctx, op, get)
		if !ok {
			return nil, false
		}
		return wrap(v), true
	})
}

// lookup runs a single-entity fetch through the executor, dropping failures.
func lookup[T any](a *Adapter, ctx context.Context, op string, get func(context.Context) (*T, error)) (*T, bool) {
	var out *T
	err := a.exec.do(ctx, op, func(ctx context.Context) error {
		var err error
		out, err = get(ctx)
		return err
	})
	if err != nil {
		a.logger.DebugContext(ctx, "dropping unresolved reference", "op", op, "error", err)
		return nil, false
	}
	return out, true
}

func (a *Adapter) league(ctx context.Context, id uint64) iterator.Iterator[Vertex] {
	return fetch(a, ctx, client.OpGetLeague, func(ctx context.Context) (*model.League, error) {
		return a.client.GetLeague(ctx, id)
	}, newLeague)
}

func (a *Adapter) series(ctx context.Context, id uint64) iterator.Iterator[Vertex] {
	return fetch(a, ctx, client.OpGetSeries, func(ctx context.Context) (*model.Series, error) {
		return a.client.GetSeries(ctx, id)
	}, newSeries)
}

// members fetches each roster member in roster order, one fetch per pull.
// Members that fail to resolve are skipped.
func (a *Adapter) members(ctx context.Context, roster []model.TeamMember) iterator.Iterator[Vertex] {
	return iterator.FilterMap(iterator.Of(roster...), func(m model.TeamMember) (Vertex, bool) {
		p, ok := lookup(a, ctx, client.OpGetPlayer, func(ctx context.Context) (*model.Player, error) {
			return a.client.GetPlayer(ctx, m.ID)
		})
		if !ok {
			return nil, false
		}
		return newPlayer(p), true
	})
}

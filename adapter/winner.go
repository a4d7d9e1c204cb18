package adapter

import (
	"context"

	"github.com/syssam/pandagraph/client"
	"github.com/syssam/pandagraph/iterator"
	"github.com/syssam/pandagraph/model"
)

// winner resolves the polymorphic winner reference of a series, tournament
// or match into a WinnerTeam or WinnerPlayer vertex. An absent reference,
// a reference without an id, an unrecognized tag or a failed fetch all
// resolve to nothing, without touching the error sink.
func (a *Adapter) winner(ctx context.Context, w *model.Winner) iterator.Iterator[Vertex] {
	if w == nil || w.ID == nil {
		return iterator.Empty[Vertex]()
	}
	id := *w.ID

	switch w.Type {
	case model.WinnerTypeTeam:
		return fetch(a, ctx, client.OpGetTeam, func(ctx context.Context) (*model.Team, error) {
			return a.client.GetTeam(ctx, id)
		}, func(t *model.Team) Vertex {
			return &WinnerTeamVertex{ID: id, Team: t}
		})
	case model.WinnerTypePlayer:
		return fetch(a, ctx, client.OpGetPlayer, func(ctx context.Context) (*model.Player, error) {
			return a.client.GetPlayer(ctx, id)
		}, func(p *model.Player) Vertex {
			return &WinnerPlayerVertex{ID: id, Player: p}
		})
	default:
		a.logger.DebugContext(ctx, "ignoring winner of unknown type", "type", w.Type, "id", id)
		return iterator.Empty[Vertex]()
	}
}

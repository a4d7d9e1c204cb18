// Package adapter resolves graph queries over the esports API lazily.
//
// A query engine drives an Adapter through four operations:
//
//   - Start lists the vertices of a root edge (Leagues, Matches, ...).
//   - Property reads one property for a stream of contexts.
//   - Neighbor follows one edge for a stream of contexts.
//   - Coerce narrows a stream of contexts to a subtype.
//
// Each returns an iterator.Iterator and does no work until it is pulled.
// Property, Neighbor and Coerce emit exactly one outcome per input
// context, in input order, so the caller can zip results back onto rows.
//
//	a := adapter.New(c)
//	tournaments := a.Start(ctx, "Tournaments", adapter.Params{"game": "lol"})
//	rows := iterator.Map(tournaments, adapter.NewContext)
//	names := a.Property(rows, "Tournament", "name")
//	for o, ok := names.Next(); ok; o, ok = names.Next() {
//	    fmt.Println(o.Value)
//	}
//
// # Vertices
//
// Vertex is a closed set of pointer types, one per schema type. Winner
// references resolve to WinnerTeamVertex or WinnerPlayerVertex, both of
// which coerce to Winner.
//
// # Errors
//
// Failures that lose data silently are kept apart from failures that are
// reported. A page of a listing that cannot be fetched is recorded in the
// Errors sink as a pandagraph.EndpointError and ends that listing. A
// single referenced entity (a league, a roster member, a winner) that
// cannot be fetched is treated as absent and only logged at debug level.
// An unsupported "game" value is recorded as an InvalidFilterValueError.
//
// Names the schema does not declare are programming errors and panic with
// a *pandagraph.ContractError.
package adapter

// Package graph holds the static schema of the esports graph: which vertex
// types exist, which of their fields are properties and which are edges,
// and which types may be coerced to which.
//
// The schema is written in GraphQL SDL (schema.graphql, embedded) and
// parsed with gqlparser once per process:
//
//	s := graph.Default()
//	s.RootFields()                        // [Leagues Series Tournaments Matches Teams Players]
//	s.EdgeTarget("Tournament", "winner")  // "Winner", true
//	s.CanCoerce("WinnerTeam", "Winner")   // true
//
// # Vertex Types
//
// Entity types mirror the API records: League, Series, Tournament, Match,
// Team, Player and VideoGame. The winner relation is polymorphic:
//
//	interface Winner { id: Int }
//	type WinnerTeam implements Winner { id: Int, team: Team! }
//	type WinnerPlayer implements Winner { id: Int, player: Player! }
//
// # Root Fields
//
// Every root field lists one entity type and is named after its plural
// (Leagues lists League, Series lists Series). Parse rejects schemas that
// break the naming rule, since clients derive listing operations from it.
//
// # Coercion
//
// CanCoerce answers from an explicit subtype to supertype table built from
// the interfaces each type implements. A type always coerces to itself.
package graph

// Package model holds the entity records returned by the esports
// statistics API.
//
// Records mirror the upstream JSON: optional values are pointers,
// timestamps are time.Time, calendar dates are Date. Related entities are
// carried either as lightweight references (LeagueRef, SeriesRef, TeamRef,
// TeamMember) that must be fetched to be traversed, or embedded in full
// (Tournament.VideoGame).
//
// # Winner
//
// Series, tournaments and matches report their winner as a pair of
// top-level fields, winner_type and winner_id. Both are folded into a
// single *Winner while decoding:
//
//	nil                                  no winner_type: no winner yet
//	&Winner{Type: WinnerTypeTeam, ID: &7} team 7 won
//	&Winner{Type: WinnerTypeTeam}         malformed upstream data
//
// # Enumerations
//
// Tier, MatchType and MatchStatus are closed sets. Token returns the
// canonical lowercase token, or "unknown" for members this package does
// not know about yet.
package model

package adapter

import (
	pandagraph "github.com/syssam/pandagraph"
	"github.com/syssam/pandagraph/model"
)

// Vertex is a node of the esports graph. The set of implementations is
// closed; resolvers switch over it exhaustively.
type Vertex interface {
	// Typename returns the schema type of the vertex.
	Typename() string

	vertex()
}

// LeagueVertex is a League.
type LeagueVertex struct {
	League *model.League
}

// SeriesVertex is a Series.
type SeriesVertex struct {
	Series *model.Series
}

// TournamentVertex is a Tournament.
type TournamentVertex struct {
	Tournament *model.Tournament
}

// MatchVertex is a Match.
type MatchVertex struct {
	Match *model.Match
}

// TeamVertex is a Team.
type TeamVertex struct {
	Team *model.Team
}

// PlayerVertex is a Player.
type PlayerVertex struct {
	Player *model.Player
}

// VideoGameVertex is the video game a tournament is played on.
type VideoGameVertex struct {
	VideoGame *model.VideoGame
}

// WinnerVertex is an unresolved winner reference.
type WinnerVertex struct {
	Winner *model.Winner
}

// WinnerTeamVertex is a winner resolved to a team.
type WinnerTeamVertex struct {
	ID   uint64
	Team *model.Team
}

// WinnerPlayerVertex is a winner resolved to a player.
type WinnerPlayerVertex struct {
	ID     uint64
	Player *model.Player
}

// Schema type names of the vertex kinds.
const (
	TypeLeague       = "League"
	TypeSeries       = "Series"
	TypeTournament   = "Tournament"
	TypeMatch        = "Match"
	TypeTeam         = "Team"
	TypePlayer       = "Player"
	TypeVideoGame    = "VideoGame"
	TypeWinner       = "Winner"
	TypeWinnerTeam   = "WinnerTeam"
	TypeWinnerPlayer = "WinnerPlayer"
)

func (*LeagueVertex) Typename() string       { return TypeLeague }
func (*SeriesVertex) Typename() string       { return TypeSeries }
func (*TournamentVertex) Typename() string   { return TypeTournament }
func (*MatchVertex) Typename() string        { return TypeMatch }
func (*TeamVertex) Typename() string         { return TypeTeam }
func (*PlayerVertex) Typename() string       { return TypePlayer }
func (*VideoGameVertex) Typename() string    { return TypeVideoGame }
func (*WinnerVertex) Typename() string       { return TypeWinner }
func (*WinnerTeamVertex) Typename() string   { return TypeWinnerTeam }
func (*WinnerPlayerVertex) Typename() string { return TypeWinnerPlayer }

func (*LeagueVertex) vertex()       {}
func (*SeriesVertex) vertex()       {}
func (*TournamentVertex) vertex()   {}
func (*MatchVertex) vertex()        {}
func (*TeamVertex) vertex()         {}
func (*PlayerVertex) vertex()       {}
func (*VideoGameVertex) vertex()    {}
func (*WinnerVertex) vertex()       {}
func (*WinnerTeamVertex) vertex()   {}
func (*WinnerPlayerVertex) vertex() {}

// as returns v as a V, panicking with a ContractError when the vertex is
// not of the type the resolver was dispatched for.
func as[V Vertex](v Vertex, typeName string) V {
	out, ok := v.(V)
	if !ok {
		pandagraph.Unreachable("expected active vertex to be %s, got %s", typeName, v.Typename())
	}
	return out
}

func newLeague(l *model.League) Vertex         { return &LeagueVertex{League: l} }
func newSeries(s *model.Series) Vertex         { return &SeriesVertex{Series: s} }
func newTournament(t *model.Tournament) Vertex { return &TournamentVertex{Tournament: t} }
func newMatch(m *model.Match) Vertex           { return &MatchVertex{Match: m} }
func newTeam(t *model.Team) Vertex             { return &TeamVertex{Team: t} }
func newPlayer(p *model.Player) Vertex         { return &PlayerVertex{Player: p} }

package adapter

import (
	pandagraph "github.com/syssam/pandagraph"
	"github.com/syssam/pandagraph/iterator"
)

// properties maps a property name to its raw value on a vertex.
type properties[V Vertex] map[string]func(V) any

var leagueProperties = properties[*LeagueVertex]{
	"id":          func(v *LeagueVertex) any { return v.League.ID },
	"image_url":   func(v *LeagueVertex) any { return v.League.ImageURL },
	"modified_at": func(v *LeagueVertex) any { return v.League.ModifiedAt },
	"name":        func(v *LeagueVertex) any { return v.League.Name },
	"slug":        func(v *LeagueVertex) any { return v.League.Slug },
	"url":         func(v *LeagueVertex) any { return v.League.URL },
}

var seriesProperties = properties[*SeriesVertex]{
	"id":          func(v *SeriesVertex) any { return v.Series.ID },
	"modified_at": func(v *SeriesVertex) any { return v.Series.ModifiedAt },
	"begin_at":    func(v *SeriesVertex) any { return v.Series.BeginAt },
	"end_at":      func(v *SeriesVertex) any { return v.Series.EndAt },
	"full_name":   func(v *SeriesVertex) any { return v.Series.FullName },
	"name":        func(v *SeriesVertex) any { return v.Series.Name },
	"season":      func(v *SeriesVertex) any { return v.Series.Season },
	"slug":        func(v *SeriesVertex) any { return v.Series.Slug },
	"year":        func(v *SeriesVertex) any { return v.Series.Year },
}

var tournamentProperties = properties[*TournamentVertex]{
	"id":             func(v *TournamentVertex) any { return v.Tournament.ID },
	"modified_at":    func(v *TournamentVertex) any { return v.Tournament.ModifiedAt },
	"begin_at":       func(v *TournamentVertex) any { return v.Tournament.BeginAt },
	"end_at":         func(v *TournamentVertex) any { return v.Tournament.EndAt },
	"detailed_stats": func(v *TournamentVertex) any { return v.Tournament.DetailedStats },
	"has_bracket":    func(v *TournamentVertex) any { return v.Tournament.HasBracket },
	"live_supported": func(v *TournamentVertex) any { return v.Tournament.LiveSupported },
	"name":           func(v *TournamentVertex) any { return v.Tournament.Name },
	"prize_pool":     func(v *TournamentVertex) any { return v.Tournament.PrizePool },
	"slug":           func(v *TournamentVertex) any { return v.Tournament.Slug },
	"tier":           func(v *TournamentVertex) any { return v.Tournament.Tier },
}

var matchProperties = properties[*MatchVertex]{
	"id":                    func(v *MatchVertex) any { return v.Match.ID },
	"tournament_id":         func(v *MatchVertex) any { return v.Match.TournamentID },
	"series_id":             func(v *MatchVertex) any { return v.Match.SerieID },
	"league_id":             func(v *MatchVertex) any { return v.Match.LeagueID },
	"modified_at":           func(v *MatchVertex) any { return v.Match.ModifiedAt },
	"begin_at":              func(v *MatchVertex) any { return v.Match.BeginAt },
	"end_at":                func(v *MatchVertex) any { return v.Match.EndAt },
	"original_scheduled_at": func(v *MatchVertex) any { return v.Match.OriginalScheduledAt },
	"rescheduled":           func(v *MatchVertex) any { return v.Match.Rescheduled },
	"scheduled_at":          func(v *MatchVertex) any { return v.Match.ScheduledAt },
	"detailed_stats":        func(v *MatchVertex) any { return v.Match.DetailedStats },
	"draw":                  func(v *MatchVertex) any { return v.Match.Draw },
	"forfeit":               func(v *MatchVertex) any { return v.Match.Forfeit },
	"game_advantage":        func(v *MatchVertex) any { return v.Match.GameAdvantage },
	"match_type":            func(v *MatchVertex) any { return v.Match.MatchType },
	"number_of_games":       func(v *MatchVertex) any { return v.Match.NumberOfGames },
	"match_status":          func(v *MatchVertex) any { return v.Match.Status },
	"name":                  func(v *MatchVertex) any { return v.Match.Name },
	"slug":                  func(v *MatchVertex) any { return v.Match.Slug },
}

var teamProperties = properties[*TeamVertex]{
	"id":          func(v *TeamVertex) any { return v.Team.ID },
	"acronym":     func(v *TeamVertex) any { return v.Team.Acronym },
	"image_url":   func(v *TeamVertex) any { return v.Team.ImageURL },
	"location":    func(v *TeamVertex) any { return v.Team.Location },
	"modified_at": func(v *TeamVertex) any { return v.Team.ModifiedAt },
	"name":        func(v *TeamVertex) any { return v.Team.Name },
	"slug":        func(v *TeamVertex) any { return v.Team.Slug },
}

var playerProperties = properties[*PlayerVertex]{
	"id":          func(v *PlayerVertex) any { return v.Player.ID },
	"age":         func(v *PlayerVertex) any { return v.Player.Age },
	"birthday":    func(v *PlayerVertex) any { return v.Player.Birthday },
	"first_name":  func(v *PlayerVertex) any { return v.Player.FirstName },
	"image_url":   func(v *PlayerVertex) any { return v.Player.ImageURL },
	"last_name":   func(v *PlayerVertex) any { return v.Player.LastName },
	"modified_at": func(v *PlayerVertex) any { return v.Player.ModifiedAt },
	"name":        func(v *PlayerVertex) any { return v.Player.Name },
	"nationality": func(v *PlayerVertex) any { return v.Player.Nationality },
	"role":        func(v *PlayerVertex) any { return v.Player.Role },
	"slug":        func(v *PlayerVertex) any { return v.Player.Slug },
}

var videoGameProperties = properties[*VideoGameVertex]{
	"id":              func(v *VideoGameVertex) any { return v.VideoGame.ID },
	"name":            func(v *VideoGameVertex) any { return v.VideoGame.Name },
	"slug":            func(v *VideoGameVertex) any { return v.VideoGame.Slug },
	"current_version": func(v *VideoGameVertex) any { return v.VideoGame.CurrentVersion },
}

var winnerTeamProperties = properties[*WinnerTeamVertex]{
	"id": func(v *WinnerTeamVertex) any { return v.ID },
}

var winnerPlayerProperties = properties[*WinnerPlayerVertex]{
	"id": func(v *WinnerPlayerVertex) any { return v.ID },
}

// winnerProperties are read through the Winner interface, so any of its
// implementations may be the active vertex.
var winnerProperties = properties[Vertex]{
	"id": func(v Vertex) any {
		switch w := v.(type) {
		case *WinnerVertex:
			if w.Winner == nil {
				return nil
			}
			return w.Winner.ID
		case *WinnerTeamVertex:
			return w.ID
		case *WinnerPlayerVertex:
			return w.ID
		default:
			pandagraph.Unreachable("expected active vertex to be %s, got %s", TypeWinner, v.Typename())
			return nil
		}
	},
}

// Property resolves one property for every context. The output has one
// outcome per input context, in the same order. A context without an
// active vertex resolves to nil.
//
// Unknown type or property names panic with a ContractError when Property
// is called, before any context is read.
func (a *Adapter) Property(contexts iterator.Iterator[Context], typeName, property string) iterator.Iterator[Outcome[any]] {
	switch typeName {
	case TypeLeague:
		return resolveProperty(contexts, typeName, property, leagueProperties)
	case TypeSeries:
		return resolveProperty(contexts, typeName, property, seriesProperties)
	case TypeTournament:
		return resolveProperty(contexts, typeName, property, tournamentProperties)
	case TypeMatch:
		return resolveProperty(contexts, typeName, property, matchProperties)
	case TypeTeam:
		return resolveProperty(contexts, typeName, property, teamProperties)
	case TypePlayer:
		return resolveProperty(contexts, typeName, property, playerProperties)
	case TypeVideoGame:
		return resolveProperty(contexts, typeName, property, videoGameProperties)
	case TypeWinner:
		return resolveProperty(contexts, typeName, property, winnerProperties)
	case TypeWinnerTeam:
		return resolveProperty(contexts, typeName, property, winnerTeamProperties)
	case TypeWinnerPlayer:
		return resolveProperty(contexts, typeName, property, winnerPlayerProperties)
	default:
		pandagraph.Unreachable("attempted to read property %q on unexpected type %s", property, typeName)
		return nil
	}
}

func resolveProperty[V Vertex](contexts iterator.Iterator[Context], typeName, property string, table properties[V]) iterator.Iterator[Outcome[any]] {
	get, ok := table[property]
	if !ok {
		pandagraph.Unreachable("attempted to read unexpected property %q on type %s", property, typeName)
	}
	return iterator.Map(contexts, func(c Context) Outcome[any] {
		v := c.ActiveVertex()
		if v == nil {
			return Outcome[any]{Context: c}
		}
		return Outcome[any]{Context: c, Value: FieldValue(get(as[V](v, typeName)))}
	})
}

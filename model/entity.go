package model

import (
	"encoding/json"
	"time"
)

// League is a competition organizer (e.g., "LEC").
type League struct {
	ID         uint64    `json:"id"`
	ImageURL   *string   `json:"image_url"`
	ModifiedAt time.Time `json:"modified_at"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	URL        *string   `json:"url"`
}

// LeagueRef is the compact league embedded in other records.
type LeagueRef struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Series is one season or split of a league.
type Series struct {
	ID         uint64     `json:"id"`
	ModifiedAt time.Time  `json:"modified_at"`
	BeginAt    *time.Time `json:"begin_at"`
	EndAt      *time.Time `json:"end_at"`
	FullName   string     `json:"full_name"`
	Name       *string    `json:"name"`
	Season     *string    `json:"season"`
	Slug       string     `json:"slug"`
	Year       *int       `json:"year"`
	LeagueID   uint64     `json:"league_id"`
	League     LeagueRef  `json:"league"`
	Winner     *Winner    `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler, folding the winner fields.
func (s *Series) UnmarshalJSON(data []byte) error {
	type alias Series
	aux := struct {
		*alias
		winnerFields
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Winner = aux.winner()
	return nil
}

// SeriesRef is the compact series embedded in other records.
type SeriesRef struct {
	ID       uint64  `json:"id"`
	FullName string  `json:"full_name"`
	Name     *string `json:"name"`
	Slug     string  `json:"slug"`
}

// Tournament is a stage of a series (e.g., "Playoffs").
type Tournament struct {
	ID            uint64     `json:"id"`
	ModifiedAt    time.Time  `json:"modified_at"`
	BeginAt       *time.Time `json:"begin_at"`
	EndAt         *time.Time `json:"end_at"`
	DetailedStats bool       `json:"detailed_stats"`
	HasBracket    bool       `json:"has_bracket"`
	LiveSupported bool       `json:"live_supported"`
	Name          string     `json:"name"`
	PrizePool     *string    `json:"prizepool"`
	Slug          string     `json:"slug"`
	Tier          *Tier      `json:"tier"`
	VideoGame     VideoGame  `json:"videogame"`
	LeagueID      uint64     `json:"league_id"`
	League        LeagueRef  `json:"league"`
	SerieID       uint64     `json:"serie_id"`
	Serie         SeriesRef  `json:"serie"`
	Winner        *Winner    `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler, folding the winner fields.
func (t *Tournament) UnmarshalJSON(data []byte) error {
	type alias Tournament
	aux := struct {
		*alias
		winnerFields
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	t.Winner = aux.winner()
	return nil
}

// Match is a single best-of-N encounter within a tournament.
type Match struct {
	ID                  uint64      `json:"id"`
	TournamentID        uint64      `json:"tournament_id"`
	SerieID             uint64      `json:"serie_id"`
	LeagueID            uint64      `json:"league_id"`
	ModifiedAt          time.Time   `json:"modified_at"`
	BeginAt             *time.Time  `json:"begin_at"`
	EndAt               *time.Time  `json:"end_at"`
	OriginalScheduledAt *time.Time  `json:"original_scheduled_at"`
	Rescheduled         *bool       `json:"rescheduled"`
	ScheduledAt         *time.Time  `json:"scheduled_at"`
	DetailedStats       bool        `json:"detailed_stats"`
	Draw                bool        `json:"draw"`
	Forfeit             bool        `json:"forfeit"`
	GameAdvantage       *uint64     `json:"game_advantage"`
	MatchType           MatchType   `json:"match_type"`
	NumberOfGames       uint32      `json:"number_of_games"`
	Status              MatchStatus `json:"status"`
	Name                string      `json:"name"`
	Slug                *string     `json:"slug"`
	League              LeagueRef   `json:"league"`
	Serie               SeriesRef   `json:"serie"`
	Winner              *Winner     `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler, folding the winner fields.
func (m *Match) UnmarshalJSON(data []byte) error {
	type alias Match
	aux := struct {
		*alias
		winnerFields
	}{alias: (*alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Winner = aux.winner()
	return nil
}

// Team is a roster competing in tournaments.
type Team struct {
	ID         uint64       `json:"id"`
	Acronym    *string      `json:"acronym"`
	ImageURL   *string      `json:"image_url"`
	Location   *string      `json:"location"`
	ModifiedAt time.Time    `json:"modified_at"`
	Name       string       `json:"name"`
	Slug       *string      `json:"slug"`
	Players    []TeamMember `json:"players"`
}

// TeamRef is the compact team embedded in other records.
type TeamRef struct {
	ID      uint64  `json:"id"`
	Acronym *string `json:"acronym"`
	Name    string  `json:"name"`
	Slug    *string `json:"slug"`
}

// TeamMember is the compact player listed on a team roster.
type TeamMember struct {
	ID   uint64  `json:"id"`
	Name string  `json:"name"`
	Role *string `json:"role"`
}

// Player is a single competitor.
type Player struct {
	ID          uint64    `json:"id"`
	Age         *int      `json:"age"`
	Birthday    *Date     `json:"birthday"`
	FirstName   *string   `json:"first_name"`
	ImageURL    *string   `json:"image_url"`
	LastName    *string   `json:"last_name"`
	ModifiedAt  time.Time `json:"modified_at"`
	Name        string    `json:"name"`
	Nationality *string   `json:"nationality"`
	Role        *string   `json:"role"`
	Slug        *string   `json:"slug"`
	CurrentTeam *TeamRef  `json:"current_team"`
}

// VideoGame is the title a tournament is played on.
type VideoGame struct {
	ID             uint64  `json:"id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	CurrentVersion *string `json:"current_version"`
}

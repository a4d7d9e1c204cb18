package model

// WinnerType tags which kind of competitor a Winner refers to.
type WinnerType string

// Winner types reported by the API.
const (
	WinnerTypeTeam   WinnerType = "Team"
	WinnerTypePlayer WinnerType = "Player"
)

// Winner is the tagged reference to the competitor that won a series,
// tournament or match. ID is nil when the upstream record carries a type
// without an id.
type Winner struct {
	Type WinnerType
	ID   *uint64
}

// TeamWinner returns a team-tagged Winner for id.
func TeamWinner(id uint64) *Winner {
	return &Winner{Type: WinnerTypeTeam, ID: &id}
}

// PlayerWinner returns a player-tagged Winner for id.
func PlayerWinner(id uint64) *Winner {
	return &Winner{Type: WinnerTypePlayer, ID: &id}
}

// winnerFields captures the flat winner encoding used on the wire.
type winnerFields struct {
	WinnerID   *uint64     `json:"winner_id"`
	WinnerType *WinnerType `json:"winner_type"`
}

func (f winnerFields) winner() *Winner {
	if f.WinnerType == nil || *f.WinnerType == "" {
		return nil
	}
	return &Winner{Type: *f.WinnerType, ID: f.WinnerID}
}

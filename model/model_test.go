package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Winner decoding
// =============================================================================

func TestWinnerDecoding(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		json string
		want *Winner
	}{
		{
			name: "absent",
			json: `{"id": 1, "winner_id": null, "winner_type": null}`,
			want: nil,
		},
		{
			name: "fields missing",
			json: `{"id": 1}`,
			want: nil,
		},
		{
			name: "team",
			json: `{"id": 1, "winner_id": 7, "winner_type": "Team"}`,
			want: TeamWinner(7),
		},
		{
			name: "player",
			json: `{"id": 1, "winner_id": 9, "winner_type": "Player"}`,
			want: PlayerWinner(9),
		},
		{
			name: "tag without id",
			json: `{"id": 1, "winner_id": null, "winner_type": "Team"}`,
			want: &Winner{Type: WinnerTypeTeam},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var m Match
			require.NoError(t, json.Unmarshal([]byte(tt.json), &m))
			assert.Equal(t, uint64(1), m.ID)
			assert.Equal(t, tt.want, m.Winner)

			var s Series
			require.NoError(t, json.Unmarshal([]byte(tt.json), &s))
			assert.Equal(t, tt.want, s.Winner)

			var tr Tournament
			require.NoError(t, json.Unmarshal([]byte(tt.json), &tr))
			assert.Equal(t, tt.want, tr.Winner)
		})
	}
}

func TestTournamentDecoding(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": 42,
		"modified_at": "2024-03-01T12:00:00Z",
		"begin_at": "2024-03-02T15:00:00Z",
		"end_at": null,
		"detailed_stats": true,
		"has_bracket": true,
		"live_supported": false,
		"name": "Playoffs",
		"prizepool": "100000 Euro",
		"slug": "lec-spring-2024-playoffs",
		"tier": "s",
		"videogame": {"id": 1, "name": "LoL", "slug": "league-of-legends", "current_version": null},
		"league_id": 4197,
		"league": {"id": 4197, "name": "LEC", "slug": "league-of-legends-lec"},
		"serie_id": 7000,
		"serie": {"id": 7000, "full_name": "Spring 2024", "name": null, "slug": "lec-spring-2024"},
		"winner_id": 318,
		"winner_type": "Team"
	}`

	var tr Tournament
	require.NoError(t, json.Unmarshal([]byte(raw), &tr))

	assert.Equal(t, uint64(42), tr.ID)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), tr.ModifiedAt)
	require.NotNil(t, tr.BeginAt)
	assert.Nil(t, tr.EndAt)
	assert.True(t, tr.DetailedStats)
	require.NotNil(t, tr.PrizePool)
	assert.Equal(t, "100000 Euro", *tr.PrizePool)
	require.NotNil(t, tr.Tier)
	assert.Equal(t, TierS, *tr.Tier)
	assert.Equal(t, "league-of-legends", tr.VideoGame.Slug)
	assert.Equal(t, uint64(4197), tr.League.ID)
	assert.Equal(t, uint64(7000), tr.Serie.ID)
	assert.Equal(t, TeamWinner(318), tr.Winner)
}

// =============================================================================
// Enumerations
// =============================================================================

func TestEnumTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "s", TierS.Token())
	assert.Equal(t, "unranked", TierUnranked.Token())
	assert.Equal(t, "unknown", Tier("z").Token())

	assert.Equal(t, "best_of", MatchTypeBestOf.Token())
	assert.Equal(t, "red_bull_home_ground", MatchTypeRedBullHomeGround.Token())
	assert.Equal(t, "unknown", MatchType("sudden_death").Token())

	assert.Equal(t, "not_started", MatchStatusNotStarted.Token())
	assert.Equal(t, "unknown", MatchStatus("").Token())
}

// =============================================================================
// Date
// =============================================================================

func TestDate(t *testing.T) {
	t.Parallel()

	t.Run("decode", func(t *testing.T) {
		t.Parallel()
		var p Player
		require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "name": "Caps", "birthday": "1999-11-17"}`), &p))
		require.NotNil(t, p.Birthday)
		assert.Equal(t, NewDate(1999, time.November, 17), *p.Birthday)
		assert.Equal(t, "1999-11-17", p.Birthday.String())
	})

	t.Run("null", func(t *testing.T) {
		t.Parallel()
		var p Player
		require.NoError(t, json.Unmarshal([]byte(`{"id": 3, "name": "Caps", "birthday": null}`), &p))
		assert.Nil(t, p.Birthday)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		var p Player
		assert.Error(t, json.Unmarshal([]byte(`{"birthday": "17/11/1999"}`), &p))
		assert.Error(t, json.Unmarshal([]byte(`{"birthday": 1999}`), &p))
	})

	t.Run("pads components", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "0987-02-03", NewDate(987, time.February, 3).String())
	})
}

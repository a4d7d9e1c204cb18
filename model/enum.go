package model

// tokenUnknown is rendered for enum members added upstream after this
// package was written.
const tokenUnknown = "unknown"

// Tier ranks a tournament's importance.
type Tier string

// Known tiers.
const (
	TierS        Tier = "s"
	TierA        Tier = "a"
	TierB        Tier = "b"
	TierC        Tier = "c"
	TierD        Tier = "d"
	TierUnranked Tier = "unranked"
)

// Token returns the lowercase token for t.
func (t Tier) Token() string {
	switch t {
	case TierS, TierA, TierB, TierC, TierD, TierUnranked:
		return string(t)
	default:
		return tokenUnknown
	}
}

// MatchType describes how a match winner is decided.
type MatchType string

// Known match types.
const (
	MatchTypeAllGamesPlayed    MatchType = "all_games_played"
	MatchTypeBestOf            MatchType = "best_of"
	MatchTypeCustom            MatchType = "custom"
	MatchTypeFirstTo           MatchType = "first_to"
	MatchTypeOwBestOf          MatchType = "ow_best_of"
	MatchTypeRedBullHomeGround MatchType = "red_bull_home_ground"
)

// Token returns the lowercase token for m.
func (m MatchType) Token() string {
	switch m {
	case MatchTypeAllGamesPlayed, MatchTypeBestOf, MatchTypeCustom,
		MatchTypeFirstTo, MatchTypeOwBestOf, MatchTypeRedBullHomeGround:
		return string(m)
	default:
		return tokenUnknown
	}
}

// MatchStatus is the lifecycle state of a match.
type MatchStatus string

// Known match statuses.
const (
	MatchStatusCanceled   MatchStatus = "canceled"
	MatchStatusFinished   MatchStatus = "finished"
	MatchStatusNotStarted MatchStatus = "not_started"
	MatchStatusPostponed  MatchStatus = "postponed"
	MatchStatusRunning    MatchStatus = "running"
)

// Token returns the lowercase token for s.
func (s MatchStatus) Token() string {
	switch s {
	case MatchStatusCanceled, MatchStatusFinished, MatchStatusNotStarted,
		MatchStatusPostponed, MatchStatusRunning:
		return string(s)
	default:
		return tokenUnknown
	}
}

package source

import (
	"fmt"
)

// PlayersEndpoint is the path of the player listing below the league URL.
const PlayersEndpoint = "players"

// LeagueRequest fetches the league bundle: teams, rosters, matchups,
// settings and standings.
func LeagueRequest() Request {
	return Request{Views: []View{ViewTeam, ViewRoster, ViewMatchup, ViewSettings, ViewStandings}}
}

// SettingsRequest fetches the league settings only.
func SettingsRequest() Request {
	return Request{Views: []View{ViewSettings}}
}

// ProScheduleRequest fetches the professional team schedules.
func ProScheduleRequest() Request {
	return Request{Views: []View{ViewProTeamSchedules}}
}

// DraftDetailRequest fetches the league draft.
func DraftDetailRequest() Request {
	return Request{Views: []View{ViewDraftDetail}}
}

// PlayersRequest fetches the professional player list in one call.
func PlayersRequest() Request {
	return Request{
		Views:    []View{ViewPlayersWL, ViewPlayerInfo},
		Endpoint: PlayersEndpoint,
		Filter:   map[string]any{"filterActive": map[string]any{"value": true}},
	}
}

// PlayersPageRequest fetches limit players starting at offset.
func PlayersPageRequest(offset, limit int) Request {
	return Request{
		Views:    []View{ViewPlayersWL, ViewPlayerInfo},
		Endpoint: PlayersEndpoint,
		Filter: map[string]any{
			"players": map[string]any{
				"filterActive": map[string]any{"value": true},
				"limit":        limit,
				"offset":       offset,
			},
		},
	}
}

// PlayerInfoRequest fetches player details, restricted to ids when given.
func PlayerInfoRequest(ids ...int64) Request {
	filter := map[string]any{"player": map[string]any{"value": true}}
	if len(ids) > 0 {
		filter["players"] = map[string]any{"filterIds": map[string]any{"value": ids}}
	}
	return Request{
		Views:    []View{ViewPlayerInfo},
		Endpoint: PlayersEndpoint,
		Filter:   filter,
	}
}

// PlayerCardRequest fetches the player cards of ids with their stats for the
// top scoring periods up to maxScoringPeriod. The season's actual and
// projected stat splits are always requested; additional adds more split ids.
func PlayerCardRequest(season int, ids []int64, maxScoringPeriod int, additional ...string) Request {
	splits := []string{fmt.Sprintf("00%d", season), fmt.Sprintf("10%d", season)}
	splits = append(splits, additional...)
	return Request{
		Views: []View{ViewPlayerCard},
		Filter: map[string]any{
			"players": map[string]any{
				"filterIds": map[string]any{"value": ids},
				"filterStatsForTopScoringPeriodIds": map[string]any{
					"value":           maxScoringPeriod,
					"additionalValue": splits,
				},
			},
		},
	}
}

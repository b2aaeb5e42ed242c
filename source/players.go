package source

import (
	"context"
	"fmt"

	"github.com/stokaro/leaguesync/config"
)

// FetchAllPlayers pages through the player list, requesting pageSize players
// at increasing offsets until a page comes back empty. A page is either a
// JSON array of players or an object holding one under "players". A pageSize
// of zero or less means config.DefaultPageSize.
func FetchAllPlayers(ctx context.Context, src Source, pageSize int) ([]any, error) {
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}

	var players []any
	for offset := 0; ; {
		doc, err := src.Fetch(ctx, PlayersPageRequest(offset, pageSize))
		if err != nil {
			return nil, fmt.Errorf("failed to fetch players at offset %d: %w", offset, err)
		}
		page, err := playerPage(doc)
		if err != nil {
			return nil, fmt.Errorf("bad players page at offset %d: %w", offset, err)
		}
		if len(page) == 0 {
			return players, nil
		}
		players = append(players, page...)
		offset += len(page)
	}
}

func playerPage(doc any) ([]any, error) {
	switch v := doc.(type) {
	case []any:
		return v, nil
	case map[string]any:
		if players, ok := v["players"].([]any); ok {
			return players, nil
		}
		if _, ok := v["players"]; !ok {
			return nil, nil
		}
		return nil, fmt.Errorf("players is %T, not a list", v["players"])
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("expected a list of players, got %T", doc)
}

package builder

import (
	"strings"

	"github.com/ohler55/ojg/jp"
	"golang.org/x/text/unicode/norm"

	"github.com/stokaro/leaguesync/core/entity"
	"github.com/stokaro/leaguesync/core/enums"
	"github.com/stokaro/leaguesync/core/valueparse"
)

var (
	recordWinsPath          = jp.MustParseString("$.record.overall.wins")
	recordLossesPath        = jp.MustParseString("$.record.overall.losses")
	recordTiesPath          = jp.MustParseString("$.record.overall.ties")
	recordPointsForPath     = jp.MustParseString("$.record.overall.pointsFor")
	recordPointsAgainstPath = jp.MustParseString("$.record.overall.pointsAgainst")
	recordPercentagePath    = jp.MustParseString("$.record.overall.percentage")

	playerFullNamePath     = jp.MustParseString("$.playerPoolEntry.player.fullName")
	playerInjuryStatusPath = jp.MustParseString("$.playerPoolEntry.player.injuryStatus")
)

func (p *parser) league(obj object) *entity.League {
	return &entity.League{
		ID:              obj.int("id"),
		SeasonID:        obj.int("seasonId"),
		SegmentID:       obj.int("segmentId"),
		ScoringPeriodID: obj.int("scoringPeriodId"),
		GameID:          obj.int("gameId"),
	}
}

func leagueRef(league *entity.League) entity.Ref {
	if league.ID == nil {
		return entity.Ref{}
	}
	return entity.RefTo(*league.ID)
}

func memberRef(v any) entity.Ref {
	id, ok := valueparse.String(v)
	if !ok || id == "" {
		return entity.Ref{}
	}
	return entity.RefTo(valueparse.MemberID(id))
}

func intRef(v any) entity.Ref {
	id, ok := valueparse.Int(v)
	if !ok {
		return entity.Ref{}
	}
	return entity.RefTo(id)
}

func (p *parser) members(obj object, league *entity.League) []*entity.Member {
	var members []*entity.Member
	for _, m := range obj.objects("members") {
		member := &entity.Member{
			LeagueID:        leagueRef(league),
			Username:        m.text("displayName"),
			FirstName:       m.text("firstName"),
			LastName:        m.text("lastName"),
			IsLeagueCreator: m.boolean("isLeagueCreator"),
			IsLeagueManager: m.boolean("isLeagueManager"),
		}
		if id := m.str("id"); id != nil {
			member.ID = valueparse.MemberID(*id)
		}
		for _, n := range m.objects("notificationSettings") {
			member.NotificationSettings = append(member.NotificationSettings, &entity.NotificationSetting{
				SettingID: n.int("id"),
				Type:      n.str("type"),
				Enabled:   n.boolean("enabled"),
			})
		}
		members = append(members, member)
	}
	return members
}

func (p *parser) teams(obj object, league *entity.League) []*entity.Team {
	var teams []*entity.Team
	for _, t := range obj.objects("teams") {
		team := &entity.Team{
			ID:                    t.int("id"),
			LeagueID:              leagueRef(league),
			DivisionID:            intRef(t.get("divisionId")),
			PrimaryOwnerID:        memberRef(t.get("primaryOwner")),
			Name:                  teamName(t),
			Abbreviation:          t.text("abbrev"),
			Logo:                  t.str("logo"),
			LogoType:              t.str("logoType"),
			PlayoffSeed:           t.intOr("playoffSeed", 0),
			PlayoffClinchType:     t.str("playoffClinchType"),
			Points:                t.floatOr("points", 0),
			PointsAdjusted:        t.floatOr("pointsAdjusted", 0),
			PointsDelta:           t.floatOr("pointsDelta", 0),
			CurrentProjectedRank:  t.intOr("currentProjectedRank", 0),
			DraftDayProjectedRank: t.intOr("draftDayProjectedRank", 0),
			RankCalculatedFinal:   t.intOr("rankCalculatedFinal", 0),
			RankFinal:             t.intOr("rankFinal", 0),
			WaiverRank:            t.intOr("waiverRank", 0),
			IsActive:              t.boolean("isActive"),
			Wins:                  intPtr(t.lookup(recordWinsPath)),
			Losses:                intPtr(t.lookup(recordLossesPath)),
			Ties:                  intPtr(t.lookup(recordTiesPath)),
			PointsFor:             floatOr(t.lookup(recordPointsForPath), 0),
			PointsAgainst:         floatOr(t.lookup(recordPointsAgainstPath), 0),
			WinPercentage:         floatPtr(t.lookup(recordPercentagePath)),
		}
		// Validate the record shape even though values are read by path.
		t.child("record").child("overall")

		for _, owner := range t.list("owners") {
			ref := memberRef(owner)
			if !ref.Valid {
				continue
			}
			team.Owners = append(team.Owners, &entity.TeamOwner{OwnerID: ref})
		}
		team.Roster = p.roster(t.child("roster"))
		teams = append(teams, team)
	}
	return teams
}

// teamName prefers "name" and falls back to "location nickname".
func teamName(t object) *string {
	if name := t.text("name"); name != nil {
		return name
	}
	var parts []string
	for _, key := range []string{"location", "nickname"} {
		if s := t.text(key); s != nil && *s != "" {
			parts = append(parts, *s)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	name := strings.Join(parts, " ")
	return &name
}

func (p *parser) roster(roster object) []*entity.RosterEntry {
	var entries []*entity.RosterEntry
	for _, e := range roster.objects("entries") {
		entry := &entity.RosterEntry{
			PlayerID:        e.int("playerId"),
			PlayerName:      normalized(strPtr(e.lookup(playerFullNamePath))),
			LineupSlotID:    enums.PositionID(e.get("lineupSlotId")),
			AcquisitionType: e.str("acquisitionType"),
			AcquisitionDate: e.epoch("acquisitionDate"),
			InjuryStatus:    e.str("injuryStatus"),
			Status:          e.str("status"),
		}
		if entry.InjuryStatus == nil {
			entry.InjuryStatus = strPtr(e.lookup(playerInjuryStatusPath))
		}
		entries = append(entries, entry)
	}
	return entries
}

func (p *parser) draftPicks(obj object, league *entity.League) []*entity.DraftPick {
	var picks []*entity.DraftPick
	for _, d := range obj.child("draftDetail").objects("picks") {
		picks = append(picks, &entity.DraftPick{
			LeagueID:          leagueRef(league),
			TeamID:            intRef(d.get("teamId")),
			MemberID:          memberRef(d.get("memberId")),
			OverallPickNumber: d.int("overallPickNumber"),
			RoundID:           d.int("roundId"),
			RoundPickNumber:   d.int("roundPickNumber"),
			PlayerID:          d.int("playerId"),
			BidAmount:         d.floatOr("bidAmount", 0),
			Keeper:            d.boolean("keeper"),
			ReservedForKeeper: d.boolean("reservedForKeeper"),
			AutoDraftTypeID:   d.int("autoDraftTypeId"),
		})
	}
	return picks
}

func floatOr(v any, def float64) float64 {
	if f, ok := valueparse.Float(v); ok {
		return f
	}
	return def
}

func normalized(s *string) *string {
	if s == nil {
		return nil
	}
	n := norm.NFC.String(*s)
	return &n
}

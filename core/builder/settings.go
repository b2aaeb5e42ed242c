package builder

import (
	"fmt"

	"github.com/stokaro/leaguesync/core/entity"
	"github.com/stokaro/leaguesync/core/enums"
	"github.com/stokaro/leaguesync/core/valueparse"
)

// settingsInto builds the settings tree and the divisions declared by the
// schedule settings.
func (p *parser) settingsInto(league *entity.League, obj object) {
	s := obj.child("settings")
	settings := &entity.Settings{
		LeagueID:        leagueRef(league),
		Name:            s.text("name"),
		Size:            s.int("size"),
		RestrictionType: s.str("restrictionType"),
		IsPublic:        s.boolean("isPublic"),
		IsCustomizable:  s.boolean("isCustomizable"),
		Acquisition:     p.acquisition(s.child("acquisitionSettings")),
		Finance:         p.finance(s.child("financeSettings")),
		Draft:           p.draft(s.child("draftSettings")),
		Roster:          p.rosterSettings(s.child("rosterSettings")),
		Scoring:         p.scoring(s.child("scoringSettings")),
		Trade:           p.trade(s.child("tradeSettings")),
	}

	schedule := s.child("scheduleSettings")
	settings.Schedule = p.schedule(schedule)
	for _, d := range schedule.objects("divisions") {
		league.Divisions = append(league.Divisions, &entity.Division{
			ID:       d.int("id"),
			LeagueID: leagueRef(league),
			Name:     d.text("name"),
			Size:     d.int("size"),
		})
	}
	league.Settings = settings
}

func (p *parser) finance(f object) *entity.FinanceSettings {
	return &entity.FinanceSettings{
		EntryFee:           f.floatOr("entryFee", 0),
		MiscFee:            f.floatOr("miscFee", 0),
		PerLoss:            f.floatOr("perLoss", 0),
		PerTrade:           f.floatOr("perTrade", 0),
		PlayerAcquisition:  f.floatOr("playerAcquisition", 0),
		PlayerDrop:         f.floatOr("playerDrop", 0),
		PlayerMoveToActive: f.floatOr("playerMoveToActive", 0),
		PlayerMoveToIR:     f.floatOr("playerMoveToIR", 0),
	}
}

func (p *parser) acquisition(a object) *entity.AcquisitionSettings {
	acq := &entity.AcquisitionSettings{
		AcquisitionBudget:              a.int("acquisitionBudget"),
		AcquisitionLimit:               a.int("acquisitionLimit"),
		AcquisitionType:                a.str("acquisitionType"),
		FinalPlaceTransactionEligible:  a.int("finalPlaceTransactionEligible"),
		MatchupAcquisitionLimit:        a.int("matchupAcquisitionLimit"),
		MinimumBid:                     a.int("minimumBid"),
		WaiverHours:                    a.int("waiverHours"),
		WaiverProcessHour:              a.int("waiverProcessHour"),
		IsTransactionLockingEnabled:    a.boolean("transactionLockingEnabled"),
		IsMatchupLimitPerScoringPeriod: a.boolean("matchupLimitPerScoringPeriod"),
		IsUsingAcquisitionBudget:       a.boolean("isUsingAcuisitionBudget"), // ESPN misspells this key
		IsWaiverOrderReset:             a.boolean("waiverOrderReset"),
	}
	for _, day := range a.list("waiverProcessDays") {
		acq.WaiverProcessDays = append(acq.WaiverProcessDays, &entity.WaiverProcessDay{Day: strPtr(day)})
	}
	return acq
}

func (p *parser) draft(d object) *entity.DraftSettings {
	draft := &entity.DraftSettings{
		AuctionBudget:     d.int("auctionBudget"),
		KeeperCount:       d.int("keeperCount"),
		KeeperCountFuture: d.int("keeperCountFuture"),
		KeeperOrderType:   d.str("keeperOrderType"),
		LeagueSubType:     d.str("leagueSubType"),
		OrderType:         d.str("orderType"),
		TimePerSelection:  d.int("timePerSelection"),
		Type:              d.str("type"),
		IsTradingEnabled:  d.boolean("isTradingEnabled"),
		AvailableDate:     d.epoch("availableDate"),
		Date:              d.epoch("date"),
	}
	for pos, teamID := range d.list("pickOrder") {
		draft.PickOrder = append(draft.PickOrder, &entity.PickOrder{
			TeamID:   intRef(teamID),
			Position: int64(pos),
		})
	}
	return draft
}

func (p *parser) rosterSettings(r object) *entity.RosterSettings {
	roster := &entity.RosterSettings{
		LineupLocktimeType:     r.str("lineupLocktimeType"),
		MoveLimit:              r.int("moveLimit"),
		RosterLocktimeType:     r.str("rosterLocktimeType"),
		IsBenchUnlimited:       r.boolean("isBenchUnlimited"),
		IsUsingUndroppableList: r.boolean("isUsingUndroppableList"),
	}

	for _, id := range r.list("universeIds") {
		v, ok := valueparse.Int(id)
		if !ok {
			p.logger.Debug("Skipping non-integer universe id", "value", id)
			continue
		}
		roster.UniverseIDs = append(roster.UniverseIDs, &entity.UniverseID{UniverseID: v})
	}

	for _, e := range r.entries("lineupSlotCounts") {
		roster.LineupSlotCounts = append(roster.LineupSlotCounts, &entity.LineupSlotCount{
			PositionID: enums.PositionID(e.key),
			SlotCount:  intOr(e.value, 0),
		})
	}

	for _, e := range r.entries("positionLimits") {
		roster.PositionLimits = append(roster.PositionLimits, &entity.PositionLimit{
			PositionID:    enums.PositionID(e.key),
			PositionLimit: intOr(e.value, 0),
		})
	}

	limits := r.child("lineupSlotStatLimits")
	for _, e := range r.entries("lineupSlotStatLimits") {
		m, ok := e.value.(map[string]any)
		if !ok {
			p.fail(limits.at(e.key), fmt.Sprintf("expected object, got %T", e.value))
			break
		}
		limit := object{p: p, path: limits.at(e.key), data: m}
		roster.LineupSlotStatLimits = append(roster.LineupSlotStatLimits, &entity.LineupSlotStatLimit{
			PositionID: enums.PositionID(e.key),
			StatID:     enums.StatID(limit.get("statId")),
			StatLimit:  limit.float("limitValue"),
		})
	}
	return roster
}

func (p *parser) schedule(s object) *entity.ScheduleSettings {
	schedule := &entity.ScheduleSettings{
		MatchupPeriodCount:                   s.int("matchupPeriodCount"),
		MatchupPeriodLength:                  s.int("matchupPeriodLength"),
		PeriodTypeID:                         s.int("periodTypeId"),
		PlayoffMatchupPeriodLength:           s.int("playoffMatchupPeriodLength"),
		PlayoffSeedingRule:                   s.str("playoffSeedingRule"),
		PlayoffSeedingRuleBy:                 s.int("playoffSeedingRuleBy"),
		PlayoffTeamCount:                     s.int("playoffTeamCount"),
		IsPlayoffReseed:                      s.boolean("playoffReseed"),
		IsVariablePlayoffMatchupPeriodLength: s.boolean("variablePlayoffMatchupPeriodLength"),
	}

	for _, d := range s.objects("divisions") {
		schedule.Divisions = append(schedule.Divisions, &entity.ScheduleDivision{
			DivisionID: intRef(d.get("id")),
		})
	}

	periods := s.child("matchupPeriods")
	for _, e := range s.entries("matchupPeriods") {
		matchupID, ok := valueparse.Int(e.key)
		if !ok {
			p.logger.Debug("Skipping non-integer matchup id", "value", e.key)
			continue
		}
		ids, ok := e.value.([]any)
		if !ok {
			p.fail(periods.at(e.key), fmt.Sprintf("expected list, got %T", e.value))
			break
		}
		for _, id := range ids {
			periodID, ok := valueparse.Int(id)
			if !ok {
				continue
			}
			schedule.MatchupPeriods = append(schedule.MatchupPeriods, &entity.MatchupPeriod{
				MatchupID: matchupID,
				PeriodID:  periodID,
			})
		}
	}
	return schedule
}

func (p *parser) scoring(s object) *entity.ScoringSettings {
	scoring := &entity.ScoringSettings{
		ScoringType:               s.str("scoringType"),
		HomeTeamBonus:             s.floatOr("homeTeamBonus", 0),
		MatchupTieRule:            s.str("matchupTieRule"),
		MatchupTieRuleBy:          s.int("matchupTieRuleBy"),
		PlayerRankType:            s.str("playerRankType"),
		PlayoffHomeTeamBonus:      s.floatOr("playoffHomeTeamBonus", 0),
		PlayoffMatchupTieRule:     s.str("playoffMatchupTieRule"),
		PlayoffMatchupTieRuleBy:   s.int("playoffMatchupTieRuleBy"),
		AllowOutOfPositionScoring: s.boolean("allowOutOfPositionScoring"),
	}
	for _, item := range s.objects("scoringItems") {
		si := &entity.ScoringItem{
			StatID:        enums.StatID(item.get("statId")),
			Points:        item.floatOr("points", 0),
			LeagueRanking: item.floatOr("leagueRanking", 0),
			LeagueTotal:   item.floatOr("leagueTotal", 0),
			IsReverseItem: item.boolean("isReverseItem"),
		}
		for _, e := range item.entries("pointsOverrides") {
			si.PointOverrides = append(si.PointOverrides, &entity.PointOverride{
				Key:   e.key,
				Value: floatPtr(e.value),
			})
		}
		scoring.Items = append(scoring.Items, si)
	}
	return scoring
}

func (p *parser) trade(t object) *entity.TradeSettings {
	return &entity.TradeSettings{
		MaxTrades:          t.int("max"),
		RevisionHours:      t.int("revisionHours"),
		VetoVotesRequired:  t.int("vetoVotesRequired"),
		DeadlineDate:       t.epoch("deadlineDate"),
		AllowOutOfUniverse: t.boolean("allowOutOfUniverse"),
	}
}

func intOr(v any, def int64) int64 {
	if i, ok := valueparse.Int(v); ok {
		return i
	}
	return def
}

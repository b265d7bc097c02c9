package betService

import (
	"fmt"
	"time"

	"parlayLeague/models"
	"parlayLeague/services/common"

	"gorm.io/gorm"
)

// groupKey identifies one parlay group.
type groupKey struct {
	TeamID   uint
	SeasonID uint
	Week     int
}

// GradeBets bulk-settles the given legs and returns the number of rows
// changed. The distinct (team, season, week) triplets are collected before
// the update runs, since the bulk UPDATE cannot re-derive the groups from
// already-mutated rows; each affected group is recomputed exactly once
// afterwards so no parlay is left stale.
func GradeBets(db *gorm.DB, betIDs []uint, status string) (int64, error) {
	if !common.ValidStatus(status) {
		return 0, common.ErrInvalidStatus
	}
	if len(betIDs) == 0 {
		return 0, nil
	}

	groups, err := affectedGroups(db, betIDs)
	if err != nil {
		return 0, err
	}

	updates := map[string]interface{}{"status": status}
	if status == models.StatusPending {
		updates["settled_at"] = nil
	} else {
		updates["settled_at"] = time.Now()
	}

	result := db.Model(&models.Bet{}).Where("id IN ?", betIDs).Updates(updates)
	if result.Error != nil {
		return 0, fmt.Errorf("error grading bets: %w", result.Error)
	}

	for _, g := range groups {
		if _, err := RecomputeTeamParlay(db, g.TeamID, g.SeasonID, g.Week); err != nil {
			return result.RowsAffected, err
		}
	}
	return result.RowsAffected, nil
}

func affectedGroups(db *gorm.DB, betIDs []uint) ([]groupKey, error) {
	var rows []models.Bet
	if err := db.Select("DISTINCT team_id, season_id, week").
		Where("id IN ?", betIDs).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error collecting parlay groups: %w", err)
	}

	seen := make(map[groupKey]bool, len(rows))
	groups := make([]groupKey, 0, len(rows))
	for _, r := range rows {
		g := groupKey{TeamID: r.TeamID, SeasonID: r.SeasonID, Week: r.Week}
		if !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	return groups, nil
}

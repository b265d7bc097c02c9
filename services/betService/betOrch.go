package betService

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"parlayLeague/models"
	"parlayLeague/services/common"

	"gorm.io/gorm"
)

// PickInput carries the validated field values the submission flow collects
// for one leg. The owning user, team, season and week come from the caller.
type PickInput struct {
	BetType        string
	PickText       string
	Line           float64
	AmericanOdds   int
	StakeUnits     float64
	ParlaySelected bool
	OverUnder      string
}

// ValidatePick rejects odds inside (-100, 100), a missing over/under on
// totals and props, an over/under on spreads, and out-of-range weeks.
// Invalid picks are never persisted.
func ValidatePick(week int, in PickInput) error {
	if week < 1 || week > 18 {
		return fmt.Errorf("%w: got %d", common.ErrInvalidWeek, week)
	}
	if _, err := common.ToDecimal(in.AmericanOdds); err != nil {
		return err
	}
	switch in.BetType {
	case models.BetTypeSpread:
		if in.OverUnder != "" {
			return common.ErrOverUnderForbidden
		}
	case models.BetTypeTotal, models.BetTypeProp:
		if in.OverUnder != models.OverUnderOver && in.OverUnder != models.OverUnderUnder {
			return common.ErrOverUnderRequired
		}
	default:
		return fmt.Errorf("%w: got %q", common.ErrInvalidBetType, in.BetType)
	}
	return nil
}

// SubmitPicks creates or updates the user's picks for one week and
// recomputes every parlay group the mutation touched. At most one of the
// user's legs for the week may carry the parlay flag, counting legs saved
// by earlier submissions. Each pick upserts against the
// (user, season, week, bet type) slot; a concurrent insert into the same
// slot surfaces as ErrDuplicatePick.
func SubmitPicks(db *gorm.DB, userID, seasonID uint, week int, picks []PickInput) ([]models.Bet, error) {
	selected := 0
	for _, in := range picks {
		if err := ValidatePick(week, in); err != nil {
			return nil, err
		}
		if in.ParlaySelected {
			selected++
		}
	}
	if selected > 1 {
		return nil, common.ErrTooManyParlayLegs
	}

	// The rule spans requests: a selected leg saved earlier in the week
	// counts against this batch unless the batch re-submits its slot.
	if selected == 1 {
		types := make([]string, 0, len(picks))
		for _, in := range picks {
			types = append(types, in.BetType)
		}
		var existing int64
		if err := db.Model(&models.Bet{}).
			Where("user_id = ? AND season_id = ? AND week = ? AND parlay_selected = ? AND bet_type NOT IN ?",
				userID, seasonID, week, true, types).
			Count(&existing).Error; err != nil {
			return nil, fmt.Errorf("error counting parlay legs: %w", err)
		}
		if existing > 0 {
			return nil, common.ErrTooManyParlayLegs
		}
	}

	var membership models.TeamMembership
	err := db.Joins("JOIN teams ON teams.id = team_memberships.team_id").
		Where("team_memberships.user_id = ? AND teams.season_id = ?", userID, seasonID).
		First(&membership).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotOnTeam
		}
		return nil, fmt.Errorf("error loading membership: %w", err)
	}

	saved := make([]models.Bet, 0, len(picks))
	groups := make(map[groupKey]bool)
	for _, in := range picks {
		bet, touched, err := savePick(db, userID, membership.TeamID, seasonID, week, in)
		if err != nil {
			return nil, err
		}
		saved = append(saved, *bet)
		for _, g := range touched {
			groups[g] = true
		}
	}

	for g := range groups {
		if _, err := RecomputeTeamParlay(db, g.TeamID, g.SeasonID, g.Week); err != nil {
			return nil, err
		}
	}
	return saved, nil
}

// savePick upserts one leg and returns the (team, season, week) groups whose
// parlay must be recomputed: the new group, plus the prior group when the
// leg moved (the user switched teams since the original pick).
func savePick(db *gorm.DB, userID, teamID, seasonID uint, week int, in PickInput) (*models.Bet, []groupKey, error) {
	var existing models.Bet
	err := db.Where("user_id = ? AND season_id = ? AND week = ? AND bet_type = ?",
		userID, seasonID, week, in.BetType).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("error loading existing pick: %w", err)
	}

	bet := existing
	bet.UserID = userID
	bet.TeamID = teamID
	bet.SeasonID = seasonID
	bet.Week = week
	bet.BetType = in.BetType
	bet.PickText = in.PickText
	bet.Line = in.Line
	bet.AmericanOdds = in.AmericanOdds
	bet.StakeUnits = in.StakeUnits
	if bet.StakeUnits == 0 {
		bet.StakeUnits = 1.0
	}
	bet.ParlaySelected = in.ParlaySelected
	if in.BetType == models.BetTypeSpread {
		bet.OverUnder = nil
	} else {
		ou := in.OverUnder
		bet.OverUnder = &ou
	}
	if bet.Status == "" {
		bet.Status = models.StatusPending
	}

	if err := db.Save(&bet).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, nil, common.ErrDuplicatePick
		}
		return nil, nil, fmt.Errorf("error saving pick: %w", err)
	}

	groups := []groupKey{{TeamID: bet.TeamID, SeasonID: bet.SeasonID, Week: bet.Week}}
	if existing.ID != 0 && existing.TeamID != bet.TeamID {
		groups = append(groups, groupKey{TeamID: existing.TeamID, SeasonID: existing.SeasonID, Week: existing.Week})
	}
	return &bet, groups, nil
}

// DeleteBet removes a leg and recomputes the parlay of the group it
// belonged to, so the cached odds and status reflect the remaining legs.
func DeleteBet(db *gorm.DB, betID uint) error {
	var bet models.Bet
	if err := db.First(&bet, betID).Error; err != nil {
		return fmt.Errorf("error loading bet %d: %w", betID, err)
	}

	// Hard delete: the slot must be reusable, and the soft-deleted row would
	// still occupy the (user, season, week, bet type) unique index.
	if err := db.Unscoped().Delete(&bet).Error; err != nil {
		return fmt.Errorf("error deleting bet %d: %w", betID, err)
	}

	_, err := RecomputeTeamParlay(db, bet.TeamID, bet.SeasonID, bet.Week)
	return err
}

// GradeBet settles a single leg and recomputes its parlay group.
func GradeBet(db *gorm.DB, betID uint, status string) (*models.Bet, error) {
	if !common.ValidStatus(status) {
		return nil, common.ErrInvalidStatus
	}

	var bet models.Bet
	if err := db.First(&bet, betID).Error; err != nil {
		return nil, fmt.Errorf("error loading bet %d: %w", betID, err)
	}

	bet.Status = status
	if status == models.StatusPending {
		bet.SettledAt = nil
	} else {
		now := time.Now()
		bet.SettledAt = &now
	}
	if err := db.Save(&bet).Error; err != nil {
		return nil, fmt.Errorf("error grading bet %d: %w", betID, err)
	}

	if _, err := RecomputeTeamParlay(db, bet.TeamID, bet.SeasonID, bet.Week); err != nil {
		return nil, err
	}
	return &bet, nil
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

package betService

import (
	"errors"
	"testing"

	"parlayLeague/models"
	"parlayLeague/services/common"
)

func TestGradeBets_BulkSettlesAcrossGroups(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)

	// Team A, week 1 and week 2; team B, week 1. Three distinct groups.
	a1 := seedLeg(t, db, f, 1, models.BetTypeSpread, -110, models.StatusPending, true)
	a2 := seedLeg(t, db, f, 2, models.BetTypeSpread, -110, models.StatusPending, true)

	b1 := models.Bet{
		UserID: f.UserTwo.ID, TeamID: f.TeamB.ID, SeasonID: f.Season.ID,
		Week: 1, BetType: models.BetTypeSpread, PickText: "DAL +3",
		AmericanOdds: 150, StakeUnits: 1.0, ParlaySelected: true,
		Status: models.StatusPending,
	}
	mustCreate(t, db, &b1)

	affected, err := GradeBets(db, []uint{a1.ID, a2.ID, b1.ID}, models.StatusWon)
	if err != nil {
		t.Fatalf("bulk grade failed: %v", err)
	}
	assertEqual(t, int64(3), affected, "all three legs settled")

	// Every touched group must be freshly recomputed.
	checks := []struct {
		teamID       uint
		week         int
		expectedOdds float64
	}{
		{teamID: f.TeamA.ID, week: 1, expectedOdds: 1.9091},
		{teamID: f.TeamA.ID, week: 2, expectedOdds: 1.9091},
		{teamID: f.TeamB.ID, week: 1, expectedOdds: 2.5},
	}
	for _, c := range checks {
		var parlay models.TeamParlay
		if err := db.Where("team_id = ? AND season_id = ? AND week = ?", c.teamID, f.Season.ID, c.week).First(&parlay).Error; err != nil {
			t.Fatalf("parlay for team %d week %d not recomputed: %v", c.teamID, c.week, err)
		}
		assertEqual(t, models.StatusWon, parlay.Status, "graded group resolves won")
		assertEqual(t, c.expectedOdds, parlay.DecimalOdds, "graded group is re-priced")
	}

	var settled int64
	db.Model(&models.Bet{}).Where("settled_at IS NOT NULL").Count(&settled)
	assertEqual(t, int64(3), settled, "settled timestamps written in bulk")
}

func TestGradeBets_RecomputesEachGroupOnce(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)

	// Two legs in the same group: one shared recompute, one parlay row.
	a := seedLeg(t, db, f, 1, models.BetTypeSpread, -110, models.StatusPending, true)
	b := seedLeg(t, db, f, 1, models.BetTypeTotal, -110, models.StatusPending, true)

	if _, err := GradeBets(db, []uint{a.ID, b.ID}, models.StatusLost); err != nil {
		t.Fatalf("bulk grade failed: %v", err)
	}

	var count int64
	db.Model(&models.TeamParlay{}).Where("team_id = ?", f.TeamA.ID).Count(&count)
	assertEqual(t, int64(1), count, "one parlay row for the shared group")

	var parlay models.TeamParlay
	db.Where("team_id = ? AND week = ?", f.TeamA.ID, 1).First(&parlay)
	assertEqual(t, models.StatusLost, parlay.Status, "group settled lost")
}

func TestGradeBets_EmptyAndInvalid(t *testing.T) {
	db := newTestDB(t)

	affected, err := GradeBets(db, nil, models.StatusWon)
	if err != nil {
		t.Fatalf("empty grade failed: %v", err)
	}
	assertEqual(t, int64(0), affected, "no ids, no work")

	if _, err := GradeBets(db, []uint{1}, "VOID"); !errors.Is(err, common.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestGradeBets_PendingResetLeavesNoStaleParlay(t *testing.T) {
	db := newTestDB(t)
	f := seedFixture(t, db)

	leg := seedLeg(t, db, f, 1, models.BetTypeSpread, -110, models.StatusPending, true)
	if _, err := GradeBets(db, []uint{leg.ID}, models.StatusWon); err != nil {
		t.Fatalf("grade failed: %v", err)
	}

	if _, err := GradeBets(db, []uint{leg.ID}, models.StatusPending); err != nil {
		t.Fatalf("pending reset failed: %v", err)
	}

	var parlay models.TeamParlay
	db.Where("team_id = ? AND week = ?", f.TeamA.ID, 1).First(&parlay)
	assertEqual(t, models.StatusPending, parlay.Status, "parlay reopened with its leg")

	var bet models.Bet
	db.First(&bet, leg.ID)
	if bet.SettledAt != nil {
		t.Error("pending reset should clear the settled timestamp")
	}
}

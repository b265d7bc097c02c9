package betService

import (
	"fmt"

	"parlayLeague/models"
	"parlayLeague/services/common"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecomputeTeamParlay re-derives the cached TeamParlay row for one
// (team, season, week) group from its parlay-selected legs. It is a full,
// idempotent projection: calling it twice with unchanged legs stores the
// same odds and status. The read-and-upsert runs in a single transaction so
// a concurrent reader never sees odds from one pass and status from another.
//
// Odds use the booked price: the product of every selected leg's quoted
// price, regardless of how the leg later graded, the same way a book quotes
// the full parlay price at bet time. An older variant multiplied only WON
// legs ("settled price"); it undersells every open parlay and is not used.
func RecomputeTeamParlay(db *gorm.DB, teamID, seasonID uint, week int) (*models.TeamParlay, error) {
	var parlay models.TeamParlay

	err := db.Transaction(func(tx *gorm.DB) error {
		var legs []models.Bet
		if err := tx.
			Where("team_id = ? AND season_id = ? AND week = ? AND parlay_selected = ?",
				teamID, seasonID, week, true).
			Order("id").
			Find(&legs).Error; err != nil {
			return fmt.Errorf("error loading parlay legs: %w", err)
		}

		// Lazily created on first recompute; a group with zero legs still
		// gets a PENDING row at even odds. The lookup uses an explicit Where
		// clause because gorm drops zero-valued fields from struct
		// conditions, which would match a different week's row.
		if err := tx.
			Where("team_id = ? AND season_id = ? AND week = ?", teamID, seasonID, week).
			Attrs(models.TeamParlay{TeamID: teamID, SeasonID: seasonID, Week: week}).
			FirstOrCreate(&parlay).
			Error; err != nil {
			return fmt.Errorf("error loading team parlay: %w", err)
		}

		if parlay.StakeUnits == 0 {
			parlay.StakeUnits = 1.0
		}
		parlay.DecimalOdds = bookedOdds(tx, legs)
		parlay.Status = statusFromLegs(legs)

		if err := tx.Save(&parlay).Error; err != nil {
			return fmt.Errorf("error saving team parlay: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &parlay, nil
}

// bookedOdds multiplies the quoted decimal price of every leg. A leg whose
// odds cannot be converted contributes the multiplicative identity and is
// logged as a data-quality warning; one bad row must not block settlement
// of the rest of the group.
func bookedOdds(db *gorm.DB, legs []models.Bet) float64 {
	product := decimal.NewFromInt(1)
	for _, leg := range legs {
		dec, err := common.ToDecimal(leg.AmericanOdds)
		if err != nil {
			common.LogError(db, "parlay recompute",
				fmt.Errorf("bet %d has unusable odds %d, treated as even: %w", leg.ID, leg.AmericanOdds, err))
			continue
		}
		product = product.Mul(dec)
	}
	return common.RoundOdds(product)
}

// statusFromLegs derives the parlay status:
//  1. any leg LOST            -> LOST
//  2. any leg PENDING or none -> PENDING
//  3. all legs PUSH           -> PUSH
//  4. otherwise (>=1 WON, remainder PUSH) -> WON
func statusFromLegs(legs []models.Bet) string {
	if len(legs) == 0 {
		return models.StatusPending
	}

	anyLost := false
	anyPending := false
	allPush := true
	for _, leg := range legs {
		switch leg.Status {
		case models.StatusLost:
			anyLost = true
		case models.StatusPending:
			anyPending = true
		}
		if leg.Status != models.StatusPush {
			allPush = false
		}
	}

	switch {
	case anyLost:
		return models.StatusLost
	case anyPending:
		return models.StatusPending
	case allPush:
		return models.StatusPush
	default:
		return models.StatusWon
	}
}

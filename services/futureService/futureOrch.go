package futureService

import (
	"errors"
	"fmt"
	"time"

	"parlayLeague/models"
	"parlayLeague/services/common"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BoardEntry is one row on the season futures board.
type BoardEntry struct {
	ID              uint    `json:"id"`
	Username        string  `json:"username"`
	TeamName        string  `json:"teamName"`
	Description     string  `json:"description"`
	AmericanOdds    string  `json:"americanOdds"`
	StakeUnits      float64 `json:"stakeUnits"`
	PotentialReturn float64 `json:"potentialReturn"`
	Status          string  `json:"status"`
	PnLUnits        float64 `json:"pnlUnits"`
}

// SubmitFuture records a season-long pick. Futures grade independently and
// never count toward any weekly parlay.
func SubmitFuture(db *gorm.DB, userID, seasonID uint, description string, americanOdds int, stakeUnits float64) (*models.FuturePick, error) {
	if _, err := common.ToDecimal(americanOdds); err != nil {
		return nil, err
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

	if stakeUnits == 0 {
		stakeUnits = 1.0
	}
	pick := models.FuturePick{
		UserID:       userID,
		TeamID:       membership.TeamID,
		SeasonID:     seasonID,
		Description:  description,
		AmericanOdds: americanOdds,
		StakeUnits:   stakeUnits,
		Status:       models.StatusPending,
	}
	if err := db.Create(&pick).Error; err != nil {
		return nil, fmt.Errorf("error saving future pick: %w", err)
	}
	return &pick, nil
}

// GradeFuture settles one future pick.
func GradeFuture(db *gorm.DB, pickID uint, status string) (*models.FuturePick, error) {
	if !common.ValidStatus(status) {
		return nil, common.ErrInvalidStatus
	}

	var pick models.FuturePick
	if err := db.First(&pick, pickID).Error; err != nil {
		return nil, fmt.Errorf("error loading future pick %d: %w", pickID, err)
	}

	pick.Status = status
	if status == models.StatusPending {
		pick.SettledAt = nil
	} else {
		now := time.Now()
		pick.SettledAt = &now
	}
	if err := db.Save(&pick).Error; err != nil {
		return nil, fmt.Errorf("error grading future pick %d: %w", pickID, err)
	}
	return &pick, nil
}

// Board lists the season's futures with potential returns and settled PnL.
func Board(db *gorm.DB, seasonID uint) ([]BoardEntry, error) {
	var picks []models.FuturePick
	if err := db.Preload("User").Preload("Team").
		Where("season_id = ?", seasonID).
		Order("id").
		Find(&picks).Error; err != nil {
		return nil, fmt.Errorf("error loading future picks: %w", err)
	}

	entries := make([]BoardEntry, 0, len(picks))
	for _, p := range picks {
		potential := 0.0
		if dec, err := common.ToDecimal(p.AmericanOdds); err == nil {
			potential = common.RoundOdds(dec.Mul(decimal.NewFromFloat(p.StakeUnits)))
		} else {
			common.LogError(db, "futures board",
				fmt.Errorf("future pick %d has unusable odds %d: %w", p.ID, p.AmericanOdds, err))
		}
		entries = append(entries, BoardEntry{
			ID:              p.ID,
			Username:        p.User.Username,
			TeamName:        p.Team.Name,
			Description:     p.Description,
			AmericanOdds:    common.FormatOdds(p.AmericanOdds),
			StakeUnits:      p.StakeUnits,
			PotentialReturn: potential,
			Status:          p.Status,
			PnLUnits:        common.BetPnL(p.Status, p.StakeUnits, p.AmericanOdds),
		})
	}
	return entries, nil
}

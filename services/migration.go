package services

import (
	"fmt"
	"log"
	"time"

	"parlayLeague/models"
	"parlayLeague/services/betService"

	"gorm.io/gorm"
)

// RunParlayBackfillMigration recomputes every team parlay from its legs.
// Needed once after importing historical picks, since imported rows bypass
// the submission flow and never triggered a recompute. Tracked in the
// migrations table so restarts skip it.
func RunParlayBackfillMigration(db *gorm.DB) error {
	var existing models.Migration
	result := db.Where("name = ?", "team_parlay_backfill").First(&existing)
	if result.Error == nil && existing.ID != 0 {
		log.Println("Team parlay backfill has already been executed. Skipping.")
		return nil
	}

	log.Println("Starting team parlay backfill...")

	var groups []models.Bet
	if err := db.Select("DISTINCT team_id, season_id, week").
		Where("parlay_selected = ?", true).
		Find(&groups).Error; err != nil {
		return fmt.Errorf("error collecting parlay groups: %v", err)
	}

	recomputed := 0
	for _, g := range groups {
		if _, err := betService.RecomputeTeamParlay(db, g.TeamID, g.SeasonID, g.Week); err != nil {
			log.Printf("Error recomputing parlay for team %d week %d: %v", g.TeamID, g.Week, err)
			continue
		}
		recomputed++
	}

	migration := models.Migration{
		Name:       "team_parlay_backfill",
		ExecutedAt: time.Now(),
	}
	if err := db.Create(&migration).Error; err != nil {
		return fmt.Errorf("error marking migration as complete: %v", err)
	}

	log.Printf("Team parlay backfill completed. Recomputed %d parlays.", recomputed)
	return nil
}

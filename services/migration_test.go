package services

import (
	"fmt"
	"testing"

	"parlayLeague/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Season{},
		&models.Team{},
		&models.TeamMembership{},
		&models.Bet{},
		&models.TeamParlay{},
		&models.ErrorLog{},
		&models.Migration{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestRunParlayBackfillMigration(t *testing.T) {
	db := newTestDB(t)

	season := models.Season{Year: 2024}
	user := models.User{Username: "alice"}
	if err := db.Create(&season).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	team := models.Team{SeasonID: season.ID, Name: "Imports"}
	if err := db.Create(&team).Error; err != nil {
		t.Fatal(err)
	}

	// Imported leg that never went through the submission flow.
	bet := models.Bet{
		UserID: user.ID, TeamID: team.ID, SeasonID: season.ID,
		Week: 4, BetType: models.BetTypeSpread, PickText: "imported",
		AmericanOdds: -110, StakeUnits: 1.0, ParlaySelected: true,
		Status: models.StatusWon,
	}
	if err := db.Create(&bet).Error; err != nil {
		t.Fatal(err)
	}

	if err := RunParlayBackfillMigration(db); err != nil {
		t.Fatalf("backfill failed: %v", err)
	}

	var parlay models.TeamParlay
	if err := db.Where("team_id = ? AND week = ?", team.ID, 4).First(&parlay).Error; err != nil {
		t.Fatalf("parlay not backfilled: %v", err)
	}
	if parlay.Status != models.StatusWon || parlay.DecimalOdds != 1.9091 {
		t.Errorf("unexpected backfill result: %s %v", parlay.Status, parlay.DecimalOdds)
	}

	// Second run is a no-op guarded by the migrations table.
	if err := RunParlayBackfillMigration(db); err != nil {
		t.Fatalf("rerun failed: %v", err)
	}
	var count int64
	db.Model(&models.Migration{}).Count(&count)
	if count != 1 {
		t.Errorf("expected one migration row, got %d", count)
	}
}

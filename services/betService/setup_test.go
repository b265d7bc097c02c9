package betService

import (
	"fmt"
	"testing"

	"parlayLeague/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixture holds the season/team/user graph most tests need.
type fixture struct {
	Season  models.Season
	TeamA   models.Team
	TeamB   models.Team
	UserOne models.User
	UserTwo models.User
}

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
		&models.FuturePick{},
		&models.ErrorLog{},
		&models.Migration{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedFixture(t *testing.T, db *gorm.DB) fixture {
	t.Helper()

	f := fixture{
		Season:  models.Season{Year: 2025},
		UserOne: models.User{Username: "alice"},
		UserTwo: models.User{Username: "bob"},
	}
	mustCreate(t, db, &f.Season)
	mustCreate(t, db, &f.UserOne)
	mustCreate(t, db, &f.UserTwo)

	f.TeamA = models.Team{SeasonID: f.Season.ID, Name: "Degenerates"}
	f.TeamB = models.Team{SeasonID: f.Season.ID, Name: "Longshots"}
	mustCreate(t, db, &f.TeamA)
	mustCreate(t, db, &f.TeamB)

	mustCreate(t, db, &models.TeamMembership{UserID: f.UserOne.ID, TeamID: f.TeamA.ID})
	mustCreate(t, db, &models.TeamMembership{UserID: f.UserTwo.ID, TeamID: f.TeamB.ID})
	return f
}

func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	if err := db.Create(value).Error; err != nil {
		t.Fatalf("failed to create %T: %v", value, err)
	}
}

// seedLeg inserts a leg directly, bypassing submission validation, so tests
// can stage arbitrary statuses and odds.
func seedLeg(t *testing.T, db *gorm.DB, f fixture, week int, betType string, odds int, status string, parlaySelected bool) models.Bet {
	t.Helper()
	bet := models.Bet{
		UserID:         f.UserOne.ID,
		TeamID:         f.TeamA.ID,
		SeasonID:       f.Season.ID,
		Week:           week,
		BetType:        betType,
		PickText:       fmt.Sprintf("%s pick", betType),
		AmericanOdds:   odds,
		StakeUnits:     1.0,
		ParlaySelected: parlaySelected,
		Status:         status,
	}
	mustCreate(t, db, &bet)
	return bet
}

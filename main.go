package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"parlayLeague/models"
	"parlayLeague/services"
	"parlayLeague/services/apiService"
)

var db *gorm.DB

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		log.Fatalf("DATABASE_URL not set in environment variables")
	}

	u, err := dburl.Parse(connString)
	if err != nil {
		log.Fatalf("failed to parse DATABASE_URL: %v", err)
	}

	var dialector gorm.Dialector
	switch u.Driver {
	case "mysql":
		dialector = mysql.Open(u.DSN + "?charset=utf8mb4&parseTime=True&loc=Local")
	case "sqlite3":
		dialector = sqlite.Open(u.DSN)
	default:
		log.Fatalf("unsupported database driver %q", u.Driver)
	}

	db, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
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
		log.Fatalf("Error migrating database: %v", err)
	}
}

func main() {
	if err := services.RunParlayBackfillMigration(db); err != nil {
		log.Fatalf("Error running parlay backfill: %v", err)
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	router := apiService.NewRouter(db)

	log.Printf("League tracker listening on %s", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

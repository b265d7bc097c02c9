package apiService

import (
	"net/http"

	"parlayLeague/services/standingsService"

	"gorm.io/gorm"
)

func standingsView(db *gorm.DB, w http.ResponseWriter, r *http.Request) {
	season, err := seasonFromPath(db, r)
	if err != nil {
		respondError(db, w, err)
		return
	}

	report, err := standingsService.ComputeStandings(db, season.ID)
	if err != nil {
		respondError(db, w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

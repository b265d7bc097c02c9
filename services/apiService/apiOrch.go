package apiService

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"parlayLeague/models"
	"parlayLeague/services/common"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// NewRouter wires the HTTP surface. Every route takes the season explicitly;
// there is no implicit "current season" lookup.
func NewRouter(db *gorm.DB) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/seasons/{year}/weeks/{week}/picks", withDB(db, submitPicks)).Methods(http.MethodPost)
	r.HandleFunc("/seasons/{year}/weeks/{week}", withDB(db, weekView)).Methods(http.MethodGet)
	r.HandleFunc("/seasons/{year}/standings", withDB(db, standingsView)).Methods(http.MethodGet)
	r.HandleFunc("/seasons/{year}/futures", withDB(db, futuresBoard)).Methods(http.MethodGet)
	r.HandleFunc("/seasons/{year}/futures", withDB(db, submitFuture)).Methods(http.MethodPost)
	r.HandleFunc("/bets/{id}", withDB(db, deleteBet)).Methods(http.MethodDelete)
	r.HandleFunc("/bets/grade", withDB(db, gradeBets)).Methods(http.MethodPost)
	r.HandleFunc("/bets/{id}/grade", withDB(db, gradeBet)).Methods(http.MethodPost)
	r.HandleFunc("/futures/{id}/grade", withDB(db, gradeFuture)).Methods(http.MethodPost)
	r.HandleFunc("/parlays/recompute", withDB(db, recomputeParlay)).Methods(http.MethodPost)

	return r
}

type handlerFunc func(db *gorm.DB, w http.ResponseWriter, r *http.Request)

func withDB(db *gorm.DB, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(db, w, r)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("error encoding response: %v", err)
	}
}

// respondError maps validation errors to 400s and everything else to a 500.
// Internal failures also land in the error log table.
func respondError(db *gorm.DB, w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrInvalidOdds),
		errors.Is(err, common.ErrOverUnderRequired),
		errors.Is(err, common.ErrOverUnderForbidden),
		errors.Is(err, common.ErrInvalidWeek),
		errors.Is(err, common.ErrInvalidBetType),
		errors.Is(err, common.ErrTooManyParlayLegs),
		errors.Is(err, common.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrDuplicatePick):
		status = http.StatusConflict
	case errors.Is(err, common.ErrNotOnTeam):
		status = http.StatusForbidden
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		common.LogError(db, "api", err)
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func seasonFromPath(db *gorm.DB, r *http.Request) (*models.Season, error) {
	year, err := strconv.Atoi(mux.Vars(r)["year"])
	if err != nil {
		return nil, fmt.Errorf("invalid season year: %w", gorm.ErrRecordNotFound)
	}
	var season models.Season
	if err := db.Where("year = ?", year).First(&season).Error; err != nil {
		return nil, fmt.Errorf("season %d: %w", year, err)
	}
	return &season, nil
}

func weekFromPath(r *http.Request) (int, error) {
	week, err := strconv.Atoi(mux.Vars(r)["week"])
	if err != nil || week < 1 || week > 18 {
		return 0, common.ErrInvalidWeek
	}
	return week, nil
}

func userByName(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, fmt.Errorf("user %q: %w", username, err)
	}
	return &user, nil
}

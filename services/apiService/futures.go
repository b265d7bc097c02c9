package apiService

import (
	"encoding/json"
	"net/http"
	"strconv"

	"parlayLeague/services/futureService"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type submitFuturePayload struct {
	Username     string  `json:"username"`
	Description  string  `json:"description"`
	AmericanOdds int     `json:"americanOdds"`
	StakeUnits   float64 `json:"stakeUnits"`
}

func submitFuture(db *gorm.DB, w http.ResponseWriter, r *http.Request) {
	season, err := seasonFromPath(db, r)
	if err != nil {
		respondError(db, w, err)
		return
	}

	var payload submitFuturePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := userByName(db, payload.Username)
	if err != nil {
		respondError(db, w, err)
		return
	}

	pick, err := futureService.SubmitFuture(db, user.ID, season.ID, payload.Description, payload.AmericanOdds, payload.StakeUnits)
	if err != nil {
		respondError(db, w, err)
		return
	}
	respondJSON(w, http.StatusOK, pick)
}

func futuresBoard(db *gorm.DB, w http.ResponseWriter, r *http.Request) {
	season, err := seasonFromPath(db, r)
	if err != nil {
		respondError(db, w, err)
		return
	}

	entries, err := futureService.Board(db, season.ID)
	if err != nil {
		respondError(db, w, err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

type gradeFuturePayload struct {
	Status string `json:"status"`
}

func gradeFuture(db *gorm.DB, w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid future pick id"})
		return
	}

	var payload gradeFuturePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	pick, err := futureService.GradeFuture(db, uint(id), payload.Status)
	if err != nil {
		respondError(db, w, err)
		return
	}
	respondJSON(w, http.StatusOK, pick)
}

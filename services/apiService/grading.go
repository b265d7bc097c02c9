package apiService

import (
	"encoding/json"
	"net/http"
	"strconv"

	"parlayLeague/services/betService"
	"parlayLeague/services/common"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type gradeBetsPayload struct {
	BetIDs []uint `json:"betIds"`
	Status string `json:"status"`
}

// gradeBets bulk-settles legs and reports how many rows changed. The
// service recomputes every touched parlay group before returning, so the
// response is only sent once no parlay is stale.
func gradeBets(db *gorm.DB, w http.ResponseWriter, r *http.Request) {
	var payload gradeBetsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	affected, err := betService.GradeBets(db, payload.BetIDs, payload.Status)
	if err != nil {
		respondError(db, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"affected": affected})
}

type gradeBetPayload struct {
	Status string `json:"status"`
}

func gradeBet(db *gorm.DB, w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid bet id"})
		return
	}

	var payload gradeBetPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	bet, err := betService.GradeBet(db, uint(id), payload.Status)
	if err != nil {
		respondError(db, w, err)
		return
	}
	respondJSON(w, http.StatusOK, bet)
}

type recomputePayload struct {
	TeamID   uint `json:"teamId"`
	SeasonID uint `json:"seasonId"`
	Week     int  `json:"week"`
}

// recomputeParlay forces a re-derivation of one parlay group, the manual
// override for operators; the result is identical to what any leg mutation
// in the group would have produced.
func recomputeParlay(db *gorm.DB, w http.ResponseWriter, r *http.Request) {
	var payload recomputePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if payload.Week < 1 || payload.Week > 18 {
		respondError(db, w, common.ErrInvalidWeek)
		return
	}
	if payload.TeamID == 0 || payload.SeasonID == 0 {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "teamId and seasonId are required"})
		return
	}

	parlay, err := betService.RecomputeTeamParlay(db, payload.TeamID, payload.SeasonID, payload.Week)
	if err != nil {
		respondError(db, w, err)
		return
	}
	respondJSON(w, http.StatusOK, parlay)
}

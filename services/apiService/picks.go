package apiService

import (
	"encoding/json"
	"net/http"
	"strconv"

	"parlayLeague/models"
	"parlayLeague/services/betService"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type pickPayload struct {
	BetType        string  `json:"betType"`
	PickText       string  `json:"pickText"`
	Line           float64 `json:"line"`
	AmericanOdds   int     `json:"americanOdds"`
	StakeUnits     float64 `json:"stakeUnits"`
	ParlaySelected bool    `json:"parlaySelected"`
	OverUnder      string  `json:"overUnder"`
}

type submitPicksPayload struct {
	Username string        `json:"username"`
	Picks    []pickPayload `json:"picks"`
}

func submitPicks(db *gorm.DB, w http.ResponseWriter, r *http.Request) {
	season, err := seasonFromPath(db, r)
	if err != nil {
		respondError(db, w, err)
		return
	}
	week, err := weekFromPath(r)
	if err != nil {
		respondError(db, w, err)
		return
	}

	var payload submitPicksPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := userByName(db, payload.Username)
	if err != nil {
		respondError(db, w, err)
		return
	}

	picks := make([]betService.PickInput, 0, len(payload.Picks))
	for _, p := range payload.Picks {
		picks = append(picks, betService.PickInput{
			BetType:        p.BetType,
			PickText:       p.PickText,
			Line:           p.Line,
			AmericanOdds:   p.AmericanOdds,
			StakeUnits:     p.StakeUnits,
			ParlaySelected: p.ParlaySelected,
			OverUnder:      p.OverUnder,
		})
	}

	saved, err := betService.SubmitPicks(db, user.ID, season.ID, week, picks)
	if err != nil {
		respondError(db, w, err)
		return
	}
	respondJSON(w, http.StatusOK, saved)
}

func deleteBet(db *gorm.DB, w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid bet id"})
		return
	}
	if err := betService.DeleteBet(db, uint(id)); err != nil {
		respondError(db, w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type weekViewResponse struct {
	SeasonYear int                 `json:"seasonYear"`
	Week       int                 `json:"week"`
	Bets       []models.Bet        `json:"bets"`
	Parlays    []models.TeamParlay `json:"parlays"`
}

// weekView lists the settled legs of the week plus each team's parlay row.
func weekView(db *gorm.DB, w http.ResponseWriter, r *http.Request) {
	season, err := seasonFromPath(db, r)
	if err != nil {
		respondError(db, w, err)
		return
	}
	week, err := weekFromPath(r)
	if err != nil {
		respondError(db, w, err)
		return
	}

	var bets []models.Bet
	if err := db.Preload("User").Preload("Team").
		Where("season_id = ? AND week = ? AND status <> ?", season.ID, week, models.StatusPending).
		Order("team_id, user_id, bet_type").
		Find(&bets).Error; err != nil {
		respondError(db, w, err)
		return
	}

	var parlays []models.TeamParlay
	if err := db.Preload("Team").
		Where("season_id = ? AND week = ?", season.ID, week).
		Order("team_id").
		Find(&parlays).Error; err != nil {
		respondError(db, w, err)
		return
	}

	respondJSON(w, http.StatusOK, weekViewResponse{
		SeasonYear: season.Year,
		Week:       week,
		Bets:       bets,
		Parlays:    parlays,
	})
}

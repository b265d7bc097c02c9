package standingsService

import (
	"fmt"
	"math"
	"sort"

	"parlayLeague/models"
	"parlayLeague/services/common"

	"gorm.io/gorm"
)

// Series is one line on the weekly cumulative chart. Data is indexed over
// weeks 0..lastSettledWeek; week 0 is a fixed zero baseline.
type Series struct {
	Label string    `json:"label"`
	Data  []float64 `json:"data"`
}

type IndividualStanding struct {
	Username   string  `json:"username"`
	Units      float64 `json:"units"`
	Stinkers   int     `json:"stinkers"`
	Heaters    int     `json:"heaters"`
	BestStreak int     `json:"bestStreak"`
	BiggestHit float64 `json:"biggestHit"`
}

type TeamStanding struct {
	TeamID      uint    `json:"teamId"`
	Name        string  `json:"name"`
	IndivUnits  float64 `json:"indivUnits"`
	ParlayUnits float64 `json:"parlayUnits"`
	TotalUnits  float64 `json:"totalUnits"`
}

type StandingsReport struct {
	SeasonID        uint                 `json:"seasonId"`
	LastSettledWeek int                  `json:"lastSettledWeek"`
	Weeks           []int                `json:"weeks"`
	Individuals     []IndividualStanding `json:"individuals"`
	Teams           []TeamStanding       `json:"teams"`
	TeamSeries      []Series             `json:"teamSeries"`
	UserSeries      []Series             `json:"userSeries"`
}

// ComputeStandings folds every leg and team parlay of the season into unit
// totals, weekly cumulative series and streak stats. The fold runs
// in-process over plain rows instead of pushing case/when expressions into
// the query engine, so the PnL formulas live in exactly one place.
func ComputeStandings(db *gorm.DB, seasonID uint) (*StandingsReport, error) {
	var teams []models.Team
	if err := db.Where("season_id = ?", seasonID).Order("name").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("error loading teams: %w", err)
	}

	// Pending legs are loaded too: every user who has ever placed a bet in
	// the season appears in each per-user series and metric.
	var bets []models.Bet
	if err := db.Preload("User").
		Where("season_id = ?", seasonID).
		Order("id").
		Find(&bets).Error; err != nil {
		return nil, fmt.Errorf("error loading bets: %w", err)
	}

	var parlays []models.TeamParlay
	if err := db.Where("season_id = ?", seasonID).Order("id").Find(&parlays).Error; err != nil {
		return nil, fmt.Errorf("error loading parlays: %w", err)
	}

	report := &StandingsReport{SeasonID: seasonID}

	type weekTally struct {
		settled int
		won     int
		lost    int
	}

	var userOrder []uint
	usernames := make(map[uint]string)
	userUnits := make(map[uint]float64)
	userWeekDelta := make(map[uint]map[int]float64)
	userWeekTally := make(map[uint]map[int]*weekTally)
	bestStreak := make(map[uint]int)
	curStreak := make(map[uint]int)
	biggestHit := make(map[uint]float64)

	teamIndiv := make(map[uint]float64)
	teamParlay := make(map[uint]float64)
	teamWeekDelta := make(map[uint]map[int]float64)

	lastSettled := 0

	for _, b := range bets {
		if _, seen := usernames[b.UserID]; !seen {
			userOrder = append(userOrder, b.UserID)
			usernames[b.UserID] = b.User.Username
			userWeekDelta[b.UserID] = make(map[int]float64)
			userWeekTally[b.UserID] = make(map[int]*weekTally)
		}
		if !b.Settled() {
			continue
		}
		if b.Week > lastSettled {
			lastSettled = b.Week
		}

		pnl := common.BetPnL(b.Status, b.StakeUnits, b.AmericanOdds)
		userUnits[b.UserID] += pnl
		userWeekDelta[b.UserID][b.Week] += pnl
		teamIndiv[b.TeamID] += pnl
		if teamWeekDelta[b.TeamID] == nil {
			teamWeekDelta[b.TeamID] = make(map[int]float64)
		}
		teamWeekDelta[b.TeamID][b.Week] += pnl

		tally := userWeekTally[b.UserID][b.Week]
		if tally == nil {
			tally = &weekTally{}
			userWeekTally[b.UserID][b.Week] = tally
		}
		tally.settled++
		switch b.Status {
		case models.StatusWon:
			tally.won++
			curStreak[b.UserID]++
			if curStreak[b.UserID] > bestStreak[b.UserID] {
				bestStreak[b.UserID] = curStreak[b.UserID]
			}
		case models.StatusLost:
			tally.lost++
			curStreak[b.UserID] = 0
		}
		if pnl > biggestHit[b.UserID] {
			biggestHit[b.UserID] = pnl
		}
	}

	for _, p := range parlays {
		if p.Status == models.StatusPending {
			continue
		}
		if p.Week > lastSettled {
			lastSettled = p.Week
		}
		pnl := common.ParlayPnL(p.Status, p.StakeUnits, p.DecimalOdds)
		teamParlay[p.TeamID] += pnl
		if teamWeekDelta[p.TeamID] == nil {
			teamWeekDelta[p.TeamID] = make(map[int]float64)
		}
		teamWeekDelta[p.TeamID][p.Week] += pnl
	}

	report.LastSettledWeek = lastSettled
	report.Weeks = make([]int, 0, lastSettled+1)
	for w := 0; w <= lastSettled; w++ {
		report.Weeks = append(report.Weeks, w)
	}

	for _, uid := range userOrder {
		report.Individuals = append(report.Individuals, IndividualStanding{
			Username:   usernames[uid],
			Units:      round4(userUnits[uid]),
			Stinkers:   countQualifyingWeeks(userWeekTally[uid], func(t *weekTally) bool { return t.settled == 3 && t.lost == 3 }),
			Heaters:    countQualifyingWeeks(userWeekTally[uid], func(t *weekTally) bool { return t.settled == 3 && t.won == 3 }),
			BestStreak: bestStreak[uid],
			BiggestHit: round4(biggestHit[uid]),
		})
		report.UserSeries = append(report.UserSeries, cumulativeSeries(usernames[uid], userWeekDelta[uid], report.Weeks))
	}
	// Descending by units; ties keep input order.
	sort.SliceStable(report.Individuals, func(i, j int) bool {
		return report.Individuals[i].Units > report.Individuals[j].Units
	})

	for _, t := range teams {
		indiv := round4(teamIndiv[t.ID])
		parlay := round4(teamParlay[t.ID])
		report.Teams = append(report.Teams, TeamStanding{
			TeamID:      t.ID,
			Name:        t.Name,
			IndivUnits:  indiv,
			ParlayUnits: parlay,
			TotalUnits:  round4(indiv + parlay),
		})
		report.TeamSeries = append(report.TeamSeries, cumulativeSeries(t.Name, teamWeekDelta[t.ID], report.Weeks))
	}
	sort.SliceStable(report.Teams, func(i, j int) bool {
		return report.Teams[i].TotalUnits > report.Teams[j].TotalUnits
	})

	return report, nil
}

func cumulativeSeries(label string, deltas map[int]float64, weeks []int) Series {
	cum := 0.0
	data := make([]float64, 0, len(weeks))
	for _, w := range weeks {
		cum += deltas[w]
		data = append(data, round4(cum))
	}
	return Series{Label: label, Data: data}
}

func countQualifyingWeeks[T any](weeks map[int]*T, qualifies func(*T) bool) int {
	n := 0
	for _, t := range weeks {
		if qualifies(t) {
			n++
		}
	}
	return n
}

func round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}

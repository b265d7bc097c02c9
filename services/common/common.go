package common

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"parlayLeague/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Validation errors surfaced to the submitter.
var (
	ErrInvalidOdds        = errors.New("american odds must be >= +100 or <= -100")
	ErrDuplicatePick      = errors.New("a pick for this week and bet type already exists; edit the existing pick instead")
	ErrOverUnderRequired  = errors.New("select Over or Under for totals and player props")
	ErrOverUnderForbidden = errors.New("over/under does not apply to spread picks")
	ErrInvalidWeek        = errors.New("week must be between 1 and 18")
	ErrInvalidBetType     = errors.New("bet type must be one of SPREAD, TOTAL, PROP")
	ErrTooManyParlayLegs  = errors.New("select at most one pick to count toward the team parlay")
	ErrInvalidStatus      = errors.New("status must be one of PENDING, WON, LOST, PUSH")
	ErrNotOnTeam          = errors.New("user is not assigned to a team for this season")
)

// OddsScale is the storage precision for decimal odds.
const OddsScale = 4

var one = decimal.NewFromInt(1)

// ToDecimal converts American odds to decimal odds.
// +150 -> 2.5, -120 -> 1.8333..., +100 and -100 -> 2.0.
// Values inside (-100, 100) are not representable prices and fail.
func ToDecimal(american int) (decimal.Decimal, error) {
	if american > -100 && american < 100 {
		return decimal.Decimal{}, fmt.Errorf("%w: got %d", ErrInvalidOdds, american)
	}
	hundred := decimal.NewFromInt(100)
	if american >= 100 {
		return one.Add(decimal.NewFromInt(int64(american)).Div(hundred)), nil
	}
	return one.Add(hundred.Div(decimal.NewFromInt(int64(-american)))), nil
}

// RoundOdds rounds a decimal price to storage precision.
func RoundOdds(d decimal.Decimal) float64 {
	return d.Round(OddsScale).InexactFloat64()
}

func FormatOdds(american int) string {
	if american > 0 {
		return fmt.Sprintf("+%s", strconv.Itoa(american))
	}
	return strconv.Itoa(american)
}

// BetPnL returns the profit/loss of a settled leg in units.
// WON pays stake * (decimal odds - 1); LOST forfeits the stake; PUSH and
// PENDING contribute nothing. Unusable odds on a won leg also contribute
// nothing, matching the neutral treatment during parlay aggregation.
func BetPnL(status string, stakeUnits float64, americanOdds int) float64 {
	switch status {
	case models.StatusWon:
		dec, err := ToDecimal(americanOdds)
		if err != nil {
			return 0
		}
		stake := decimal.NewFromFloat(stakeUnits)
		return RoundOdds(stake.Mul(dec.Sub(one)))
	case models.StatusLost:
		return -stakeUnits
	default:
		return 0
	}
}

// ParlayPnL returns the profit/loss of a settled team parlay in units,
// using the cached combined decimal odds.
func ParlayPnL(status string, stakeUnits, decimalOdds float64) float64 {
	switch status {
	case models.StatusWon:
		stake := decimal.NewFromFloat(stakeUnits)
		dec := decimal.NewFromFloat(decimalOdds)
		return RoundOdds(stake.Mul(dec.Sub(one)))
	case models.StatusLost:
		return -stakeUnits
	default:
		return 0
	}
}

var settlementStatuses = []string{models.StatusPending, models.StatusWon, models.StatusLost, models.StatusPush}

// ValidStatus reports whether s is a known settlement status.
func ValidStatus(s string) bool {
	return Contains(settlementStatuses, s)
}

// LogError records a non-fatal problem in the error log table. Failures to
// write the log entry are themselves only printed, never propagated.
func LogError(db *gorm.DB, context string, err error) {
	log.Printf("%s: %v", context, err)

	errLog := models.ErrorLog{
		Context: context,
		Message: fmt.Sprintf("%v", err),
	}
	if dbErr := db.Create(&errLog).Error; dbErr != nil {
		log.Printf("error writing error log: %v", dbErr)
	}
}

func Contains[T comparable](s []T, e T) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}

package services

import (
	"database/sql"
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/heatmapp/heatmapp/models"
)

// ErrResetInProgress is returned when a sweep is already running in this
// process; the job is periodic and idempotent, skipping a trigger is safe.
var ErrResetInProgress = errors.New("streak reset already in progress")

// ResetResult summarizes one streak-reset sweep.
type ResetResult struct {
	OK        bool       `json:"ok"`
	Updated   int        `json:"updated"`
	Today     models.Day `json:"hoje"`
	Yesterday models.Day `json:"ontem"`
}

var resetMu sync.Mutex

// ResetStreaks zeroes the streak of every user whose most recent post is not
// from the reference day (the day before the sweep runs; the job is
// scheduled shortly after midnight). It only ever lowers streaks to zero and
// never touches coin balances, so running it twice in a row is a no-op.
func ResetStreaks(db *gorm.DB) (ResetResult, error) {
	if !resetMu.TryLock() {
		return ResetResult{}, ErrResetInProgress
	}
	defer resetMu.Unlock()

	today := models.Today()
	yesterday := today.AddDays(-1)
	result := ResetResult{OK: true, Today: today, Yesterday: yesterday}

	// Users already at zero can never be updated; skip them up front.
	var users []models.User
	if err := db.Where("streak <> 0").Find(&users).Error; err != nil {
		return ResetResult{}, err
	}

	for _, user := range users {
		last, err := lastActivityDay(db, user.ID)
		if err != nil {
			return result, err
		}
		if keepsStreak(last, yesterday) {
			continue
		}
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("streak", 0).Error; err != nil {
			return result, err
		}
		result.Updated++
	}

	return result, nil
}

// keepsStreak reports whether a user's most recent activity day preserves
// the streak for the given reference day.
func keepsStreak(last *models.Day, reference models.Day) bool {
	return last != nil && last.Equal(reference)
}

// lastActivityDay returns the most recent post day across plain and noise
// posts, or nil when the user has never posted.
func lastActivityDay(db *gorm.DB, userID uint) (*models.Day, error) {
	postDay, err := maxLocalDate(db, &models.Post{}, userID)
	if err != nil {
		return nil, err
	}
	noiseDay, err := maxLocalDate(db, &models.NoisePost{}, userID)
	if err != nil {
		return nil, err
	}
	return laterDay(postDay, noiseDay), nil
}

func maxLocalDate(db *gorm.DB, model interface{}, userID uint) (*models.Day, error) {
	var latest sql.NullTime
	row := db.Model(model).Where("user_id = ?", userID).Select("MAX(local_date)").Row()
	if err := row.Scan(&latest); err != nil {
		return nil, err
	}
	if !latest.Valid {
		return nil, nil
	}
	day := models.DayOf(latest.Time)
	return &day, nil
}

func laterDay(a, b *models.Day) *models.Day {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.After(a.Time):
		return b
	default:
		return a
	}
}

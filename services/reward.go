package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/heatmapp/heatmapp/models"
)

// MaxDailyReward caps the coins a single first-post-of-the-day can award.
// The streak itself keeps growing past the cap.
const MaxDailyReward = 50

// RewardOutcome reports what a post creation earned its author. JSON field
// names match the mobile app contract.
type RewardOutcome struct {
	StreakIncreased bool `json:"aumentou_streak"`
	CoinsAwarded    int  `json:"moedas_ganhas"`
}

// computeReward is the pure reward decision: the first post of the day pays
// min(MaxDailyReward, streak+1) and bumps the streak, every later post of
// the same day pays a single coin.
func computeReward(streak int, postedToday bool) RewardOutcome {
	if postedToday {
		return RewardOutcome{StreakIncreased: false, CoinsAwarded: 1}
	}
	reward := streak + 1
	if reward > MaxDailyReward {
		reward = MaxDailyReward
	}
	return RewardOutcome{StreakIncreased: true, CoinsAwarded: reward}
}

// ApplyReward mutates the author's ledger for one post creation. It must run
// inside the same transaction that inserts the triggering post; the user row
// is locked so simultaneous posts by one user serialize instead of racing
// the read-check-write on streak and coins. The posted-today check runs
// before the triggering post is inserted, so that post never counts itself.
func ApplyReward(tx *gorm.DB, userID uint) (RewardOutcome, error) {
	var user models.User
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
		return RewardOutcome{}, err
	}

	postedToday, err := hasPostedOn(tx, userID, models.Today())
	if err != nil {
		return RewardOutcome{}, err
	}

	outcome := computeReward(user.Streak, postedToday)
	user.Coins += outcome.CoinsAwarded
	if outcome.StreakIncreased {
		user.Streak++
	}

	if err := tx.Save(&user).Error; err != nil {
		return RewardOutcome{}, err
	}
	return outcome, nil
}

// hasPostedOn is the shared daily-activity predicate: a user posted on a day
// iff a plain post or a noise post of theirs carries that local date.
// Green-area posts deliberately do not count.
func hasPostedOn(tx *gorm.DB, userID uint, day models.Day) (bool, error) {
	var count int64
	if err := tx.Model(&models.Post{}).
		Where("user_id = ? AND local_date = ?", userID, day).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := tx.Model(&models.NoisePost{}).
		Where("user_id = ? AND local_date = ?", userID, day).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

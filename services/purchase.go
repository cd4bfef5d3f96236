package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/heatmapp/heatmapp/models"
)

var (
	// ErrIconNotFound means the requested catalog item does not exist.
	ErrIconNotFound = errors.New("icon not found")
	// ErrAlreadyOwned means the user already purchased this icon.
	ErrAlreadyOwned = errors.New("icon already owned")
	// ErrInsufficientCoins means the balance does not cover the price.
	ErrInsufficientCoins = errors.New("insufficient coins")
	// ErrPurchaseFailed covers storage-level conflicts that slipped past the
	// in-transaction checks; the caller may retry.
	ErrPurchaseFailed = errors.New("purchase failed, try again")
)

// PurchaseIcon debits the user and records ownership atomically. The user
// row is locked for the duration of the transaction so two simultaneous
// purchases by the same user cannot double-spend; the lock is scoped to the
// row, leaving other users' purchases unaffected. The unique (user, icon)
// index backstops any race that escapes the ownership check.
func PurchaseIcon(db *gorm.DB, userID, iconID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			return err
		}

		var icon models.Icon
		if err := tx.First(&icon, iconID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrIconNotFound
			}
			return err
		}

		var owned int64
		if err := tx.Model(&models.IconPurchase{}).
			Where("user_id = ? AND icon_id = ?", userID, iconID).
			Count(&owned).Error; err != nil {
			return err
		}
		if owned > 0 {
			return ErrAlreadyOwned
		}

		if user.Coins < icon.Price {
			return ErrInsufficientCoins
		}

		user.Coins -= icon.Price
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		purchase := models.IconPurchase{UserID: userID, IconID: iconID}
		if err := tx.Create(&purchase).Error; err != nil {
			if IsDuplicateKey(err) {
				return ErrPurchaseFailed
			}
			return err
		}
		return nil
	})
	return err
}

// IsDuplicateKey detects a unique-constraint violation from MySQL. Writers
// whose pre-checks can lose a race to a unique index use it to map the
// violation onto their business error.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}

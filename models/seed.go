package models

import "gorm.io/gorm"

// SeedIcons installs the default icon catalog into an empty icons table.
// The catalog is reference data; a populated table is left untouched.
func SeedIcons(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Icon{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	icons := make([]Icon, len(DefaultIcons))
	copy(icons, DefaultIcons)
	return db.Create(&icons).Error
}

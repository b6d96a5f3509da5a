package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/petompp/internal/models"
)

// GetUserSettings returns the settings row, creating it with defaults on
// first use.
func (r *GormRepo) GetUserSettings(ctx context.Context) (*models.UserSettings, error) {
	settings := models.DefaultUserSettings()
	if err := r.DB.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "lock"}, Value: models.SettingsLock}).FirstOrCreate(&settings).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateUserSettings applies update to the locked settings row and saves it
// only when validate accepts the result.
func (r *GormRepo) UpdateUserSettings(ctx context.Context, update models.UserSettingsUpdate, validate func(models.UserSettings) error) (*models.UserSettings, error) {
	var settings models.UserSettings
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		settings = models.DefaultUserSettings()
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(clause.Eq{Column: clause.Column{Name: "lock"}, Value: models.SettingsLock}).
			FirstOrCreate(&settings).Error; err != nil {
			return err
		}
		update.ApplyTo(&settings)
		if validate != nil {
			if err := validate(settings); err != nil {
				return err
			}
		}
		return tx.Save(&settings).Error
	})
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/petompp/internal/models"
	"github.com/Skotchmaster/petompp/internal/repo"
)

type SettingsService struct {
	Repo *repo.GormRepo
}

func (s *SettingsService) Get(ctx context.Context) (*models.UserSettings, error) {
	return s.Repo.GetUserSettings(ctx)
}

// Update validates the merged settings inside the same transaction that
// stores them.
func (s *SettingsService) Update(ctx context.Context, update models.UserSettingsUpdate) (*models.UserSettings, error) {
	return s.Repo.UpdateUserSettings(ctx, update, validateSettings)
}

func validateSettings(s models.UserSettings) error {
	switch {
	case s.NameMinLength < 1:
		return fmt.Errorf("%w: name_min_length must be positive", ErrValidation)
	case s.NameMaxLength <= s.NameMinLength:
		return fmt.Errorf("%w: name_max_length must be greater than name_min_length", ErrValidation)
	case len(s.NameSpecialCharacters) > 32:
		return fmt.Errorf("%w: name_special_characters is limited to 32 characters", ErrValidation)
	case s.PasswordMinLength < 1:
		return fmt.Errorf("%w: password_min_length must be positive", ErrValidation)
	case s.PasswordNeededChecks < 0 || s.PasswordNeededChecks > 4:
		return fmt.Errorf("%w: password_needed_checks must be between 0 and 4", ErrValidation)
	}
	return nil
}

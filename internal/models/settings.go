package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

const SettingsLock = "X"

var (
	ErrNameLength        = errors.New("name has invalid length")
	ErrNameCharacters    = errors.New("name contains invalid characters")
	ErrPasswordTooShort  = errors.New("password is too short")
	ErrPasswordTooSimple = errors.New("password does not pass enough checks")
)

// UserSettings is a single row table holding the account policies.
type UserSettings struct {
	Lock                           string `gorm:"primaryKey;size:1" json:"-"`
	NameMinLength                  int    `gorm:"not null"          json:"name_min_length"`
	NameMaxLength                  int    `gorm:"not null"          json:"name_max_length"`
	NameSpecialCharacters          string `gorm:"size:32;not null"  json:"name_special_characters"`
	PasswordMinLength              int    `gorm:"not null"          json:"password_min_length"`
	PasswordNeededChecks           int    `gorm:"not null"          json:"password_needed_checks"`
	PasswordCheckNumbers           bool   `gorm:"not null"          json:"password_check_numbers"`
	PasswordCheckUppercase         bool   `gorm:"not null"          json:"password_check_uppercase"`
	PasswordCheckLowercase         bool   `gorm:"not null"          json:"password_check_lowercase"`
	PasswordCheckSpecialCharacters bool   `gorm:"not null"          json:"password_check_special_characters"`
}

func DefaultUserSettings() UserSettings {
	return UserSettings{
		Lock:                           SettingsLock,
		NameMinLength:                  3,
		NameMaxLength:                  28,
		NameSpecialCharacters:          "-_.$@!#%^&*",
		PasswordMinLength:              8,
		PasswordNeededChecks:           3,
		PasswordCheckNumbers:           true,
		PasswordCheckUppercase:         true,
		PasswordCheckLowercase:         true,
		PasswordCheckSpecialCharacters: true,
	}
}

// UserSettingsUpdate carries a partial update, nil fields are left as is.
type UserSettingsUpdate struct {
	NameMinLength                  *int    `json:"name_min_length,omitempty"`
	NameMaxLength                  *int    `json:"name_max_length,omitempty"`
	NameSpecialCharacters          *string `json:"name_special_characters,omitempty"`
	PasswordMinLength              *int    `json:"password_min_length,omitempty"`
	PasswordNeededChecks           *int    `json:"password_needed_checks,omitempty"`
	PasswordCheckNumbers           *bool   `json:"password_check_numbers,omitempty"`
	PasswordCheckUppercase         *bool   `json:"password_check_uppercase,omitempty"`
	PasswordCheckLowercase         *bool   `json:"password_check_lowercase,omitempty"`
	PasswordCheckSpecialCharacters *bool   `json:"password_check_special_characters,omitempty"`
}

func (u UserSettingsUpdate) ApplyTo(s *UserSettings) {
	setIf(&s.NameMinLength, u.NameMinLength)
	setIf(&s.NameMaxLength, u.NameMaxLength)
	setIf(&s.NameSpecialCharacters, u.NameSpecialCharacters)
	setIf(&s.PasswordMinLength, u.PasswordMinLength)
	setIf(&s.PasswordNeededChecks, u.PasswordNeededChecks)
	setIf(&s.PasswordCheckNumbers, u.PasswordCheckNumbers)
	setIf(&s.PasswordCheckUppercase, u.PasswordCheckUppercase)
	setIf(&s.PasswordCheckLowercase, u.PasswordCheckLowercase)
	setIf(&s.PasswordCheckSpecialCharacters, u.PasswordCheckSpecialCharacters)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// ValidateName checks a trimmed user name. The byte length must be in
// [NameMinLength, NameMaxLength).
func (s UserSettings) ValidateName(name string) error {
	if len(name) < s.NameMinLength || len(name) >= s.NameMaxLength {
		return fmt.Errorf("%w: must be between %d and %d characters", ErrNameLength, s.NameMinLength, s.NameMaxLength-1)
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || strings.ContainsRune(s.NameSpecialCharacters, r) {
			continue
		}
		return fmt.Errorf("%w: allowed special characters are %q", ErrNameCharacters, s.NameSpecialCharacters)
	}
	return nil
}

func (s UserSettings) ValidatePassword(password string) error {
	if len(password) < s.PasswordMinLength {
		return fmt.Errorf("%w: at least %d characters required", ErrPasswordTooShort, s.PasswordMinLength)
	}
	checks := []struct {
		enabled bool
		match   func(rune) bool
	}{
		{s.PasswordCheckNumbers, unicode.IsNumber},
		{s.PasswordCheckLowercase, unicode.IsLower},
		{s.PasswordCheckUppercase, unicode.IsUpper},
		{s.PasswordCheckSpecialCharacters, func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsNumber(r) }},
	}
	passed := 0
	for _, c := range checks {
		if c.enabled && strings.IndexFunc(password, c.match) >= 0 {
			passed++
		}
	}
	if passed < s.PasswordNeededChecks {
		return fmt.Errorf("%w: %d of the enabled checks must pass", ErrPasswordTooSimple, s.PasswordNeededChecks)
	}
	return nil
}

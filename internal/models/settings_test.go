package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	t.Parallel()

	s := DefaultUserSettings()

	tests := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "plain", in: "alice"},
		{name: "specials", in: "a.l-i_c$e"},
		{name: "unicode letters", in: "żółw"},
		{name: "minimum length", in: "abc"},
		{name: "too short", in: "ab", wantErr: ErrNameLength},
		{name: "max is exclusive", in: "abcdefghijklmnopqrstuvwxyz01", wantErr: ErrNameLength},
		{name: "longest allowed", in: "abcdefghijklmnopqrstuvwxyz0"},
		{name: "space", in: "al ice", wantErr: ErrNameCharacters},
		{name: "slash", in: "al/ice", wantErr: ErrNameCharacters},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := s.ValidateName(tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	s := DefaultUserSettings()

	require.NoError(t, s.ValidatePassword("Password1"))
	require.NoError(t, s.ValidatePassword("password1!"))
	require.ErrorIs(t, s.ValidatePassword("Pa1!"), ErrPasswordTooShort)
	require.ErrorIs(t, s.ValidatePassword("password"), ErrPasswordTooSimple)
	require.ErrorIs(t, s.ValidatePassword("password1"), ErrPasswordTooSimple)

	s.PasswordCheckNumbers = false
	require.ErrorIs(t, s.ValidatePassword("password1!"), ErrPasswordTooSimple)

	s.PasswordNeededChecks = 0
	require.NoError(t, s.ValidatePassword("aaaaaaaa"))
}

func TestUserSettingsUpdate_ApplyTo(t *testing.T) {
	t.Parallel()

	s := DefaultUserSettings()
	minLen := 5
	checks := false
	UserSettingsUpdate{NameMinLength: &minLen, PasswordCheckUppercase: &checks}.ApplyTo(&s)

	assert.Equal(t, 5, s.NameMinLength)
	assert.False(t, s.PasswordCheckUppercase)
	assert.Equal(t, 28, s.NameMaxLength)
	assert.Equal(t, SettingsLock, s.Lock)
}

func TestResourceValue(t *testing.T) {
	t.Parallel()

	pl := "cześć"
	assert.Equal(t, "hi", Resource{En: "hi"}.Value(LangPl))
	assert.Equal(t, "cześć", Resource{En: "hi", Pl: &pl}.Value(LangPl))
	assert.Equal(t, "hi", Resource{En: "hi", Pl: &pl}.Value(LangEn))
}

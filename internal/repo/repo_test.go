package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/petompp/internal/auth"
	"github.com/Skotchmaster/petompp/internal/models"
	"github.com/Skotchmaster/petompp/internal/query"
)

func InitTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Resource{}, &models.UserSettings{}))
	return db
}

func newUser(t *testing.T, name string) *models.User {
	t.Helper()
	cred, err := auth.NewCredential("Password1")
	require.NoError(t, err)
	return &models.User{Name: name, NormalizedName: models.NormalizeName(name), Password: cred}
}

func TestCreateUserIfNotExists(t *testing.T) {
	t.Parallel()

	r := New(InitTestDB(t))
	ctx := context.Background()

	u := newUser(t, "Alice")
	require.NoError(t, r.CreateUserIfNotExists(ctx, u))
	assert.NotZero(t, u.ID)

	err := r.CreateUserIfNotExists(ctx, newUser(t, "ALICE"))
	require.ErrorIs(t, err, ErrUserAlreadyExist)

	stored, err := r.GetUserByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Name)
	assert.Equal(t, auth.RoleUser, stored.Role)
	assert.True(t, stored.Password.Verify("Password1"))
}

func TestGetUser_NotFound(t *testing.T) {
	t.Parallel()

	r := New(InitTestDB(t))
	ctx := context.Background()

	_, err := r.GetUserByName(ctx, "ghost")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = r.GetUserByID(ctx, 99)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestActivateAndDeleteUser(t *testing.T) {
	t.Parallel()

	r := New(InitTestDB(t))
	ctx := context.Background()

	u := newUser(t, "bob")
	require.NoError(t, r.CreateUserIfNotExists(ctx, u))

	activated, err := r.ActivateUser(ctx, int64(u.ID))
	require.NoError(t, err)
	assert.True(t, activated.Confirmed)

	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	deleted, err := r.SoftDeleteUser(ctx, int64(u.ID), at)
	require.NoError(t, err)
	require.NotNil(t, deleted.DeletedAt)
	assert.True(t, at.Equal(*deleted.DeletedAt))

	_, err = r.ActivateUser(ctx, 1234)
	require.ErrorIs(t, err, ErrUserNotFound)
	_, err = r.SoftDeleteUser(ctx, 1234, at)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsers_AppliesPlan(t *testing.T) {
	t.Parallel()

	r := New(InitTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"carol", "alice", "dave", "bob", "erin"} {
		require.NoError(t, r.CreateUserIfNotExists(ctx, newUser(t, name)))
	}

	reg := query.MustRegistry(&models.User{}, map[string]string{"name": "name"})
	items := int64(2)
	sort := "name"
	order := query.Asc
	plan, err := query.BuildPlan(query.PageSpec{Range: query.Single(1), Items: &items, Sort: &sort, Order: &order}, reg)
	require.NoError(t, err)

	total, users, err := r.ListUsers(ctx, plan)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, users, 2)
	assert.Equal(t, "carol", users[0].Name)
	assert.Equal(t, "dave", users[1].Name)

	total, users, err = r.ListUsers(ctx, query.Plan{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, users, 5)
}

func TestResources(t *testing.T) {
	t.Parallel()

	r := New(InitTestDB(t))
	ctx := context.Background()

	require.NoError(t, r.CreateResource(ctx, &models.Resource{Key: "greeting", En: "Hello"}))
	require.ErrorIs(t, r.CreateResource(ctx, &models.Resource{Key: "greeting", En: "Hi"}), ErrResourceExists)

	pl := "Cześć"
	updated, err := r.UpdateResource(ctx, "greeting", nil, &pl)
	require.NoError(t, err)
	assert.Equal(t, "Hello", updated.En)
	require.NotNil(t, updated.Pl)
	assert.Equal(t, "Cześć", *updated.Pl)

	cleared, err := r.ClearTranslation(ctx, "greeting", "pl")
	require.NoError(t, err)
	assert.Nil(t, cleared.Pl)

	keys, err := r.ResourceKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"greeting"}, keys)

	_, err = r.UpdateResource(ctx, "missing", &pl, nil)
	require.ErrorIs(t, err, ErrResourceNotFound)

	require.NoError(t, r.DeleteResource(ctx, "greeting"))
	require.ErrorIs(t, r.DeleteResource(ctx, "greeting"), ErrResourceNotFound)

	_, err = r.GetResource(ctx, "greeting")
	require.ErrorIs(t, err, ErrResourceNotFound)
}

func TestUserSettings(t *testing.T) {
	t.Parallel()

	r := New(InitTestDB(t))
	ctx := context.Background()

	s, err := r.GetUserSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultUserSettings(), *s)

	minLen := 10
	updated, err := r.UpdateUserSettings(ctx, models.UserSettingsUpdate{PasswordMinLength: &minLen}, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.PasswordMinLength)

	again, err := r.GetUserSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, again.PasswordMinLength)
	assert.Equal(t, 28, again.NameMaxLength)
}

func TestUpdateUserSettings_RejectedUpdateIsNotStored(t *testing.T) {
	t.Parallel()

	r := New(InitTestDB(t))
	ctx := context.Background()
	errRejected := errors.New("rejected")

	var seen models.UserSettings
	maxLen := 2
	_, err := r.UpdateUserSettings(ctx, models.UserSettingsUpdate{NameMaxLength: &maxLen}, func(s models.UserSettings) error {
		seen = s
		return errRejected
	})
	require.ErrorIs(t, err, errRejected)
	assert.Equal(t, 2, seen.NameMaxLength, "validation sees the merged row")

	stored, err := r.GetUserSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 28, stored.NameMaxLength)
}

package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/petompp/internal/auth"
	"github.com/Skotchmaster/petompp/internal/blob"
	"github.com/Skotchmaster/petompp/internal/blob/blobtest"
	"github.com/Skotchmaster/petompp/internal/handlers"
	authmw "github.com/Skotchmaster/petompp/internal/middleware/auth"
	"github.com/Skotchmaster/petompp/internal/models"
	"github.com/Skotchmaster/petompp/internal/mykafka"
	"github.com/Skotchmaster/petompp/internal/query"
	"github.com/Skotchmaster/petompp/internal/repo"
	"github.com/Skotchmaster/petompp/internal/service"
)

type testServer struct {
	e     *echo.Echo
	codec *auth.TokenCodec
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Resource{}, &models.UserSettings{}))

	r := repo.New(db)
	codec := auth.NewTokenCodec([]byte("router-secret"), nil)
	store := blob.NewStore(blobtest.NewFakeS3("images", "blog", "docs"))

	e := echo.New()
	Register(e, &Deps{
		Guard:         authmw.NewGuard(codec),
		HealthHandler: &handlers.HealthHandler{DB: db, Store: store, Buckets: []string{"images", "blog"}},
		UserHandler: &handlers.UserHandler{Svc: &service.UserService{
			Repo:      r,
			Codec:     codec,
			Publisher: mykafka.NopPublisher{},
			Columns:   query.MustRegistry(&models.User{}, service.UserColumns),
		}},
		ResourceHandler: &handlers.ResourceHandler{Svc: &service.ResourceService{Repo: r, Publisher: mykafka.NopPublisher{}}},
		SettingsHandler: &handlers.SettingsHandler{Svc: &service.SettingsService{Repo: r}},
		ImageHandler:    &handlers.ImageHandler{Images: blob.NewImages(store, "images"), Limit: 1 << 20},
		BlogHandler:     &handlers.BlogHandler{Blog: blob.NewBlog(store, "blog", nil)},
		BlobHandler:     &handlers.BlobHandler{Containers: blob.NewContainers(store, []string{"docs"}), Limit: 1 << 20},
	})
	return &testServer{e: e, codec: codec}
}

func (s *testServer) token(t *testing.T, role auth.Role) string {
	t.Helper()
	token, _, err := s.codec.IssueForUser(models.User{ID: 1, Role: role})
	require.NoError(t, err)
	return token
}

func (s *testServer) do(method, target, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health/live", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health/ready", "", nil).Code)
}

func TestRouter_Guards(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	user := s.token(t, auth.RoleUser)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/users/all"},
		{http.MethodPost, "/api/v1/users/1/activate"},
		{http.MethodDelete, "/api/v1/users/1"},
		{http.MethodPut, "/api/v1/res/title"},
		{http.MethodPost, "/api/v1/res/title"},
		{http.MethodDelete, "/api/v1/res/title"},
		{http.MethodPost, "/api/v1/settings/users"},
		{http.MethodPut, "/api/v1/img"},
		{http.MethodDelete, "/api/v1/img?pattern=x"},
		{http.MethodPost, "/api/v1/blog/hello/en"},
		{http.MethodDelete, "/api/v1/blog/hello/en"},
		{http.MethodPost, "/api/v1/blob/docs"},
		{http.MethodDelete, "/api/v1/blob/docs/a"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			assert.Equal(t, http.StatusUnauthorized, s.do(tt.method, tt.target, "", nil).Code)
		})
	}

	// Routes open to any signed in user.
	assert.NotEqual(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/users", user, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/users/all", user, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPut, "/api/v1/res/title", user, map[string]string{"en": "x"}).Code)
}

func TestRouter_ResourceFlow(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	admin := s.token(t, auth.RoleAdmin)

	rec := s.do(http.MethodPut, "/api/v1/res/title", admin, map[string]string{"en": "Title"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/res/keys", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["title"]`, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/res/title?lang=pl", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"lang":"pl","value":"Title"}`, rec.Body.String())

	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodGet, "/api/v1/res/search?q=title", "", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/v1/settings/users", "", nil).Code)
}

func TestRouter_UserFlow(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	admin := s.token(t, auth.RoleAdmin)
	creds := map[string]string{"name": "Olga", "password": "Password1"}

	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/v1/users", "", creds).Code)
	require.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/api/v1/users/login", "", creds).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/users/1/activate", admin, nil).Code)

	rec := s.do(http.MethodPost, "/api/v1/users/login", "", creds)
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))

	rec = s.do(http.MethodGet, "/api/v1/users", login.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Olga"`)

	rec = s.do(http.MethodGet, "/api/v1/users/all?range=0&items=10&sort=id&order=asc", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":1`)
}

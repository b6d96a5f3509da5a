package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/petompp/internal/auth"
	"github.com/Skotchmaster/petompp/internal/models"
	"github.com/Skotchmaster/petompp/internal/mykafka"
	"github.com/Skotchmaster/petompp/internal/query"
	"github.com/Skotchmaster/petompp/internal/repo"
	"github.com/Skotchmaster/petompp/internal/service"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

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

func newCodec() *auth.TokenCodec {
	return auth.NewTokenCodec([]byte("handler-secret"), func() time.Time { return testNow })
}

func newUserService(t *testing.T) (*service.UserService, *repo.GormRepo) {
	t.Helper()
	r := repo.New(InitTestDB(t))
	return &service.UserService{
		Repo:      r,
		Codec:     newCodec(),
		Publisher: mykafka.NopPublisher{},
		Columns:   query.MustRegistry(&models.User{}, service.UserColumns),
		Now:       func() time.Time { return testNow },
	}, r
}

func newRequest(method, target string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return req
}

func newContext(req *http.Request, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(params) > 0 {
		var names, values []string
		for i := 0; i+1 < len(params); i += 2 {
			names = append(names, params[i])
			values = append(values, params[i+1])
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	return c, rec
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected echo.HTTPError, got %T (%v)", err, err)
	assert.Equal(t, code, he.Code)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

package authmw

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/petompp/internal/auth"
	"github.com/Skotchmaster/petompp/internal/logging"
)

const (
	identityKey  = "identity"
	bearerPrefix = "Bearer "
)

var (
	errMissingBearer = errors.New("missing bearer token")
	errNotAdmin      = errors.New("admin role required")
)

type ValidatorFunc func(claims auth.AccessClaims) error

// Guard authenticates requests with a bearer access token. Every rejection
// is the same 401 so callers cannot tell which check failed.
type Guard struct {
	Codec *auth.TokenCodec
}

func NewGuard(codec *auth.TokenCodec) *Guard {
	return &Guard{Codec: codec}
}

func (g *Guard) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return g.requireAuthWithValidator(next, nil)
}

func (g *Guard) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return g.requireAuthWithValidator(next, func(claims auth.AccessClaims) error {
		if claims.Acs != auth.RoleAdmin {
			return errNotAdmin
		}
		return nil
	})
}

func (g *Guard) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := g.authenticate(c, validator)
		if err != nil {
			logging.FromContext(c.Request().Context()).Warn("auth_rejected",
				"status", http.StatusUnauthorized,
				"error", err,
			)
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		c.Set(identityKey, claims)
		return next(c)
	}
}

func (g *Guard) authenticate(c echo.Context, validator ValidatorFunc) (auth.AccessClaims, error) {
	raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), bearerPrefix)
	if !ok {
		return auth.AccessClaims{}, errMissingBearer
	}
	claims, err := g.Codec.Verify(raw)
	if err != nil {
		return auth.AccessClaims{}, err
	}
	if validator != nil {
		if err := validator(claims); err != nil {
			return auth.AccessClaims{}, err
		}
	}
	return claims, nil
}

// IdentityFrom returns the claims stored by the guard for this request.
func IdentityFrom(c echo.Context) (auth.AccessClaims, bool) {
	claims, ok := c.Get(identityKey).(auth.AccessClaims)
	return claims, ok
}

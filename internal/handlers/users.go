package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/petompp/internal/auth"
	"github.com/Skotchmaster/petompp/internal/logging"
	authmw "github.com/Skotchmaster/petompp/internal/middleware/auth"
	"github.com/Skotchmaster/petompp/internal/query"
	"github.com/Skotchmaster/petompp/internal/service"
	"github.com/Skotchmaster/petompp/internal/transport"
)

type UserHandler struct {
	Svc *service.UserService
}

func (h *UserHandler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.register")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return reject(l, "register_failed", http.StatusBadRequest, "invalid body", err)
	}

	user, err := h.Svc.Register(ctx, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return reject(l, "register_failed", http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, service.ErrUserNameTaken):
			return reject(l, "register_failed", http.StatusConflict, "user name already taken", err)
		}
		return reject(l, "register_failed", http.StatusInternalServerError, "cannot create user", err)
	}

	l.Info("register_success", "user_id", user.ID)
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.login")

	var req transport.CredentialsRequest
	if err := c.Bind(&req); err != nil {
		return reject(l, "login_failed", http.StatusBadRequest, "invalid body", err)
	}

	res, err := h.Svc.Login(ctx, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			return reject(l, "login_failed", http.StatusUnauthorized, "invalid credentials", err)
		case errors.Is(err, service.ErrUserNotConfirmed):
			return reject(l, "login_failed", http.StatusForbidden, "user is not confirmed", err)
		}
		return reject(l, "login_failed", http.StatusInternalServerError, "cannot log in", err)
	}

	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, res)
}

func (h *UserHandler) Self(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.self")

	claims, ok := authmw.IdentityFrom(c)
	if !ok {
		return reject(l, "get_self_failed", http.StatusUnauthorized, "unauthorized", nil)
	}

	user, err := h.Svc.Get(ctx, claims.Sub)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return reject(l, "get_self_failed", http.StatusNotFound, "user not found", err)
		}
		return reject(l, "get_self_failed", http.StatusInternalServerError, "cannot get user", err)
	}
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.list")

	spec, err := query.ParsePageSpec(c.QueryParams())
	if err != nil {
		return reject(l, "list_users_failed", http.StatusBadRequest, err.Error(), err)
	}

	page, err := h.Svc.List(ctx, spec)
	if err != nil {
		if errors.Is(err, query.ErrValidation) {
			return reject(l, "list_users_failed", http.StatusBadRequest, err.Error(), err)
		}
		return reject(l, "list_users_failed", http.StatusInternalServerError, "cannot list users", err)
	}

	meta := map[string]any{
		"range": spec.Range.String(),
		"total": page.Total,
		"count": len(page.Items),
	}
	if spec.Items != nil {
		meta["items"] = *spec.Items
	}
	return c.JSON(http.StatusOK, map[string]any{"data": page.Items, "meta": meta})
}

func (h *UserHandler) Activate(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.activate")

	id, err := idParam(c)
	if err != nil {
		return reject(l, "activate_user_failed", http.StatusBadRequest, "id is not an integer", err)
	}

	user, err := h.Svc.Activate(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return reject(l, "activate_user_failed", http.StatusNotFound, "user not found", err)
		}
		return reject(l, "activate_user_failed", http.StatusInternalServerError, "cannot activate user", err)
	}

	l.Info("activate_user_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.delete")

	id, err := idParam(c)
	if err != nil {
		return reject(l, "delete_user_failed", http.StatusBadRequest, "id is not an integer", err)
	}

	user, err := h.Svc.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return reject(l, "delete_user_failed", http.StatusNotFound, "user not found", err)
		}
		return reject(l, "delete_user_failed", http.StatusInternalServerError, "cannot delete user", err)
	}

	l.Info("delete_user_success", "user_id", user.ID)
	return c.JSON(http.StatusOK, user)
}

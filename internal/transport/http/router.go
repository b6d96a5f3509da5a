package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/petompp/internal/handlers"
	authmw "github.com/Skotchmaster/petompp/internal/middleware/auth"
)

type Deps struct {
	Guard           *authmw.Guard
	HealthHandler   *handlers.HealthHandler
	UserHandler     *handlers.UserHandler
	ResourceHandler *handlers.ResourceHandler
	SettingsHandler *handlers.SettingsHandler
	ImageHandler    *handlers.ImageHandler
	BlogHandler     *handlers.BlogHandler
	BlobHandler     *handlers.BlobHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", d.HealthHandler.Live)
	e.GET("/health/ready", d.HealthHandler.Ready)

	v1 := e.Group("/api/v1")

	users := v1.Group("/users")
	users.POST("", d.UserHandler.Register)
	users.POST("/login", d.UserHandler.Login)
	users.GET("", d.UserHandler.Self, d.Guard.RequireAuth)
	users.GET("/all", d.UserHandler.List, d.Guard.RequireAdmin)
	users.POST("/:id/activate", d.UserHandler.Activate, d.Guard.RequireAdmin)
	users.DELETE("/:id", d.UserHandler.Delete, d.Guard.RequireAdmin)

	res := v1.Group("/res")
	res.GET("/keys", d.ResourceHandler.Keys)
	res.GET("/search", d.ResourceHandler.Search)
	res.GET("/:key", d.ResourceHandler.Get)
	res.PUT("/:key", d.ResourceHandler.Create, d.Guard.RequireAdmin)
	res.POST("/:key", d.ResourceHandler.Update, d.Guard.RequireAdmin)
	res.DELETE("/:key", d.ResourceHandler.Delete, d.Guard.RequireAdmin)

	settings := v1.Group("/settings/users")
	settings.GET("", d.SettingsHandler.Get)
	settings.POST("", d.SettingsHandler.Update, d.Guard.RequireAdmin)

	img := v1.Group("/img")
	img.GET("", d.ImageHandler.List)
	img.PUT("", d.ImageHandler.Upload, d.Guard.RequireAuth)
	img.DELETE("", d.ImageHandler.Delete, d.Guard.RequireAdmin)

	blog := v1.Group("/blog")
	blog.GET("/meta", d.BlogHandler.List)
	blog.GET("/meta/:name/:lang", d.BlogHandler.Meta)
	blog.POST("/:name/:lang", d.BlogHandler.Save, d.Guard.RequireAdmin)
	blog.DELETE("/:name/:lang", d.BlogHandler.Delete, d.Guard.RequireAdmin)

	blob := v1.Group("/blob")
	blob.GET("/:container", d.BlobHandler.List)
	blob.GET("/:container/*", d.BlobHandler.Meta)
	blob.POST("/:container", d.BlobHandler.Upload, d.Guard.RequireAdmin)
	blob.DELETE("/:container/*", d.BlobHandler.Delete, d.Guard.RequireAdmin)
}

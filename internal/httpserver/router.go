package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/onenotebe/onenotebe/internal/middleware/auth"
	"github.com/onenotebe/onenotebe/internal/policy"
)

type Deps struct {
	Auth       *AuthHTTP
	Posts      *PostHTTP
	Categories *CategoryHTTP
	MW         *authmw.Middleware
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = errorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	v1 := e.Group("/api/v1", d.MW.Authenticate)

	auth := v1.Group("/auth")
	auth.POST("/register", d.Auth.Register, authmw.Require(policy.OpRegister))
	auth.POST("/login", d.Auth.Login)

	posts := v1.Group("/posts")
	posts.GET("", d.Posts.List, authmw.Require(policy.OpReadPost))
	posts.GET("/:slug", d.Posts.GetBySlug, authmw.Require(policy.OpReadPost))
	posts.POST("", d.Posts.Create, authmw.Require(policy.OpWritePost))
	posts.PUT("/:id", d.Posts.Update, authmw.Require(policy.OpWritePost))
	posts.DELETE("/:id", d.Posts.Delete, authmw.Require(policy.OpWritePost))

	v1.GET("/search", d.Posts.Search, authmw.Require(policy.OpReadPost))

	categories := v1.Group("/categories")
	categories.GET("", d.Categories.List, authmw.Require(policy.OpReadCategory))
	categories.GET("/:slug", d.Categories.GetBySlug, authmw.Require(policy.OpReadCategory))
	categories.POST("", d.Categories.Create, authmw.Require(policy.OpWriteCategory))
	categories.PUT("/:id", d.Categories.Update, authmw.Require(policy.OpWriteCategory))
	categories.DELETE("/:id", d.Categories.Delete, authmw.Require(policy.OpWriteCategory))
}

package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	authmw "github.com/onenotebe/onenotebe/internal/middleware/auth"
	"github.com/onenotebe/onenotebe/internal/service"
)

type CategoryHTTP struct {
	Svc *service.CategoryService
}

type categoryRequest struct {
	Name string `json:"name"`
}

func (h *CategoryHTTP) List(c echo.Context) error {
	page, size := listParams(c)

	total, items, err := h.Svc.List(c.Request().Context(), page, size)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, echo.Map{
		"items": items,
		"meta":  listMeta(page, size, total),
	})
}

func (h *CategoryHTTP) GetBySlug(c echo.Context) error {
	category, err := h.Svc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, category)
}

func (h *CategoryHTTP) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.Create(c.Request().Context(), req.Name, authmw.UserID(c))
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, category)
}

func (h *CategoryHTTP) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	category, err := h.Svc.Update(c.Request().Context(), id, req.Name, authmw.UserID(c))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, category)
}

func (h *CategoryHTTP) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

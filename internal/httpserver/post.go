package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	authmw "github.com/onenotebe/onenotebe/internal/middleware/auth"
	"github.com/onenotebe/onenotebe/internal/service"
	"github.com/onenotebe/onenotebe/internal/util"
)

type PostHTTP struct {
	Svc *service.PostService
}

type postRequest struct {
	Title            string `json:"title"`
	Content          string `json:"content"`
	FeaturedImageURL string `json:"featured_image_url"`
	CategoryIDs      []uint `json:"category_ids"`
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id is not an integer")
	}
	return uint(id), nil
}

// listParams reads page/size and clamps them to the values the query will
// actually use, which is also what the response meta must report.
func listParams(c echo.Context) (int, int) {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	return util.Clamp(page, size)
}

func listMeta(page, size int, total int64) echo.Map {
	return echo.Map{
		"page":        page,
		"size":        size,
		"total":       total,
		"total_pages": (total + int64(size) - 1) / int64(size),
	}
}

func (h *PostHTTP) List(c echo.Context) error {
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

func (h *PostHTTP) GetBySlug(c echo.Context) error {
	post, err := h.Svc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, post)
}

func (h *PostHTTP) Create(c echo.Context) error {
	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	post, err := h.Svc.Create(c.Request().Context(), service.PostInput{
		Title:            req.Title,
		Content:          req.Content,
		FeaturedImageURL: req.FeaturedImageURL,
		CategoryIDs:      req.CategoryIDs,
	}, authmw.UserID(c))
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, post)
}

func (h *PostHTTP) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	post, err := h.Svc.Update(c.Request().Context(), id, service.PostInput{
		Title:            req.Title,
		Content:          req.Content,
		FeaturedImageURL: req.FeaturedImageURL,
		CategoryIDs:      req.CategoryIDs,
	}, authmw.UserID(c))
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, post)
}

func (h *PostHTTP) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PostHTTP) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter q is required")
	}

	page, size := listParams(c)

	total, items, err := h.Svc.Search(c.Request().Context(), q, page, size)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, echo.Map{
		"items": items,
		"meta":  listMeta(page, size, total),
	})
}

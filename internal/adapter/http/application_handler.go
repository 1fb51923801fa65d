package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"sesi-membership/internal/adapter/middleware"
	"sesi-membership/internal/usecase/review"

	"github.com/labstack/echo/v4"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ApplicationHandler serves the admin review queue and detail.
type ApplicationHandler struct{ uc *review.Usecase }

func NewApplicationHandler(uc *review.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) List(c echo.Context) error {
	apps, err := h.uc.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, apps)
}

func (h *ApplicationHandler) Export(c echo.Context) error {
	status := c.QueryParam("status")
	var buf bytes.Buffer
	if _, err := h.uc.Export(c.Request().Context(), status, &buf); err != nil {
		return writeError(c, err)
	}
	name := exportFileName(status, time.Now())
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, mimeXLSX, buf.Bytes())
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return missingParam(c, "id")
	}
	d, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// UpdateStatus takes status and admin_notes as query parameters. An absent
// admin_notes keeps the stored notes; an empty one clears them.
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return missingParam(c, "id")
	}
	q := c.QueryParams()
	status := strings.TrimSpace(q.Get("status"))
	if status == "" {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "status", Message: "is required"}},
		})
	}
	in := review.UpdateStatusInput{ID: id, Status: status}
	if q.Has("admin_notes") {
		notes := q.Get("admin_notes")
		in.Notes = &notes
	}
	if u := middleware.CurrentUser(c); u != nil {
		in.Reviewer = u.Email
	}

	res, err := h.uc.UpdateStatus(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func missingParam(c echo.Context, name string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing " + name + " path param"})
}

// exportFileName is e.g. "applications_under_review_20260102.xlsx"; an empty
// status exports everything and is named "all".
func exportFileName(status string, at time.Time) string {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		status = "all"
	}
	return fmt.Sprintf("applications_%s_%s.xlsx", status, at.UTC().Format("20060102"))
}

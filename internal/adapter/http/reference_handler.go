package http

import (
	"net/http"

	"sesi-membership/internal/usecase/reference"

	"github.com/labstack/echo/v4"
)

type ReferenceHandler struct{ uc *reference.Usecase }

func NewReferenceHandler(uc *reference.Usecase) *ReferenceHandler { return &ReferenceHandler{uc: uc} }

func (h *ReferenceHandler) States(c echo.Context) error {
	states, err := h.uc.States(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, states)
}

func (h *ReferenceHandler) Districts(c echo.Context) error {
	stateID := c.Param("state_id")
	if stateID == "" {
		return missingParam(c, "state_id")
	}
	ds, err := h.uc.Districts(c.Request().Context(), stateID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ds)
}

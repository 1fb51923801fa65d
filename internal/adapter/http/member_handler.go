package http

import (
	"net/http"

	"sesi-membership/internal/usecase/member"

	"github.com/labstack/echo/v4"
)

type MemberHandler struct{ uc *member.Usecase }

func NewMemberHandler(uc *member.Usecase) *MemberHandler { return &MemberHandler{uc: uc} }

// Directory is the public listing of active members.
func (h *MemberHandler) Directory(c echo.Context) error {
	ms, err := h.uc.Directory(c.Request().Context(), member.DirectoryQuery{
		State:  c.QueryParam("state"),
		City:   c.QueryParam("city"),
		Search: c.QueryParam("search"),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ms)
}

func (h *MemberHandler) List(c echo.Context) error {
	ms, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ms)
}

func (h *MemberHandler) Stats(c echo.Context) error {
	s, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

package http

import (
	"net/http"
	"slices"

	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/history"

	"github.com/labstack/echo/v4"
)

type historyResponse struct {
	Items []history.Item `json:"items"`
}

// GetHistory handles GET /api/v1/users/me/history.
func (s *Server) GetHistory(c echo.Context) error {
	query, err := queries.NewGetHistoryQuery(actorFrom(c).ID())
	if err != nil {
		return s.writeError(c, err)
	}
	items, err := s.h.GetHistory.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	resp := historyResponse{Items: slices.Collect(items)}
	if resp.Items == nil {
		resp.Items = []history.Item{}
	}
	return c.JSON(http.StatusOK, resp)
}

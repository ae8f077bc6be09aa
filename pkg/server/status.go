package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/armadakv/console-sub000/pkg/models"
)

const defaultHistoryPage = 20

// StatusHandler handles aggregated cluster status requests.
// GET /status.
func (s *Server) StatusHandler(ctx echo.Context) error {
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	client, err := s.client(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}

	aggregated, err := s.aggregator.Aggregate(reqCtx, client)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, aggregated)
}

// StatusHistoryHandler returns recent status snapshots, newest first.
// GET /status/history?limit=.
func (s *Server) StatusHistoryHandler(ctx echo.Context) error {
	if s.history == nil {
		return ctx.JSON(http.StatusOK, models.SnapshotListResponse{
			Snapshots: []models.StatusSnapshot{},
		})
	}

	limit := defaultHistoryPage
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return ctx.JSON(http.StatusBadRequest, map[string]string{
				"message": "Invalid limit parameter",
			})
		}
		limit = parsed
	}

	snapshots, err := s.history.Recent(limit)
	if err != nil {
		return writeError(ctx, err)
	}
	if snapshots == nil {
		snapshots = []models.StatusSnapshot{}
	}

	return ctx.JSON(http.StatusOK, models.SnapshotListResponse{Snapshots: snapshots})
}

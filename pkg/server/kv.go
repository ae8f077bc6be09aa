package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/armadakv/console-sub000/pkg/gateway"
	"github.com/armadakv/console-sub000/pkg/models"
)

// ListKeysHandler scans a table.
// GET /kv/:table?prefix=|start=&end=&limit=.
func (s *Server) ListKeysHandler(ctx echo.Context) error {
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return ctx.JSON(http.StatusBadRequest, map[string]string{
				"message": "Invalid limit parameter",
			})
		}
		limit = parsed
	}

	client, err := s.client(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := gateway.NewKeyValue(client, s.scanLimit).List(
		reqCtx,
		ctx.Param("table"),
		ctx.QueryParam("prefix"),
		ctx.QueryParam("start"),
		ctx.QueryParam("end"),
		limit,
	)
	if err != nil {
		return writeError(ctx, err)
	}
	if entries == nil {
		entries = []models.KeyValueEntry{}
	}

	return ctx.JSON(http.StatusOK, models.KeyValueListResponse{Entries: entries})
}

// GetKeyHandler returns a single entry.
// GET /kv/:table/:key.
func (s *Server) GetKeyHandler(ctx echo.Context) error {
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	client, err := s.client(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}

	entry, err := gateway.NewKeyValue(client, s.scanLimit).Get(reqCtx, ctx.Param("table"), ctx.Param("key"))
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, entry)
}

// PutKeyHandler writes an entry.
// PUT /kv/:table with body {"key": string, "value": string}.
func (s *Server) PutKeyHandler(ctx echo.Context) error {
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	var req models.KeyValueEntry
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request body",
		})
	}

	client, err := s.client(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := gateway.NewKeyValue(client, s.scanLimit).Put(reqCtx, ctx.Param("table"), req.Key, req.Value); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// DeleteKeyHandler removes an entry.
// DELETE /kv/:table?key=.
func (s *Server) DeleteKeyHandler(ctx echo.Context) error {
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	client, err := s.client(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := gateway.NewKeyValue(client, s.scanLimit).Delete(reqCtx, ctx.Param("table"), ctx.QueryParam("key")); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

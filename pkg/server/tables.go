package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/armadakv/console-sub000/pkg/gateway"
	"github.com/armadakv/console-sub000/pkg/models"
)

// ListTablesHandler lists all tables.
// GET /tables.
func (s *Server) ListTablesHandler(ctx echo.Context) error {
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	client, err := s.client(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}

	tables, err := gateway.NewTables(client).List(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}
	if tables == nil {
		tables = []models.Table{}
	}

	return ctx.JSON(http.StatusOK, models.TableListResponse{Tables: tables})
}

// CreateTableHandler creates a table.
// POST /tables with body {"name": string}.
func (s *Server) CreateTableHandler(ctx echo.Context) error {
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	var req struct {
		Name string `json:"name"`
	}
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"message": "Invalid request body",
		})
	}

	client, err := s.client(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}

	id, err := gateway.NewTables(client).Create(reqCtx, req.Name)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]string{"id": id})
}

// DeleteTableHandler deletes a table by name.
// DELETE /tables/:name.
func (s *Server) DeleteTableHandler(ctx echo.Context) error {
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	client, err := s.client(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := gateway.NewTables(client).Delete(reqCtx, ctx.Param("name")); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/armadakv/console-sub000/pkg/models"
)

// ClusterHandler returns the raw topology view of the connected node.
// GET /cluster.
func (s *Server) ClusterHandler(ctx echo.Context) error {
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	client, err := s.client(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}

	info, err := client.GetTopology(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, info)
}

// ServersHandler returns the raw member list.
// GET /servers.
func (s *Server) ServersHandler(ctx echo.Context) error {
	reqCtx, cancel := s.requestContext(ctx)
	defer cancel()

	client, err := s.client(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}

	members, err := client.ListMembers(reqCtx)
	if err != nil {
		return writeError(ctx, err)
	}
	if members == nil {
		members = []models.Member{}
	}

	return ctx.JSON(http.StatusOK, members)
}

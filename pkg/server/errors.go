package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/armadakv/console-sub000/pkg/cluster"
	"github.com/armadakv/console-sub000/pkg/gateway"
	"github.com/armadakv/console-sub000/pkg/log"
)

// writeError maps an error onto the response status and body. Validation
// messages are caller-facing and pass through; upstream failure detail stays
// in the log and only a sanitized summary is returned.
func writeError(ctx echo.Context, err error) error {
	var validation *gateway.ValidationError
	if errors.As(err, &validation) {
		return ctx.JSON(http.StatusBadRequest, map[string]string{
			"message": validation.Msg,
		})
	}

	switch {
	case errors.Is(err, cluster.ErrNotFound):
		return ctx.JSON(http.StatusNotFound, map[string]string{
			"message": "Not found",
		})
	case errors.Is(err, cluster.ErrAlreadyExists):
		return ctx.JSON(http.StatusConflict, map[string]string{
			"message": "Table already exists",
		})
	case errors.Is(err, cluster.ErrConnection):
		log.Error().Err(err).Str("path", ctx.Path()).Msg("Cluster connection failed")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Cannot connect to cluster",
		})
	default:
		log.Error().Err(err).Str("path", ctx.Path()).Msg("Upstream request failed")
		return ctx.JSON(http.StatusInternalServerError, map[string]string{
			"message": "Upstream cluster request failed",
		})
	}
}

package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

type moveRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

type renameRequest struct {
	Name string `json:"name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handleGetGame(c *gin.Context) {
	game, err := that.game.GetGame(c.Request.Context())
	if err != nil {
		that.sendError(c, "GetGame", err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (that *Server) handleMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "row and col are required"})
		return
	}

	game, err := that.game.SelectSquare(c.Request.Context(), entity.Position{Row: *req.Row, Col: *req.Col})
	if err != nil {
		that.sendError(c, "SelectSquare", err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (that *Server) handleRename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	game, err := that.game.RenameSymbol(c.Request.Context(), symbolParam(c), req.Name)
	if err != nil {
		that.sendError(c, "RenameSymbol", err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (that *Server) handleRestart(c *gin.Context) {
	game, err := that.game.Restart(c.Request.Context())
	if err != nil {
		that.sendError(c, "Restart", err)
		return
	}

	c.JSON(http.StatusOK, game)
}

func (that *Server) sendError(c *gin.Context, method string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
	}

	c.JSON(status, errorResponse{Error: err.Error()})
}

func symbolParam(c *gin.Context) entity.Symbol {
	return entity.ParseSymbol(c.Param("symbol"))
}

// statusFor - maps game errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell),
		errors.Is(err, apperror.ErrUnknownSymbol),
		errors.Is(err, apperror.ErrEmptyName):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNamesLocked):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrManagerStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

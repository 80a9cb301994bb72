package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameUseCase interface {
	GetGame(ctx context.Context) (*entity.Game, error)
	SelectSquare(ctx context.Context, pos entity.Position) (*entity.Game, error)
	RenameSymbol(ctx context.Context, symbol entity.Symbol, name string) (*entity.Game, error)
	Restart(ctx context.Context) (*entity.Game, error)
}

type Server struct {
	logger *slog.Logger
	game   gameUseCase
	router *gin.Engine
}

// New - builds the router. socket is mounted on /ws when it is not nil.
func New(logger *slog.Logger, game gameUseCase, socket http.Handler) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		logger: logger.With("component", "rest"),
		game:   game,
		router: gin.New(),
	}

	server.router.Use(gin.Recovery(), server.requestLogger())
	server.router.SetHTMLTemplate(pageTemplate)

	server.router.GET("/ping", pingHandler)

	server.router.GET("/", server.handlePage)
	server.router.POST("/cells", server.handleSelectCell)
	server.router.POST("/players/:symbol", server.handleRenameForm)
	server.router.POST("/restart", server.handleRestartForm)

	api := server.router.Group("/api/game")
	api.GET("", server.handleGetGame)
	api.POST("/moves", server.handleMove)
	api.PUT("/players/:symbol", server.handleRename)
	api.POST("/restart", server.handleRestart)

	if socket != nil {
		server.router.GET("/ws", gin.WrapH(socket))
	}

	return server
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves HTTP until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped with error: %w", err)
	}

	return nil
}

func (that *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		that.logger.Debug("request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

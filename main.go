package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-hotseat/internal"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/config"
)

var (
	configPath string
	serve      bool
)

var rootCmd = &cobra.Command{
	Use:   "tictactoe",
	Short: "Hot-seat tic-tac-toe for two players on one device",
	Long: `Two players take turns on the same keyboard.

Run without arguments to play in the terminal. Use "serve" to play in a browser instead.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	RunE:  runPlay,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game to a local browser",
	RunE: func(cmd *cobra.Command, _ []string) error {
		conf := config.MustLoad(configPath)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return app.RunServe(ctx, initLogger(conf, os.Stdout), conf)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./config.yml", "path to the config file")

	for _, cmd := range []*cobra.Command{rootCmd, playCmd} {
		cmd.Flags().BoolVar(&serve, "serve", false, "also serve the game to a local browser")
	}

	rootCmd.AddCommand(playCmd, serveCmd)
}

// main - is the entry point of the application.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "recovered from panic: %v\n", err)
			os.Exit(1)
		}
	}()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPlay(cmd *cobra.Command, _ []string) error {
	conf := config.MustLoad(configPath)

	// the terminal view owns stdout
	output, closeOutput, err := app.LogOutput(conf)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeOutput()
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	return app.RunPlay(ctx, initLogger(conf, output), conf, serve)
}

// initialize logger.
func initLogger(conf *config.Config, output io.Writer) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	return slog.New(slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level}))
}

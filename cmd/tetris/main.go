// tetris runs the networked Tetris services and their terminal client.
//
// Usage:
//
//	tetris run <service|all>  - Start one service, or all of them in one process
//	tetris list               - List the services
//	tetris play               - Play in the terminal
//	tetris serve              - Serve the terminal client over SSH
//	tetris watch              - Stream board frames from the gateway
//	tetris history            - Show the board journal
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.tetris/config.yaml, ./configs/tetris.yaml)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-net/internal/config"

	// Import services to register them
	_ "github.com/vovakirdan/tetris-net/internal/services/board"
	_ "github.com/vovakirdan/tetris-net/internal/services/gateway"
	_ "github.com/vovakirdan/tetris-net/internal/services/generator"
	_ "github.com/vovakirdan/tetris-net/internal/services/mover"
	_ "github.com/vovakirdan/tetris-net/internal/services/rotator"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Networked Tetris services and terminal client",
	Long: `tetris splits a game of Tetris into small HTTP services: a board
authority, a piece generator, a rotation and a movement transform, and a
gateway that ties them together. A terminal client plays through the
gateway, locally or over SSH.

Available commands:
  run      - Start a service, or all of them
  list     - Show the services
  play     - Play in the terminal
  serve    - Start the SSH server
  watch    - Stream the board from the gateway
  history  - Show recorded board events

Examples:
  tetris run all
  tetris run gateway --addr :9090
  tetris play
  tetris play --local --difficulty hard
  MODO=orquestada tetris run all`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// newLogger returns a stderr logger tagged with prefix.
func newLogger(cfg config.Config, prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           cfg.LogLevel(),
	})
}

// quietLogger is used while a full-screen client owns the terminal.
func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

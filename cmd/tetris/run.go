package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tetris-net/internal/journal"
	"github.com/vovakirdan/tetris-net/internal/platform/server"
	"github.com/vovakirdan/tetris-net/internal/registry"
	boardsvc "github.com/vovakirdan/tetris-net/internal/services/board"
	"github.com/vovakirdan/tetris-net/internal/telemetry"
)

var flagAddr string

var runCmd = &cobra.Command{
	Use:   "run <service|all>",
	Short: "Start a service",
	Long: `Start one of the tetris services, or all of them in one process.

Services:
  board      - Board authority, the only holder of game state
  generator  - Random tetromino generator
  rotator    - Rotation transform
  mover      - Movement transform
  gateway    - Orchestration gateway, the entry point for clients

The gateway mode comes from the config file or the MODO variable
(coordinada or orquestada). Collaborator URLs can be set with
TABLERO_URL, GENERADOR_URL, GIRADOR_URL and DESLIZADOR_URL.

Examples:
  tetris run all
  tetris run board --addr :4001
  MODO=orquestada tetris run gateway`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (single service only)")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	names, err := serviceNames(args[0])
	if err != nil {
		return err
	}
	if flagAddr != "" && len(names) > 1 {
		return errors.New("--addr needs a single service")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger(cfg, "tetris")

	traceName := "tetris"
	if len(names) == 1 {
		traceName = "tetris-" + names[0]
	}
	shutdownTracing, err := telemetry.Setup(ctx, traceName, telemetry.Config{
		Enabled:  cfg.Telemetry.Enabled,
		Endpoint: cfg.Telemetry.Endpoint,
	})
	if err != nil {
		return err
	}
	defer func() {
		//nolint:errcheck // Best-effort flush on exit.
		shutdownTracing(context.Background())
	}()

	var jr *journal.Journal
	if cfg.Journal.Enabled && slices.Contains(names, boardsvc.Name) {
		jr, err = journal.Open(cfg.Journal.Path)
		if err != nil {
			logger.Warn("journal disabled", "path", cfg.Journal.Path, "error", err)
			jr = nil
		} else {
			defer jr.Close()
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		svcLogger := newLogger(cfg, name)
		svc, err := registry.Create(name, registry.Env{Config: cfg, Logger: svcLogger, Journal: jr})
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		addr := svc.Addr
		if flagAddr != "" {
			addr = flagAddr
		}
		srv := server.New(name, addr, svc.Handler, svcLogger)

		g.Go(func() error {
			if err := srv.Run(ctx); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}

	logger.Info("services started", "services", names, "mode", cfg.GatewayMode())
	return g.Wait()
}

// serviceNames expands "all" and rejects unknown names.
func serviceNames(arg string) ([]string, error) {
	if arg == "all" {
		var names []string
		for _, info := range registry.List() {
			names = append(names, info.Name)
		}
		return names, nil
	}
	if !registry.Exists(arg) {
		return nil, fmt.Errorf("unknown service %q (run 'tetris list')", arg)
	}
	return []string{arg}, nil
}

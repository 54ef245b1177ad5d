package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-net/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that runs the terminal client for every
connection. All sessions play on the same board: with --local the board
lives in this process, otherwise every session goes through the gateway.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tetris/host_key

Examples:
  tetris serve --local
  tetris serve --ssh :2222
  tetris serve --gateway http://localhost:8080

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH listen address (overrides ssh.addr)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (overrides ssh.idle_timeout)")
	serveCmd.Flags().BoolVar(&flagLocal, "local", false, "Host the board in-process instead of using a gateway")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	serveCmd.Flags().StringVar(&flagGatewayURL, "gateway", "", "Gateway URL (overrides client.gateway_url)")
	serveCmd.Flags().BoolVar(&flagNoGravity, "no-gravity", false, "Disable automatic falling")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyClientFlags(&cfg); err != nil {
		return err
	}
	if flagSSHAddr != "" {
		cfg.SSH.Addr = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.SSH.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.SSH.IdleTimeout = flagIdleTimeout
	}

	logger := newLogger(cfg, "tetris-ssh")
	game, err := newGame(cfg, flagLocal, logger)
	if err != nil {
		return err
	}

	srv, err := tui.NewSSHServer(cfg.SSH, game, clientOptions(cfg), logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := srv.Addr()
	if _, p, splitErr := net.SplitHostPort(port); splitErr == nil {
		port = p
	}
	fmt.Printf("Starting tetris SSH server on %s\n", srv.Addr())
	fmt.Printf("Connect with: ssh localhost -p %s\n", port)
	fmt.Println("Press Ctrl+C to stop")

	return srv.Run(ctx)
}

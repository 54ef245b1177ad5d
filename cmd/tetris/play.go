package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tetris-net/internal/client"
	"github.com/vovakirdan/tetris-net/internal/config"
	"github.com/vovakirdan/tetris-net/internal/gateway"
	"github.com/vovakirdan/tetris-net/internal/generator"
	"github.com/vovakirdan/tetris-net/internal/platform/tui"
	"github.com/vovakirdan/tetris-net/internal/tetris"
)

var (
	flagLocal      bool
	flagDifficulty string
	flagGatewayURL string
	flagNoGravity  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the terminal client.

By default the client talks to a running gateway (see 'tetris run all').
With --local the whole game runs in-process.

Controls:
  Left/Right/Down  - Move
  Up/X             - Rotate right
  Z                - Rotate left
  N                - New piece
  R                - Restart
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start slow, speed up as lines are cleared
  normal - Start at 30% speed
  hard   - Start at 70% speed
  fixed  - Never speed up

Examples:
  tetris play
  tetris play --local
  tetris play --gateway http://10.0.0.5:8080
  tetris play --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagLocal, "local", false, "Run the game in-process instead of using a gateway")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagGatewayURL, "gateway", "", "Gateway URL (overrides client.gateway_url)")
	playCmd.Flags().BoolVar(&flagNoGravity, "no-gravity", false, "Disable automatic falling")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyClientFlags(&cfg); err != nil {
		return err
	}

	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if w < tui.ScreenWidth || h < tui.ScreenHeight+2 {
			return fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, tui.ScreenWidth, tui.ScreenHeight+2)
		}
	}

	game, err := newGame(cfg, flagLocal, quietLogger())
	if err != nil {
		return err
	}
	return tui.Run(game, clientOptions(cfg))
}

// applyClientFlags folds the client flags into cfg.
func applyClientFlags(cfg *config.Config) error {
	if flagGatewayURL != "" {
		cfg.Client.GatewayURL = flagGatewayURL
	}
	if flagNoGravity {
		cfg.Client.Gravity.Enabled = false
	}
	switch p := config.DifficultyPreset(flagDifficulty); p {
	case "":
	case config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		config.ApplyGravityPreset(&cfg.Client.Gravity, p)
	default:
		return fmt.Errorf("unknown difficulty %q", flagDifficulty)
	}
	return nil
}

var (
	_ tui.Game = (*gateway.Gateway)(nil)
	_ tui.Game = (*client.Gateway)(nil)
)

// newGame returns an in-process gateway, or a client of the configured one.
func newGame(cfg config.Config, local bool, logger *log.Logger) (tui.Game, error) {
	if !local {
		return client.NewGateway(cfg.Client.GatewayURL, client.WithTimeout(cfg.Gateway.RequestTimeout)), nil
	}

	gen := generator.New(cfg.Generator.Seed)
	opts := gateway.Options{Logger: logger}
	if cfg.Generator.RandomRotations {
		opts.PreRotations = gen.RandomRotations
	}
	return gateway.NewLocal(cfg.GatewayMode(), tetris.NewBoard(), gen, opts)
}

func clientOptions(cfg config.Config) tui.Options {
	return tui.Options{
		Mode:    cfg.GatewayMode(),
		Gravity: cfg.Client.Gravity,
		Timeout: cfg.Gateway.RequestTimeout,
	}
}

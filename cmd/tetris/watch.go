package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-net/internal/tetris"
	"github.com/vovakirdan/tetris-net/internal/wire"
)

var flagPlain bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the board from the gateway",
	Long: `Connect to the gateway's observer socket and print the board every
time it changes. The active piece is drawn with '@', locked cells with '#'.

Examples:
  tetris watch
  tetris watch --gateway http://10.0.0.5:8080 --plain`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagGatewayURL, "gateway", "", "Gateway URL (overrides client.gateway_url)")
	watchCmd.Flags().BoolVar(&flagPlain, "plain", false, "Do not clear the screen between frames")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagGatewayURL != "" {
		cfg.Client.GatewayURL = flagGatewayURL
	}

	target, err := observeURL(cfg.Client.GatewayURL)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, target, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", target, err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		var f wire.Frame
		if err := conn.ReadJSON(&f); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return errors.New("gateway closed the connection")
			}
			return err
		}
		if !flagPlain {
			fmt.Print("\033[H\033[2J")
		}
		fmt.Println(formatFrame(f))
	}
}

// observeURL turns the gateway base URL into its websocket endpoint.
func observeURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("gateway url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("gateway url: unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/juego/observar"
	return u.String(), nil
}

func formatFrame(f wire.Frame) string {
	rows := strings.Split(f.Tablero.String(), "\n")

	status := "no active piece"
	if f.Activo != nil {
		if p, err := f.Activo.Decode(); err == nil {
			for _, c := range p.Cells() {
				if c.Y < 0 || c.Y >= tetris.Rows || c.X < 0 || c.X >= tetris.Cols {
					continue
				}
				row := []byte(rows[c.Y])
				row[c.X] = '@'
				rows[c.Y] = string(row)
			}
			status = fmt.Sprintf("active %s at x=%d y=%d", p.Shape.Type, p.Position.X, p.Position.Y)
		}
	}

	var sb strings.Builder
	for _, r := range rows {
		sb.WriteString("|")
		sb.WriteString(r)
		sb.WriteString("|\n")
	}
	sb.WriteString("+" + strings.Repeat("-", tetris.Cols) + "+\n")
	sb.WriteString(status)
	return sb.String()
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tetris-net/internal/journal"
	"github.com/vovakirdan/tetris-net/internal/platform/tui"
)

var (
	flagLimit  int
	flagEvents bool
	flagClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the board journal",
	Long: `Display the games and events recorded by the board service.

On a terminal this opens an interactive table (tab switches between games
and events). Use --plain, or pipe the output, for a text listing.

Examples:
  tetris history
  tetris history --events --limit 50 --plain
  tetris history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum rows to print")
	historyCmd.Flags().BoolVar(&flagEvents, "events", false, "List events instead of games (plain output)")
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text listing")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded event")
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer j.Close()

	if flagClear {
		if err := j.Clear(); err != nil {
			return err
		}
		fmt.Println("Journal cleared.")
		return nil
	}

	fd := int(os.Stdout.Fd())
	if !flagPlain && term.IsTerminal(fd) {
		w, h, err := term.GetSize(fd)
		if err == nil {
			return tui.RunHistory(j, w, h)
		}
	}

	if flagEvents {
		return printEvents(j)
	}
	return printGames(j)
}

func printGames(j *journal.Journal) error {
	games, err := j.Games(flagLimit)
	if err != nil {
		return fmt.Errorf("reading games: %w", err)
	}

	fmt.Println("Games")
	fmt.Println()
	if len(games) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Run 'tetris run all' with journal.enabled and play a round.")
		return nil
	}

	fmt.Printf("  %-8s  %-5s  %-5s  %-4s  %s\n", "Game", "Locks", "Lines", "Over", "Started")
	fmt.Printf("  %-8s  %-5s  %-5s  %-4s  %s\n", "----", "-----", "-----", "----", "-------")
	for _, g := range games {
		over := "no"
		if g.Over {
			over = "yes"
		}
		fmt.Printf("  %-8s  %-5d  %-5d  %-4s  %s\n",
			shortGame(g.Game), g.Locks, g.Lines, over, g.StartedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printEvents(j *journal.Journal) error {
	events, err := j.Recent(flagLimit)
	if err != nil {
		return fmt.Errorf("reading events: %w", err)
	}

	fmt.Println("Recent events")
	fmt.Println()
	if len(events) == 0 {
		fmt.Println("No events recorded yet.")
		return nil
	}

	fmt.Printf("  %-8s  %-9s  %-5s  %-7s  %-5s  %s\n", "Game", "Kind", "Piece", "At", "Lines", "Time")
	fmt.Printf("  %-8s  %-9s  %-5s  %-7s  %-5s  %s\n", "----", "----", "-----", "--", "-----", "----")
	for _, e := range events {
		at := ""
		if e.Kind != journal.KindReset {
			at = fmt.Sprintf("%d,%d", e.X, e.Y)
		}
		fmt.Printf("  %-8s  %-9s  %-5s  %-7s  %-5d  %s\n",
			shortGame(e.Game), e.Kind, e.Piece, at, e.Lines, e.CreatedAt.Format("15:04:05"))
	}
	return nil
}

func shortGame(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

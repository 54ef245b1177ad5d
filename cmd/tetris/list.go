package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-net/internal/config"
	"github.com/vovakirdan/tetris-net/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all services",
	Long:  `Shows the registered services and the address each one listens on.`,
	RunE:  runList,
}

func runList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	services := registry.List()
	if len(services) == 0 {
		fmt.Println("No services available.")
		return nil
	}

	maxNameLen := len("Name")
	for _, s := range services {
		maxNameLen = max(maxNameLen, len(s.Name))
	}

	fmt.Printf("  %-*s  %-8s  %s\n", maxNameLen, "Name", "Addr", "Title")
	fmt.Printf("  %-*s  %-8s  %s\n", maxNameLen, "----", "----", "-----")
	for _, s := range services {
		fmt.Printf("  %-*s  %-8s  %s\n", maxNameLen, s.Name, serviceAddr(cfg, s.Name), s.Title)
	}

	fmt.Println()
	fmt.Printf("Gateway mode: %s\n", cfg.GatewayMode())
	fmt.Println("Run 'tetris run <name>' to start a service, or 'tetris run all'.")
	return nil
}

func serviceAddr(cfg config.Config, name string) string {
	switch name {
	case "board":
		return cfg.Board.Addr
	case "generator":
		return cfg.Generator.Addr
	case "rotator":
		return cfg.Rotator.Addr
	case "mover":
		return cfg.Mover.Addr
	case "gateway":
		return cfg.Gateway.Addr
	}
	return ""
}

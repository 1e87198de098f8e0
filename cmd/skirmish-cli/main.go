package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/peterkuimelis/skirmish/internal/config"
	"github.com/peterkuimelis/skirmish/internal/game"
	skirmishnet "github.com/peterkuimelis/skirmish/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "serve":
		runServe(os.Args[2:])
	case "play":
		runPlay(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  skirmish serve [--port P] [--scenario N] [--rules FILE] [--scenarios FILE]")
	fmt.Println("  skirmish play  [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  serve   Start a game server; every connection plays its own skirmish")
	fmt.Println("  play    Connect to a game server and play in the terminal")
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.String("port", "9000", "TCP port to listen on")
	rulesFile := fs.String("rules", "rules.yaml", "path to rules file")
	scenariosFile := fs.String("scenarios", "", "path to scenarios file (default: built-in scenarios)")
	scenario := fs.Int("scenario", 1, "scenario number each client starts with")
	fs.Parse(args)

	rules, err := config.Load(*rulesFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cat := game.NewCatalog()
	scenarios, err := game.LoadScenarios(*scenariosFile, cat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *scenario < 1 || *scenario > len(scenarios) {
		fmt.Fprintf(os.Stderr, "Error: scenario must be 1-%d\n", len(scenarios))
		os.Exit(1)
	}

	srv := &skirmishnet.Server{
		Addr:      ":" + *port,
		Catalog:   cat,
		Scenarios: scenarios,
		Rules:     rules,
		Scenario:  *scenario - 1,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := srv.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPlay(args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)

	if err := skirmishnet.Connect(context.Background(), *addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	skirmishmcp "github.com/peterkuimelis/skirmish/internal/mcp"
)

func main() {
	rules := flag.String("rules", "rules.yaml", "path to rules YAML file")
	scenarios := flag.String("scenarios", "", "path to scenarios YAML file (default: built-in scenarios)")
	flag.Parse()

	skirmishmcp.SetRulesFile(*rules)
	skirmishmcp.SetScenariosFile(*scenarios)

	s := server.NewMCPServer("skirmish", "1.0.0")
	skirmishmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

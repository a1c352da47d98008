package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/swaggerguard"
	"github.com/erraggy/swaggerguard/cmd/swaggerguard/commands"
)

// handlers maps each command to its handler.
var handlers = map[string]func([]string) error{
	"validate": commands.HandleValidate,
	"routes":   commands.HandleRoutes,
	"match":    commands.HandleMatch,
	"mcp":      commands.HandleMCP,
}

// commandNames lists every command name, for typo suggestions.
var commandNames = []string{"validate", "routes", "match", "mcp", "version", "help"}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]
	switch command {
	case "version", "-v", "--version":
		fmt.Println(swaggerguard.BuildInfo())
		return 0
	case "help", "-h", "--help":
		printUsage()
		return 0
	}

	handler, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		return 1
	}

	if err := handler(args[1:]); err != nil {
		if !errors.Is(err, commands.ErrCheckFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// suggestCommand returns the command closest to input within an edit
// distance of 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`swaggerguard - Swagger 2.0 schema validators

Usage:
  swaggerguard <command> [options]

Commands:
  validate    Validate YAML or JSON documents against a schema definition
  routes      List path templates with their compiled segments
  match       Match a request path against the path templates
  mcp         Serve the MCP tools over stdio
  version     Show version information
  help        Show this help message

Examples:
  swaggerguard validate -definition Pet swagger.yaml pet.json
  swaggerguard routes swagger.yaml
  swaggerguard match swagger.yaml GET /pet/42

Run 'swaggerguard <command> --help' for more information on a command.`)
}

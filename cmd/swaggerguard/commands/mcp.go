package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/swaggerguard/internal/cliutil"
	"github.com/erraggy/swaggerguard/internal/mcpserver"
)

// HandleMCP runs the MCP server over stdio until the client disconnects or
// the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: swaggerguard mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the swaggerguard MCP tools over stdio. Configure defaults with\n")
		cliutil.Writef(fs.Output(), "SWAGGERGUARD_* environment variables.\n")
	}
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}

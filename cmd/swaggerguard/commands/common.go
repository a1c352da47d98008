// Package commands provides CLI command handlers for swaggerguard.
package commands

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/swaggerguard/format"
	"github.com/erraggy/swaggerguard/schema"
	"github.com/erraggy/swaggerguard/validator"
)

// ErrCheckFailed is returned when a command ran to completion but what it
// checked did not pass. main maps it to exit status 1 without printing it.
var ErrCheckFailed = errors.New("check failed")

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Output streams, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// commonFlags are shared by every command that loads a schema.
type commonFlags struct {
	Verbose         bool
	ExtendedFormats bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.BoolVar(&c.Verbose, "v", false, "log debug diagnostics to stderr")
	fs.BoolVar(&c.ExtendedFormats, "extended-formats", false, "also accept ipv6, uuid, date, date-time, int32 and int64 formats")
}

// logger returns a stderr logger at warn level, or debug level with -v.
func (c *commonFlags) logger() schema.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	return schema.NewSlogAdapter(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
}

// compiler builds the validator compiler selected by the flags.
func (c *commonFlags) compiler(log schema.Logger) (*validator.Compiler, error) {
	opts := []validator.Option{validator.WithLogger(log)}
	if c.ExtendedFormats {
		opts = append(opts,
			validator.WithIntegerFormats(format.NewRegistry(format.ExtendedIntegerTable())),
			validator.WithStringFormats(format.NewRegistry(format.ExtendedStringTable())),
		)
	}
	return validator.NewCompiler(opts...)
}

// loadSchema loads the Swagger document at path.
func loadSchema(path string, log schema.Logger) (*schema.Document, error) {
	return schema.ParseWithOptions(schema.WithFilePath(path), schema.WithLogger(log))
}

// parseArgs parses args into fs, treating -h as success. It reports whether
// the command should continue.
func parseArgs(fs *flag.FlagSet, args []string) (bool, error) {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

package commands

import (
	"errors"
	"flag"
	"fmt"
	"slices"

	"github.com/erraggy/swaggerguard/internal/cliutil"
	"github.com/erraggy/swaggerguard/route"
)

// MatchFlags contains flags for the match command
type MatchFlags struct {
	commonFlags

	Format string
}

// SetupMatchFlags creates and configures a FlagSet for the match command.
func SetupMatchFlags() (*flag.FlagSet, *MatchFlags) {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	flags := &MatchFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Format, "format", cliutil.FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: swaggerguard match [flags] <schema> <method> <path>\n\n")
		cliutil.Writef(fs.Output(), "Match a request path against the path templates of a Swagger 2.0 schema\n")
		cliutil.Writef(fs.Output(), "and print the typed path parameters.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  swaggerguard match swagger.yaml GET /pet/42\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    The path matched\n")
		cliutil.Writef(fs.Output(), "  1    No route matched, a parameter was ill-typed, or an error occurred\n")
	}

	return fs, flags
}

// MatchReport is the structured output of the match command.
type MatchReport struct {
	Matched     bool           `json:"matched"               yaml:"matched"`
	Method      string         `json:"method"                yaml:"method"`
	Path        string         `json:"path"                  yaml:"path"`
	Template    string         `json:"template,omitempty"    yaml:"template,omitempty"`
	OperationID string         `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Params      map[string]any `json:"params,omitempty"      yaml:"params,omitempty"`
	Error       string         `json:"error,omitempty"       yaml:"error,omitempty"`
	Allowed     []string       `json:"allowed,omitempty"     yaml:"allowed,omitempty"`
}

// HandleMatch executes the match command
func HandleMatch(args []string) error {
	fs, flags := SetupMatchFlags()
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}
	if fs.NArg() != 3 {
		fs.Usage()
		return fmt.Errorf("match command requires a schema, a method and a path")
	}
	if err := cliutil.ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	router, err := buildRouter(fs.Arg(0), &flags.commonFlags)
	if err != nil {
		return err
	}

	report := &MatchReport{Method: fs.Arg(1), Path: fs.Arg(2)}
	m, err := router.Match(report.Method, report.Path)
	if m != nil {
		report.Template = m.Template.String()
		report.OperationID = m.Operation.OperationID
	}
	switch {
	case err == nil:
		report.Matched = true
		if len(m.Params) > 0 {
			report.Params = m.Params
		}
	case errors.Is(err, route.ErrMethodNotAllowed):
		report.Error = err.Error()
		for _, method := range router.Allowed(report.Path) {
			report.Allowed = append(report.Allowed, string(method))
		}
	default:
		report.Error = err.Error()
	}

	if flags.Format != cliutil.FormatText {
		if err := cliutil.OutputStructured(stdout, report, flags.Format); err != nil {
			return err
		}
	} else {
		writeMatchText(report)
	}

	if !report.Matched {
		return ErrCheckFailed
	}
	return nil
}

func writeMatchText(r *MatchReport) {
	if r.Template != "" {
		cliutil.Writef(stdout, "template: %s\n", r.Template)
	}
	if r.OperationID != "" {
		cliutil.Writef(stdout, "operationId: %s\n", r.OperationID)
	}
	names := make([]string, 0, len(r.Params))
	for name := range r.Params {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		cliutil.Writef(stdout, "  %s = %v\n", name, r.Params[name])
	}
	if r.Error != "" {
		cliutil.Writef(stdout, "error: %s\n", r.Error)
	}
	if len(r.Allowed) > 0 {
		cliutil.Writef(stdout, "allowed: %v\n", r.Allowed)
	}
}

package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/erraggy/swaggerguard/internal/cliutil"
	"github.com/erraggy/swaggerguard/schema"
	"github.com/erraggy/swaggerguard/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	commonFlags

	Ref         string
	Definition  string
	Format      string
	Quiet       bool
	Concurrency int
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Ref, "ref", "", "validate against this $ref, e.g. #/definitions/Pet")
	fs.StringVar(&flags.Definition, "definition", "", "validate against the named definition")
	fs.StringVar(&flags.Format, "format", cliutil.FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only output failures")
	fs.IntVar(&flags.Concurrency, "concurrency", runtime.GOMAXPROCS(0), "maximum number of documents validated at once")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: swaggerguard validate [flags] <schema> <document|-> ...\n\n")
		cliutil.Writef(fs.Output(), "Validate YAML or JSON documents against a definition of a Swagger 2.0 schema.\n")
		cliutil.Writef(fs.Output(), "Exactly one of -ref or -definition is required. Only the first violation\n")
		cliutil.Writef(fs.Output(), "of each document is reported.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  swaggerguard validate -definition Pet swagger.yaml pet.json\n")
		cliutil.Writef(fs.Output(), "  swaggerguard validate -ref '#/definitions/Pet' swagger.yaml a.yaml b.yaml\n")
		cliutil.Writef(fs.Output(), "  cat pet.json | swaggerguard validate -definition Pet -format json swagger.yaml -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Every document is valid\n")
		cliutil.Writef(fs.Output(), "  1    At least one document is invalid, or an error occurred\n")
	}

	return fs, flags
}

// DocumentResult is the outcome for one validated document.
type DocumentResult struct {
	Document string `json:"document"          yaml:"document"`
	Valid    bool   `json:"valid"             yaml:"valid"`
	Kind     string `json:"kind,omitempty"    yaml:"kind,omitempty"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
}

// ValidateReport is the structured output of the validate command.
type ValidateReport struct {
	Schema    string           `json:"schema"    yaml:"schema"`
	Target    string           `json:"target"    yaml:"target"`
	Valid     bool             `json:"valid"     yaml:"valid"`
	Documents []DocumentResult `json:"documents" yaml:"documents"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("validate command requires a schema and at least one document")
	}
	if (flags.Ref == "") == (flags.Definition == "") {
		return fmt.Errorf("exactly one of -ref or -definition is required")
	}
	if err := cliutil.ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.Concurrency < 1 {
		return fmt.Errorf("-concurrency must be at least 1")
	}
	stdinCount := 0
	for _, arg := range fs.Args()[1:] {
		if arg == StdinFilePath {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return fmt.Errorf("stdin ('-') can only be read once")
	}

	log := flags.logger()
	doc, err := loadSchema(fs.Arg(0), log)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}
	comp, err := flags.compiler(log)
	if err != nil {
		return err
	}

	target := flags.Ref
	if flags.Definition != "" {
		def, ok := doc.Definitions[flags.Definition]
		if !ok || def == nil {
			return fmt.Errorf("schema %s has no definition named %q", fs.Arg(0), flags.Definition)
		}
		target = schema.LocalLocation(flags.Definition).String()
	}
	v := comp.Compile(&schema.Attribute{Reference: target}, comp.Resolver(doc.Definitions))

	report := &ValidateReport{Schema: fs.Arg(0), Target: target, Valid: true}
	report.Documents, err = validateDocuments(context.Background(), v, fs.Args()[1:], flags.Concurrency)
	if err != nil {
		return err
	}
	for _, r := range report.Documents {
		if !r.Valid {
			report.Valid = false
		}
	}

	if flags.Format != cliutil.FormatText {
		if err := cliutil.OutputStructured(stdout, report, flags.Format); err != nil {
			return err
		}
	} else {
		writeValidateText(report, flags.Quiet)
	}

	if !report.Valid {
		return ErrCheckFailed
	}
	return nil
}

// validateDocuments checks every document concurrently and returns the
// results in argument order. A document that cannot be read stops the run.
func validateDocuments(ctx context.Context, v validator.Validator, paths []string, limit int) ([]DocumentResult, error) {
	results := make([]DocumentResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := readDocument(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", displayPath(path), err)
			}
			results[i] = checkDocument(v, displayPath(path), data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func checkDocument(v validator.Validator, name string, data []byte) DocumentResult {
	result := DocumentResult{Document: name}
	node, err := validator.ParseNode(data)
	if err != nil {
		result.Kind = "parse"
		result.Message = err.Error()
		return result
	}
	return describe(result, v.Validate(node))
}

func describe(result DocumentResult, err error) DocumentResult {
	if err == nil {
		result.Valid = true
		return result
	}
	if viol, ok := validator.AsViolation(err); ok {
		result.Kind = viol.Kind.String()
	}
	result.Message = err.Error()
	return result
}

func readDocument(path string) ([]byte, error) {
	if path == StdinFilePath {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// displayPath returns "<stdin>" for StdinFilePath, otherwise path as-is.
func displayPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

func writeValidateText(report *ValidateReport, quiet bool) {
	failed := 0
	for _, r := range report.Documents {
		switch {
		case !r.Valid:
			failed++
			cliutil.Writef(stdout, "%s: %s\n", r.Document, r.Message)
		case !quiet:
			cliutil.Writef(stdout, "%s: valid\n", r.Document)
		}
	}
	if quiet {
		return
	}
	if failed == 0 {
		cliutil.Writef(stderr, "✓ %d document(s) valid against %s\n", len(report.Documents), report.Target)
		return
	}
	cliutil.Writef(stderr, "✗ %d of %d document(s) invalid against %s\n", failed, len(report.Documents), report.Target)
}

package commands

import (
	"flag"
	"fmt"
	"math"
	"strings"

	"github.com/erraggy/swaggerguard/format"
	"github.com/erraggy/swaggerguard/internal/cliutil"
	"github.com/erraggy/swaggerguard/route"
)

// RoutesFlags contains flags for the routes command
type RoutesFlags struct {
	commonFlags

	Method string
	Format string
}

// SetupRoutesFlags creates and configures a FlagSet for the routes command.
func SetupRoutesFlags() (*flag.FlagSet, *RoutesFlags) {
	fs := flag.NewFlagSet("routes", flag.ContinueOnError)
	flags := &RoutesFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Method, "method", "", "only list routes for this HTTP method")
	fs.StringVar(&flags.Format, "format", cliutil.FormatText, "output format: text, json, or yaml")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: swaggerguard routes [flags] <schema>\n\n")
		cliutil.Writef(fs.Output(), "List the routes of a Swagger 2.0 schema in matching order, with the\n")
		cliutil.Writef(fs.Output(), "compiled type of every path segment.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  swaggerguard routes swagger.yaml\n")
		cliutil.Writef(fs.Output(), "  swaggerguard routes -method get -format json swagger.yaml\n")
	}

	return fs, flags
}

// SegmentInfo describes one compiled path segment.
type SegmentInfo struct {
	Kind    string   `json:"kind"              yaml:"kind"`
	Value   string   `json:"value"             yaml:"value"`
	Untyped bool     `json:"untyped,omitempty" yaml:"untyped,omitempty"`
	Format  string   `json:"format,omitempty"  yaml:"format,omitempty"`
	Minimum *int64   `json:"minimum,omitempty" yaml:"minimum,omitempty"`
	Maximum *int64   `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	Choices []string `json:"choices,omitempty" yaml:"choices,omitempty"`
}

// RouteInfo describes one route.
type RouteInfo struct {
	Method      string        `json:"method"                 yaml:"method"`
	Template    string        `json:"template"               yaml:"template"`
	OperationID string        `json:"operationId,omitempty"  yaml:"operationId,omitempty"`
	Segments    []SegmentInfo `json:"segments"               yaml:"segments"`
}

// HandleRoutes executes the routes command
func HandleRoutes(args []string) error {
	fs, flags := SetupRoutesFlags()
	if ok, err := parseArgs(fs, args); !ok {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("routes command requires exactly one schema file")
	}
	if err := cliutil.ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	router, err := buildRouter(fs.Arg(0), &flags.commonFlags)
	if err != nil {
		return err
	}

	var routes []RouteInfo
	for rt := range router.Routes() {
		if flags.Method != "" && !strings.EqualFold(string(rt.Method), flags.Method) {
			continue
		}
		routes = append(routes, routeInfo(rt))
	}

	if flags.Format != cliutil.FormatText {
		return cliutil.OutputStructured(stdout, routes, flags.Format)
	}
	for _, r := range routes {
		cliutil.Writef(stdout, "%-7s %s", r.Method, r.Template)
		if r.OperationID != "" {
			cliutil.Writef(stdout, "  (%s)", r.OperationID)
		}
		cliutil.Writef(stdout, "\n")
		for _, s := range r.Segments {
			cliutil.Writef(stdout, "        %s\n", s)
		}
	}
	return nil
}

func buildRouter(path string, flags *commonFlags) (*route.Router, error) {
	log := flags.logger()
	doc, err := loadSchema(path, log)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}
	comp, err := flags.compiler(log)
	if err != nil {
		return nil, err
	}
	return route.NewRouter(doc, route.WithCompiler(comp), route.WithLogger(log))
}

func routeInfo(rt *route.Route) RouteInfo {
	segments := rt.Template.Segments()
	info := RouteInfo{
		Method:      string(rt.Method),
		Template:    rt.Template.String(),
		OperationID: rt.Operation.OperationID,
		Segments:    make([]SegmentInfo, 0, len(segments)),
	}
	for _, seg := range segments {
		info.Segments = append(info.Segments, segmentInfo(seg))
	}
	return info
}

func segmentInfo(seg route.Segment) SegmentInfo {
	s := SegmentInfo{
		Kind:    seg.Kind.String(),
		Value:   seg.Value,
		Untyped: seg.Untyped,
	}
	switch {
	case seg.Number != nil:
		if !format.IsNone(seg.Number.Format) {
			s.Format = seg.Number.Format.Name()
		}
		if lo := seg.Number.Minimum; lo != math.MinInt64 {
			s.Minimum = &lo
		}
		if hi := seg.Number.Maximum; hi != math.MaxInt64 {
			s.Maximum = &hi
		}
	case seg.Text != nil:
		if !format.IsNone(seg.Text.Format) {
			s.Format = seg.Text.Format.Name()
		}
		s.Choices = seg.Text.Choices
	}
	return s
}

// String renders the segment for text output, e.g. "number orderId [1..10]".
func (s SegmentInfo) String() string {
	var b strings.Builder
	b.WriteString(s.Kind)
	b.WriteByte(' ')
	b.WriteString(s.Value)
	if s.Untyped {
		b.WriteString(" (undeclared)")
	}
	if s.Format != "" {
		fmt.Fprintf(&b, " format=%s", s.Format)
	}
	if s.Minimum != nil || s.Maximum != nil {
		b.WriteString(" [")
		if s.Minimum != nil {
			fmt.Fprintf(&b, "%d", *s.Minimum)
		}
		b.WriteString("..")
		if s.Maximum != nil {
			fmt.Fprintf(&b, "%d", *s.Maximum)
		}
		b.WriteString("]")
	}
	if len(s.Choices) > 0 {
		fmt.Fprintf(&b, " one of [%s]", strings.Join(s.Choices, ", "))
	}
	return b.String()
}

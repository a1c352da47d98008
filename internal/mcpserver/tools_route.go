package mcpserver

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/swaggerguard/format"
	"github.com/erraggy/swaggerguard/route"
)

type matchRouteInput struct {
	Schema schemaInput `json:"schema" jsonschema:"The Swagger 2.0 document holding the paths"`
	Method string      `json:"method" jsonschema:"HTTP method (case-insensitive)"`
	Path   string      `json:"path"   jsonschema:"Request path, e.g. /pet/42"`
}

type matchRouteOutput struct {
	Matched     bool           `json:"matched"`
	Template    string         `json:"template,omitempty"`
	OperationID string         `json:"operation_id,omitempty"`
	Params      map[string]any `json:"params,omitempty"`
	Error       string         `json:"error,omitempty"`
	Allowed     []string       `json:"allowed,omitempty"`
}

func handleMatchRoute(_ context.Context, _ *mcp.CallToolRequest, input matchRouteInput) (*mcp.CallToolResult, matchRouteOutput, error) {
	if input.Method == "" || input.Path == "" {
		return errResult(errors.New("method and path are required")), matchRouteOutput{}, nil
	}
	router, err := input.Schema.router()
	if err != nil {
		return errResult(err), matchRouteOutput{}, nil
	}

	var output matchRouteOutput
	m, err := router.Match(input.Method, input.Path)
	if m != nil {
		output.Template = m.Template.String()
		output.OperationID = m.Operation.OperationID
	}
	if err != nil {
		output.Error = err.Error()
		if errors.Is(err, route.ErrMethodNotAllowed) {
			for _, method := range router.Allowed(input.Path) {
				output.Allowed = append(output.Allowed, string(method))
			}
		}
		return nil, output, nil
	}
	output.Matched = true
	if len(m.Params) > 0 {
		output.Params = m.Params
	}
	return nil, output, nil
}

type listSegmentsInput struct {
	Schema   schemaInput `json:"schema"             jsonschema:"The Swagger 2.0 document holding the paths"`
	Method   string      `json:"method,omitempty"   jsonschema:"Only list routes for this HTTP method"`
	Template string      `json:"template,omitempty" jsonschema:"Only list templates matching this glob, e.g. /pet/*"`
	Offset   int         `json:"offset,omitempty"   jsonschema:"Skip the first N routes (for pagination)"`
	Limit    int         `json:"limit,omitempty"    jsonschema:"Maximum number of routes to return (default 100)"`
}

type segmentSummary struct {
	Kind    string   `json:"kind"`
	Value   string   `json:"value"`
	Untyped bool     `json:"untyped,omitempty"`
	Format  string   `json:"format,omitempty"`
	Minimum *int64   `json:"minimum,omitempty"`
	Maximum *int64   `json:"maximum,omitempty"`
	Choices []string `json:"choices,omitempty"`
}

type routeSummary struct {
	Method      string           `json:"method"`
	Template    string           `json:"template"`
	OperationID string           `json:"operation_id,omitempty"`
	Segments    []segmentSummary `json:"segments,omitempty"`
}

type listSegmentsOutput struct {
	Total    int            `json:"total"`
	Matched  int            `json:"matched"`
	Returned int            `json:"returned"`
	Routes   []routeSummary `json:"routes,omitempty"`
}

func handleListSegments(_ context.Context, _ *mcp.CallToolRequest, input listSegmentsInput) (*mcp.CallToolResult, listSegmentsOutput, error) {
	if err := validateGlobPattern(input.Template); err != nil {
		return errResult(err), listSegmentsOutput{}, nil
	}
	router, err := input.Schema.router()
	if err != nil {
		return errResult(err), listSegmentsOutput{}, nil
	}

	var output listSegmentsOutput
	var matched []*route.Route
	for rt := range router.Routes() {
		output.Total++
		if input.Method != "" && !strings.EqualFold(string(rt.Method), input.Method) {
			continue
		}
		if !matchGlob(input.Template, rt.Template.String()) {
			continue
		}
		matched = append(matched, rt)
	}
	output.Matched = len(matched)

	page := paginate(matched, input.Offset, input.Limit)
	output.Routes = makeSlice[routeSummary](len(page))
	for _, rt := range page {
		output.Routes = append(output.Routes, summarizeRoute(rt))
	}
	output.Returned = len(output.Routes)
	return nil, output, nil
}

func summarizeRoute(rt *route.Route) routeSummary {
	segments := rt.Template.Segments()
	out := routeSummary{
		Method:      string(rt.Method),
		Template:    rt.Template.String(),
		OperationID: rt.Operation.OperationID,
		Segments:    makeSlice[segmentSummary](len(segments)),
	}
	for _, seg := range segments {
		out.Segments = append(out.Segments, summarizeSegment(seg))
	}
	return out
}

func summarizeSegment(seg route.Segment) segmentSummary {
	s := segmentSummary{
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

// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes swaggerguard capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/swaggerguard"
	"github.com/erraggy/swaggerguard/format"
	"github.com/erraggy/swaggerguard/schema"
	"github.com/erraggy/swaggerguard/validator"
)

const serverInstructions = `swaggerguard MCP server: validates YAML/JSON documents against Swagger 2.0 definitions, matches request paths against path templates, and validates whole HTTP requests.

Configuration: All defaults are configurable via SWAGGERGUARD_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- SWAGGERGUARD_CACHE_FILE_TTL (default: 15m): cache TTL for local schema files
- SWAGGERGUARD_CACHE_CONTENT_TTL (default: 15m): cache TTL for inline schema content
- SWAGGERGUARD_CACHE_ENABLED (default: true): disable schema caching entirely
- SWAGGERGUARD_LIST_LIMIT (default: 100): default result limit for list_segments
- SWAGGERGUARD_MAX_BODY_SIZE (default: 10MiB): request body limit for validate_request
- SWAGGERGUARD_EXTENDED_FORMATS (default: false): also accept ipv6, uuid, date, date-time, int32 and int64 formats

Formats: Unregistered format names always fail validation. Only ipv4 is registered by default.

Caching: Loaded schemas and their compiled routers are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries every 60s.`

// logger receives schema loading and compilation diagnostics. MCP uses
// stdout, so it writes through the default slog handler on stderr.
var logger schema.Logger = schema.NewSlogAdapter(slog.Default())

// compiler is shared by every tool call. Its format tables are fixed at
// startup from cfg.
var compiler = newCompiler(cfg)

func newCompiler(c *serverConfig) *validator.Compiler {
	opts := []validator.Option{validator.WithLogger(logger)}
	if c.ExtendedFormats {
		opts = append(opts,
			validator.WithIntegerFormats(format.NewRegistry(format.ExtendedIntegerTable())),
			validator.WithStringFormats(format.NewRegistry(format.ExtendedStringTable())),
		)
	}
	comp, err := validator.NewCompiler(opts...)
	if err != nil {
		// Options above are never nil.
		panic(fmt.Sprintf("mcpserver: building compiler: %v", err))
	}
	return comp
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "swaggerguard", Version: swaggerguard.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_document",
		Description: "Validate a YAML or JSON document against a definition of a Swagger 2.0 schema. Set exactly one of definition (a name under definitions) or ref (a $ref such as #/definitions/Pet). Returns the first violation only: its kind (type, bound, format, choice, structure, reference, unknown-type) and message.",
	}, handleValidateDocument)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "match_route",
		Description: "Match an HTTP method and request path against the path templates of a Swagger 2.0 schema. Returns the matched template, operationId and typed path parameters (integers as numbers). A path that fits a template but carries an ill-typed parameter reports the violation. When nothing matches, returns the error and the methods that would match the path.",
	}, handleMatchRoute)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_segments",
		Description: "List the routes of a Swagger 2.0 schema with their compiled path segments (fixed, text or number, with formats and bounds), in matching order. Filter by method or by template glob (e.g. /pet/*). Use offset/limit to paginate. Default limit is configurable via SWAGGERGUARD_LIST_LIMIT.",
	}, handleListSegments)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_request",
		Description: "Validate a whole HTTP request (method, path with query string, headers and body) against a Swagger 2.0 schema: route, path, query, header, formData and body parameters, in that order. Returns the first failure with its location and parameter name.",
	}, handleValidateRequest)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ListLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ListLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchGlob never encounters an
// invalid pattern at match time.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlob reports whether name matches pattern. Patterns without glob
// characters must match exactly.
func matchGlob(pattern, name string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return pattern == name
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}

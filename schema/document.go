package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/swaggerguard/oaserrors"
)

// SwaggerVersion is the only document version the loader understands.
const SwaggerVersion = "2.0"

// Document is a deserialized Swagger 2.0 document, reduced to the parts the
// validator and route packages consume.
type Document struct {
	Swagger     string      `yaml:"swagger"`
	Definitions Definitions `yaml:"definitions"`
	Paths       Paths       `yaml:"paths"`

	// SourcePath is the file or source name the document was read from.
	SourcePath string `yaml:"-"`
}

// Option configures ParseWithOptions.
type Option func(*config) error

type config struct {
	filePath string
	data     []byte
	reader   io.Reader
	fsys     fs.FS
	fsName   string
	sources  int
	logger   Logger
}

// WithFilePath reads the document from a file on disk.
func WithFilePath(path string) Option {
	return func(c *config) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "WithFilePath", Message: "path cannot be empty"}
		}
		c.filePath = path
		c.sources++
		return nil
	}
}

// WithBytes parses the document from raw YAML or JSON bytes.
func WithBytes(data []byte) Option {
	return func(c *config) error {
		c.data = data
		c.sources++
		return nil
	}
}

// WithReader reads the document from r.
func WithReader(r io.Reader) Option {
	return func(c *config) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "WithReader", Message: "reader cannot be nil"}
		}
		c.reader = r
		c.sources++
		return nil
	}
}

// WithFS reads the named document from fsys.
func WithFS(fsys fs.FS, name string) Option {
	return func(c *config) error {
		if fsys == nil {
			return &oaserrors.ConfigError{Option: "WithFS", Message: "filesystem cannot be nil"}
		}
		c.fsys = fsys
		c.fsName = name
		c.sources++
		return nil
	}
}

// WithLogger sets a structured logger for load diagnostics.
// By default nothing is logged.
func WithLogger(l Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// ParseWithOptions loads a Swagger document from exactly one source.
func ParseWithOptions(opts ...Option) (*Document, error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	log := OrNop(cfg.logger)

	if cfg.sources != 1 {
		return nil, &oaserrors.ConfigError{
			Option:  "source",
			Value:   cfg.sources,
			Message: "exactly one of WithFilePath, WithBytes, WithReader or WithFS is required",
		}
	}

	data, source, err := cfg.read()
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(data)
	if err != nil {
		var parseErr *oaserrors.ParseError
		if errors.As(err, &parseErr) && parseErr.Path == "" {
			parseErr.Path = source
		}
		return nil, err
	}
	doc.SourcePath = source

	if doc.Swagger != "" && doc.Swagger != SwaggerVersion {
		log.Warn("unexpected swagger version", "source", source, "swagger", doc.Swagger)
	}
	log.Debug("loaded schema document",
		"source", source,
		"definitions", len(doc.Definitions),
		"paths", len(doc.Paths))
	return doc, nil
}

func (c *config) read() ([]byte, string, error) {
	switch {
	case c.filePath != "":
		data, err := os.ReadFile(c.filePath)
		if err != nil {
			return nil, c.filePath, &oaserrors.ParseError{Path: c.filePath, Message: "reading file", Cause: err}
		}
		return data, c.filePath, nil
	case c.fsys != nil:
		data, err := fs.ReadFile(c.fsys, c.fsName)
		if err != nil {
			return nil, c.fsName, &oaserrors.ParseError{Path: c.fsName, Message: "reading file", Cause: err}
		}
		return data, c.fsName, nil
	case c.reader != nil:
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, c.reader); err != nil {
			return nil, "reader", &oaserrors.ParseError{Path: "reader", Message: "reading input", Cause: err}
		}
		return buf.Bytes(), "reader", nil
	default:
		return c.data, "bytes", nil
	}
}

// ParseDocument decodes a Swagger document from YAML or JSON bytes.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := decode(data, &doc); err != nil {
		return nil, err
	}
	if doc.Definitions == nil {
		doc.Definitions = make(Definitions)
	}
	if doc.Paths == nil {
		doc.Paths = make(Paths)
	}
	return &doc, nil
}

// ParseAttribute decodes a single schema attribute.
func ParseAttribute(data []byte) (*Attribute, error) {
	var attr Attribute
	if err := decode(data, &attr); err != nil {
		return nil, err
	}
	return &attr, nil
}

// ParseDefinitions decodes a bare definitions mapping (name to attribute).
func ParseDefinitions(data []byte) (Definitions, error) {
	defs := make(Definitions)
	if err := decode(data, &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func decode(data []byte, out any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return &oaserrors.ParseError{Message: "empty document"}
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		var parseErr *oaserrors.ParseError
		if errors.As(err, &parseErr) {
			return parseErr
		}
		return &oaserrors.ParseError{Message: fmt.Sprintf("decoding %T", out), Cause: err}
	}
	return nil
}

package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/erraggy/swaggerguard/route"
	"github.com/erraggy/swaggerguard/schema"
)

// schemaInput is how a tool receives its Swagger document. Exactly one of
// File or Content must be set.
type schemaInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a Swagger 2.0 file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline Swagger 2.0 document content (JSON or YAML)"`
}

// loadedSchema is a parsed document plus the router compiled from it on
// first use. Both are shared between tool calls and must not be modified.
type loadedSchema struct {
	doc *schema.Document

	routerOnce sync.Once
	router     *route.Router
	routerErr  error
}

func (l *loadedSchema) Router() (*route.Router, error) {
	l.routerOnce.Do(func() {
		l.router, l.routerErr = route.NewRouter(l.doc,
			route.WithCompiler(compiler),
			route.WithLogger(logger))
	})
	return l.router, l.routerErr
}

// makeCacheKey returns "file:<abs>:<mtime>" or "content:<sha256>", or ""
// when the input cannot be cached.
func makeCacheKey(s schemaInput) string {
	switch {
	case s.File != "":
		abs, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(abs)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", abs, info.ModTime().UnixNano())
	case s.Content != "":
		sum := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(sum[:])
	}
	return ""
}

func (s schemaInput) load() (*loadedSchema, error) {
	if (s.File == "") == (s.Content == "") {
		return nil, errors.New("exactly one of file or content must be provided")
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set SWAGGERGUARD_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	ttl := cfg.CacheContentTTL
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
	}
	if s.File != "" {
		ttl = cfg.CacheFileTTL
	}
	if key != "" {
		if hit := docCache.get(key); hit != nil {
			return hit, nil
		}
	}

	source := schema.WithFilePath(s.File)
	if s.Content != "" {
		source = schema.WithReader(strings.NewReader(s.Content))
	}
	doc, err := schema.ParseWithOptions(source, schema.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	loaded := &loadedSchema{doc: doc}
	if key != "" {
		docCache.put(key, loaded, ttl)
	}
	return loaded, nil
}

// resolve returns the document for s, from the cache when possible.
func (s schemaInput) resolve() (*schema.Document, error) {
	loaded, err := s.load()
	if err != nil {
		return nil, err
	}
	return loaded.doc, nil
}

// router returns the compiled router for s. Cached schemas compile their
// router once.
func (s schemaInput) router() (*route.Router, error) {
	loaded, err := s.load()
	if err != nil {
		return nil, err
	}
	return loaded.Router()
}

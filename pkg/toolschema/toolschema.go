// Package toolschema holds the input schemas of the tools exposed over MCP.
// Schemas are OpenAPI 3 component schemas loaded with kin-openapi from an
// embedded document; arguments are checked with Schema.VisitJSON before a
// tool runs.
package toolschema

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed tools.yaml
var document []byte

// internal components that are not tools themselves.
var hidden = map[string]struct{}{"operands": {}}

var (
	// ErrUnknownTool reports a tool name without a schema.
	ErrUnknownTool = errors.New("toolschema: unknown tool")
	// ErrInvalidArguments wraps schema violations.
	ErrInvalidArguments = errors.New("toolschema: invalid arguments")
)

// Set is a named collection of tool input schemas. It is safe for concurrent
// use.
type Set struct {
	mu      sync.RWMutex
	schemas map[string]*openapi3.Schema
}

// Load parses and validates the embedded tool document.
func Load(ctx context.Context) (*Set, error) {
	return LoadFromData(ctx, document)
}

// LoadFromData parses an OpenAPI document (JSON or YAML) and registers each
// component schema as a tool.
func LoadFromData(ctx context.Context, raw []byte) (*Set, error) {
	if len(raw) == 0 {
		return nil, errors.New("toolschema: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("toolschema: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("toolschema: validate: %w", err)
	}

	set := &Set{schemas: make(map[string]*openapi3.Schema)}
	for name, ref := range doc.Components.Schemas {
		if _, skip := hidden[name]; skip || ref == nil || ref.Value == nil {
			continue
		}
		set.schemas[name] = ref.Value
	}
	return set, nil
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
)

// Default returns the embedded tool set. The embedded document is part of the
// binary, so a load failure is a programming error and panics.
func Default() *Set {
	defaultOnce.Do(func() {
		set, err := Load(context.Background())
		if err != nil {
			panic(err)
		}
		defaultSet = set
	})
	return defaultSet
}

// Add registers a schema under name, replacing any existing one.
func (s *Set) Add(name string, schema *openapi3.Schema) error {
	if name == "" {
		return errors.New("toolschema: name is required")
	}
	if schema == nil {
		return fmt.Errorf("toolschema: schema for %q is nil", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemas[name] = schema
	return nil
}

// Has reports whether name has a schema.
func (s *Set) Has(name string) bool {
	_, ok := s.Schema(name)
	return ok
}

// Schema returns the schema registered for name.
func (s *Set) Schema(name string) (*openapi3.Schema, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	schema, ok := s.schemas[name]
	return schema, ok
}

// Names lists the registered tools in alphabetical order.
func (s *Set) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.schemas))
	for name := range s.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// JSON returns the schema as a generic JSON object suitable for an MCP
// inputSchema field.
func (s *Set) JSON(name string) (map[string]any, error) {
	schema, ok := s.Schema(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownTool, name)
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("toolschema: encode %q: %w", name, err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("toolschema: decode %q: %w", name, err)
	}
	return out, nil
}

// Validate checks args against the schema of name. Missing arguments are
// validated as an empty object.
func (s *Set) Validate(name string, args map[string]any) error {
	schema, ok := s.Schema(name)
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownTool, name)
	}
	var value any = map[string]any{}
	if args != nil {
		value = args
	}
	if err := schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidArguments, name, err)
	}
	return nil
}

// StringArgs builds an object schema whose listed properties are required
// strings.
func StringArgs(description string, params ...string) *openapi3.Schema {
	schema := openapi3.NewObjectSchema()
	schema.Description = description
	for _, param := range params {
		schema.WithProperty(param, openapi3.NewStringSchema())
		schema.Required = append(schema.Required, param)
	}
	return schema
}

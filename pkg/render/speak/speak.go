// Package speak renders the spoken summary attached to card documents. Each
// template kind may ship a pongo2 template named <kind>.tpl; kinds without a
// template get no summary.
package speak

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-cardgen/pkg/carddata"
)

//go:embed templates/*.tpl
var builtin embed.FS

var identifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ErrNoTemplate reports that no summary template exists for a kind.
var ErrNoTemplate = errors.New("speak: no template for kind")

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	templates fs.FS
	extension string
}

// WithFS replaces the embedded templates with files. Template paths are
// resolved relative to the root of files.
func WithFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templates = files
	}
}

// WithExtension overrides the ".tpl" template extension.
func WithExtension(ext string) Option {
	return func(cfg *config) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// Engine renders speech summaries from a pongo2 template set.
type Engine struct {
	mu sync.RWMutex

	files     fs.FS
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	ext       string
}

// New constructs an Engine. Without options the embedded templates are used.
func New(options ...Option) (*Engine, error) {
	cfg := &config{extension: ".tpl"}
	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}
	if cfg.templates == nil {
		cfg.templates = TemplatesFS()
	}

	return &Engine{
		files:     cfg.templates,
		set:       pongo2.NewSet("cardgen-speak", pongo2.NewFSLoader(cfg.templates)),
		templates: make(map[string]*pongo2.Template),
		ext:       cfg.extension,
	}, nil
}

// TemplatesFS exposes the embedded templates so callers can copy or extend
// them and pass the result back through WithFS.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(builtin, "templates")
	if err != nil {
		return builtin
	}
	return sub
}

// Default returns an engine over the embedded templates.
func Default() *Engine {
	engine, err := New()
	if err != nil {
		panic(err)
	}
	return engine
}

// Has reports whether a template exists for kind.
func (e *Engine) Has(kind string) bool {
	if e == nil {
		return false
	}
	_, err := fs.Stat(e.files, e.path(kind))
	return err == nil
}

// Summarize renders the summary for kind with the members of data in scope.
// It returns ErrNoTemplate when the kind has no template.
func (e *Engine) Summarize(kind string, data carddata.Value) (string, error) {
	if e == nil || e.set == nil {
		return "", errors.New("speak: engine is nil")
	}
	if !e.Has(kind) {
		return "", fmt.Errorf("%w %q", ErrNoTemplate, kind)
	}

	tmpl, err := e.template(e.path(kind))
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(contextOf(data), &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("speak: execute %q: %w", kind, err)
	}
	return strings.Join(strings.Fields(buf.String()), " "), nil
}

func (e *Engine) path(kind string) string {
	return strings.ToLower(strings.TrimSpace(kind)) + e.ext
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("speak: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

func contextOf(data carddata.Value) pongo2.Context {
	ctx := pongo2.Context{}
	members, ok := data.Interface().(map[string]any)
	if !ok {
		return ctx
	}
	for key, value := range members {
		// pongo2 rejects contexts holding keys that are not identifiers.
		if !identifier.MatchString(key) {
			continue
		}
		ctx[key] = value
	}
	return ctx
}

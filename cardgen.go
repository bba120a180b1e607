// Package cardgen renders Adaptive Card documents from named templates and
// loosely structured data, and manages dynamic forms from rendering to
// submission validation.
//
// The root package re-exports the common entry points; the building blocks
// live under pkg/.
package cardgen

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-cardgen/pkg/card"
	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/render/speak"
)

// Document is a rendered card.
type Document = card.Document

// Orchestrator coordinates rendering with the dynamic form lifecycle.
type Orchestrator = orchestrator.Orchestrator

// Option configures an Orchestrator.
type Option = orchestrator.Option

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...Option) *Orchestrator {
	return orchestrator.New(options...)
}

// Render renders data with the named template using the default dispatcher.
// Unknown templates render as simple cards and unusable data yields the
// fallback document.
func Render(template string, data any) Document {
	return render.New().Render(template, data)
}

// GenerateCard is Render serialized to JSON.
func GenerateCard(template string, data any) []byte {
	return Render(template, data).JSON()
}

// GenerateDynamicForm stores and renders a dynamic form on a fresh
// orchestrator. Long-lived callers should keep an Orchestrator so submissions
// can be validated against the same store.
func GenerateDynamicForm(ctx context.Context, data any, options ...Option) ([]byte, *Orchestrator) {
	orch := orchestrator.New(options...)
	return orch.GenerateDynamicForm(ctx, data), orch
}

// SpeechTemplates exposes the built-in speech summary templates.
func SpeechTemplates() fs.FS {
	return speak.TemplatesFS()
}

package render

import (
	"github.com/goliatone/go-cardgen/internal/logger"
	"github.com/goliatone/go-cardgen/pkg/builders"
	"github.com/goliatone/go-cardgen/pkg/forms"
	"github.com/goliatone/go-cardgen/pkg/render/speak"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for render diagnostics.
func WithLogger(l *logger.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithRegistry replaces the builder registry.
func WithRegistry(reg *Registry) Option {
	return func(d *Dispatcher) {
		if reg != nil {
			d.registry = reg
		}
	}
}

// WithBuilder overrides the builder used for kind without touching the
// registry, so a shared registry can back dispatchers with different
// overrides.
func WithBuilder(kind builders.Kind, builder builders.Builder) Option {
	return func(d *Dispatcher) {
		d.overrides = append(d.overrides, override{kind: kind, builder: builder})
	}
}

// WithInputRegistry makes dynamic forms resolve their inputs through reg.
func WithInputRegistry(reg *forms.InputRegistry) Option {
	return func(d *Dispatcher) {
		if reg != nil {
			d.overrides = append(d.overrides, override{
				kind:    builders.KindDynamicForm,
				builder: builders.DynamicFormWith(reg),
			})
		}
	}
}

// WithSanitizer toggles stripping of HTML elements from inbound strings.
// Disabled by default.
func WithSanitizer(enabled bool) Option {
	return func(d *Dispatcher) {
		d.sanitize = enabled
	}
}

// WithSpeech sets the engine used for spoken summaries. A nil engine
// disables summaries.
func WithSpeech(engine *speak.Engine) Option {
	return func(d *Dispatcher) {
		d.speech = engine
		d.speechSet = true
	}
}

type override struct {
	kind    builders.Kind
	builder builders.Builder
}

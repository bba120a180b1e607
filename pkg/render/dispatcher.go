package render

import (
	"github.com/goliatone/go-cardgen/internal/logger"
	"github.com/goliatone/go-cardgen/pkg/builders"
	"github.com/goliatone/go-cardgen/pkg/card"
	"github.com/goliatone/go-cardgen/pkg/carddata"
	"github.com/goliatone/go-cardgen/pkg/render/sanitize"
	"github.com/goliatone/go-cardgen/pkg/render/speak"
)

// Dispatcher maps template names to builders. It never fails: unknown
// templates render as simple cards and unreadable data yields the fallback
// document. A Dispatcher is safe for concurrent use.
type Dispatcher struct {
	registry  *Registry
	overrides []override
	custom    map[builders.Kind]builders.Builder
	logger    *logger.Logger
	sanitize  bool
	speech    *speak.Engine
	speechSet bool
}

// New constructs a Dispatcher over the built-in templates.
func New(options ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: logger.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	if d.registry == nil {
		d.registry = DefaultRegistry()
	}
	if !d.speechSet {
		d.speech = speak.Default()
	}
	d.custom = make(map[builders.Kind]builders.Builder, len(d.overrides))
	for _, o := range d.overrides {
		if o.builder != nil && o.kind != "" {
			d.custom[o.kind] = o.builder
		}
	}
	return d
}

// Render normalizes data and renders it with the named template.
func (d *Dispatcher) Render(template string, data any) card.Document {
	value, err := Normalize(data)
	if err != nil {
		d.logger.Warn("card data rejected",
			"template", template,
			"payload_bytes", payloadSize(data),
			"error", err,
		)
		return FallbackDocument(template, rawText(data), MessageInvalidJSON)
	}
	return d.render(template, value, payloadSize(data))
}

// RenderJSON is Render followed by serialization.
func (d *Dispatcher) RenderJSON(template string, data any) []byte {
	return d.Render(template, data).JSON()
}

// RenderValue renders an already parsed value, applying the same
// normalization as Render.
func (d *Dispatcher) RenderValue(template string, data carddata.Value) card.Document {
	value, _ := Normalize(data)
	return d.render(template, value, -1)
}

// Registry exposes the builder registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

func (d *Dispatcher) render(template string, value carddata.Value, size int) card.Document {
	kind, known := builders.ParseKind(template)
	if d.sanitize {
		value = sanitize.Value(value)
	}

	doc := d.builder(kind)(value)
	if d.speech != nil && d.speech.Has(string(kind)) {
		summary, err := d.speech.Summarize(string(kind), value)
		if err != nil {
			d.logger.Warn("speech summary failed", "kind", kind, "error", err)
		} else {
			doc.Speak = summary
		}
	}

	d.logger.Debug("rendered card",
		"template", template,
		"kind", kind,
		"known", known,
		"payload_bytes", size,
	)
	return doc
}

func (d *Dispatcher) builder(kind builders.Kind) builders.Builder {
	if b, ok := d.custom[kind]; ok {
		return b
	}
	if b, err := d.registry.Get(kind); err == nil {
		return b
	}
	if b, err := d.registry.Get(builders.KindSimple); err == nil {
		return b
	}
	return builders.Simple
}

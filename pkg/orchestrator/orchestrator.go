package orchestrator

import (
	"context"
	"encoding/json"

	"github.com/goliatone/go-cardgen/internal/logger"
	"github.com/goliatone/go-cardgen/pkg/builders"
	"github.com/goliatone/go-cardgen/pkg/card"
	"github.com/goliatone/go-cardgen/pkg/carddata"
	"github.com/goliatone/go-cardgen/pkg/forms"
	"github.com/goliatone/go-cardgen/pkg/formstore"
	"github.com/goliatone/go-cardgen/pkg/render"
	"github.com/goliatone/go-cardgen/pkg/validation"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDispatcher injects the card dispatcher.
func WithDispatcher(d *render.Dispatcher) Option {
	return func(o *Orchestrator) {
		o.dispatcher = d
	}
}

// WithStore injects the form definition store.
func WithStore(store formstore.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithValidator injects a submission validator. When omitted one is built
// over the configured store and dispatcher.
func WithValidator(v *validation.Validator) Option {
	return func(o *Orchestrator) {
		o.validator = v
	}
}

// WithLogger sets the logger passed to the default collaborators.
func WithLogger(l *logger.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// Orchestrator coordinates rendering and the dynamic form lifecycle. Every
// operation returns a serialized card document; failures surface as fallback
// or validation cards, never as errors.
type Orchestrator struct {
	dispatcher *render.Dispatcher
	store      formstore.Store
	validator  *validation.Validator
	logger     *logger.Logger
}

// New constructs an Orchestrator applying any provided options. Missing
// collaborators get the built-in implementations: default dispatcher, bounded
// in-memory store.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{logger: logger.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.dispatcher == nil {
		o.dispatcher = render.New(render.WithLogger(o.logger))
	}
	if o.store == nil {
		o.store = formstore.NewMemory()
	}
	if o.validator == nil {
		o.validator = validation.New(o.store,
			validation.WithDispatcher(o.dispatcher),
			validation.WithLogger(o.logger),
		)
	}
	return o
}

// Dispatcher exposes the card dispatcher.
func (o *Orchestrator) Dispatcher() *render.Dispatcher { return o.dispatcher }

// Store exposes the form store.
func (o *Orchestrator) Store() formstore.Store { return o.store }

// GenerateCard renders data with the named template.
func (o *Orchestrator) GenerateCard(template string, data any) []byte {
	return o.dispatcher.RenderJSON(template, data)
}

// DynamicForm stores the definition described by data and renders it. The
// returned id is empty when the store rejected the definition, in which case
// the document is the fallback card.
func (o *Orchestrator) DynamicForm(ctx context.Context, data any) (card.Document, string) {
	def := decodeDefinition(data)

	id, err := o.store.Put(ctx, def)
	if err != nil {
		o.logger.Error("store form definition", "title", def.Title, "error", err)
		raw, _ := json.Marshal(def)
		return render.FallbackDocument(string(builders.KindDynamicForm), string(raw), "Error: "+err.Error()), ""
	}
	def.FormID = id
	o.logger.Info("stored form definition", "form_id", id, "fields", len(def.Fields))

	return o.dispatcher.RenderValue(string(builders.KindDynamicForm), def.Value()), id
}

// GenerateDynamicForm is DynamicForm serialized.
func (o *Orchestrator) GenerateDynamicForm(ctx context.Context, data any) []byte {
	doc, _ := o.DynamicForm(ctx, data)
	return doc.JSON()
}

// ValidateSubmission checks a submission against its stored definition and
// renders the outcome.
func (o *Orchestrator) ValidateSubmission(ctx context.Context, data any) []byte {
	return o.validator.ValidateDocument(ctx, data).JSON()
}

// Validate exposes the structured validation result.
func (o *Orchestrator) Validate(ctx context.Context, data any) validation.Result {
	return o.validator.Validate(ctx, data)
}

// HandleEvent routes an inbound card event. Form submissions are validated,
// retry events re-render the original request and anything else is echoed
// through the simple template.
func (o *Orchestrator) HandleEvent(ctx context.Context, payload any) []byte {
	event, ok := parseEvent(payload)
	if !ok {
		return o.dispatcher.RenderJSON(string(builders.KindSimple), payload)
	}

	if validation.IsSubmission(event) {
		return o.validator.ValidateDocument(ctx, event).JSON()
	}

	if action, _ := event.Get("action").Str(); action == render.ActionRetry {
		template := event.Get("template").Text(string(builders.KindSimple))
		original := event.Get("originalData")
		if text, isText := original.Str(); isText {
			return o.dispatcher.RenderJSON(template, text)
		}
		return o.dispatcher.RenderJSON(template, original)
	}

	return o.dispatcher.RenderJSON(string(builders.KindSimple), event)
}

// Close releases the store.
func (o *Orchestrator) Close() error {
	return o.store.Close()
}

func decodeDefinition(data any) forms.Definition {
	value, err := toValue(data)
	if err != nil || !value.IsObject() {
		return forms.Definition{Title: forms.DefaultTitle, Fields: []forms.FieldSpec{}}
	}
	def := forms.Decode(value)
	def.FormID = ""
	return def
}

// parseEvent decodes payload, treating free text that is not JSON as a
// message.
func parseEvent(payload any) (carddata.Value, bool) {
	value, err := toValue(payload)
	if err != nil {
		if text, isText := payload.(string); isText {
			return carddata.Object(carddata.Field{Key: "message", Value: carddata.String(text)}), true
		}
		return carddata.Null(), false
	}
	return value, true
}

func toValue(data any) (carddata.Value, error) {
	switch v := data.(type) {
	case string:
		return carddata.Parse([]byte(v))
	case []byte:
		return carddata.Parse(v)
	case json.RawMessage:
		return carddata.Parse(v)
	default:
		return carddata.FromAny(data)
	}
}

package forms

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-cardgen/pkg/card"
)

// Built-in input identifiers exposed by the registry.
const (
	InputText        = "text"
	InputDate        = "date"
	InputNumber      = "number"
	InputChoice      = "choice"
	InputMultiChoice = "multi-choice"
)

// Matcher decides whether an input renderer should handle the supplied field.
type Matcher func(field FieldSpec) bool

// InputRenderer turns a field into one or more card elements.
type InputRenderer func(field FieldSpec) []card.Element

type rule struct {
	name     string
	priority int
	match    Matcher
	render   InputRenderer
	order    int
}

// InputRegistry selects input renderers for fields using registered matchers.
// Higher priority wins; ties go to the most recent registration. Fields no
// matcher claims are rendered as text inputs.
type InputRegistry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewInputRegistry constructs a registry with the built-in matchers
// registered.
func NewInputRegistry() *InputRegistry {
	reg := &InputRegistry{}
	reg.registerBuiltins()
	return reg
}

// Register adds an input renderer with the provided name and priority.
// A later registration with equal or higher priority shadows earlier ones.
func (r *InputRegistry) Register(name string, priority int, matcher Matcher, renderer InputRenderer) {
	if r == nil || matcher == nil || renderer == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		render:   renderer,
		order:    len(r.rules),
	})
}

// Resolve returns the input name and renderer chosen for a field.
func (r *InputRegistry) Resolve(field FieldSpec) (string, InputRenderer) {
	if r != nil {
		r.mu.RLock()
		rules := append([]rule(nil), r.rules...)
		r.mu.RUnlock()

		sort.SliceStable(rules, func(i, j int) bool {
			if rules[i].priority == rules[j].priority {
				return rules[i].order > rules[j].order
			}
			return rules[i].priority > rules[j].priority
		})
		for _, entry := range rules {
			if entry.match(field) {
				return entry.name, entry.render
			}
		}
	}
	return InputText, renderText
}

// Render resolves and renders a field.
func (r *InputRegistry) Render(field FieldSpec) []card.Element {
	_, renderer := r.Resolve(field)
	return renderer(field)
}

func (r *InputRegistry) registerBuiltins() {
	r.Register(InputMultiChoice, 90, func(field FieldSpec) bool {
		return field.Type == FieldTypeCheckbox || (field.Type == FieldTypeChoice && field.IsMultiSelect)
	}, renderMultiChoice)

	r.Register(InputChoice, 80, func(field FieldSpec) bool {
		return field.Type == FieldTypeChoice
	}, renderChoice)

	r.Register(InputDate, 70, func(field FieldSpec) bool {
		return field.Type == FieldTypeDate
	}, renderDate)

	r.Register(InputNumber, 60, func(field FieldSpec) bool {
		return field.Type == FieldTypeNumber
	}, renderNumber)

	r.Register(InputText, 10, func(field FieldSpec) bool {
		return field.Type == FieldTypeText
	}, renderText)
}

package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/goliatone/go-cardgen/pkg/orchestrator"
	"github.com/goliatone/go-cardgen/pkg/samples"
	"github.com/goliatone/go-cardgen/pkg/toolschema"
)

// Card tool names.
const (
	ToolGenerateCard     = "generate_adaptive_card"
	ToolGenerateForm     = "generate_dynamic_form_card"
	ToolValidateFormData = "validate_form_submission"
)

// ErrDivideByZero is returned by the divide tool.
var ErrDivideByZero = errors.New("cannot divide by zero")

func registerCardTools(s *Server, orch *orchestrator.Orchestrator) error {
	tools := []Tool{
		{
			Name:        ToolGenerateCard,
			Description: "Generates an Adaptive Card based on the specified template and data.",
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				template, _ := args["template"].(string)
				return string(orch.GenerateCard(template, args["data"])), nil
			},
		},
		{
			Name:        ToolGenerateForm,
			Description: "Generates an Adaptive Card for a custom dynamic form and stores its definition for validation.",
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				return string(orch.GenerateDynamicForm(ctx, args["data"])), nil
			},
		},
		{
			Name:        ToolValidateFormData,
			Description: "Validates a form submission against its stored definition.",
			Handler: func(ctx context.Context, args map[string]any) (string, error) {
				return string(orch.ValidateSubmission(ctx, args["submission_data"])), nil
			},
		},
	}
	for _, tool := range tools {
		if err := s.Register(tool, nil); err != nil {
			return err
		}
	}
	return nil
}

func registerSampleTools(s *Server) error {
	for _, provider := range samples.All() {
		p := provider
		tool := Tool{
			Name:        p.Name,
			Description: p.Description + " Render the result with the " + string(p.Template) + " template.",
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				arg, _ := args[p.Param].(string)
				raw, err := p.Build(arg).MarshalJSON()
				if err != nil {
					return "", fmt.Errorf("encode %s sample: %w", p.Name, err)
				}
				return string(raw), nil
			},
		}
		if err := s.Register(tool, toolschema.StringArgs(p.Description, p.Param)); err != nil {
			return err
		}
	}
	return nil
}

type arithmetic func(a, b float64) (float64, error)

func registerArithmeticTools(s *Server) error {
	ops := []struct {
		name, description string
		fn                arithmetic
	}{
		{"add", "Add two numbers together.", func(a, b float64) (float64, error) { return a + b, nil }},
		{"subtract", "Subtract the second number from the first.", func(a, b float64) (float64, error) { return a - b, nil }},
		{"multiply", "Multiply two numbers together.", func(a, b float64) (float64, error) { return a * b, nil }},
		{"divide", "Divide the first number by the second.", func(a, b float64) (float64, error) {
			if b == 0 {
				return 0, ErrDivideByZero
			}
			return a / b, nil
		}},
	}
	for _, op := range ops {
		fn := op.fn
		tool := Tool{
			Name:        op.name,
			Description: op.description,
			Handler: func(_ context.Context, args map[string]any) (string, error) {
				a, _ := args["a"].(float64)
				b, _ := args["b"].(float64)
				result, err := fn(a, b)
				if err != nil {
					return "", err
				}
				return strconv.FormatFloat(result, 'f', -1, 64), nil
			},
		}
		if err := s.Register(tool, nil); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-cardgen/internal/app"
	"github.com/goliatone/go-cardgen/pkg/carddata"
	"github.com/goliatone/go-cardgen/pkg/forms"
	"github.com/goliatone/go-cardgen/pkg/mcp"
	"github.com/goliatone/go-cardgen/pkg/renderers/tui"
	"github.com/goliatone/go-cardgen/pkg/samples"
)

func (e *env) render(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	template := fs.String("template", "simple", "template name")
	data := fs.String("data", "{}", "JSON data, @file or - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	raw, err := readData(*data)
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}

	orch, err := app.NewOrchestrator(ctx, e.cfg, e.log)
	if err != nil {
		return err
	}
	defer orch.Close()
	return e.write(orch.GenerateCard(*template, raw))
}

func (e *env) fill(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("fill", flag.ContinueOnError)
	path := fs.String("form", "", "form definition file (YAML or JSON)")
	attempts := fs.Int("attempts", 3, "attempts per field before giving up")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("fill: -form is required")
	}

	raw, err := os.ReadFile(*path)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	// YAML is a superset of JSON, so one decoder serves both.
	var definition map[string]any
	if err := yaml.Unmarshal(raw, &definition); err != nil {
		return fmt.Errorf("fill: decode %s: %w", *path, err)
	}

	orch, err := app.NewOrchestrator(ctx, e.cfg, e.log)
	if err != nil {
		return err
	}
	defer orch.Close()

	_, id := orch.DynamicForm(ctx, definition)
	value, err := carddata.FromAny(definition)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}
	def := forms.Decode(value)
	def.FormID = id

	filler := tui.New(
		tui.WithPromptDriver(tui.NewSurveyDriver(os.Stderr)),
		tui.WithMaxAttempts(*attempts),
	)
	submission, err := filler.Fill(ctx, def)
	if err != nil {
		return err
	}
	return e.write(orch.ValidateSubmission(ctx, submission))
}

func (e *env) call(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("call", flag.ContinueOnError)
	template := fs.String("template", "simple", "template name")
	data := fs.String("data", "{}", "JSON data, @file or - for stdin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	raw, err := readData(*data)
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}

	transport := mcp.NewStdioTransport(e.cfg.MCP.Command, e.cfg.MCP.Args,
		mcp.WithTimeout(e.cfg.MCP.CallTimeout),
		mcp.WithTransportLogger(e.log),
	)
	if err := transport.Start(ctx); err != nil {
		return err
	}
	client := mcp.NewClient(transport)
	defer client.Close()

	if _, err := client.Initialize(ctx); err != nil {
		e.log.Warn("mcp handshake failed", "error", err)
	}
	return e.write(mcp.NewCardClient(client).GenerateOrFallback(ctx, *template, raw))
}

func (e *env) samples(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("samples", flag.ContinueOnError)
	name := fs.String("name", "", "provider to render; lists providers when empty")
	arg := fs.String("arg", "", "provider argument")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *name == "" {
		w := tabwriter.NewWriter(e.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tTEMPLATE\tPARAM\tDESCRIPTION")
		for _, p := range samples.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.Template, p.Param, p.Description)
		}
		return w.Flush()
	}

	provider, ok := samples.Lookup(*name)
	if !ok {
		return fmt.Errorf("samples: unknown provider %q", *name)
	}
	orch, err := app.NewOrchestrator(ctx, e.cfg, e.log)
	if err != nil {
		return err
	}
	defer orch.Close()
	return e.write(orch.Dispatcher().RenderValue(string(provider.Template), provider.Build(*arg)).JSON())
}

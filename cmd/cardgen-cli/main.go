// Command cardgen-cli renders cards locally, fills dynamic forms in the
// terminal and drives a remote generator over MCP.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goliatone/go-cardgen/internal/app"
	"github.com/goliatone/go-cardgen/internal/config"
	"github.com/goliatone/go-cardgen/internal/logger"
)

const usage = `usage: cardgen-cli [-config file] <command> [flags]

commands:
  render   render a template from JSON data
  fill     fill a dynamic form definition in the terminal and validate it
  call     render through a cardgen MCP server started as a subprocess
  samples  list sample providers or render one
`

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, flag.Arg(0), flag.Args()[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "cardgen-cli: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, command string, args []string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	env := &env{cfg: cfg, log: log, out: out}
	switch command {
	case "render":
		return env.render(ctx, args)
	case "fill":
		return env.fill(ctx, args)
	case "call":
		return env.call(ctx, args)
	case "samples":
		return env.samples(ctx, args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

type env struct {
	cfg config.Config
	log *logger.Logger
	out io.Writer
}

// readData resolves a data argument: "-" reads stdin, "@path" reads a file,
// anything else is used verbatim.
func readData(arg string) (string, error) {
	switch {
	case arg == "-":
		raw, err := io.ReadAll(os.Stdin)
		return string(raw), err
	case strings.HasPrefix(arg, "@"):
		raw, err := os.ReadFile(strings.TrimPrefix(arg, "@"))
		return string(raw), err
	default:
		return arg, nil
	}
}

func (e *env) write(doc []byte) error {
	_, err := fmt.Fprintln(e.out, string(doc))
	return err
}

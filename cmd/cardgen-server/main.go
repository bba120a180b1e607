// Command cardgen-server exposes the card engine over HTTP or as an MCP
// server on stdio.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-cardgen/internal/app"
	"github.com/goliatone/go-cardgen/internal/config"
	"github.com/goliatone/go-cardgen/internal/logger"
	"github.com/goliatone/go-cardgen/pkg/api"
	"github.com/goliatone/go-cardgen/pkg/mcp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	transport := flag.String("transport", "", "override server transport (http or mcp)")
	addr := flag.String("addr", "", "override HTTP listen address")
	flag.Parse()

	if err := run(*configPath, *transport, *addr); err != nil {
		fmt.Fprintf(os.Stderr, "cardgen-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, transport, addr string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if transport != "" {
		cfg.Server.Transport = transport
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := app.NewLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch, err := app.NewOrchestrator(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer orch.Close()

	if cfg.Server.Transport == config.TransportMCP {
		server, err := mcp.NewCardServer(ctx, orch, mcp.WithLogger(log))
		if err != nil {
			return err
		}
		err = server.Serve(ctx, os.Stdin, os.Stdout)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	switch cfg.Log.Mode {
	case "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	}
	return serveHTTP(ctx, cfg, log, api.NewServer(orch,
		api.WithLogger(log),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	))
}

func serveHTTP(ctx context.Context, cfg config.Config, log *logger.Logger, server *api.Server) error {
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

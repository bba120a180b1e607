package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/goliatone/go-cardgen/internal/logger"
)

// DefaultCallTimeout bounds a single stdio call.
const DefaultCallTimeout = 30 * time.Second

// ErrTransportTimeout reports a call that got no response within the
// per-call timeout.
var ErrTransportTimeout = errors.New("mcp: transport timeout")

// Transport carries one encoded request and returns the encoded response.
type Transport interface {
	Start(ctx context.Context) error
	Call(ctx context.Context, payload []byte) ([]byte, error)
	Close() error
}

// InProcessTransport calls a handler directly. Tests use it with
// Server.Handle.
type InProcessTransport struct {
	handler func(ctx context.Context, request []byte) []byte
}

// NewInProcessTransport returns a transport delegating to handler.
func NewInProcessTransport(handler func(ctx context.Context, request []byte) []byte) *InProcessTransport {
	return &InProcessTransport{handler: handler}
}

// ServerTransport connects a client directly to s.
func ServerTransport(s *Server) *InProcessTransport {
	return NewInProcessTransport(s.Handle)
}

func (t *InProcessTransport) Start(context.Context) error { return nil }

func (t *InProcessTransport) Call(ctx context.Context, payload []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := t.handler(ctx, payload)
	if out == nil {
		return nil, errors.New("mcp: no response for request")
	}
	return out, nil
}

func (t *InProcessTransport) Close() error { return nil }

// StdioOption configures a StdioTransport.
type StdioOption func(*StdioTransport)

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) StdioOption {
	return func(t *StdioTransport) {
		if d > 0 {
			t.timeout = d
		}
	}
}

// WithEnv adds environment variables for the child process.
func WithEnv(env map[string]string) StdioOption {
	return func(t *StdioTransport) {
		t.env = env
	}
}

// WithTransportLogger receives the child's stderr lines.
func WithTransportLogger(l *logger.Logger) StdioOption {
	return func(t *StdioTransport) {
		if l != nil {
			t.logger = l
		}
	}
}

// StdioTransport launches a child process and exchanges newline-delimited
// JSON over its stdin and stdout. A single reader goroutine feeds stdout
// lines to Call and closes the line channel once stdout is drained, so every
// reply written before the child exits is still delivered. Responses whose id
// does not match the pending request (late replies to timed out calls) are
// discarded.
type StdioTransport struct {
	command string
	args    []string
	env     map[string]string
	timeout time.Duration
	logger  *logger.Logger

	cmd     *exec.Cmd
	stdin   io.WriteCloser
	lines   chan []byte
	readErr error
	stop    chan struct{}
	stopped sync.Once
	// done is closed after the pipes are drained and the process is reaped.
	done chan struct{}
	mu   sync.Mutex
}

// NewStdioTransport prepares a transport for command. Start launches it.
func NewStdioTransport(command string, args []string, options ...StdioOption) *StdioTransport {
	t := &StdioTransport{
		command: command,
		args:    args,
		timeout: DefaultCallTimeout,
		logger:  logger.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Start launches the child process.
func (t *StdioTransport) Start(ctx context.Context) error {
	t.cmd = exec.CommandContext(ctx, t.command, t.args...)
	if len(t.env) > 0 {
		t.cmd.Env = os.Environ()
		for k, v := range t.env {
			t.cmd.Env = append(t.cmd.Env, k+"="+v)
		}
	}

	var err error
	if t.stdin, err = t.cmd.StdinPipe(); err != nil {
		return fmt.Errorf("mcp: stdio stdin pipe: %w", err)
	}
	stdout, err := t.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("mcp: stdio stdout pipe: %w", err)
	}
	stderr, err := t.cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("mcp: stdio stderr pipe: %w", err)
	}
	if err := t.cmd.Start(); err != nil {
		return fmt.Errorf("mcp: stdio start %q: %w", t.command, err)
	}

	t.lines = make(chan []byte, 16)
	t.stop = make(chan struct{})
	t.done = make(chan struct{})

	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		defer close(t.lines)
		reader := bufio.NewReaderSize(stdout, maxLineSize)
		for {
			line, err := reader.ReadBytes('\n')
			if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
				select {
				case t.lines <- trimmed:
				case <-t.stop:
					return
				}
			}
			if err != nil {
				t.readErr = err
				return
			}
		}
	}()

	go func() {
		defer readers.Done()
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			t.logger.Debug("mcp child stderr", "command", t.command, "line", scanner.Text())
		}
	}()

	// Wait closes the pipes, so it only runs once both readers are done.
	go func() {
		readers.Wait()
		_ = t.cmd.Wait()
		close(t.done)
	}()
	return nil
}

// Call writes payload and waits for the matching response line.
func (t *StdioTransport) Call(ctx context.Context, payload []byte) ([]byte, error) {
	if t.cmd == nil {
		return nil, errors.New("mcp: stdio transport not started")
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-t.done:
		return nil, errors.New("mcp: stdio process exited")
	default:
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	want := idOf(payload)
	if _, err := t.stdin.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("mcp: stdio write: %w", err)
	}

	for {
		select {
		case line, ok := <-t.lines:
			if !ok {
				if t.readErr != nil && !errors.Is(t.readErr, io.EOF) {
					return nil, fmt.Errorf("mcp: stdio read: %w", t.readErr)
				}
				return nil, errors.New("mcp: stdio process exited during read")
			}
			if want != "" && idOf(line) != want {
				t.logger.Debug("discarding stale response", "want", want)
				continue
			}
			return line, nil
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w after %s", ErrTransportTimeout, t.timeout)
			}
			return nil, ctx.Err()
		}
	}
}

// Close shuts the child down, killing it if it does not exit within five
// seconds of stdin closing.
func (t *StdioTransport) Close() error {
	if t.stdin != nil {
		_ = t.stdin.Close()
	}
	if t.cmd == nil || t.cmd.Process == nil || t.done == nil {
		return nil
	}
	t.stopped.Do(func() { close(t.stop) })
	select {
	case <-t.done:
	case <-time.After(5 * time.Second):
		_ = t.cmd.Process.Kill()
		<-t.done
	}
	return nil
}

func idOf(payload []byte) string {
	var envelope struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return ""
	}
	return string(envelope.ID)
}

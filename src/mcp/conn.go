// Package mcp connects to remote MCP tool servers over server-sent events and
// exposes their tools to the agent loop.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// ClientName identifies this client to MCP servers.
	ClientName = "mcpchat"
	// ClientVersion is reported during initialization.
	ClientVersion = "0.1.0"

	defaultConnectTimeout = 30 * time.Second
)

// ErrClosed is returned by operations on a closed connection.
var ErrClosed = errors.New("mcp connection closed")

// DialOptions configures Dial.
type DialOptions struct {
	// ConnectTimeout bounds the handshake and the initial tool listing.
	ConnectTimeout time.Duration
	// KeepAlive, when positive, pings the server at this interval.
	KeepAlive  time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Conn is an initialized MCP client session with its tool list.
type Conn struct {
	endpoint string
	session  *mcpsdk.ClientSession
	tools    []*mcpsdk.Tool
	logger   *slog.Logger
	// cancel ends the context the event stream was opened with.
	cancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error
	mu        sync.RWMutex
	closed    bool
}

// Dial opens an SSE session to endpoint, performs the MCP handshake and
// enumerates every page of the server's tools. On failure nothing stays open.
func Dial(ctx context.Context, endpoint string, opts *DialOptions) (*Conn, error) {
	if opts == nil {
		opts = &DialOptions{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "mcp", "endpoint", endpoint)

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	// The event stream lives until Close, independent of the caller's ctx.
	// The timeout only bounds the handshake and tool listing.
	sessionCtx, cancelSession := context.WithCancel(context.WithoutCancel(ctx))
	dialCtx, cancelDial := context.WithTimeout(ctx, timeout)
	defer cancelDial()
	stopWatch := context.AfterFunc(dialCtx, cancelSession)

	client := mcpsdk.NewClient(&mcpsdk.Implementation{
		Name:    ClientName,
		Version: ClientVersion,
	}, &mcpsdk.ClientOptions{
		Logger:    logger,
		KeepAlive: opts.KeepAlive,
	})

	transport := &mcpsdk.SSEClientTransport{
		Endpoint:   endpoint,
		HTTPClient: opts.HTTPClient,
	}

	start := time.Now()
	session, err := client.Connect(sessionCtx, transport, nil)
	if err != nil {
		stopWatch()
		cancelSession()
		if dialCtx.Err() != nil {
			err = fmt.Errorf("%w: %w", dialCtx.Err(), err)
		}
		return nil, fmt.Errorf("failed to connect to %s: %w", endpoint, err)
	}

	abort := func(err error) (*Conn, error) {
		stopWatch()
		if cerr := session.Close(); cerr != nil {
			logger.Warn("failed to close session after setup error", "error", cerr)
		}
		cancelSession()
		return nil, err
	}

	var tools []*mcpsdk.Tool
	for tool, err := range session.Tools(dialCtx, nil) {
		if err != nil {
			return abort(fmt.Errorf("failed to list tools: %w", err))
		}
		tools = append(tools, tool)
	}

	if !stopWatch() {
		return abort(fmt.Errorf("failed to connect to %s: %w", endpoint, context.Cause(dialCtx)))
	}

	attrs := []any{"tools", len(tools), "duration", time.Since(start)}
	if res := session.InitializeResult(); res != nil && res.ServerInfo != nil {
		attrs = append(attrs, "server", res.ServerInfo.Name, "server_version", res.ServerInfo.Version)
	}
	logger.Info("connected to MCP server", attrs...)

	return &Conn{
		endpoint: endpoint,
		session:  session,
		tools:    tools,
		logger:   logger,
		cancel:   cancelSession,
	}, nil
}

// Endpoint returns the URL the connection was dialed with.
func (c *Conn) Endpoint() string { return c.endpoint }

// Tools returns the tools advertised by the server at connect time.
func (c *Conn) Tools() []*mcpsdk.Tool {
	out := make([]*mcpsdk.Tool, len(c.tools))
	copy(out, c.tools)
	return out
}

// CallTool invokes a remote tool with already-decoded arguments.
func (c *Conn) CallTool(ctx context.Context, name string, args any) (*mcpsdk.CallToolResult, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return nil, ErrClosed
	}

	res, err := c.session.CallTool(ctx, &mcpsdk.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", name, err)
	}
	return res, nil
}

// Close ends the session. It is safe to call more than once.
func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		c.closeErr = c.session.Close()
		c.cancel()
		if c.closeErr != nil {
			c.logger.Warn("error closing MCP session", "error", c.closeErr)
		} else {
			c.logger.Debug("MCP session closed")
		}
	})
	return c.closeErr
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"
)

// ServeCmd serves the chat over HTTP
type ServeCmd struct {
	Listen        string `short:"l" help:"Address to listen on (defaults to server.listen)"`
	NoAutoConnect bool   `help:"Do not connect to the default endpoint on start"`
}

func (c *ServeCmd) Run(ctx context.Context, cli *CLI) error {
	a, err := newApp(cli, false)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := c.Listen
	if addr == "" {
		addr = a.Config.Server.Listen
	}

	if !c.NoAutoConnect {
		a.AutoConnect(ctx)
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           newServer(a),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	fmt.Printf("Serving on http://%s (backend: %s)\n", ln.Addr(), a.Manager.Backend())

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	a.Logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// internal/serveapp/app.go
package serveapp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"hibf-hashing/internal/cli"
	"hibf-hashing/internal/clibase"
	"hibf-hashing/internal/cmdutil"
	"hibf-hashing/internal/server"
	"hibf-hashing/internal/store"
	"hibf-hashing/internal/version"
)

const (
	name            = clibase.Tool + " serve"
	shutdownTimeout = 5 * time.Second
)

// Ready, when set, receives the bound address once the listener is up.
type Ready func(addr net.Addr)

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	return run(parent, argv, stdout, stderr, nil)
}

func run(parent context.Context, argv []string, stdout, stderr io.Writer, ready Ready) int {
	outw := bufio.NewWriter(stdout)

	fs := clibase.NewFlagSet(name)
	opts, err := cli.ParseServeArgs(fs, argv)
	if code, done := cmdutil.HandleParse(fs, outw, stderr, err, name, examples); done {
		return code
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", clibase.Tool, version.Version)
		return cmdutil.Flush(outw, stderr, cmdutil.ExitOK)
	}

	logger := log.New(stderr, "", log.LstdFlags)

	idx, err := store.Load(opts.Index)
	if err != nil {
		return cmdutil.Fail(stderr, cmdutil.ExitRuntime, err)
	}
	srv, err := server.New(idx, server.Config{Errors: opts.Errors, Fraction: opts.Threshold, Strict: opts.Strict})
	if err != nil {
		return cmdutil.Fail(stderr, cmdutil.ExitRuntime, err)
	}

	listener, err := net.Listen("tcp", opts.Bind)
	if err != nil {
		return cmdutil.Fail(stderr, cmdutil.ExitRuntime, fmt.Errorf("failed to listen on %s: %w", opts.Bind, err))
	}
	logger.Printf("serving index %s (%s, %d bins) on %s", opts.Index, idx.Meta.HashParams(), len(idx.Meta.Bins), listener.Addr())
	if ready != nil {
		ready(listener.Addr())
	}

	hs := &http.Server{Handler: srv.Handler(), ErrorLog: logger}
	errc := make(chan error, 1)
	go func() { errc <- hs.Serve(listener) }()

	select {
	case err := <-errc:
		return cmdutil.Fail(stderr, cmdutil.ExitRuntime, fmt.Errorf("http serve failed: %w", err))
	case <-parent.Done():
	}

	logger.Print("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := hs.Shutdown(ctx); err != nil {
		return cmdutil.Fail(stderr, cmdutil.ExitRuntime, err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return cmdutil.Fail(stderr, cmdutil.ExitRuntime, err)
	}
	return cmdutil.ExitOK
}

func examples(out io.Writer) {
	fmt.Fprintf(out, "  %s serve -i refs.index --bind :8080\n", clibase.Tool)
	fmt.Fprintf(out, "  curl -s localhost:8080/index\n")
	fmt.Fprintf(out, "  curl -s -H 'Content-Type: application/json' -d '{\"reads\":[{\"id\":\"r1\",\"seq\":\"ACGT...\"}]}' localhost:8080/search\n")
}

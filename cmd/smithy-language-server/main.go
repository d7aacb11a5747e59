// Command smithy-language-server starts a Language Server Protocol server
// for the Smithy interface definition language.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/smithy-lang/smithy-language-server/internal/app"
	"github.com/smithy-lang/smithy-language-server/internal/assembler"
	"github.com/smithy-lang/smithy-language-server/internal/format"
	"github.com/smithy-lang/smithy-language-server/internal/lsp"
	"github.com/smithy-lang/smithy-language-server/internal/project"
)

type flags struct {
	portNumber int
	logLevel   string
	logFormat  string
	formatPath string
}

func (f *flags) bind(flagSet *pflag.FlagSet) {
	flagSet.IntVarP(&f.portNumber, "port-number", "p", 0, "0 uses stdio for transport; any other value opens a TCP socket on localhost:<port>")
	flagSet.StringVar(&f.logLevel, "log-level", "info", "The log level [debug,info,warn,error].")
	flagSet.StringVar(&f.logFormat, "log-format", "text", "The log format [text,json].")
	flagSet.StringVar(&f.formatPath, "smithy-format-command", "", "External command used to format a document; empty disables formatting")
}

func main() {
	f := &flags{}
	flagSet := pflag.NewFlagSet("smithy-language-server", pflag.ContinueOnError)
	f.bind(flagSet)

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if args := flagSet.Args(); len(args) > 0 {
		port, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid port_number argument %q: %v\n", args[0], err)
			os.Exit(1)
		}
		f.portNumber = port
	}

	logger, err := app.NewLogger(os.Stderr, f.logLevel, f.logFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(f, logger); err != nil {
		logger.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
}

func run(f *flags, logger *zap.Logger) error {
	transport, err := dial(f, logger)
	if err != nil {
		return err
	}
	defer transport.Close()

	var formatter format.Formatter = format.Noop{}
	if f.formatPath != "" {
		formatter = format.NewExecFormatter(f.formatPath)
	}

	ctx := context.Background()
	conn := lsp.Serve(ctx, transport, assembler.Stub{}, project.NoopResolver{}, formatter, logger)
	<-conn.Done()
	return conn.Err()
}

// dial opens the transport named by the CLI surface in spec §6: stdio
// when the port is 0, a TCP socket on localhost:<port> otherwise.
func dial(f *flags, logger *zap.Logger) (ioTransport, error) {
	if f.portNumber == 0 {
		return stdioTransport{}, nil
	}

	addr := fmt.Sprintf("localhost:%d", f.portNumber)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	logger.Info("waiting for client connection", zap.String("addr", addr))

	conn, err := listener.Accept()
	listener.Close()
	if err != nil {
		return nil, fmt.Errorf("accepting connection on %s: %w", addr, err)
	}
	return conn, nil
}

type ioTransport interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}

type stdioTransport struct{}

func (stdioTransport) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioTransport) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioTransport) Close() error                { return nil }

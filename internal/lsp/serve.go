package lsp

import (
	"context"
	"io"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/smithy-lang/smithy-language-server/internal/assembler"
	"github.com/smithy-lang/smithy-language-server/internal/format"
	"github.com/smithy-lang/smithy-language-server/internal/project"
)

// Serve wires an Endpoint up to a jsonrpc2 connection over transport and
// runs it until the connection closes. Mirrors the shape of buf's LSP
// command entrypoint: build the collaborators, construct the server,
// bridge it onto the wire with go.lsp.dev/jsonrpc2 and go.lsp.dev/protocol,
// and hand the caller back the live connection to wait on.
func Serve(ctx context.Context, transport io.ReadWriteCloser, asm assembler.Assembler, resolver project.DependencyResolver, formatter format.Formatter, logger *zap.Logger) jsonrpc2.Conn {
	endpoint := NewEndpoint(asm, resolver, formatter, logger)

	stream := jsonrpc2.NewStream(transport)
	conn := jsonrpc2.NewConn(stream)

	client := protocol.ClientDispatcher(conn, logger.Named("client"))
	endpoint.SetClient(client)

	conn.Go(ctx, protocol.ServerHandler(endpoint, jsonrpc2.MethodNotFoundHandler))
	return conn
}

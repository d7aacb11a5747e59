package lsp

import (
	"context"

	"github.com/google/uuid"
	"go.lsp.dev/protocol"
)

// progress reports a server-initiated or client-requested work-done
// progress notification. A nil *progress is safe to call methods on: it
// silently does nothing, which is what a client that didn't ask for
// progress reporting wants.
type progress struct {
	client protocol.Client
	token  string
}

// newProgressFromClient builds a progress tracker from a request's
// WorkDoneProgressParams, or returns nil if the client didn't supply a
// token (meaning it doesn't want progress reporting for this request).
func newProgressFromClient(client protocol.Client, params *protocol.WorkDoneProgressParams) *progress {
	if params == nil || params.WorkDoneToken == nil {
		return nil
	}
	return &progress{client: client, token: params.WorkDoneToken.String()}
}

// newServerProgress creates progress for a server-initiated long-running
// operation (one the client didn't ask to track via a request token).
func newServerProgress(client protocol.Client) *progress {
	return &progress{client: client, token: uuid.NewString()}
}

func (p *progress) Begin(ctx context.Context, title string) {
	if p == nil {
		return
	}
	_ = p.client.Progress(ctx, &protocol.ProgressParams{
		Token: *protocol.NewProgressToken(p.token),
		Value: &protocol.WorkDoneProgressBegin{Kind: protocol.WorkDoneProgressKindBegin, Title: title},
	})
}

func (p *progress) Done(ctx context.Context) {
	if p == nil {
		return
	}
	_ = p.client.Progress(ctx, &protocol.ProgressParams{
		Token: *protocol.NewProgressToken(p.token),
		Value: &protocol.WorkDoneProgressEnd{Kind: protocol.WorkDoneProgressKindEnd},
	})
}

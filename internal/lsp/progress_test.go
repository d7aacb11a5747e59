package lsp

import (
	"context"
	"testing"
)

func TestNilProgressIsSafeToUse(t *testing.T) {
	var p *progress
	p.Begin(context.Background(), "reloading")
	p.Done(context.Background())
}

func TestNewProgressFromClientWithNoTokenReturnsNil(t *testing.T) {
	if got := newProgressFromClient(nil, nil); got != nil {
		t.Fatalf("expected nil progress when params is nil, got %v", got)
	}
}

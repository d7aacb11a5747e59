// Package lsp implements the language server's request routing: ServerState
// (project lifecycle and URI routing), WorkspaceChanges (file-event
// matching), FilePatterns/ScanForProjectRoots (glob-based discovery),
// FileTasks (per-URI cancellable task registry), and Endpoint (the
// go.lsp.dev/protocol.Server implementation), per spec §4.6-§4.9.
package lsp

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// FileTasks is a per-URI registry of running asynchronous tasks with
// cooperative cancellation. At most one task is "current" per URI;
// replacing it cancels the prior one. Modeled on the generation-counter
// idea in buflsp's mutex.go (there: nextRequestID, to tag which goroutine
// holds a reentrant lock; here: which generation of a URI's task is
// current), generalized from a lock primitive to a task supersession
// primitive: each Put/PutOrCompose bumps gen, and Generation lets a caller
// (tests, diagnostics) observe which generation is presently live for a
// URI without reaching into the task map itself.
type FileTasks struct {
	mu    sync.Mutex
	tasks map[string]*fileTask
	wg    sync.WaitGroup
	gen   atomic.Uint64
}

type fileTask struct {
	cancel context.CancelFunc
	done   chan struct{}
	gen    uint64
}

// NewFileTasks creates an empty registry.
func NewFileTasks() *FileTasks {
	return &FileTasks{tasks: map[string]*fileTask{}}
}

// Generation returns the generation number of the task currently
// registered for uri, and whether one is registered at all. Generations
// are assigned in increasing order across the whole registry, not per URI,
// so comparing two URIs' generations also tells you which was scheduled
// more recently.
func (ft *FileTasks) Generation(uri string) (uint64, bool) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	t, ok := ft.tasks[uri]
	if !ok {
		return 0, false
	}
	return t.gen, true
}

// Cancel cancels the current task for uri, if any.
func (ft *FileTasks) Cancel(uri string) {
	ft.mu.Lock()
	t, ok := ft.tasks[uri]
	if ok {
		delete(ft.tasks, uri)
	}
	ft.mu.Unlock()
	if ok {
		t.cancel()
	}
}

// CancelAll cancels every current task across every URI.
func (ft *FileTasks) CancelAll() {
	ft.mu.Lock()
	tasks := make([]*fileTask, 0, len(ft.tasks))
	for uri, t := range ft.tasks {
		tasks = append(tasks, t)
		delete(ft.tasks, uri)
	}
	ft.mu.Unlock()
	for _, t := range tasks {
		t.cancel()
	}
}

// Put registers fn as the current task for uri, cancelling and replacing
// whatever task was previously current for that URI. fn is run on its own
// goroutine with a context derived from ctx; it must return promptly after
// ctx is cancelled and must not publish results if it observes cancellation.
func (ft *FileTasks) Put(ctx context.Context, uri string, fn func(context.Context)) {
	ft.replace(ctx, uri, fn)
}

// PutOrCompose schedules fn to run after any task currently registered for
// uri finishes (successfully or via cancellation), without cancelling that
// prior task. This is used to chain a diagnostics-publish task behind an
// update-without-validating task for the same edit.
func (ft *FileTasks) PutOrCompose(ctx context.Context, uri string, fn func(context.Context)) {
	ft.mu.Lock()
	prev, ok := ft.tasks[uri]
	ft.mu.Unlock()

	if !ok {
		ft.replace(ctx, uri, fn)
		return
	}

	ft.wg.Add(1)
	go func() {
		defer ft.wg.Done()
		select {
		case <-prev.done:
		case <-ctx.Done():
			return
		}
		ft.replace(ctx, uri, fn)
	}()
}

func (ft *FileTasks) replace(ctx context.Context, uri string, fn func(context.Context)) {
	taskCtx, cancel := context.WithCancel(ctx)
	t := &fileTask{cancel: cancel, done: make(chan struct{}), gen: ft.gen.Inc()}

	ft.mu.Lock()
	if prev, ok := ft.tasks[uri]; ok {
		prev.cancel()
	}
	ft.tasks[uri] = t
	ft.mu.Unlock()

	ft.wg.Add(1)
	go func() {
		defer ft.wg.Done()
		defer close(t.done)
		fn(taskCtx)

		ft.mu.Lock()
		if ft.tasks[uri] == t {
			delete(ft.tasks, uri)
		}
		ft.mu.Unlock()
	}()
}

// WaitAll blocks until every task started by Put/PutOrCompose has returned.
// Used during shutdown.
func (ft *FileTasks) WaitAll() {
	ft.wg.Wait()
}

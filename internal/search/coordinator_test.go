package search

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/five82/bookshelf/internal/catalog"
	"github.com/five82/bookshelf/internal/state"
)

type fakeFetcher struct {
	mu      sync.Mutex
	queries []string
	handle  func(ctx context.Context, query string) (*catalog.Response, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context, query string) (*catalog.Response, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	handle := f.handle
	f.mu.Unlock()
	if handle == nil {
		return responseFor(query), nil
	}
	return handle(ctx, query)
}

func (f *fakeFetcher) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func responseFor(id string) *catalog.Response {
	raw := []byte(`{"kind":"books#volumes","totalItems":1,"items":[{"id":"` + id + `"}]}`)
	resp, err := catalog.Normalize(raw)
	if err != nil {
		panic(err)
	}
	return &resp
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCoordinator(f *fakeFetcher, opts ...Option) *Coordinator {
	return New(f, append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func TestNew_PrimingWithEmptyTermStaysIdle(t *testing.T) {
	f := &fakeFetcher{}
	c := newTestCoordinator(f)

	if _, ok := c.State().(state.Idle); !ok {
		t.Fatalf("State = %T, want Idle", c.State())
	}
	if len(f.Queries()) != 0 {
		t.Fatalf("queries = %v, want none", f.Queries())
	}
	if c.Filter() != catalog.FilterTitle {
		t.Fatalf("Filter = %v, want title", c.Filter())
	}
}

func TestSearch_EmptyTermIsNoOp(t *testing.T) {
	f := &fakeFetcher{}
	c := newTestCoordinator(f)

	c.UpdateInput("dune")
	c.Search(context.Background())
	before := c.Snapshot()

	c.ClearInput()
	got := c.Search(context.Background())

	if len(f.Queries()) != 1 {
		t.Fatalf("queries = %v, want only the first search", f.Queries())
	}
	after := c.Snapshot()
	if after.Generation != before.Generation {
		t.Fatalf("Generation = %d, want unchanged %d", after.Generation, before.Generation)
	}
	if _, ok := got.(state.Success); !ok {
		t.Fatalf("Search returned %T, want unchanged Success", got)
	}
}

func TestSearch_IssuesFilterQueryAndSucceeds(t *testing.T) {
	f := &fakeFetcher{}
	c := newTestCoordinator(f)
	c.UpdateInput("dune")
	c.UpdateFilter(catalog.FilterTitle)

	got := c.Search(context.Background())

	if q := f.Queries(); len(q) != 1 || q[0] != "title:dune" {
		t.Fatalf("queries = %v, want [title:dune]", q)
	}
	success, ok := got.(state.Success)
	if !ok {
		t.Fatalf("State = %T, want Success", got)
	}
	if success.Response.Entries[0].ID != "title:dune" {
		t.Fatalf("Success entries = %#v, want normalized fake response", success.Response.Entries)
	}
	if success.Response.Entries[0].Volume.Title != catalog.DefaultTitle {
		t.Fatalf("Title = %q, want normalized default", success.Response.Entries[0].Volume.Title)
	}
	if success.Request != (catalog.Request{Term: "dune", Filter: catalog.FilterTitle}) {
		t.Fatalf("Request = %#v", success.Request)
	}
}

func TestSearch_IsLoadingWhileFetching(t *testing.T) {
	var c *Coordinator
	var during state.Lifecycle
	f := &fakeFetcher{}
	f.handle = func(ctx context.Context, query string) (*catalog.Response, error) {
		during = c.State()
		return responseFor("x"), nil
	}
	c = newTestCoordinator(f)
	c.UpdateInput("dune")
	c.Search(context.Background())

	loading, ok := during.(state.Loading)
	if !ok {
		t.Fatalf("State during fetch = %T, want Loading", during)
	}
	if loading.Request.Query() != "title:dune" {
		t.Fatalf("Loading request = %q, want title:dune", loading.Request.Query())
	}
}

func TestSearch_FilterThenInputBuildsQuery(t *testing.T) {
	f := &fakeFetcher{}
	c := newTestCoordinator(f)

	c.UpdateFilter(catalog.FilterISBN)
	c.UpdateInput("9780140328721")
	if len(f.Queries()) != 0 {
		t.Fatalf("updates triggered fetch: %v", f.Queries())
	}
	c.Search(context.Background())

	if q := f.Queries(); len(q) != 1 || q[0] != "isbn:9780140328721" {
		t.Fatalf("queries = %v, want [isbn:9780140328721]", q)
	}
}

func TestRetry_AfterTransportFailureSucceeds(t *testing.T) {
	fail := true
	f := &fakeFetcher{}
	f.handle = func(ctx context.Context, query string) (*catalog.Response, error) {
		if fail {
			return nil, &catalog.TransportError{Op: "execute request", Err: errors.New("connection refused")}
		}
		return responseFor(query), nil
	}
	c := newTestCoordinator(f, WithFilter(catalog.FilterAuthor))
	c.UpdateInput("herbert")

	got := c.Search(context.Background())
	failure, ok := got.(state.Failure)
	if !ok {
		t.Fatalf("State = %T, want Failure", got)
	}
	if failure.Kind != catalog.KindTransport {
		t.Fatalf("Failure.Kind = %v, want transport", failure.Kind)
	}

	fail = false
	got = c.Retry(context.Background())
	if _, ok := got.(state.Success); !ok {
		t.Fatalf("State after Retry = %T, want Success", got)
	}
	q := f.Queries()
	if len(q) != 2 || q[0] != "author:herbert" || q[1] != "author:herbert" {
		t.Fatalf("queries = %v, want the same query twice", q)
	}
}

func TestRetry_AllowedFromSuccess(t *testing.T) {
	f := &fakeFetcher{}
	c := newTestCoordinator(f)
	c.UpdateInput("dune")
	c.Search(context.Background())
	first := c.Snapshot().Generation

	c.Retry(context.Background())
	if c.Snapshot().Generation != first+1 {
		t.Fatalf("Generation = %d, want %d", c.Snapshot().Generation, first+1)
	}
	if len(f.Queries()) != 2 {
		t.Fatalf("queries = %v, want 2", f.Queries())
	}
}

func TestSearch_FailureKindsCollapseToFailure(t *testing.T) {
	errs := []error{
		&catalog.TransportError{Op: "execute request", Err: errors.New("boom")},
		&catalog.HTTPStatusError{URL: "/volumes", StatusCode: 500},
		&catalog.DecodeError{Reason: "item 0 has no id"},
	}
	for _, want := range errs {
		f := &fakeFetcher{}
		f.handle = func(ctx context.Context, query string) (*catalog.Response, error) {
			return nil, want
		}
		c := newTestCoordinator(f)
		c.UpdateInput("x")
		got := c.Search(context.Background())
		failure, ok := got.(state.Failure)
		if !ok {
			t.Fatalf("State = %T for %v, want Failure", got, want)
		}
		if !errors.Is(failure.Err, want) || failure.Kind != catalog.KindOf(want) {
			t.Fatalf("Failure = %#v, want %v", failure, want)
		}
	}
}

func TestSearch_LastInvocationWins(t *testing.T) {
	startedA := make(chan struct{})
	releaseA := make(chan struct{})
	f := &fakeFetcher{}
	f.handle = func(ctx context.Context, query string) (*catalog.Response, error) {
		if query == "title:a" {
			close(startedA)
			<-releaseA
			return responseFor("a"), nil
		}
		return responseFor("b"), nil
	}
	c := newTestCoordinator(f)

	c.UpdateInput("a")
	done := make(chan state.Lifecycle, 1)
	go func() { done <- c.Search(context.Background()) }()
	<-startedA

	c.UpdateInput("b")
	if _, ok := c.Search(context.Background()).(state.Success); !ok {
		t.Fatalf("second search did not succeed")
	}

	close(releaseA)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("first search never returned")
	}

	success, ok := c.State().(state.Success)
	if !ok {
		t.Fatalf("State = %T, want Success", c.State())
	}
	if success.Request.Term != "b" || success.Response.Entries[0].ID != "b" {
		t.Fatalf("State reflects %q/%q, want b", success.Request.Term, success.Response.Entries[0].ID)
	}
}

func TestSearch_SupersededCallIsCancelled(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})
	f := &fakeFetcher{}
	f.handle = func(ctx context.Context, query string) (*catalog.Response, error) {
		if query == "title:slow" {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return nil, &catalog.TransportError{Op: "execute request", Err: ctx.Err()}
		}
		return responseFor("fast"), nil
	}
	c := newTestCoordinator(f)

	c.UpdateInput("slow")
	go c.Search(context.Background())
	<-started

	c.UpdateInput("fast")
	c.Search(context.Background())

	select {
	case <-cancelled:
	case <-time.After(2 * time.Second):
		t.Fatalf("superseded search was not cancelled")
	}
	if _, ok := c.State().(state.Success); !ok {
		t.Fatalf("State = %T, want Success from the later search", c.State())
	}
}

func TestSubscribe_SeesLoadingThenResult(t *testing.T) {
	release := make(chan struct{})
	f := &fakeFetcher{handle: func(ctx context.Context, query string) (*catalog.Response, error) {
		<-release
		return responseFor(query), nil
	}}
	c := newTestCoordinator(f)
	ch, unsubscribe := c.Subscribe()
	defer unsubscribe()

	c.UpdateInput("dune")
	done := make(chan state.Lifecycle, 1)
	go func() { done <- c.Search(context.Background()) }()

	select {
	case snap := <-ch:
		loading, ok := snap.State.(state.Loading)
		if !ok {
			t.Fatalf("first notification = %T, want Loading", snap.State)
		}
		if loading.Request.Query() != "title:dune" {
			t.Fatalf("Loading query = %q, want title:dune", loading.Request.Query())
		}
	case <-time.After(time.Second):
		t.Fatalf("no Loading notification")
	}

	close(release)
	<-done

	select {
	case snap := <-ch:
		if _, ok := snap.State.(state.Success); !ok {
			t.Fatalf("second notification = %T, want Success", snap.State)
		}
	case <-time.After(time.Second):
		t.Fatalf("no result notification")
	}
}

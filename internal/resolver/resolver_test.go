package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletbot/internal/references"
	"github.com/tabletbot/internal/store"
)

type fakeTracker struct {
	remaining    int
	remainingErr error
	pulls        map[string]*github.PullRequest
	issues       map[string]*github.Issue

	lookups []string
}

func key(owner, repo string, number int) string {
	return fmt.Sprintf("%s/%s#%d", owner, repo, number)
}

func (f *fakeTracker) Issue(_ context.Context, owner, repo string, number int) (*github.Issue, error) {
	f.lookups = append(f.lookups, "issue:"+key(owner, repo, number))
	if issue, ok := f.issues[key(owner, repo, number)]; ok {
		return issue, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeTracker) PullRequest(_ context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	f.lookups = append(f.lookups, "pull:"+key(owner, repo, number))
	if pr, ok := f.pulls[key(owner, repo, number)]; ok {
		return pr, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeTracker) Remaining(context.Context) (int, error) {
	return f.remaining, f.remainingErr
}

type fakeAliases map[string]store.Repository

func (f fakeAliases) Repository(key string) (store.Repository, bool) {
	r, ok := f[key]
	return r, ok
}

type fakeFiles struct {
	content string
	ok      bool
	fetches int
}

func (f *fakeFiles) Fetch(context.Context, string, string, string, string) (string, bool) {
	f.fetches++
	return f.content, f.ok
}

var defaultRepo = store.Repository{Owner: "OpenTabletDriver", Name: "OpenTabletDriver"}

func issueRef(alias string, number int) references.Reference {
	return references.Reference{Kind: references.KindIssue, Issue: references.IssueRef{Alias: alias, Number: number}}
}

func fileRef(start, end int) references.Reference {
	return references.Reference{Kind: references.KindFile, File: references.FileRef{
		Owner: "acme", Repo: "widgets", Ref: "main", Path: "src/lib.rs", Start: start, End: end,
	}}
}

func TestResolvePrefersPullRequest(t *testing.T) {
	tracker := &fakeTracker{
		remaining: 100,
		pulls:     map[string]*github.PullRequest{key("OpenTabletDriver", "OpenTabletDriver", 42): {Number: github.Ptr(42)}},
		issues:    map[string]*github.Issue{key("OpenTabletDriver", "OpenTabletDriver", 42): {Number: github.Ptr(42)}},
	}
	r := New(tracker, &fakeFiles{}, fakeAliases{}, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{issueRef("", 42)})

	require.Len(t, items, 1)
	assert.Equal(t, ItemPullRequest, items[0].Kind)
	assert.Equal(t, []string{"pull:OpenTabletDriver/OpenTabletDriver#42"}, tracker.lookups)
}

func TestResolveFallsBackToIssue(t *testing.T) {
	tracker := &fakeTracker{
		remaining: 100,
		issues:    map[string]*github.Issue{key("OpenTabletDriver", "OpenTabletDriver", 7): {Number: github.Ptr(7)}},
	}
	r := New(tracker, &fakeFiles{}, fakeAliases{}, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{issueRef("", 7)})

	require.Len(t, items, 1)
	assert.Equal(t, ItemIssue, items[0].Kind)
}

func TestResolveSkipsBelowReserve(t *testing.T) {
	tracker := &fakeTracker{remaining: 1}
	r := New(tracker, &fakeFiles{}, fakeAliases{}, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{issueRef("", 42)})

	assert.Empty(t, items)
	assert.Empty(t, tracker.lookups, "no lookup may be issued below the reserve")
	assert.Equal(t, 1, r.LastRemaining())
}

func TestResolveSkipsOnQuotaError(t *testing.T) {
	tracker := &fakeTracker{remainingErr: errors.New("boom")}
	r := New(tracker, &fakeFiles{}, fakeAliases{}, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{issueRef("", 42)})

	assert.Empty(t, items)
	assert.Empty(t, tracker.lookups)
}

func TestResolveAliasRedirects(t *testing.T) {
	tracker := &fakeTracker{
		remaining: 100,
		issues:    map[string]*github.Issue{key("acme", "widgets", 7): {Number: github.Ptr(7)}},
	}
	aliases := fakeAliases{"foo": {Owner: "acme", Name: "widgets"}}
	r := New(tracker, &fakeFiles{}, aliases, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{issueRef("foo", 7)})

	require.Len(t, items, 1)
	assert.Equal(t, ItemIssue, items[0].Kind)
}

func TestResolveUnknownAliasDiscards(t *testing.T) {
	tracker := &fakeTracker{remaining: 100}
	r := New(tracker, &fakeFiles{}, fakeAliases{}, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{issueRef("nosuch", 7)})

	assert.Empty(t, items)
	assert.Empty(t, tracker.lookups, "unknown alias must not fall back to the default repository")
}

func TestResolveFailureDoesNotAbortRemaining(t *testing.T) {
	tracker := &fakeTracker{
		remaining: 100,
		issues:    map[string]*github.Issue{key("OpenTabletDriver", "OpenTabletDriver", 2): {Number: github.Ptr(2)}},
	}
	r := New(tracker, &fakeFiles{}, fakeAliases{}, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{issueRef("", 1), issueRef("", 2)})

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Issue.GetNumber())
}

func TestResolveFileRange(t *testing.T) {
	files := &fakeFiles{content: "l1\n  l2\n    l3\n  l4\nl5", ok: true}
	r := New(&fakeTracker{}, files, fakeAliases{}, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{fileRef(2, 4)})

	require.Len(t, items, 1)
	require.Equal(t, ItemExcerpt, items[0].Kind)
	assert.Equal(t, "l2\n  l3\nl4", items[0].Excerpt.Content)
	assert.Equal(t, "src/lib.rs", items[0].Excerpt.Path)
}

func TestResolveFileSingleLine(t *testing.T) {
	files := &fakeFiles{content: "first\n\tindented\nlast", ok: true}
	r := New(&fakeTracker{}, files, fakeAliases{}, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{fileRef(2, 0)})

	require.Len(t, items, 1)
	assert.Equal(t, "indented", items[0].Excerpt.Content)
}

func TestResolveFileInvertedRange(t *testing.T) {
	files := &fakeFiles{content: "a\nb\nc", ok: true}
	r := New(&fakeTracker{}, files, fakeAliases{}, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{fileRef(3, 2), fileRef(2, 2)})

	assert.Empty(t, items)
	assert.Zero(t, files.fetches, "an inverted range must not trigger a fetch")
}

func TestResolveFileStartBeyondEOF(t *testing.T) {
	files := &fakeFiles{content: "only line", ok: true}
	r := New(&fakeTracker{}, files, fakeAliases{}, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{fileRef(10, 0)})

	assert.Empty(t, items)
}

func TestResolveFileFetchFailure(t *testing.T) {
	r := New(&fakeTracker{}, &fakeFiles{ok: false}, fakeAliases{}, defaultRepo, 2)

	items := r.Resolve(context.Background(), []references.Reference{fileRef(1, 2)})

	assert.Empty(t, items)
}

func TestRawClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/acme/widgets/main/src/lib.rs" {
			fmt.Fprint(w, "content")
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewRawClientWithBase(srv.URL)

	body, ok := c.Fetch(context.Background(), "acme", "widgets", "main", "src/lib.rs")
	require.True(t, ok)
	assert.Equal(t, "content", body)

	_, ok = c.Fetch(context.Background(), "acme", "widgets", "main", "missing.rs")
	assert.False(t, ok)
}

func TestRawClientFetchFailureIsSingleAttempt(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewRawClientWithBase(srv.URL)

	_, ok := c.Fetch(context.Background(), "acme", "widgets", "main", "src/lib.rs")

	assert.False(t, ok)
	assert.Equal(t, 1, requests)
}

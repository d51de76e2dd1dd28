// Package resolver turns extracted references into displayable content.
// Every failure mode (unknown alias, exhausted quota, not-found, transport
// error) collapses to "no content for this reference": the reference is
// skipped and processing of the remaining references continues. This is a
// deliberate best-effort policy, not a place to add retries.
package resolver

import (
	"context"
	"strings"
	"sync/atomic"
	"unicode"

	"github.com/google/go-github/v68/github"
	"github.com/rs/zerolog/log"

	"github.com/tabletbot/internal/format"
	"github.com/tabletbot/internal/references"
	"github.com/tabletbot/internal/store"
)

// ItemKind discriminates the Item union.
type ItemKind int

const (
	ItemIssue ItemKind = iota
	ItemPullRequest
	ItemExcerpt
)

// Item is one resolved reference. Exactly one of the payload fields is set,
// matching Kind. Rendering happens in one exhaustive switch in the compose
// package.
type Item struct {
	Kind        ItemKind
	Issue       *github.Issue
	PullRequest *github.PullRequest
	Excerpt     *FileExcerpt
}

// FileExcerpt is the fetched, indent-trimmed slice of a source file.
type FileExcerpt struct {
	Path    string
	Ref     string
	Content string
}

// Tracker is the remote issue tracker the resolver queries. The production
// implementation wraps the GitHub API client.
type Tracker interface {
	Issue(ctx context.Context, owner, repo string, number int) (*github.Issue, error)
	PullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)
	Remaining(ctx context.Context) (int, error)
}

// AliasSource resolves alias keys to repositories. Satisfied by
// store.Store.
type AliasSource interface {
	Repository(key string) (store.Repository, bool)
}

// FileFetcher fetches raw file content by owner/repo/ref/path.
type FileFetcher interface {
	Fetch(ctx context.Context, owner, repo, ref, path string) (string, bool)
}

// Resolver resolves references against the default repository and any
// alias-mapped repositories, under the rate guard.
type Resolver struct {
	tracker Tracker
	files   FileFetcher
	aliases AliasSource
	repo    store.Repository
	reserve int

	lastRemaining atomic.Int64
}

// New builds a Resolver. reserve is the remaining-quota floor below which
// issue and PR lookups are skipped.
func New(tracker Tracker, files FileFetcher, aliases AliasSource, defaultRepo store.Repository, reserve int) *Resolver {
	r := &Resolver{
		tracker: tracker,
		files:   files,
		aliases: aliases,
		repo:    defaultRepo,
		reserve: reserve,
	}
	r.lastRemaining.Store(-1)
	return r
}

// Resolve fetches content for each reference, preserving the order in
// which the references were matched. References that yield no content are
// dropped.
func (r *Resolver) Resolve(ctx context.Context, refs []references.Reference) []Item {
	items := make([]Item, 0, len(refs))
	for _, ref := range refs {
		switch ref.Kind {
		case references.KindIssue:
			if item, ok := r.resolveIssue(ctx, ref.Issue); ok {
				items = append(items, item)
			}
		case references.KindFile:
			if item, ok := r.resolveFile(ctx, ref.File); ok {
				items = append(items, item)
			}
		}
	}
	return items
}

// LastRemaining reports the most recently observed remaining quota, or -1
// before the first poll.
func (r *Resolver) LastRemaining() int {
	return int(r.lastRemaining.Load())
}

func (r *Resolver) resolveIssue(ctx context.Context, ref references.IssueRef) (Item, bool) {
	repo := r.repo
	if ref.Alias != "" {
		aliased, ok := r.aliases.Repository(ref.Alias)
		if !ok {
			// An alias that matches no repository discards the
			// reference outright; falling back to the default
			// repository would resolve against the wrong project.
			log.Debug().Str("alias", ref.Alias).Int("number", ref.Number).
				Msg("discarding reference with unknown alias")
			return Item{}, false
		}
		repo = aliased
	}

	remaining, err := r.tracker.Remaining(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to query rate limit, skipping lookup")
		return Item{}, false
	}
	r.lastRemaining.Store(int64(remaining))

	if remaining <= r.reserve {
		log.Info().Int("remaining", remaining).Int("reserve", r.reserve).
			Msg("rate budget below reserve, skipping lookup")
		return Item{}, false
	}

	// A pull request also answers to its issue number; prefer the richer
	// representation and fall back to the issue lookup. The same order
	// applies on the alias path.
	if pr, err := r.tracker.PullRequest(ctx, repo.Owner, repo.Name, ref.Number); err == nil {
		return Item{Kind: ItemPullRequest, PullRequest: pr}, true
	}
	if issue, err := r.tracker.Issue(ctx, repo.Owner, repo.Name, ref.Number); err == nil {
		return Item{Kind: ItemIssue, Issue: issue}, true
	}

	log.Debug().Str("repo", repo.String()).Int("number", ref.Number).
		Msg("reference resolved to neither pull request nor issue")
	return Item{}, false
}

func (r *Resolver) resolveFile(ctx context.Context, ref references.FileRef) (Item, bool) {
	if ref.End != 0 && ref.End <= ref.Start {
		return Item{}, false
	}

	content, ok := r.files.Fetch(ctx, ref.Owner, ref.Repo, ref.Ref, ref.Path)
	if !ok {
		return Item{}, false
	}

	lines := strings.Split(content, "\n")
	start := ref.Start - 1
	if start < 0 || start >= len(lines) {
		return Item{}, false
	}

	var excerpt string
	if ref.End == 0 {
		excerpt = strings.TrimLeftFunc(lines[start], unicode.IsSpace)
	} else {
		end := ref.End
		if end > len(lines) {
			end = len(lines)
		}
		if end <= start {
			return Item{}, false
		}
		excerpt = format.TrimIndent(lines[start:end])
	}

	return Item{Kind: ItemExcerpt, Excerpt: &FileExcerpt{
		Path:    ref.Path,
		Ref:     ref.Ref,
		Content: excerpt,
	}}, true
}

package compose

import (
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabletbot/internal/resolver"
)

func ts() *github.Timestamp {
	return &github.Timestamp{Time: time.Now()}
}

func TestRenderIssue(t *testing.T) {
	issue := &github.Issue{
		Number:  github.Ptr(42),
		Title:   github.Ptr("Pen pressure broken"),
		Body:    github.Ptr("details"),
		HTMLURL: github.Ptr("https://github.com/acme/widgets/issues/42"),
		User:    &github.User{Login: github.Ptr("alice")},
		Labels:  []*github.Label{{Name: github.Ptr("bug")}, {Name: github.Ptr("linux")}},
	}

	embed := Render(resolver.Item{Kind: resolver.ItemIssue, Issue: issue})

	assert.Equal(t, "#42: Pen pressure broken", embed.Title)
	assert.Equal(t, "details", embed.Description)
	assert.Equal(t, ColourOpen, embed.Color)
	assert.Equal(t, "alice", embed.Author.Name)
	require.Len(t, embed.Fields, 1)
	assert.Equal(t, "`bug`, `linux`", embed.Fields[0].Value)
}

func TestRenderClosedIssue(t *testing.T) {
	issue := &github.Issue{Number: github.Ptr(1), Title: github.Ptr("t"), ClosedAt: ts()}

	embed := Render(resolver.Item{Kind: resolver.ItemIssue, Issue: issue})

	assert.Equal(t, ColourClosed, embed.Color)
}

func TestRenderPullRequestColours(t *testing.T) {
	open := &github.PullRequest{Number: github.Ptr(1), Title: github.Ptr("t")}
	closed := &github.PullRequest{Number: github.Ptr(2), Title: github.Ptr("t"), ClosedAt: ts()}
	merged := &github.PullRequest{Number: github.Ptr(3), Title: github.Ptr("t"), ClosedAt: ts(), MergedAt: ts()}

	assert.Equal(t, ColourOpen, Render(resolver.Item{Kind: resolver.ItemPullRequest, PullRequest: open}).Color)
	assert.Equal(t, ColourClosed, Render(resolver.Item{Kind: resolver.ItemPullRequest, PullRequest: closed}).Color)
	assert.Equal(t, ColourMerged, Render(resolver.Item{Kind: resolver.ItemPullRequest, PullRequest: merged}).Color)
}

func TestRenderExcerpt(t *testing.T) {
	item := resolver.Item{Kind: resolver.ItemExcerpt, Excerpt: &resolver.FileExcerpt{
		Path:    "src/lib.rs",
		Ref:     "main",
		Content: "fn main() {}",
	}}

	embed := Render(item)

	assert.Equal(t, "src/lib.rs", embed.Title)
	assert.Equal(t, "```rs\nfn main() {}\n```", embed.Description)
	assert.Equal(t, ColourAccent, embed.Color)
}

func TestReplyEmptyIsNil(t *testing.T) {
	assert.Nil(t, Reply(nil))
}

func TestReplyCapsEmbeds(t *testing.T) {
	items := make([]resolver.Item, MaxEmbeds+5)
	for i := range items {
		items[i] = resolver.Item{Kind: resolver.ItemExcerpt, Excerpt: &resolver.FileExcerpt{Path: "a.go", Content: "x"}}
	}

	assert.Len(t, Reply(items), MaxEmbeds)
}

func TestTracked(t *testing.T) {
	excerpt := resolver.Item{Kind: resolver.ItemExcerpt, Excerpt: &resolver.FileExcerpt{}}
	issue := resolver.Item{Kind: resolver.ItemIssue, Issue: &github.Issue{}}

	assert.False(t, Tracked([]resolver.Item{excerpt}))
	assert.True(t, Tracked([]resolver.Item{excerpt, issue}))
}

func TestChunkFields(t *testing.T) {
	fields := make([]*discordgo.MessageEmbedField, 60)
	for i := range fields {
		fields[i] = &discordgo.MessageEmbedField{Name: fmt.Sprintf("f%d", i)}
	}

	pages := ChunkFields(fields, PageSize)

	require.Len(t, pages, 3)
	assert.Len(t, pages[0], 25)
	assert.Len(t, pages[2], 10)
}

func TestChunkFieldsEmpty(t *testing.T) {
	assert.Nil(t, ChunkFields(nil, PageSize))
}

// Package compose renders resolved items into Discord embeds and assembles
// outbound replies.
package compose

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/go-github/v68/github"

	"github.com/tabletbot/internal/format"
	"github.com/tabletbot/internal/resolver"
)

// Embed colours, matching GitHub's open/merged/closed palette.
const (
	ColourOpen   = 0x238636
	ColourMerged = 0x8957e5
	ColourClosed = 0xda3633
	ColourAccent = 0x8957e5
	ColourOK     = 0x2ecc71
	ColourError  = 0xe74c3c
	ColourList   = 0x1abc9c
)

const (
	// MaxEmbeds is Discord's per-message embed limit.
	MaxEmbeds = 10
	// PageSize is Discord's per-embed field limit, used as the page size
	// for paginated lists.
	PageSize = 25
)

// Render turns one resolved item into an embed. The switch is exhaustive
// over resolver.ItemKind.
func Render(item resolver.Item) *discordgo.MessageEmbed {
	switch item.Kind {
	case resolver.ItemIssue:
		return issueEmbed(item.Issue)
	case resolver.ItemPullRequest:
		return pullEmbed(item.PullRequest)
	case resolver.ItemExcerpt:
		return excerptEmbed(item.Excerpt)
	}
	return nil
}

// Reply renders items in order, bounded by the platform embed limit.
// An empty input yields nil: extraction having found candidates does not
// guarantee a visible reply.
func Reply(items []resolver.Item) []*discordgo.MessageEmbed {
	if len(items) > MaxEmbeds {
		items = items[:MaxEmbeds]
	}
	embeds := make([]*discordgo.MessageEmbed, 0, len(items))
	for _, item := range items {
		if e := Render(item); e != nil {
			embeds = append(embeds, e)
		}
	}
	if len(embeds) == 0 {
		return nil
	}
	return embeds
}

// Tracked reports whether any item is an issue or pull request. Only
// replies carrying tracker content get the delete/hide-body controls.
func Tracked(items []resolver.Item) bool {
	for _, item := range items {
		if item.Kind == resolver.ItemIssue || item.Kind == resolver.ItemPullRequest {
			return true
		}
	}
	return false
}

func issueEmbed(issue *github.Issue) *discordgo.MessageEmbed {
	colour := ColourOpen
	if issue.ClosedAt != nil {
		colour = ColourClosed
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("#%d: %s", issue.GetNumber(), issue.GetTitle()),
		Description: format.Description(issue.GetBody()),
		URL:         issue.GetHTMLURL(),
		Color:       colour,
	}
	if user := issue.GetUser(); user != nil {
		embed.Author = embedAuthor(user)
	}
	if m := issue.GetMilestone(); m != nil {
		embed.Fields = append(embed.Fields, inlineField("Milestone", m.GetTitle()))
	}
	if labels := labelList(issue.Labels); labels != "" {
		embed.Fields = append(embed.Fields, inlineField("Labels", labels))
	}
	return embed
}

func pullEmbed(pr *github.PullRequest) *discordgo.MessageEmbed {
	colour := ColourOpen
	if pr.ClosedAt != nil {
		if pr.MergedAt != nil {
			colour = ColourMerged
		} else {
			colour = ColourClosed
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("#%d: %s", pr.GetNumber(), pr.GetTitle()),
		Description: format.Description(pr.GetBody()),
		URL:         pr.GetHTMLURL(),
		Color:       colour,
	}
	if user := pr.GetUser(); user != nil {
		embed.Author = embedAuthor(user)
	}
	if m := pr.GetMilestone(); m != nil {
		embed.Fields = append(embed.Fields, inlineField("Milestone", m.GetTitle()))
	}
	if labels := labelList(pr.Labels); labels != "" {
		embed.Fields = append(embed.Fields, inlineField("Labels", labels))
	}
	return embed
}

func excerptEmbed(e *resolver.FileExcerpt) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       e.Path,
		Description: format.CodeBlock(format.Extension(e.Path), e.Content),
		Color:       ColourAccent,
	}
}

func embedAuthor(user *github.User) *discordgo.MessageEmbedAuthor {
	return &discordgo.MessageEmbedAuthor{
		Name:    user.GetLogin(),
		URL:     user.GetHTMLURL(),
		IconURL: user.GetAvatarURL(),
	}
}

func inlineField(name, value string) *discordgo.MessageEmbedField {
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
}

func labelList(labels []*github.Label) string {
	if len(labels) == 0 {
		return ""
	}
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.GetName()
	}
	return fmt.Sprintf("`%s`", strings.Join(names, "`, `"))
}

// OK is a short success embed.
func OK(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: title, Description: description, Color: ColourOK}
}

// Error is a short failure embed.
func Error(title, description string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{Title: title, Description: description, Color: ColourError}
}

// ChunkFields splits fields into pages of at most size entries.
func ChunkFields(fields []*discordgo.MessageEmbedField, size int) [][]*discordgo.MessageEmbedField {
	if size <= 0 || len(fields) == 0 {
		return nil
	}
	var pages [][]*discordgo.MessageEmbedField
	for start := 0; start < len(fields); start += size {
		end := start + size
		if end > len(fields) {
			end = len(fields)
		}
		pages = append(pages, fields[start:end])
	}
	return pages
}

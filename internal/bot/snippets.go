package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/tabletbot/internal/compose"
	"github.com/tabletbot/internal/session"
	"github.com/tabletbot/internal/store"
)

func snippetEmbed(sn store.Snippet) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       sn.Title,
		Description: sn.Content,
		Color:       compose.ColourAccent,
	}
}

func (b *Bot) showSnippet(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	id := options(ic)["id"].StringValue()

	sn, ok := b.store.Snippet(id)
	if !ok {
		respondErr(s, ic, "Failed to find snippet", fmt.Sprintf("Failed to find the snippet '%s'", id))
		return
	}
	respondEmbed(s, ic, snippetEmbed(sn), false)
}

func (b *Bot) createSnippet(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	opts := options(ic)
	sn := store.Snippet{
		ID:    opts["id"].StringValue(),
		Title: opts["title"].StringValue(),
		// Slash command input cannot contain raw newlines.
		Content: strings.ReplaceAll(opts["content"].StringValue(), `\n`, "\n"),
	}

	if err := b.store.UpsertSnippet(sn); err != nil {
		log.Error().Err(err).Str("snippet", sn.ID).Msg("failed to persist snippet")
		respondErr(s, ic, "Failed to create snippet", "The snippet could not be saved.")
		return
	}

	log.Info().Str("snippet", sn.ID).Str("title", sn.Title).Msg("snippet created")

	embed := snippetEmbed(sn)
	embed.Color = compose.ColourOK
	respondEmbed(s, ic, embed, false)
}

func (b *Bot) editSnippet(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	opts := options(ic)
	id := opts["id"].StringValue()

	sn, exists := b.store.Snippet(id)
	title, hasTitle := opts["title"]
	content, hasContent := opts["content"]

	switch {
	case exists:
		if hasTitle {
			sn.Title = title.StringValue()
		}
		if hasContent {
			sn.Content = strings.ReplaceAll(content.StringValue(), `\n`, "\n")
		}
	case hasTitle && hasContent:
		// Editing a snippet that does not exist creates it, as long as
		// both fields are supplied.
		sn = store.Snippet{
			ID:      id,
			Title:   title.StringValue(),
			Content: strings.ReplaceAll(content.StringValue(), `\n`, "\n"),
		}
	default:
		respondErr(s, ic, "Failed to edit snippet", fmt.Sprintf("The snippet '%s' does not exist", id))
		return
	}

	if err := b.store.UpsertSnippet(sn); err != nil {
		log.Error().Err(err).Str("snippet", id).Msg("failed to persist snippet")
		respondErr(s, ic, "Failed to edit snippet", "The snippet could not be saved.")
		return
	}

	log.Info().Str("snippet", sn.ID).Str("title", sn.Title).Msg("snippet edited")

	embed := snippetEmbed(sn)
	embed.Color = compose.ColourOK
	respondEmbed(s, ic, embed, false)
}

func (b *Bot) removeSnippet(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	id := options(ic)["id"].StringValue()

	sn, ok := b.store.Snippet(id)
	if !ok {
		respondErr(s, ic, "Failed to remove snippet", fmt.Sprintf("The snippet '%s' does not exist", id))
		return
	}

	confirm := &session.Confirm{
		ID:        ic.ID,
		AuthorID:  commandUser(ic).ID,
		Title:     "Remove snippet",
		Prompt:    fmt.Sprintf("Remove the snippet '%s: %s'? This cannot be undone.", sn.ID, sn.Title),
		Confirmed: fmt.Sprintf("Removed snippet '%s: %s'", sn.ID, sn.Title),
		Cancelled: "Snippet removal aborted.",
		Apply: func() error {
			_, _, err := b.store.RemoveSnippet(id)
			if err == nil {
				log.Info().Str("snippet", id).Msg("snippet removed")
			}
			return err
		},
	}
	go func() {
		if err := confirm.Run(s, ic, b.sessions); err != nil {
			log.Error().Err(err).Str("snippet", id).Msg("snippet removal failed")
		}
	}()
}

func (b *Bot) exportSnippet(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	id := options(ic)["id"].StringValue()

	sn, ok := b.store.Snippet(id)
	if !ok {
		respondErr(s, ic, "Failed to export snippet", fmt.Sprintf("The snippet '%s' does not exist", id))
		return
	}

	// Raw content with escaped newlines, ready to paste back into
	// snippet-create.
	raw := fmt.Sprintf("```%s```", strings.ReplaceAll(sn.Content, "\n", `\n`))

	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: raw,
			Embeds:  []*discordgo.MessageEmbed{snippetEmbed(sn)},
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("snippet", id).Msg("failed to export snippet")
	}
}

func (b *Bot) listSnippets(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	snippets := b.store.Snippets()
	if len(snippets) == 0 {
		respondErr(s, ic, "Cannot send list of snippets", "There are no snippets to list!")
		return
	}

	fields := make([]*discordgo.MessageEmbedField, len(snippets))
	for i, sn := range snippets {
		fields[i] = &discordgo.MessageEmbedField{Name: sn.ID, Value: sn.Title, Inline: true}
	}

	paginator := &session.Paginator{
		ID:     ic.ID,
		Title:  "Snippets",
		Colour: compose.ColourList,
		Pages:  compose.ChunkFields(fields, compose.PageSize),
	}
	go func() {
		if err := paginator.Run(s, ic, b.sessions); err != nil {
			log.Warn().Err(err).Msg("failed to paginate snippets")
		}
	}()
}

func (b *Bot) completeSnippetIDs(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	partial := focusedValue(ic)

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, sn := range b.store.Snippets() {
		if !strings.HasPrefix(sn.ID, partial) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s: %s", sn.ID, sn.Title),
			Value: sn.ID,
		})
		if len(choices) == maxChoices {
			break
		}
	}
	respondChoices(s, ic, choices)
}

// maxChoices is Discord's autocomplete choice limit.
const maxChoices = 25

func focusedValue(ic *discordgo.InteractionCreate) string {
	for _, opt := range ic.ApplicationCommandData().Options {
		if opt.Focused {
			return opt.StringValue()
		}
	}
	return ""
}

func respondChoices(s *discordgo.Session, ic *discordgo.InteractionCreate, choices []*discordgo.ApplicationCommandOptionChoice) {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		log.Debug().Err(err).Msg("failed to respond to autocomplete")
	}
}

func commandUser(ic *discordgo.InteractionCreate) *discordgo.User {
	if ic.Member != nil {
		return ic.Member.User
	}
	return ic.User
}

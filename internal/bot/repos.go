package bot

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/tabletbot/internal/compose"
	"github.com/tabletbot/internal/session"
	"github.com/tabletbot/internal/store"
)

var (
	aliasKeyPattern = regexp.MustCompile(`^[a-z0-9-_.]+$`)
	repoNamePattern = regexp.MustCompile(`^[a-zA-Z0-9-_.]+$`)
)

func (b *Bot) addRepository(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	opts := options(ic)
	key := strings.ToLower(opts["key"].StringValue())
	owner := opts["owner"].StringValue()
	name := opts["repository"].StringValue()

	if !aliasKeyPattern.MatchString(key) {
		respondErr(s, ic, "Invalid alias", fmt.Sprintf("'%s' is not a valid alias key", key))
		return
	}
	if !repoNamePattern.MatchString(owner) || !repoNamePattern.MatchString(name) {
		respondErr(s, ic, "Invalid repository", fmt.Sprintf("'%s/%s' is not a valid repository", owner, name))
		return
	}

	repo := store.Repository{Owner: owner, Name: name}
	if err := b.store.SetRepository(key, repo); err != nil {
		log.Error().Err(err).Str("alias", key).Msg("failed to persist repository alias")
		respondErr(s, ic, "Failed to add repository", "The alias could not be saved.")
		return
	}

	log.Info().Str("alias", key).Str("repository", repo.String()).Msg("repository alias added")
	respondOK(s, ic, "Repository added", fmt.Sprintf("'%s' now refers to %s", key, repo.String()))
}

func (b *Bot) removeRepository(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	key := strings.ToLower(options(ic)["key"].StringValue())

	repo, ok := b.store.Repository(key)
	if !ok {
		respondErr(s, ic, "Failed to remove repository", fmt.Sprintf("The alias '%s' does not exist", key))
		return
	}

	removed, err := b.store.RemoveRepository(key)
	if err != nil {
		log.Error().Err(err).Str("alias", key).Msg("failed to persist repository removal")
		respondErr(s, ic, "Failed to remove repository", "The alias could not be removed.")
		return
	}
	if !removed {
		respondErr(s, ic, "Failed to remove repository", fmt.Sprintf("The alias '%s' does not exist", key))
		return
	}

	log.Info().Str("alias", key).Msg("repository alias removed")
	respondOK(s, ic, "Repository removed", fmt.Sprintf("'%s' no longer refers to %s", key, repo.String()))
}

func (b *Bot) listRepositories(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	keys, repos := b.store.Repositories()
	if len(keys) == 0 {
		respondErr(s, ic, "Cannot send list of repositories", "There are no repository aliases to list!")
		return
	}

	fields := make([]*discordgo.MessageEmbedField, len(keys))
	for i, key := range keys {
		fields[i] = &discordgo.MessageEmbedField{Name: key, Value: repos[key].String(), Inline: true}
	}

	paginator := &session.Paginator{
		ID:     ic.ID,
		Title:  "Repositories",
		Colour: compose.ColourList,
		Pages:  compose.ChunkFields(fields, compose.PageSize),
	}
	go func() {
		if err := paginator.Run(s, ic, b.sessions); err != nil {
			log.Warn().Err(err).Msg("failed to paginate repositories")
		}
	}()
}

func (b *Bot) completeRepositoryKeys(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	partial := strings.ToLower(focusedValue(ic))

	keys, repos := b.store.Repositories()
	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, key := range keys {
		if !strings.HasPrefix(key, partial) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("%s: %s", key, repos[key].String()),
			Value: key,
		})
		if len(choices) == maxChoices {
			break
		}
	}
	respondChoices(s, ic, choices)
}

// Package bot wires the Discord gateway to the reference-resolution
// pipeline, the slash commands and the interactive sessions.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/tabletbot/internal/config"
	"github.com/tabletbot/internal/resolver"
	"github.com/tabletbot/internal/session"
	"github.com/tabletbot/internal/store"
)

// Bot is the running application: one gateway connection, one shared
// store handle, one resolver.
type Bot struct {
	discord  *discordgo.Session
	store    *store.Store
	resolver *resolver.Resolver
	sessions *session.Manager

	started time.Time
}

// New builds the bot from configuration. The store handle is injected so
// commands, resolver and status API share the same document.
func New(cfg *config.Config, st *store.Store) (*Bot, error) {
	discord, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	discord.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	res := resolver.New(
		resolver.NewGitHub(cfg.GitHub.Token),
		resolver.NewRawClient(),
		st,
		store.Repository{Owner: cfg.GitHub.DefaultOwner, Name: cfg.GitHub.DefaultRepo},
		cfg.GitHub.RateReserve,
	)

	b := &Bot{
		discord:  discord,
		store:    st,
		resolver: res,
		sessions: session.NewManager(),
	}

	discord.AddHandler(b.onReady)
	discord.AddHandler(b.onMessageCreate)
	discord.AddHandler(b.onInteractionCreate)

	return b, nil
}

// Run opens the gateway connection and blocks until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.discord.Open(); err != nil {
		return fmt.Errorf("failed to open discord gateway: %w", err)
	}
	b.started = time.Now()

	<-ctx.Done()

	log.Info().Msg("shutting down gateway connection")
	return b.discord.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().Str("user", r.User.Username).Msg("logged in")

	if _, err := s.ApplicationCommandBulkOverwrite(r.Application.ID, "", commandDefinitions()); err != nil {
		log.Error().Err(err).Msg("failed to register application commands")
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	switch ic.Type {
	case discordgo.InteractionApplicationCommand:
		b.dispatchCommand(s, ic)
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.dispatchAutocomplete(s, ic)
	case discordgo.InteractionMessageComponent:
		if !b.sessions.Dispatch(ic) {
			// Controls of an expired session: the buttons are dead
			// but still on screen until their own timeout edit.
			log.Debug().Str("custom_id", ic.MessageComponentData().CustomID).
				Msg("interaction for unknown session dropped")
		}
	}
}

// Uptime implements api.Stats.
func (b *Bot) Uptime() time.Duration {
	if b.started.IsZero() {
		return 0
	}
	return time.Since(b.started)
}

// Guilds implements api.Stats.
func (b *Bot) Guilds() int {
	b.discord.State.RLock()
	defer b.discord.State.RUnlock()
	return len(b.discord.State.Guilds)
}

// ActiveSessions implements api.Stats.
func (b *Bot) ActiveSessions() int {
	return b.sessions.Active()
}

// RateRemaining implements api.Stats.
func (b *Bot) RateRemaining() int {
	return b.resolver.LastRemaining()
}

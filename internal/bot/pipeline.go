package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tabletbot/internal/compose"
	"github.com/tabletbot/internal/references"
	"github.com/tabletbot/internal/session"
)

// onMessageCreate runs the extraction/resolution/reply pipeline for one
// inbound message. Extraction is cheap and runs inline; everything after
// the first match moves to its own goroutine.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	refs := references.Extract(m.Content)
	if len(refs) == 0 {
		return
	}

	go b.respond(s, m, refs)
}

func (b *Bot) respond(s *discordgo.Session, m *discordgo.MessageCreate, refs []references.Reference) {
	logger := log.With().
		Str("trace", uuid.NewString()).
		Str("channel", m.ChannelID).
		Int("references", len(refs)).
		Logger()

	if err := s.ChannelTyping(m.ChannelID); err != nil {
		logger.Debug().Err(err).Msg("failed to start typing indicator")
	}

	items := b.resolver.Resolve(context.Background(), refs)
	embeds := compose.Reply(items)
	if len(embeds) == 0 {
		// Candidates that all failed to resolve produce no reply at
		// all rather than error noise.
		logger.Debug().Msg("no references resolved, staying silent")
		return
	}

	send := &discordgo.MessageSend{
		Embeds:    embeds,
		Reference: m.Reference(),
	}

	tracked := compose.Tracked(items)
	if tracked {
		send.Components = session.ControlButtons(m.ID)
	}

	sent, err := s.ChannelMessageSendComplex(m.ChannelID, send)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to send reply")
		return
	}
	logger.Info().Int("embeds", len(embeds)).Msg("posted reference reply")

	if tracked {
		controls := &session.Controls{
			ID:       m.ID,
			AuthorID: m.Author.ID,
			Reply:    sent,
		}
		go controls.Run(s, b.sessions)
	}
}

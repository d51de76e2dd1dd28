package session

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Paginator renders a field list page by page with wraparound prev/next
// controls. A single-page list is sent without any controls and never
// opens a session.
type Paginator struct {
	// ID is the session id, derived from the triggering interaction id.
	ID    string
	Title string
	// Pages holds at most 25 fields each, Discord's per-embed limit.
	Pages [][]*discordgo.MessageEmbedField

	Colour  int
	Timeout time.Duration

	page int
}

// Next advances with wraparound to page 0 past the last page.
func (p *Paginator) Next() {
	p.page = (p.page + 1) % len(p.Pages)
}

// Prev decrements with wraparound to the last page at index 0.
func (p *Paginator) Prev() {
	if p.page == 0 {
		p.page = len(p.Pages) - 1
		return
	}
	p.page--
}

// Page is the current zero-based page index.
func (p *Paginator) Page() int {
	return p.page
}

// Embed renders the current page. The footer page indicator only appears
// when there is something to page through.
func (p *Paginator) Embed() *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:  p.Title,
		Color:  p.Colour,
		Fields: p.Pages[p.page],
	}
	if len(p.Pages) > 1 {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page: %d/%d", p.page+1, len(p.Pages)),
		}
	}
	return embed
}

// Components returns the prev/next row, or nil for a single page.
func (p *Paginator) Components() []discordgo.MessageComponent {
	if len(p.Pages) <= 1 {
		return nil
	}
	return []discordgo.MessageComponent{discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Emoji:    &discordgo.ComponentEmoji{Name: "◀"},
				Style:    discordgo.SecondaryButton,
				CustomID: CustomID(p.ID, ActionPrev),
			},
			discordgo.Button{
				Emoji:    &discordgo.ComponentEmoji{Name: "▶"},
				Style:    discordgo.SecondaryButton,
				CustomID: CustomID(p.ID, ActionNext),
			},
		},
	}}
}

// Run replies to the triggering interaction with the first page and, when
// there is more than one page, consumes page-turn events until timeout.
// Page turns are not mutating, so any user may press them.
func (p *Paginator) Run(s *discordgo.Session, ic *discordgo.InteractionCreate, m *Manager) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{p.Embed()},
			Components: p.Components(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send paginated reply: %w", err)
	}
	if len(p.Pages) <= 1 {
		return nil
	}

	ch := m.open(p.ID)
	defer m.close(p.ID)

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = PaginateTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case press := <-ch:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(timeout)

			_, action := Split(press.MessageComponentData().CustomID)
			switch action {
			case ActionNext:
				p.Next()
			case ActionPrev:
				p.Prev()
			default:
				continue
			}
			updateMessage(s, press, []*discordgo.MessageEmbed{p.Embed()}, p.Components())

		case <-timer.C:
			_, err := s.InteractionResponseEdit(ic.Interaction, &discordgo.WebhookEdit{
				Components: &noComponents,
			})
			if err != nil {
				log.Debug().Err(err).Str("session", p.ID).Msg("failed to strip paginator controls after timeout")
			}
			return nil
		}
	}
}

package session

import (
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// ControlButtons is the initial control row on an issue/PR reply.
func ControlButtons(id string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "delete",
				Style:    discordgo.DangerButton,
				CustomID: CustomID(id, ActionDelete),
			},
			discordgo.Button{
				Label:    "hide body",
				Style:    discordgo.SecondaryButton,
				CustomID: CustomID(id, ActionHideBody),
			},
		},
	}}
}

// deleteOnly is the control row after the body has been hidden.
func deleteOnly(id string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "delete",
				Style:    discordgo.DangerButton,
				CustomID: CustomID(id, ActionDelete),
			},
		},
	}}
}

// Controls runs the delete/hide-body lifecycle of a posted reply.
type Controls struct {
	// ID is the session id, derived from the triggering message id.
	ID string
	// AuthorID is the author of the triggering message.
	AuthorID string
	// Reply is the bot message carrying the controls.
	Reply *discordgo.Message

	Timeout time.Duration
}

// Run consumes this session's interactions until delete or timeout. It
// blocks; callers start it on its own goroutine.
func (c *Controls) Run(s *discordgo.Session, m *Manager) {
	ch := m.open(c.ID)
	defer m.close(c.ID)

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = ControlTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var hiddenEmbeds []*discordgo.MessageEmbed

	for {
		select {
		case ic := <-ch:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(timeout)

			_, action := Split(ic.MessageComponentData().CustomID)
			if action == ActionNone {
				continue
			}
			if !Authorized(ic, c.AuthorID) {
				denied(s, ic)
				continue
			}

			switch action {
			case ActionDelete:
				acknowledge(s, ic)
				if err := s.ChannelMessageDelete(c.Reply.ChannelID, c.Reply.ID); err != nil {
					log.Warn().Err(err).Str("message", c.Reply.ID).Msg("failed to delete reply")
				}
				return
			case ActionHideBody:
				if hiddenEmbeds == nil {
					hiddenEmbeds = withoutDescriptions(c.Reply.Embeds)
				}
				// Re-applying is a no-op: the same hidden state is
				// rendered again.
				updateMessage(s, ic, hiddenEmbeds, deleteOnly(c.ID))
			default:
				continue
			}

		case <-timer.C:
			c.stripControls(s)
			return
		}
	}
}

// stripControls removes the now-dead buttons, leaving the last rendered
// state in place. An edit failure (message already gone) is swallowed.
func (c *Controls) stripControls(s *discordgo.Session) {
	_, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    c.Reply.ChannelID,
		ID:         c.Reply.ID,
		Components: &noComponents,
	})
	if err != nil {
		log.Debug().Err(err).Str("message", c.Reply.ID).Msg("failed to strip controls after timeout")
	}
}

func withoutDescriptions(embeds []*discordgo.MessageEmbed) []*discordgo.MessageEmbed {
	out := make([]*discordgo.MessageEmbed, len(embeds))
	for i, e := range embeds {
		copied := *e
		copied.Description = ""
		out[i] = &copied
	}
	return out
}

package session

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Confirm runs a confirm/cancel dialog in front of a destructive action.
// Apply is only called on an authorized confirm; either terminal edits the
// dialog to a control-less final text.
type Confirm struct {
	// ID is the session id, derived from the triggering interaction id.
	ID string
	// AuthorID is the user who invoked the destructive command.
	AuthorID string

	Title  string
	Prompt string
	// Confirmed and Cancelled are the terminal texts.
	Confirmed string
	Cancelled string

	// Apply performs the underlying mutation.
	Apply func() error

	Timeout time.Duration
}

func (c *Confirm) components() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "confirm",
				Style:    discordgo.DangerButton,
				CustomID: CustomID(c.ID, ActionConfirm),
			},
			discordgo.Button{
				Label:    "cancel",
				Style:    discordgo.SecondaryButton,
				CustomID: CustomID(c.ID, ActionCancel),
			},
		},
	}}
}

// Run shows the dialog and waits for confirm, cancel or timeout.
func (c *Confirm) Run(s *discordgo.Session, ic *discordgo.InteractionCreate, m *Manager) error {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{{
				Title:       c.Title,
				Description: c.Prompt,
				Color:       0xe74c3c,
			}},
			Components: c.components(),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send confirmation dialog: %w", err)
	}

	ch := m.open(c.ID)
	defer m.close(c.ID)

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = ConfirmTimeout
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
			if action != ActionConfirm && action != ActionCancel {
				continue
			}
			if !Authorized(press, c.AuthorID) {
				denied(s, press)
				continue
			}

			if action == ActionCancel {
				updateMessage(s, press, []*discordgo.MessageEmbed{{
					Title:       c.Title,
					Description: c.Cancelled,
					Color:       0x1abc9c,
				}}, noComponents)
				return nil
			}

			if err := c.Apply(); err != nil {
				updateMessage(s, press, []*discordgo.MessageEmbed{{
					Title:       c.Title,
					Description: fmt.Sprintf("Failed to apply: %s", err),
					Color:       0xe74c3c,
				}}, noComponents)
				return err
			}
			updateMessage(s, press, []*discordgo.MessageEmbed{{
				Title:       c.Title,
				Description: c.Confirmed,
				Color:       0x2ecc71,
			}}, noComponents)
			return nil

		case <-timer.C:
			_, err := s.InteractionResponseEdit(ic.Interaction, &discordgo.WebhookEdit{
				Components: &noComponents,
			})
			if err != nil {
				log.Debug().Err(err).Str("session", c.ID).Msg("failed to strip confirm controls after timeout")
			}
			return nil
		}
	}
}

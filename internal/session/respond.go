package session

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// Authorized reports whether the acting user may run a mutating action on
// a session owned by authorID: the triggering author always may, anyone
// else needs Manage Messages in the channel.
func Authorized(ic *discordgo.InteractionCreate, authorID string) bool {
	if user := interactionUser(ic); user != nil && user.ID == authorID {
		return true
	}
	return ic.Member != nil && ic.Member.Permissions&discordgo.PermissionManageMessages != 0
}

func interactionUser(ic *discordgo.InteractionCreate) *discordgo.User {
	if ic.Member != nil {
		return ic.Member.User
	}
	return ic.User
}

// denied sends the unauthorized actor an ephemeral error. Session state is
// left untouched.
func denied(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
			Embeds: []*discordgo.MessageEmbed{{
				Title:       "Unable to execute interaction",
				Description: "Only the message author or users with `MANAGE_MESSAGES` can use this.",
				Color:       0xe74c3c,
			}},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to respond to unauthorized interaction")
	}
}

// acknowledge answers an interaction without changing the message.
func acknowledge(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	_ = s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}

// updateMessage rewrites the message the component sits on.
func updateMessage(s *discordgo.Session, ic *discordgo.InteractionCreate, embeds []*discordgo.MessageEmbed, components []discordgo.MessageComponent) {
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     embeds,
			Components: components,
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to update message for interaction")
	}
}

var noComponents = []discordgo.MessageComponent{}

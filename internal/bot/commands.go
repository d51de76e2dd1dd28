package bot

import (
	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/tabletbot/internal/compose"
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	stringOption := func(name, description string, required, autocomplete bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         name,
			Description:  description,
			Required:     required,
			Autocomplete: autocomplete,
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        "snippet",
			Description: "Show a snippet",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("id", "The snippet's id", true, true),
			},
		},
		{
			Name:        "snippet-create",
			Description: "Create or replace a snippet",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("id", "The snippet's id", true, false),
				stringOption("title", "The snippet's title", true, false),
				stringOption("content", "The snippet's content", true, false),
			},
		},
		{
			Name:        "snippet-edit",
			Description: "Edit a snippet's title or content",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("id", "The snippet's id", true, true),
				stringOption("title", "The new title", false, false),
				stringOption("content", "The new content", false, false),
			},
		},
		{
			Name:        "snippet-remove",
			Description: "Remove a snippet",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("id", "The snippet's id", true, true),
			},
		},
		{
			Name:        "snippet-export",
			Description: "Export a snippet's raw content",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("id", "The snippet's id", true, true),
			},
		},
		{
			Name:        "snippet-list",
			Description: "List all snippets",
		},
		{
			Name:        "add-repository",
			Description: "Add a repository alias for issue references",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("key", "The alias key, lowercase", true, false),
				stringOption("owner", "The owner of the repository", true, false),
				stringOption("repository", "The repository name", true, false),
			},
		},
		{
			Name:        "remove-repository",
			Description: "Remove a repository alias",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("key", "The alias key", true, true),
			},
		},
		{
			Name:        "list-repositories",
			Description: "List all repository aliases",
		},
		{
			Name:        "embed",
			Description: "Create an embed in the current channel",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("title", "The embed title", false, false),
				stringOption("description", "The embed description", false, false),
				stringOption("color", "The embed color in hexadecimal form (ex: ff00ff)", false, false),
				stringOption("url", "The embed url", false, false),
				stringOption("image", "The embed image", false, false),
				stringOption("footer", "The embed footer text", false, false),
				stringOption("thumbnail", "The embed thumbnail", false, false),
			},
		},
		{
			Name:        "edit-embed",
			Description: "Edit an embed previously created with /embed",
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("message", "The id of the message to edit", true, false),
				stringOption("title", "The embed title", false, false),
				stringOption("description", "The embed description", false, false),
				stringOption("color", "The embed color in hexadecimal form (ex: ff00ff)", false, false),
				stringOption("url", "The embed url", false, false),
				stringOption("image", "The embed image", false, false),
				stringOption("footer", "The embed footer text", false, false),
				stringOption("thumbnail", "The embed thumbnail", false, false),
			},
		},
		{
			Name:        "generate-udev",
			Description: "Generate udev rules for the given vendor and product ids",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "vendor_id",
					Description: "The vendor id in decimal",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "product_id",
					Description: "The product id in decimal",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        "libinput_override",
					Description: "Add a libinput ignore rule",
					Required:    false,
				},
			},
		},
	}
}

func (b *Bot) dispatchCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	data := ic.ApplicationCommandData()
	log.Info().Str("command", data.Name).Msg("executing command")

	switch data.Name {
	case "snippet":
		b.showSnippet(s, ic)
	case "snippet-create":
		b.createSnippet(s, ic)
	case "snippet-edit":
		b.editSnippet(s, ic)
	case "snippet-remove":
		b.removeSnippet(s, ic)
	case "snippet-export":
		b.exportSnippet(s, ic)
	case "snippet-list":
		b.listSnippets(s, ic)
	case "add-repository":
		b.addRepository(s, ic)
	case "remove-repository":
		b.removeRepository(s, ic)
	case "list-repositories":
		b.listRepositories(s, ic)
	case "embed":
		b.createEmbed(s, ic)
	case "edit-embed":
		b.editEmbed(s, ic)
	case "generate-udev":
		b.generateUdev(s, ic)
	default:
		log.Warn().Str("command", data.Name).Msg("received unknown command")
	}
}

func (b *Bot) dispatchAutocomplete(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	switch ic.ApplicationCommandData().Name {
	case "snippet", "snippet-edit", "snippet-remove", "snippet-export":
		b.completeSnippetIDs(s, ic)
	case "remove-repository":
		b.completeRepositoryKeys(s, ic)
	}
}

// options flattens the interaction's options by name.
func options(ic *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := ic.ApplicationCommandData().Options
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, opt := range opts {
		out[opt.Name] = opt
	}
	return out
}

func respondEmbed(s *discordgo.Session, ic *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{
		Embeds: []*discordgo.MessageEmbed{embed},
	}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to respond to interaction")
	}
}

func respondOK(s *discordgo.Session, ic *discordgo.InteractionCreate, title, content string) {
	respondEmbed(s, ic, compose.OK(title, content), false)
}

func respondErr(s *discordgo.Session, ic *discordgo.InteractionCreate, title, content string) {
	respondEmbed(s, ic, compose.Error(title, content), false)
}

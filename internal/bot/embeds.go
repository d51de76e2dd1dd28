package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// parseColour accepts hex colours with or without a leading '#'.
func parseColour(value string) (int, error) {
	trimmed := strings.TrimPrefix(strings.ToLower(value), "#")
	if len(trimmed) != 6 {
		return 0, fmt.Errorf("colour %q is not a 6-digit hexadecimal value", value)
	}
	n, err := strconv.ParseInt(trimmed, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("colour %q is not a valid hexadecimal value", value)
	}
	return int(n), nil
}

func (b *Bot) createEmbed(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	opts := options(ic)

	get := func(name string) (string, bool) {
		opt, ok := opts[name]
		if !ok {
			return "", false
		}
		return opt.StringValue(), true
	}

	title, hasTitle := get("title")
	description, hasDescription := get("description")
	image, hasImage := get("image")
	footer, hasFooter := get("footer")
	thumbnail, hasThumbnail := get("thumbnail")
	url, hasURL := get("url")
	colour, hasColour := get("color")

	if !hasTitle && !hasDescription && !hasImage && !hasFooter && !hasThumbnail {
		respondErr(s, ic, "Failed to respond with embed",
			"Please provide at least one title, description, image, footer or thumbnail")
		return
	}
	if hasURL && !hasTitle {
		respondErr(s, ic, "Failed to respond with embed", "To set a url, you must set a title")
		return
	}

	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: strings.ReplaceAll(description, `\n`, "\n"),
		URL:         url,
	}
	if hasImage {
		embed.Image = &discordgo.MessageEmbedImage{URL: image}
	}
	if hasFooter {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: footer}
	}
	if hasThumbnail {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: thumbnail}
	}
	if hasColour {
		c, err := parseColour(colour)
		if err != nil {
			respondErr(s, ic, "Invalid color provided", err.Error())
			return
		}
		embed.Color = c
	}

	respondEmbed(s, ic, embed, false)
}

func (b *Bot) editEmbed(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	opts := options(ic)
	messageID := opts["message"].StringValue()

	msg, err := s.ChannelMessage(ic.ChannelID, messageID)
	if err != nil {
		respondErr(s, ic, "Failure to edit embed",
			fmt.Sprintf("The message '%s' could not be found in this channel", messageID))
		return
	}
	if s.State.User == nil || msg.Author == nil || msg.Author.ID != s.State.User.ID {
		respondErr(s, ic, "Cannot edit message!", "I am not the author of the specified message!")
		return
	}
	if len(msg.Embeds) == 0 {
		respondErr(s, ic, "Failure to edit embed", "The specified message has no embed to edit!")
		return
	}

	prior := msg.Embeds[0]
	embed := &discordgo.MessageEmbed{}

	// An omitted option keeps the prior value, "_" clears it.
	field := func(name, previous string) (string, bool) {
		opt, ok := opts[name]
		if !ok {
			return previous, previous != ""
		}
		if v := opt.StringValue(); v != "_" {
			return v, true
		}
		return "", false
	}

	embed.Title, _ = field("title", prior.Title)
	embed.Description, _ = field("description", prior.Description)
	embed.URL, _ = field("url", prior.URL)

	priorImage := ""
	if prior.Image != nil {
		priorImage = prior.Image.URL
	}
	if v, ok := field("image", priorImage); ok {
		embed.Image = &discordgo.MessageEmbedImage{URL: v}
	}

	priorFooter := ""
	if prior.Footer != nil {
		priorFooter = prior.Footer.Text
	}
	if v, ok := field("footer", priorFooter); ok {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: v}
	}

	priorThumbnail := ""
	if prior.Thumbnail != nil {
		priorThumbnail = prior.Thumbnail.URL
	}
	if v, ok := field("thumbnail", priorThumbnail); ok {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: v}
	}

	embed.Color = prior.Color
	if opt, ok := opts["color"]; ok {
		switch v := opt.StringValue(); v {
		case "_":
			embed.Color = 0
		default:
			c, err := parseColour(v)
			if err != nil {
				respondErr(s, ic, "Invalid color provided", err.Error())
				return
			}
			embed.Color = c
		}
	}

	_, err = s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		ID:      msg.ID,
		Channel: msg.ChannelID,
		Embeds:  &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		log.Warn().Err(err).Str("message", messageID).Msg("failed to edit embed")
		respondErr(s, ic, "Error while handling message!", err.Error())
		return
	}

	respondOK(s, ic, "Successfully edited embed", "The message has been edited successfully!")
}

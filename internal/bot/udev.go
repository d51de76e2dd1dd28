package bot

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"github.com/tabletbot/internal/compose"
)

const requiredUdevRules = `
KERNEL=="uinput", SUBSYSTEM=="misc", OPTIONS+="static_node=uinput", TAG+="uaccess", TAG+="udev-acl"
KERNEL=="js[0-9]*", SUBSYSTEM=="input", ATTRS{name}=="OpenTabletDriver Virtual Tablet", RUN+="/usr/bin/env rm %E{DEVNAME}"
`

// udevRules renders a udev rules file for one tablet. Vendor and product
// ids are zero-padded to the four hex digits udev expects.
func udevRules(vendorID, productID int64, libinputOverride bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "KERNEL==\"hidraw*\", ATTRS{idVendor}==\"%04x\", ATTRS{idProduct}==\"%04x\", TAG+=\"uaccess\", TAG+=\"udev-acl\"\n",
		vendorID, productID)
	fmt.Fprintf(&sb, "SUBSYSTEM==\"usb\", ATTRS{idVendor}==\"%04x\", ATTRS{idProduct}==\"%04x\", TAG+=\"uaccess\", TAG+=\"udev-acl\"",
		vendorID, productID)
	if libinputOverride {
		fmt.Fprintf(&sb, "\nSUBSYSTEM==\"input\", ATTRS{idVendor}==\"%04x\", ATTRS{idProduct}==\"%04x\", ENV{LIBINPUT_IGNORE_DEVICE}=\"1\"",
			vendorID, productID)
	}
	return fmt.Sprintf("%s\n# Generated by TabletBot\n%s", requiredUdevRules, sb.String())
}

func (b *Bot) generateUdev(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	opts := options(ic)
	vendorID := opts["vendor_id"].IntValue()
	productID := opts["product_id"].IntValue()

	libinputOverride := true
	if opt, ok := opts["libinput_override"]; ok {
		libinputOverride = opt.BoolValue()
	}

	rules := udevRules(vendorID, productID, libinputOverride)

	embed := &discordgo.MessageEmbed{
		Title: "Generated Udev rules",
		Description: "Move this file to `/etc/udev/rules.d/70-opentabletdriver.rules` then run the " +
			"following commands: \n```sudo udevadm control --reload-rules && sudo udevadm trigger\n```",
		Color: compose.ColourOK,
	}

	err := s.InteractionRespond(ic.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Files: []*discordgo.File{{
				Name:        "70-opentabletdriver.rules",
				ContentType: "text/plain",
				Reader:      strings.NewReader(rules),
			}},
		},
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to respond with udev rules")
	}
}

package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	buttonWhitelist = "whitelist"
	buttonRename    = "rename"

	panelColor = 0x2ecc71
)

// renderPanel builds the panel embed and its button row. iconURL may be empty.
func renderPanel(serverName, iconURL string) (*discordgo.MessageEmbed, []discordgo.MessageComponent) {
	embed := &discordgo.MessageEmbed{
		Title:       "🧾 Minecraft Whitelist System",
		Description: "Use the buttons below to **whitelist** or **rename** your Minecraft username.",
		Color:       panelColor,
		Footer:      &discordgo.MessageEmbedFooter{Text: serverName + " Whitelist Panel"},
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
	if iconURL != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: iconURL}
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{CustomID: buttonWhitelist, Label: "Whitelist", Style: discordgo.SuccessButton},
			discordgo.Button{CustomID: buttonRename, Label: "Rename", Style: discordgo.PrimaryButton},
		}},
	}
	return embed, components
}

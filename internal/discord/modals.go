package discord

import "github.com/bwmarrin/discordgo"

const (
	modalWhitelist = "whitelist_modal"
	modalRename    = "rename_modal"

	fieldUsername = "username"
	fieldOld      = "old"
	fieldNew      = "new"

	// Java names cap at 16; Bedrock gamertags plus the prefix need more.
	usernameMaxLength = 32
)

func whitelistModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: modalWhitelist,
		Title:    "Whitelist Username",
		Components: []discordgo.MessageComponent{
			usernameRow(fieldUsername, "Minecraft Username"),
		},
	}
}

func renameModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: modalRename,
		Title:    "Rename Username",
		Components: []discordgo.MessageComponent{
			usernameRow(fieldOld, "Old Username"),
			usernameRow(fieldNew, "New Username"),
		},
	}
}

func usernameRow(id, label string) discordgo.ActionsRow {
	return discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:  id,
			Label:     label,
			Style:     discordgo.TextInputShort,
			Required:  true,
			MinLength: 1,
			MaxLength: usernameMaxLength,
		},
	}}
}

package discord

import (
	"github.com/bwmarrin/discordgo"
)

func userTag(u *discordgo.User) string {
	if u == nil {
		return "unknown"
	}
	return u.String()
}

func userID(u *discordgo.User) string {
	if u == nil {
		return ""
	}
	return u.ID
}

func avatarThumbnail(u *discordgo.User) *discordgo.MessageEmbedThumbnail {
	if u == nil {
		return nil
	}
	return &discordgo.MessageEmbedThumbnail{URL: u.AvatarURL("128")}
}

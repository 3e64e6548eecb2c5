package discord

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// ErrChannelUnavailable is returned when a target channel can be found
// neither in the gateway cache nor over REST.
var ErrChannelUnavailable = errors.New("channel unavailable")

// Platform is the slice of the Discord API the router needs.
type Platform interface {
	Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error
	EditReply(i *discordgo.Interaction, content string) error
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
	SendText(channelID, content string) error
	CheckChannel(channelID string) error
	GuildIconURL(guildID string) string
}

type sessionPlatform struct {
	s *discordgo.Session
}

var _ Platform = sessionPlatform{}

func (p sessionPlatform) Respond(i *discordgo.Interaction, resp *discordgo.InteractionResponse) error {
	return p.s.InteractionRespond(i, resp)
}

func (p sessionPlatform) EditReply(i *discordgo.Interaction, content string) error {
	_, err := p.s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content})
	return err
}

func (p sessionPlatform) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	ch, err := p.resolveChannel(channelID)
	if err != nil {
		return err
	}
	_, err = p.s.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Embeds:          []*discordgo.MessageEmbed{embed},
		AllowedMentions: noMentions(),
	})
	return err
}

// SendText posts content verbatim with mentions disabled, so a crafted
// username cannot ping anyone from the console channel.
func (p sessionPlatform) SendText(channelID, content string) error {
	ch, err := p.resolveChannel(channelID)
	if err != nil {
		return err
	}
	_, err = p.s.ChannelMessageSendComplex(ch.ID, &discordgo.MessageSend{
		Content:         content,
		AllowedMentions: noMentions(),
	})
	return err
}

func (p sessionPlatform) CheckChannel(channelID string) error {
	_, err := p.resolveChannel(channelID)
	return err
}

func (p sessionPlatform) GuildIconURL(guildID string) string {
	if guildID == "" || p.s.State == nil {
		return ""
	}
	g, err := p.s.State.Guild(guildID)
	if err != nil || g.Icon == "" {
		return ""
	}
	return g.IconURL("256")
}

// resolveChannel prefers the gateway cache and falls back to REST, which
// covers the window after a restart before GUILD_CREATE arrives.
func (p sessionPlatform) resolveChannel(channelID string) (*discordgo.Channel, error) {
	if channelID == "" {
		return nil, fmt.Errorf("%w: empty id", ErrChannelUnavailable)
	}
	if p.s.State != nil {
		if ch, err := p.s.State.Channel(channelID); err == nil {
			return ch, nil
		}
	}
	ch, err := p.s.Channel(channelID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrChannelUnavailable, channelID, err)
	}
	return ch, nil
}

func noMentions() *discordgo.MessageAllowedMentions {
	return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
}

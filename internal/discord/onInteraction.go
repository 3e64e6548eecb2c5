package discord

import (
	"context"
	"runtime"

	"github.com/bwmarrin/discordgo"
	"github.com/mcfleet/whitelist-bot/internal/shared/logging"
)

const (
	msgChannelsSaved   = "✅ Channels saved. Run the command again."
	msgSaveFailed      = "❌ Could not save the channel configuration. Check the bot logs and try again."
	msgNotConfigured   = "⚠️ The whitelist panel is not set up yet. Ask a staff member to run the panel command first."
	msgSlowDown        = "⏳ You are submitting too fast. Please wait a minute and try again."
	msgMissingUsername = "❌ Username must not be empty."
	msgInternalError   = "❌ Something went wrong while handling your request. Please contact staff."
)

func (a *App) onInteraction(_ *discordgo.Session, i *discordgo.InteractionCreate) {
	ev, ok := eventFromInteraction(i.Interaction)
	if !ok {
		logging.L().Debug("interaction ignored", "type", i.Type.String())
		return
	}
	a.Handle(context.Background(), ev)
}

// Handle routes one event. Identifiers the bot does not own get no response.
func (a *App) Handle(ctx context.Context, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 8192)
			n := runtime.Stack(stack, false)
			logging.L().Error("interaction handler panic", "recover", r, "stack", string(stack[:n]))
		}
	}()

	switch e := ev.(type) {
	case *SlashCommand:
		a.handleSlashCommand(e)
	case *ButtonClick:
		a.handleButton(e)
	case *ModalSubmit:
		a.handleModalSubmit(ctx, e)
	default:
		logging.L().Warn("unhandled event type", "event", ev)
	}
}

func (a *App) handleSlashCommand(e *SlashCommand) {
	if e.Name != a.Cfg.CommandName {
		return
	}

	if !a.Channels.Configured() {
		if e.ChannelID == "" {
			a.reply(e.Interaction, msgSaveFailed, true)
			return
		}
		if _, err := a.Channels.CaptureIfUnset(e.ChannelID, e.ChannelID); err != nil {
			logging.L().Error("channel capture failed", "channel", e.ChannelID, "error", err)
			a.reply(e.Interaction, msgSaveFailed, true)
			return
		}
		a.reply(e.Interaction, msgChannelsSaved, true)
		return
	}

	embed, components := renderPanel(a.Cfg.ServerName, a.platform.GuildIconURL(e.GuildID))
	err := a.platform.Respond(e.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
	if err != nil {
		logging.L().Error("panel reply failed", "channel", e.ChannelID, "error", err)
	}
}

func (a *App) handleButton(e *ButtonClick) {
	var modal *discordgo.InteractionResponseData
	switch e.CustomID {
	case buttonWhitelist:
		modal = whitelistModal()
	case buttonRename:
		modal = renameModal()
	default:
		return
	}

	err := a.platform.Respond(e.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: modal,
	})
	if err != nil {
		logging.L().Error("show modal failed", "modal", modal.CustomID, "error", err)
	}
}

func (a *App) handleModalSubmit(ctx context.Context, e *ModalSubmit) {
	switch e.CustomID {
	case modalWhitelist, modalRename:
	default:
		return
	}

	rec := a.Channels.Get()
	if !rec.Configured() {
		a.reply(e.Interaction, msgNotConfigured, true)
		return
	}
	if e.User != nil && !a.limiter.Allow(e.User.ID) {
		a.reply(e.Interaction, msgSlowDown, true)
		return
	}

	// Acknowledge inside the platform deadline; everything after is slower.
	if err := a.deferReply(e.Interaction); err != nil {
		logging.L().Error("defer reply failed", "modal", e.CustomID, "error", err)
		return
	}
	// A deferred reply must be edited, even when the submit panics. Handle
	// logs the panic.
	defer func() {
		if r := recover(); r != nil {
			if err := a.platform.EditReply(e.Interaction, msgInternalError); err != nil {
				logging.L().Error("edit reply after panic failed", "modal", e.CustomID, "error", err)
			}
			panic(r)
		}
	}()

	var out string
	switch e.CustomID {
	case modalWhitelist:
		out = a.submitWhitelist(ctx, e, rec)
	case modalRename:
		out = a.submitRename(e, rec)
	}
	if err := a.platform.EditReply(e.Interaction, out); err != nil {
		logging.L().Error("edit reply failed", "modal", e.CustomID, "error", err)
	}
}

func (a *App) reply(i *discordgo.Interaction, msg string, eph bool) {
	flags := discordgo.MessageFlags(0)
	if eph {
		flags = discordgo.MessageFlagsEphemeral
	}
	err := a.platform.Respond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: msg, Flags: flags},
	})
	if err != nil {
		logging.L().Error("reply failed", "error", err)
	}
}

func (a *App) deferReply(i *discordgo.Interaction) error {
	return a.platform.Respond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
}

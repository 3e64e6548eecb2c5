package discord

import (
	"github.com/bwmarrin/discordgo"
	"github.com/mcfleet/whitelist-bot/internal/shared/logging"
)

func (a *App) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	logging.L().Info("Ready", "user", r.User.String(), "guilds", len(r.Guilds))
	a.checkChannels()
}

// checkChannels warns about configured channels the bot cannot reach.
// Submissions still try again on each request.
func (a *App) checkChannels() {
	rec := a.Channels.Get()
	if !rec.Configured() {
		logging.L().Info("channels not configured; run the panel command in the target channel", "command", a.Cfg.CommandName)
		return
	}
	for name, id := range map[string]string{
		"log":       rec.LogChannelID(),
		"whitelist": rec.WhitelistChannelID(),
	} {
		if err := a.platform.CheckChannel(id); err != nil {
			logging.L().Warn("configured channel unavailable", "channel", name, "id", id, "error", err)
		}
	}
}

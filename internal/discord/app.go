package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/mcfleet/whitelist-bot/internal/channels"
	"github.com/mcfleet/whitelist-bot/internal/discord/mojang"
	"github.com/mcfleet/whitelist-bot/internal/shared/config"
	"github.com/mcfleet/whitelist-bot/internal/shared/logging"
)

// CommandFeed receives every console command line the bot emits.
type CommandFeed interface {
	Publish(line string)
}

type App struct {
	Session  *discordgo.Session
	Cfg      config.Config
	Channels *channels.Store
	Profiles *mojang.Client

	platform Platform
	limiter  *submitLimiter
	mirror   AuditMirror
	feed     CommandFeed
}

func NewApp(sess *discordgo.Session, cfg config.Config, store *channels.Store) *App {
	a := &App{
		Session:  sess,
		Cfg:      cfg,
		Channels: store,
		platform: sessionPlatform{s: sess},
		limiter:  newSubmitLimiter(cfg.SubmitRatePerMinute, cfg.SubmitBurst),
	}
	if cfg.ProfileLookup {
		a.Profiles = mojang.New()
	}
	if cfg.AuditWebhookURL != "" {
		a.mirror = NewWebhookMirror(cfg.AuditWebhookURL, cfg.ServerName+" Whitelist")
	}
	return a
}

// SetFeed attaches a sink for emitted console lines.
func (a *App) SetFeed(f CommandFeed) { a.feed = f }

// Register wires gateway handlers. Call before Session.Open.
func (a *App) Register() {
	a.Session.AddHandler(a.onReady)
	a.Session.AddHandler(a.onInteraction)
}

// RegisterCommands overwrites the global command set with the panel command.
// The bulk overwrite is idempotent, so running it on every start is safe.
func (a *App) RegisterCommands() error {
	cmds := []*discordgo.ApplicationCommand{panelCommand(a.Cfg.CommandName)}
	created, err := a.Session.ApplicationCommandBulkOverwrite(a.Cfg.ClientID, "", cmds)
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	for _, c := range created {
		logging.L().Info("command registered", "command", c.Name, "id", c.ID)
	}
	return nil
}

func panelCommand(name string) *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        name,
		Description: "Open Minecraft whitelist panel",
		Contexts:    &[]discordgo.InteractionContextType{discordgo.InteractionContextGuild},
	}
}

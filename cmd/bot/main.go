package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/mcfleet/whitelist-bot/internal/channels"
	"github.com/mcfleet/whitelist-bot/internal/discord"
	"github.com/mcfleet/whitelist-bot/internal/keepalive"
	"github.com/mcfleet/whitelist-bot/internal/shared/config"
	"github.com/mcfleet/whitelist-bot/internal/shared/logging"
)

func main() {
	logging.BootstrapFromEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, err := channels.Open(cfg.ConfigPath)
	if err != nil {
		log.Fatalf("channel config: %v", err)
	}
	if cfg.SeedChannels() {
		if _, err := store.CaptureIfUnset(cfg.LogChannelID, cfg.WhitelistChannelID); err != nil {
			log.Fatalf("seed channels: %v", err)
		}
	}

	// Discord session
	sess, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		log.Fatalf("discord init: %v", err)
	}
	sess.Identify.Intents = discordgo.IntentsGuilds

	app := discord.NewApp(sess, cfg, store)
	app.Register()

	hub := keepalive.NewHub()
	app.SetFeed(hub)
	ka := keepalive.NewServer(cfg.KeepAliveAddr(), hub, cfg.FeedToken, func() bool {
		sess.RLock()
		defer sess.RUnlock()
		return sess.DataReady
	})

	go func() {
		if err := ka.Start(); err != nil {
			logging.L().Error("keep-alive server stopped", "error", err)
		}
	}()

	if err := sess.Open(); err != nil {
		log.Fatalf("discord open: %v", err)
	}

	if err := app.RegisterCommands(); err != nil {
		logging.L().Error("slash command registration failed, continuing", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.L().Info("Bot running. Ctrl+C to exit.", "command", cfg.CommandName, "config", store.Path())
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = ka.Shutdown(shutdownCtx)
	_ = sess.Close()
	logging.L().Info("Shutdown.")
}

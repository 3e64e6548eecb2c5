package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	DiscordToken string `env:"TOKEN,required,notEmpty"`
	ClientID     string `env:"CLIENT_ID,required,notEmpty"`
	Port         string `env:"PORT" envDefault:"3000"`

	ConfigPath  string `env:"CONFIG_FILE" envDefault:"config.json"`
	CommandName string `env:"COMMAND_NAME" envDefault:"whitelist-panel"`
	ServerName  string `env:"SERVER_NAME" envDefault:"mcFleet"`

	// Optional seed for deployments that pin the channels up front.
	LogChannelID       string `env:"LOG_CHANNEL_ID"`
	WhitelistChannelID string `env:"WHITELIST_CHANNEL_ID"`

	// Per-user submission limit. Zero leaves submissions unthrottled.
	SubmitRatePerMinute float64 `env:"SUBMIT_RATE_PER_MINUTE" envDefault:"0"`
	SubmitBurst         int     `env:"SUBMIT_BURST" envDefault:"3"`

	AuditWebhookURL string `env:"AUDIT_WEBHOOK_URL"`
	ProfileLookup   bool   `env:"PROFILE_LOOKUP" envDefault:"false"`

	// When set, /ws subscribers must pass ?token=<FeedToken>.
	FeedToken string `env:"FEED_TOKEN"`
}

// Load reads the process environment. Missing TOKEN or CLIENT_ID is an error.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.SubmitBurst < 1 {
		cfg.SubmitBurst = 1
	}
	return cfg, nil
}

// KeepAliveAddr is the listen address for the keep-alive server.
func (c Config) KeepAliveAddr() string {
	return ":" + c.Port
}

// SeedChannels reports whether both channel ids were provided.
func (c Config) SeedChannels() bool {
	return c.LogChannelID != "" && c.WhitelistChannelID != ""
}

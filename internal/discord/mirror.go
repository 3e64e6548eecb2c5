package discord

import (
	"github.com/rotaria-smp/discordwebhook"
)

// AuditMirror receives a plain-text copy of every audit entry.
type AuditMirror interface {
	Mirror(content string) error
}

type webhookMirror struct {
	url      string
	username string
}

func NewWebhookMirror(url, username string) AuditMirror {
	return webhookMirror{url: url, username: username}
}

func (m webhookMirror) Mirror(content string) error {
	flag := discordwebhook.MessageFlagSuppressNotifications
	msg := discordwebhook.Message{
		Content:  &content,
		Username: &m.username,
		Flags:    &flag,
	}
	return discordwebhook.SendMessage(m.url, msg)
}

package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"github.com/mcfleet/whitelist-bot/internal/channels"
	"github.com/mcfleet/whitelist-bot/internal/discord/mojang"
	"github.com/mcfleet/whitelist-bot/internal/edition"
	"github.com/mcfleet/whitelist-bot/internal/shared/logging"
)

const (
	whitelistEmbedColor  = 0x57f287
	renameEmbedColor     = 0xfaa61a
	incompleteEmbedColor = 0xed4245

	msgRenameIncomplete = "⚠️ `%s` was removed from the whitelist, but `%s` could not be added. Please contact staff so they can add it by hand."

	profileLookupTimeout = 3 * time.Second
)

type WhitelistRequest struct {
	Username string
}

type RenameRequest struct {
	Old string
	New string
}

func whitelistAddLine(name string) string    { return "whitelist add " + name }
func whitelistRemoveLine(name string) string { return "whitelist remove " + name }

func (a *App) submitWhitelist(ctx context.Context, e *ModalSubmit, rec channels.Record) string {
	req := WhitelistRequest{Username: e.Fields[fieldUsername]}
	if req.Username == "" {
		return msgMissingUsername
	}
	reqID := uuid.NewString()
	ed := edition.Classify(req.Username)
	log := logging.L().With("request_id", reqID, "user", userID(e.User), "username", req.Username)

	embed := whitelistEmbed(e.User, req, ed, reqID)
	if ed == edition.Java {
		if id := a.lookupProfile(ctx, req.Username); id != "" {
			embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "UUID", Value: "`" + id + "`"})
		}
	}

	logErr := a.platform.SendEmbed(rec.LogChannelID(), embed)
	if logErr != nil {
		log.Error("log embed failed", "channel", rec.LogChannelID(), "error", logErr)
	}
	cmdErr := a.emit(rec.WhitelistChannelID(), whitelistAddLine(req.Username), reqID)
	if cmdErr != nil {
		log.Error("whitelist command failed", "channel", rec.WhitelistChannelID(), "error", cmdErr)
	} else {
		log.Info("whitelist request processed", "edition", ed.String())
		a.mirrorAudit(fmt.Sprintf("%s whitelisted `%s` (%s)", userTag(e.User), req.Username, ed))
	}

	return outcome("✅ Whitelisted successfully!", logErr, cmdErr)
}

func (a *App) submitRename(e *ModalSubmit, rec channels.Record) string {
	req := RenameRequest{Old: e.Fields[fieldOld], New: e.Fields[fieldNew]}
	if req.Old == "" || req.New == "" {
		return msgMissingUsername
	}
	reqID := uuid.NewString()
	log := logging.L().With("request_id", reqID, "user", userID(e.User), "old", req.Old, "new", req.New)

	logErr := a.platform.SendEmbed(rec.LogChannelID(), renameEmbed(e.User, req, reqID))
	if logErr != nil {
		log.Error("log embed failed", "channel", rec.LogChannelID(), "error", logErr)
	}

	// The console applies lines in arrival order; never send add without remove.
	if err := a.emit(rec.WhitelistChannelID(), whitelistRemoveLine(req.Old), reqID); err != nil {
		log.Error("rename command failed", "channel", rec.WhitelistChannelID(), "error", err)
		return outcome("✅ Rename completed!", logErr, err)
	}
	if err := a.emit(rec.WhitelistChannelID(), whitelistAddLine(req.New), reqID); err != nil {
		// Old name is already off the whitelist; staff has to re-add by hand.
		log.Error("rename incomplete: old name removed, new name not added", "channel", rec.WhitelistChannelID(), "error", err)
		if embedErr := a.platform.SendEmbed(rec.LogChannelID(), renameIncompleteEmbed(e.User, req, reqID)); embedErr != nil {
			log.Error("incomplete rename embed failed", "channel", rec.LogChannelID(), "error", embedErr)
		}
		a.mirrorAudit(fmt.Sprintf("⚠️ %s rename `%s` to `%s` incomplete: `%s` removed, `%s` not added", userTag(e.User), req.Old, req.New, req.Old, req.New))
		return fmt.Sprintf(msgRenameIncomplete, req.Old, req.New)
	}

	log.Info("rename request processed")
	a.mirrorAudit(fmt.Sprintf("%s renamed `%s` to `%s`", userTag(e.User), req.Old, req.New))
	return outcome("✅ Rename completed!", logErr, nil)
}

// emit sends one console line and mirrors it to the feed once delivered.
func (a *App) emit(channelID, line, reqID string) error {
	if err := a.platform.SendText(channelID, line); err != nil {
		return fmt.Errorf("send %q: %w", line, err)
	}
	logging.L().Info("console command emitted", "request_id", reqID, "channel", channelID, "command", line)
	if a.feed != nil {
		a.feed.Publish(line)
	}
	return nil
}

func (a *App) lookupProfile(ctx context.Context, name string) string {
	if a.Profiles == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, profileLookupTimeout)
	defer cancel()

	p, err := a.Profiles.Lookup(ctx, name)
	if err != nil {
		if !errors.Is(err, mojang.ErrNotFound) {
			logging.L().Warn("profile lookup failed", "username", name, "error", err)
		}
		return ""
	}
	return p.ID
}

func (a *App) mirrorAudit(content string) {
	if a.mirror == nil {
		return
	}
	if err := a.mirror.Mirror(content); err != nil {
		logging.L().Warn("audit mirror failed", "error", err)
	}
}

// outcome picks the requester-facing text. A failed console line means the
// request did not happen, so it is never reported as a success.
func outcome(success string, logErr, cmdErr error) string {
	switch {
	case cmdErr != nil && errors.Is(cmdErr, ErrChannelUnavailable):
		return "❌ The whitelist channel is unavailable right now, so your request was not sent. Please try again later or contact staff."
	case cmdErr != nil:
		return "❌ Your request could not be sent to the server console. Please try again later or contact staff."
	case logErr != nil:
		return success + " (The audit log entry could not be posted.)"
	default:
		return success
	}
}

func whitelistEmbed(u *discordgo.User, req WhitelistRequest, ed edition.Edition, reqID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "📥 Whitelist Added",
		Color: whitelistEmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: userTag(u), Inline: true},
			{Name: "Username", Value: req.Username, Inline: true},
			{Name: "Edition", Value: ed.String(), Inline: true},
		},
		Thumbnail: avatarThumbnail(u),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Request " + reqID},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func renameEmbed(u *discordgo.User, req RenameRequest, reqID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "✏️ Username Renamed",
		Color: renameEmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: userTag(u), Inline: true},
			{Name: "Old Username", Value: req.Old, Inline: true},
			{Name: "New Username", Value: req.New, Inline: true},
		},
		Thumbnail: avatarThumbnail(u),
		Footer:    &discordgo.MessageEmbedFooter{Text: "Request " + reqID},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func renameIncompleteEmbed(u *discordgo.User, req RenameRequest, reqID string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "⚠️ Rename Incomplete",
		Description: "The old name was removed but the new name was never added. Add it manually.",
		Color:       incompleteEmbedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "User", Value: userTag(u), Inline: true},
			{Name: "Removed", Value: req.Old, Inline: true},
			{Name: "Not Added", Value: req.New, Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Request " + reqID},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

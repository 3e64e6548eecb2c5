package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Event is the closed set of interactions the router understands:
// *SlashCommand, *ButtonClick and *ModalSubmit.
type Event interface {
	invocation() *Invocation
}

// Invocation carries what every event knows about its origin.
type Invocation struct {
	Interaction *discordgo.Interaction
	User        *discordgo.User
	ChannelID   string
	GuildID     string
}

func (inv *Invocation) invocation() *Invocation { return inv }

type SlashCommand struct {
	Invocation
	Name string
}

type ButtonClick struct {
	Invocation
	CustomID string
}

type ModalSubmit struct {
	Invocation
	CustomID string
	Fields   map[string]string
}

// eventFromInteraction narrows a gateway interaction to an Event. Interaction
// kinds the bot never handles (autocomplete, selects, pings) report false.
func eventFromInteraction(i *discordgo.Interaction) (Event, bool) {
	if i == nil {
		return nil, false
	}
	inv := Invocation{
		Interaction: i,
		User:        invoker(i),
		ChannelID:   i.ChannelID,
		GuildID:     i.GuildID,
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		return &SlashCommand{Invocation: inv, Name: i.ApplicationCommandData().Name}, true
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		if data.ComponentType != discordgo.ButtonComponent {
			return nil, false
		}
		return &ButtonClick{Invocation: inv, CustomID: data.CustomID}, true
	case discordgo.InteractionModalSubmit:
		data := i.ModalSubmitData()
		return &ModalSubmit{Invocation: inv, CustomID: data.CustomID, Fields: modalFields(data.Components)}, true
	}
	return nil, false
}

func invoker(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// modalFields flattens submitted text inputs into custom id -> trimmed value.
func modalFields(rows []discordgo.MessageComponent) map[string]string {
	out := make(map[string]string)
	for _, row := range rows {
		var comps []discordgo.MessageComponent
		switch r := row.(type) {
		case *discordgo.ActionsRow:
			comps = r.Components
		case discordgo.ActionsRow:
			comps = r.Components
		}
		for _, c := range comps {
			switch ti := c.(type) {
			case *discordgo.TextInput:
				out[ti.CustomID] = strings.TrimSpace(ti.Value)
			case discordgo.TextInput:
				out[ti.CustomID] = strings.TrimSpace(ti.Value)
			}
		}
	}
	return out
}

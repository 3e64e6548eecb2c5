package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestEventFromInteraction(t *testing.T) {
	member := &discordgo.Member{User: &discordgo.User{ID: "member"}}

	tests := []struct {
		name   string
		in     *discordgo.Interaction
		wantOK bool
		check  func(t *testing.T, ev Event)
	}{
		{
			name: "slash command",
			in: &discordgo.Interaction{
				Type:      discordgo.InteractionApplicationCommand,
				ChannelID: "c1",
				GuildID:   "g1",
				Member:    member,
				Data:      discordgo.ApplicationCommandInteractionData{Name: "whitelist-panel"},
			},
			wantOK: true,
			check: func(t *testing.T, ev Event) {
				sc, ok := ev.(*SlashCommand)
				if !ok {
					t.Fatalf("event = %T, want *SlashCommand", ev)
				}
				if sc.Name != "whitelist-panel" || sc.ChannelID != "c1" || sc.GuildID != "g1" {
					t.Errorf("slash = %+v", sc)
				}
				if sc.User == nil || sc.User.ID != "member" {
					t.Errorf("user = %+v, want member user", sc.User)
				}
			},
		},
		{
			name: "button in DM uses top-level user",
			in: &discordgo.Interaction{
				Type: discordgo.InteractionMessageComponent,
				User: &discordgo.User{ID: "dm-user"},
				Data: discordgo.MessageComponentInteractionData{CustomID: "rename", ComponentType: discordgo.ButtonComponent},
			},
			wantOK: true,
			check: func(t *testing.T, ev Event) {
				bc, ok := ev.(*ButtonClick)
				if !ok {
					t.Fatalf("event = %T, want *ButtonClick", ev)
				}
				if bc.CustomID != "rename" || bc.User.ID != "dm-user" {
					t.Errorf("button = %+v", bc)
				}
			},
		},
		{
			name: "select menu ignored",
			in: &discordgo.Interaction{
				Type: discordgo.InteractionMessageComponent,
				Data: discordgo.MessageComponentInteractionData{CustomID: "whitelist", ComponentType: discordgo.SelectMenuComponent},
			},
			wantOK: false,
		},
		{
			name: "modal submit",
			in: &discordgo.Interaction{
				Type:   discordgo.InteractionModalSubmit,
				Member: member,
				Data: discordgo.ModalSubmitInteractionData{
					CustomID: "rename_modal",
					Components: []discordgo.MessageComponent{
						&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
							&discordgo.TextInput{CustomID: "old", Value: "  Alex "},
						}},
						&discordgo.ActionsRow{Components: []discordgo.MessageComponent{
							&discordgo.TextInput{CustomID: "new", Value: "Alexx"},
						}},
					},
				},
			},
			wantOK: true,
			check: func(t *testing.T, ev Event) {
				ms, ok := ev.(*ModalSubmit)
				if !ok {
					t.Fatalf("event = %T, want *ModalSubmit", ev)
				}
				if ms.CustomID != "rename_modal" {
					t.Errorf("custom id = %q", ms.CustomID)
				}
				if ms.Fields["old"] != "Alex" || ms.Fields["new"] != "Alexx" {
					t.Errorf("fields = %v", ms.Fields)
				}
			},
		},
		{
			name:   "ping ignored",
			in:     &discordgo.Interaction{Type: discordgo.InteractionPing},
			wantOK: false,
		},
		{
			name:   "nil",
			in:     nil,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := eventFromInteraction(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.check != nil {
				tt.check(t, ev)
			}
		})
	}
}

func TestModalFields_ValueComponents(t *testing.T) {
	rows := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.TextInput{CustomID: "username", Value: "Notch\n"},
		}},
	}
	if got := modalFields(rows)["username"]; got != "Notch" {
		t.Errorf("username = %q, want Notch", got)
	}
}

package usecase

import (
	"DiscordBuddy/domain"

	"github.com/bwmarrin/discordgo"
)

type DiscordCommandPing interface {
	PingCommandHandler(s DiscordSession, i *discordgo.InteractionCreate) error
}

func NewDiscordCommandPing() DiscordCommandPing {
	return &discordCommandPing{}
}

type discordCommandPing struct{}

func (d *discordCommandPing) PingCommandHandler(s DiscordSession, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: domain.PingCommandResponse,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func pingCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        domain.PingCommandName,
		Type:        discordgo.ChatApplicationCommand,
		Description: domain.PingCommandDescription,
	}
}

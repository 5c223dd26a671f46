package usecase

import "github.com/bwmarrin/discordgo"

// DiscordSession is the part of *discordgo.Session the handlers use.
type DiscordSession interface {
	InteractionRespond(
		interaction *discordgo.Interaction,
		resp *discordgo.InteractionResponse,
		options ...discordgo.RequestOption,
	) error

	ChannelMessageSend(
		channelID string,
		content string,
		options ...discordgo.RequestOption,
	) (*discordgo.Message, error)

	GuildMemberRoleAdd(
		guildID string,
		userID string,
		roleID string,
		options ...discordgo.RequestOption,
	) error

	ApplicationCommands(
		appID string,
		guildID string,
		options ...discordgo.RequestOption,
	) ([]*discordgo.ApplicationCommand, error)

	ApplicationCommandCreate(
		appID string,
		guildID string,
		cmd *discordgo.ApplicationCommand,
		options ...discordgo.RequestOption,
	) (*discordgo.ApplicationCommand, error)

	ApplicationCommandDelete(
		appID string,
		guildID string,
		cmdID string,
		options ...discordgo.RequestOption,
	) error
}

var _ DiscordSession = (*discordgo.Session)(nil)

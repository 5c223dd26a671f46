package usecase

import (
	"DiscordBuddy/domain"
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func commandInteraction(name string) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:      "interaction-1",
			Type:    discordgo.InteractionApplicationCommand,
			GuildID: "guild-1",
			Data: discordgo.ApplicationCommandInteractionData{
				ID:   "command-1",
				Name: name,
			},
		},
	}
}

func pingConfig() *domain.Config {
	return &domain.Config{Features: []string{domain.FeaturePing}}
}

func TestPingCommandHandler(t *testing.T) {
	var buf bytes.Buffer
	session := &mockDiscordSession{}
	command := NewDiscordCommand(pingConfig(), session, newTestLogger(&buf))

	command.CommandHandler(session, commandInteraction(domain.PingCommandName))

	require.Len(t, session.Responses, 1)
	assert.Equal(t, []string{"InteractionRespond"}, session.calls())

	resp := session.Responses[0]
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Pong!", resp.Data.Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
}

func TestPingCommandHandlerError(t *testing.T) {
	var buf bytes.Buffer
	session := &mockDiscordSession{RespondErr: errors.New("unknown interaction")}
	command := NewDiscordCommand(pingConfig(), session, newTestLogger(&buf))

	command.CommandHandler(session, commandInteraction(domain.PingCommandName))

	assert.Equal(t, []string{"InteractionRespond"}, session.calls())
	assert.Contains(t, buf.String(), "error handling command")
	assert.Contains(t, buf.String(), "unknown interaction")
}

func TestCommandHandlerIgnores(t *testing.T) {
	var buf bytes.Buffer
	session := &mockDiscordSession{}
	command := NewDiscordCommand(pingConfig(), session, newTestLogger(&buf))

	command.CommandHandler(session, commandInteraction("role_sync"))

	component := commandInteraction(domain.PingCommandName)
	component.Type = discordgo.InteractionMessageComponent
	component.Data = discordgo.MessageComponentInteractionData{CustomID: "button"}
	command.CommandHandler(session, component)

	assert.Empty(t, session.calls())
}

func TestInitCommands(t *testing.T) {
	var buf bytes.Buffer
	session := &mockDiscordSession{
		Existing: []*discordgo.ApplicationCommand{
			{ID: "stale-ping", Name: domain.PingCommandName},
			{ID: "other", Name: "something_else"},
		},
	}
	command := NewDiscordCommand(pingConfig(), session, newTestLogger(&buf))

	require.NoError(t, command.InitCommands("app-1"))

	assert.Equal(t, []string{"stale-ping"}, session.Deleted)
	require.Len(t, session.Created, 1)
	assert.Equal(t, domain.PingCommandName, session.Created[0].Name)
	assert.Equal(t, "Replies with pong!", session.Created[0].Description)
	assert.Equal(t, discordgo.ChatApplicationCommand, session.Created[0].Type)
}

func TestInitCommandsErrors(t *testing.T) {
	var buf bytes.Buffer
	session := &mockDiscordSession{ListCmdErr: errors.New("401 Unauthorized")}
	command := NewDiscordCommand(pingConfig(), session, newTestLogger(&buf))
	assert.ErrorContains(t, command.InitCommands("app-1"), "401")

	session = &mockDiscordSession{CreateCmdErr: errors.New("403 Forbidden")}
	command = NewDiscordCommand(pingConfig(), session, newTestLogger(&buf))
	assert.ErrorContains(t, command.InitCommands("app-1"), "403")
}

func TestInitCommandsPingDisabled(t *testing.T) {
	var buf bytes.Buffer
	session := &mockDiscordSession{}
	cfg := &domain.Config{Features: []string{domain.FeatureMemberJoin}}
	command := NewDiscordCommand(cfg, session, newTestLogger(&buf))

	require.NoError(t, command.InitCommands("app-1"))
	assert.Empty(t, session.calls())

	command.CommandHandler(session, commandInteraction(domain.PingCommandName))
	assert.Empty(t, session.calls())
}

package usecase

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// mockDiscordSession records every call instead of talking to Discord.
type mockDiscordSession struct {
	mu sync.Mutex

	Calls        []string
	Responses    []*discordgo.InteractionResponse
	Messages     []sentMessage
	RoleAdds     []roleAdd
	Created      []*discordgo.ApplicationCommand
	Deleted      []string
	Existing     []*discordgo.ApplicationCommand
	SendErr      error
	RoleAddErr   error
	RespondErr   error
	ListCmdErr   error
	CreateCmdErr error
}

type sentMessage struct {
	ChannelID string
	Content   string
}

type roleAdd struct {
	GuildID string
	UserID  string
	RoleID  string
}

func (m *mockDiscordSession) call(name string) {
	m.Calls = append(m.Calls, name)
}

func (m *mockDiscordSession) InteractionRespond(
	_ *discordgo.Interaction,
	resp *discordgo.InteractionResponse,
	_ ...discordgo.RequestOption,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.call("InteractionRespond")
	if m.RespondErr != nil {
		return m.RespondErr
	}
	m.Responses = append(m.Responses, resp)
	return nil
}

func (m *mockDiscordSession) ChannelMessageSend(
	channelID string,
	content string,
	_ ...discordgo.RequestOption,
) (*discordgo.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.call("ChannelMessageSend")
	if m.SendErr != nil {
		return nil, m.SendErr
	}
	m.Messages = append(m.Messages, sentMessage{ChannelID: channelID, Content: content})
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func (m *mockDiscordSession) GuildMemberRoleAdd(
	guildID string,
	userID string,
	roleID string,
	_ ...discordgo.RequestOption,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.call("GuildMemberRoleAdd")
	if m.RoleAddErr != nil {
		return m.RoleAddErr
	}
	m.RoleAdds = append(m.RoleAdds, roleAdd{GuildID: guildID, UserID: userID, RoleID: roleID})
	return nil
}

func (m *mockDiscordSession) ApplicationCommands(
	_ string,
	_ string,
	_ ...discordgo.RequestOption,
) ([]*discordgo.ApplicationCommand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.call("ApplicationCommands")
	return m.Existing, m.ListCmdErr
}

func (m *mockDiscordSession) ApplicationCommandCreate(
	appID string,
	_ string,
	cmd *discordgo.ApplicationCommand,
	_ ...discordgo.RequestOption,
) (*discordgo.ApplicationCommand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.call("ApplicationCommandCreate")
	if m.CreateCmdErr != nil {
		return nil, m.CreateCmdErr
	}
	m.Created = append(m.Created, cmd)
	created := *cmd
	created.ApplicationID = appID
	created.ID = fmt.Sprintf("%d", len(m.Created))
	return &created, nil
}

func (m *mockDiscordSession) ApplicationCommandDelete(
	_ string,
	_ string,
	cmdID string,
	_ ...discordgo.RequestOption,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.call("ApplicationCommandDelete")
	m.Deleted = append(m.Deleted, cmdID)
	return nil
}

func (m *mockDiscordSession) messages() []sentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentMessage(nil), m.Messages...)
}

func (m *mockDiscordSession) roleAdds() []roleAdd {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]roleAdd(nil), m.RoleAdds...)
}

func (m *mockDiscordSession) calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}

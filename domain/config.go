package domain

import (
	"slices"
	"time"
)

const (
	ConfigFileName = "config.json"
	EnvBotToken    = "DISCORD_BOT_TOKEN"

	FeaturePing       = "ping"
	FeatureMemberJoin = "member_join"

	PingCommandName        = "ping"
	PingCommandDescription = "Replies with pong!"
	PingCommandResponse    = "Pong!"
)

var KnownFeatures = []string{FeaturePing, FeatureMemberJoin}

type Config struct {
	LogsPath          string        `json:"logs_path" yaml:"logs_path"`
	Discord           DiscordConfig `json:"discord" yaml:"discord"`
	GreetingChannelID Snowflake     `json:"greeting_channel_id,omitempty" yaml:"greeting_channel_id,omitempty"`
	MemberRoleID      Snowflake     `json:"member_role_id,omitempty" yaml:"member_role_id,omitempty"`
	SleepTime         *Seconds      `json:"sleep_time,omitempty" yaml:"sleep_time,omitempty"`
	JournalPath       string        `json:"journal_path,omitempty" yaml:"journal_path,omitempty"`
	Features          []string      `json:"features,omitempty" yaml:"features,omitempty"`
}

type DiscordConfig struct {
	BotToken string `json:"bot_token" yaml:"bot_token"`
}

func (c *Config) FeatureEnabled(name string) bool {
	return slices.Contains(c.Features, name)
}

// WelcomeDelay is zero when sleep_time is unset.
func (c *Config) WelcomeDelay() time.Duration {
	if c.SleepTime == nil {
		return 0
	}
	return c.SleepTime.Duration()
}

package usecase

import (
	"DiscordBuddy/domain"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/lmittmann/tint"
)

var errInvalidMemberJoin = errors.New("invalid member join event")

type JoinRecorder interface {
	Record(record domain.JoinRecord) error
}

type DiscordMemberJoin interface {
	MemberJoinHandler(s DiscordSession, m *discordgo.GuildMemberAdd)
}

// NewDiscordMemberJoin returns a handler that welcomes each joining member and
// gives them the member role once the configured delay has passed. The delay
// runs on scheduler, so the handler itself never blocks. recorder may be nil.
func NewDiscordMemberJoin(
	config *domain.Config,
	scheduler gocron.Scheduler,
	clock clockwork.Clock,
	recorder JoinRecorder,
	logger *slog.Logger,
) DiscordMemberJoin {
	return &discordMemberJoin{
		config:    config,
		scheduler: scheduler,
		clock:     clock,
		recorder:  recorder,
		logger:    logger,
	}
}

type discordMemberJoin struct {
	config    *domain.Config
	scheduler gocron.Scheduler
	clock     clockwork.Clock
	recorder  JoinRecorder
	logger    *slog.Logger
}

func (d *discordMemberJoin) MemberJoinHandler(s DiscordSession, m *discordgo.GuildMemberAdd) {
	event, err := newMemberJoin(m)
	if err != nil {
		d.logger.Error("dropping member join", tint.Err(err))
		return
	}

	logger := d.logger.With(
		"guild_id", event.GuildID,
		slog.Group("user", "id", event.UserID, "username", event.Username),
	)

	startAt := gocron.OneTimeJobStartImmediately()
	delay := d.config.WelcomeDelay()
	if delay > 0 {
		startAt = gocron.OneTimeJobStartDateTime(d.clock.Now().Add(delay))
	}

	_, err = d.scheduler.NewJob(
		gocron.OneTimeJob(startAt),
		gocron.NewTask(func() {
			d.welcome(s, event, logger)
		}),
		gocron.WithName("welcome-"+event.UserID),
	)
	if err != nil {
		logger.Error("error scheduling welcome", tint.Err(err))
		return
	}
	logger.Debug("scheduled welcome", "delay", delay)
}

func (d *discordMemberJoin) welcome(s DiscordSession, event domain.MemberJoin, logger *slog.Logger) {
	record := domain.JoinRecord{
		GuildID:  event.GuildID,
		UserID:   event.UserID,
		JoinedAt: event.JoinedAt,
	}

	err := d.sendWelcome(s, event, &record)
	if err != nil {
		logger.Error("error welcoming member", tint.Err(err))
		record.Error = err.Error()
	} else {
		logger.Info("welcomed member")
	}

	record.HandledAt = d.clock.Now()
	if d.recorder == nil {
		return
	}
	if recordErr := d.recorder.Record(record); recordErr != nil {
		logger.Error("error recording member join", tint.Err(recordErr))
	}
}

func (d *discordMemberJoin) sendWelcome(s DiscordSession, event domain.MemberJoin, record *domain.JoinRecord) error {
	content, err := domain.RenderTemplate(domain.WelcomeTemplate, event.Mention)
	if err != nil {
		return err
	}

	channelID := d.config.GreetingChannelID.String()
	if _, err = s.ChannelMessageSend(channelID, content); err != nil {
		return fmt.Errorf("send welcome to channel %v: %w", channelID, err)
	}
	record.Welcomed = true

	roleID := d.config.MemberRoleID.String()
	if err = s.GuildMemberRoleAdd(event.GuildID, event.UserID, roleID); err != nil {
		return fmt.Errorf("add role %v: %w", roleID, err)
	}
	record.RoleAssigned = true

	return nil
}

func newMemberJoin(m *discordgo.GuildMemberAdd) (domain.MemberJoin, error) {
	if m == nil || m.Member == nil || m.User == nil {
		return domain.MemberJoin{}, errInvalidMemberJoin
	}
	if m.GuildID == "" || m.User.ID == "" {
		return domain.MemberJoin{}, fmt.Errorf("%w: missing guild or user id", errInvalidMemberJoin)
	}

	return domain.MemberJoin{
		GuildID:  m.GuildID,
		UserID:   m.User.ID,
		Username: m.User.Username,
		Mention:  m.User.Mention(),
		JoinedAt: m.JoinedAt,
	}, nil
}

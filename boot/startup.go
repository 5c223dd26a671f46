package boot

import (
	"DiscordBuddy/domain"
	"DiscordBuddy/storage"
	"DiscordBuddy/usecase"
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
)

// Run loads the config at configPath, sets up logging and runs the bot until
// the process receives SIGINT or SIGTERM.
func Run(ctx context.Context, configPath string) error {
	config, err := LoadConfig(configPath)
	if err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	logging, err := InitLog(config.LogsPath, clock)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := logging.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "ERROR closeLog: %v\n", closeErr)
		}
	}()

	logger := logging.Logger
	logger.Info("starting the bot...", "config_file", configPath, "features", config.Features)

	ctx, stop := NotifyShutdown(ctx, logger, os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot, err := NewBot(config, logger, clock)
	if err != nil {
		logger.Error("error creating bot", tint.Err(err))
		return err
	}

	return bot.Run(ctx)
}

// gatewaySession is the *discordgo.Session surface the runtime drives.
type gatewaySession interface {
	usecase.DiscordSession
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	UserID() string
}

type discordgoSession struct {
	*discordgo.Session
}

func (d discordgoSession) UserID() string {
	if d.State == nil || d.State.User == nil {
		return ""
	}
	return d.State.User.ID
}

type Bot struct {
	config     *domain.Config
	logger     *slog.Logger
	session    gatewaySession
	scheduler  gocron.Scheduler
	journal    *storage.Journal
	command    usecase.DiscordCommand
	memberJoin usecase.DiscordMemberJoin
}

func NewBot(config *domain.Config, logger *slog.Logger, clock clockwork.Clock) (*Bot, error) {
	dcSession, err := discordgo.New("Bot " + config.Discord.BotToken)
	if err != nil {
		return nil, err
	}

	dcSession.Identify.Intents = discordgo.IntentsGuilds
	if config.FeatureEnabled(domain.FeatureMemberJoin) {
		dcSession.Identify.Intents |= discordgo.IntentsGuildMembers
	}
	dcSession.LogLevel = discordgo.LogInformational
	discordgo.Logger = discordgoLoggerFunc(
		context.Background(),
		logger.Handler().WithAttrs([]slog.Attr{slog.String(loggerNameKey, "discordgo")}),
	)

	return newBot(config, logger, clock, discordgoSession{Session: dcSession})
}

func newBot(config *domain.Config, logger *slog.Logger, clock clockwork.Clock, session gatewaySession) (*Bot, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithClock(clock), gocron.WithLogger(logger.With(loggerNameKey, "gocron")))
	if err != nil {
		return nil, err
	}

	b := &Bot{
		config:    config,
		logger:    logger.With(loggerNameKey, "discord"),
		session:   session,
		scheduler: scheduler,
	}

	b.command = usecase.NewDiscordCommand(config, session, b.logger.With("feature", domain.FeaturePing))

	if config.FeatureEnabled(domain.FeatureMemberJoin) {
		var recorder usecase.JoinRecorder
		if config.JournalPath != "" {
			b.journal, err = storage.Open(config.JournalPath)
			if err != nil {
				_ = scheduler.Shutdown()
				return nil, err
			}
			recorder = b.journal
		}
		b.memberJoin = usecase.NewDiscordMemberJoin(
			config,
			scheduler,
			clock,
			recorder,
			b.logger.With("feature", domain.FeatureMemberJoin),
		)
	}

	return b, nil
}

// Run connects to the gateway and blocks until ctx is done. Reconnects after
// transient disconnects are left to discordgo.
func (b *Bot) Run(ctx context.Context) error {
	b.scheduler.Start()

	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info("logged in", "username", r.User.Username, "discriminator", r.User.Discriminator)
	})
	b.session.AddHandler(func(s *discordgo.Session, d *discordgo.Disconnect) {
		b.logger.Error("disconnected from gateway")
	})

	if b.config.FeatureEnabled(domain.FeaturePing) {
		b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			b.command.CommandHandler(s, i)
		})
	}
	if b.memberJoin != nil {
		b.session.AddHandler(func(s *discordgo.Session, m *discordgo.GuildMemberAdd) {
			b.memberJoin.MemberJoinHandler(s, m)
		})
	}

	if err := b.session.Open(); err != nil {
		b.logger.Error("error opening discord connection", tint.Err(err))
		_ = b.shutdown()
		return fmt.Errorf("open discord session: %w", err)
	}

	if err := b.command.InitCommands(b.session.UserID()); err != nil {
		b.logger.Error("error registering commands", tint.Err(err))
		_ = b.shutdown()
		return fmt.Errorf("register commands: %w", err)
	}

	<-ctx.Done()
	b.logger.Info("shutting down the bot...")

	err := b.shutdown()
	b.logger.Error("disconnected, stopping")
	return err
}

func (b *Bot) shutdown() error {
	var g errgroup.Group
	g.Go(b.session.Close)
	g.Go(func() error {
		if err := b.scheduler.Shutdown(); err != nil {
			return err
		}
		if b.journal != nil {
			return b.journal.Close()
		}
		return nil
	})
	return g.Wait()
}

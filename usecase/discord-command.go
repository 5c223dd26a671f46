package usecase

import (
	"DiscordBuddy/domain"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
)

// Commands are registered globally, not per guild.
const globalScope = ""

type DiscordCommand interface {
	InitCommands(appID string) error
	CommandHandler(s DiscordSession, i *discordgo.InteractionCreate)
}

type commandHandlerFunc func(s DiscordSession, i *discordgo.InteractionCreate) error

type slashCommand struct {
	definition *discordgo.ApplicationCommand
	handler    commandHandlerFunc
}

func NewDiscordCommand(config *domain.Config, dcSession DiscordSession, logger *slog.Logger) DiscordCommand {
	d := &discordCommand{
		config:    config,
		dcSession: dcSession,
		logger:    logger,
		commands:  map[string]slashCommand{},
	}

	if config.FeatureEnabled(domain.FeaturePing) {
		ping := NewDiscordCommandPing()
		d.commands[domain.PingCommandName] = slashCommand{
			definition: pingCommand(),
			handler:    ping.PingCommandHandler,
		}
	}

	return d
}

type discordCommand struct {
	config    *domain.Config
	dcSession DiscordSession
	logger    *slog.Logger
	commands  map[string]slashCommand
}

func (d *discordCommand) InitCommands(appID string) error {
	if len(d.commands) == 0 {
		return nil
	}

	err := d.unregisterCommands(appID)
	if err != nil {
		return err
	}

	err = d.registerCommands(appID)
	if err != nil {
		return err
	}

	return nil
}

func (d *discordCommand) unregisterCommands(appID string) error {
	applications, err := d.dcSession.ApplicationCommands(appID, globalScope)
	if err != nil {
		return err
	}

	for _, application := range applications {
		if _, ok := d.commands[application.Name]; !ok {
			continue
		}

		err := d.dcSession.ApplicationCommandDelete(appID, globalScope, application.ID)
		if err != nil {
			return err
		}
		d.logger.Debug("deleted stale command", "command", application.Name, "id", application.ID)
	}

	return nil
}

func (d *discordCommand) registerCommands(appID string) error {
	for name, command := range d.commands {
		if _, err := d.dcSession.ApplicationCommandCreate(appID, globalScope, command.definition); err != nil {
			return err
		}
		d.logger.Info("registered command", "command", name)
	}

	return nil
}

func (d *discordCommand) CommandHandler(s DiscordSession, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	cmdName := i.ApplicationCommandData().Name
	command, ok := d.commands[cmdName]
	if !ok {
		d.logger.Warn("unknown command", "command", cmdName)
		return
	}

	if err := command.handler(s, i); err != nil {
		d.logger.Error("error handling command", "command", cmdName, tint.Err(err))
	}
}

package boot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/lmittmann/tint"
)

const loggerNameKey = "logger"

var defaultLogWriter io.Writer = os.Stderr

var discordGoLogLevels = map[int]slog.Level{
	discordgo.LogDebug:         slog.LevelDebug,
	discordgo.LogError:         slog.LevelError,
	discordgo.LogWarning:       slog.LevelWarn,
	discordgo.LogInformational: slog.LevelInfo,
}

// Logging owns the process logger and the rotating file sink behind it.
type Logging struct {
	Logger    *slog.Logger
	file      *rotatingFile
	scheduler gocron.Scheduler
}

// InitLog creates logsPath if needed and returns a logger writing every level
// to stderr and to a log file rotated each day at midnight.
func InitLog(logsPath string, clock clockwork.Clock) (*Logging, error) {
	console := tint.NewHandler(defaultLogWriter, &tint.Options{Level: slog.LevelDebug})

	if _, err := os.Stat(logsPath); errors.Is(err, os.ErrNotExist) {
		slog.New(console).Warn("logs folder does not exist, creating...", "logs_path", logsPath)
	}
	if err := os.MkdirAll(logsPath, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create logs folder: %w", err)
	}

	file, err := openRotatingFile(logsPath, clock)
	if err != nil {
		return nil, err
	}

	logger := slog.New(fanoutHandler{
		console,
		slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	})

	scheduler, err := gocron.NewScheduler(gocron.WithClock(clock), gocron.WithLogger(logger.With(loggerNameKey, "gocron")))
	if err != nil {
		file.Close()
		return nil, err
	}

	_, err = scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(func() {
			if rotateErr := file.Rotate(); rotateErr != nil {
				logger.Error("error rotating log file", tint.Err(rotateErr))
				return
			}
			logger.Debug("rotated log file", "file", file.Name())
		}),
		gocron.WithName("rotate-log"),
	)
	if err != nil {
		file.Close()
		return nil, err
	}
	scheduler.Start()

	return &Logging{Logger: logger, file: file, scheduler: scheduler}, nil
}

func (l *Logging) Rotate() error {
	return l.file.Rotate()
}

func (l *Logging) FileName() string {
	return l.file.Name()
}

func (l *Logging) Close() error {
	return errors.Join(l.scheduler.Shutdown(), l.file.Close())
}

// fanoutHandler passes each record to every handler enabled for its level.
type fanoutHandler []slog.Handler

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make(fanoutHandler, 0, len(f))
	for _, h := range f {
		handlers = append(handlers, h.WithAttrs(attrs))
	}
	return handlers
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	handlers := make(fanoutHandler, 0, len(f))
	for _, h := range f {
		handlers = append(handlers, h.WithGroup(name))
	}
	return handlers
}

func discordgoLoggerFunc(ctx context.Context, handler slog.Handler) func(
	msgL int,
	caller int,
	format string,
	args ...any,
) {
	log := slog.New(handler)
	return func(msgL int, _ int, format string, args ...any) {
		level, ok := discordGoLogLevels[msgL]
		if !ok {
			level = slog.LevelInfo
		}
		log.LogAttrs(
			ctx,
			level,
			strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", ""),
		)
	}
}

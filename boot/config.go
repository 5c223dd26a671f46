package boot

import (
	"DiscordBuddy/domain"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var errMissing = errors.New("missing required field")

// maxSleepTime bounds sleep_time to what a time.Duration can hold.
const maxSleepTime = domain.Seconds(math.MaxInt64 / float64(time.Second))

func LoadConfig(path string) (*domain.Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}
	defer file.Close()

	all, err := io.ReadAll(file)
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}

	var config domain.Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(all, &config)
	default:
		err = json.Unmarshal(all, &config)
	}
	if err != nil {
		return nil, &domain.ConfigError{Path: path, Err: err}
	}

	if token := os.Getenv(domain.EnvBotToken); token != "" {
		config.Discord.BotToken = token
	}

	if len(config.Features) == 0 {
		if config.GreetingChannelID.IsZero() {
			config.Features = []string{domain.FeaturePing}
		} else {
			config.Features = []string{domain.FeatureMemberJoin}
		}
	}

	if err = validateConfig(&config); err != nil {
		var cfgErr *domain.ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.Path = path
		}
		return nil, err
	}
	return &config, nil
}

func validateConfig(config *domain.Config) error {
	if config.LogsPath == "" {
		return &domain.ConfigError{Field: "logs_path", Err: errMissing}
	}
	if config.Discord.BotToken == "" {
		return &domain.ConfigError{Field: "discord.bot_token", Err: errMissing}
	}

	for _, feature := range config.Features {
		if !slices.Contains(domain.KnownFeatures, feature) {
			return &domain.ConfigError{Field: "features", Err: fmt.Errorf("unknown feature: %v", feature)}
		}
	}

	if !config.FeatureEnabled(domain.FeatureMemberJoin) {
		return nil
	}

	if config.GreetingChannelID.IsZero() {
		return &domain.ConfigError{Field: "greeting_channel_id", Err: errMissing}
	}
	if config.MemberRoleID.IsZero() {
		return &domain.ConfigError{Field: "member_role_id", Err: errMissing}
	}
	if config.SleepTime == nil {
		return &domain.ConfigError{Field: "sleep_time", Err: errMissing}
	}
	if math.IsNaN(float64(*config.SleepTime)) || *config.SleepTime >= maxSleepTime {
		return &domain.ConfigError{Field: "sleep_time", Err: fmt.Errorf("out of range: %v", *config.SleepTime)}
	}
	if *config.SleepTime < 0 {
		return &domain.ConfigError{Field: "sleep_time", Err: fmt.Errorf("must not be negative: %v", *config.SleepTime)}
	}
	return nil
}

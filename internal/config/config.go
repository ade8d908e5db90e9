package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// BotConfig carries everything the Discord process needs. The token and both
// channel ids have no sane defaults; missing values are startup-fatal.
type BotConfig struct {
	Token                string
	LeaderboardChannelID string
	StocksChannelID      string
	DataDir              string
	LeaderboardEvery     time.Duration
}

type APIConfig struct {
	Addr    string
	DataDir string
}

type CLIConfig struct {
	DataDir string
}

func LoadBotFromEnv() (BotConfig, error) {
	loadDotenv()

	cfg := BotConfig{
		Token:                strings.TrimSpace(os.Getenv("DISCORD_BOT_TOKEN")),
		LeaderboardChannelID: strings.TrimSpace(os.Getenv("DISCORD_CHANNEL_ID_LEADERBOARD")),
		StocksChannelID:      strings.TrimSpace(os.Getenv("DISCORD_CHANNEL_ID_STOCKS")),
		DataDir:              envDefault("STONKBOT_DATA_DIR", "./backend"),
		LeaderboardEvery:     envDurationDefault("STONKBOT_LEADERBOARD_EVERY", time.Minute),
	}
	if cfg.Token == "" {
		return cfg, fmt.Errorf("DISCORD_BOT_TOKEN is required")
	}
	if cfg.LeaderboardChannelID == "" {
		return cfg, fmt.Errorf("DISCORD_CHANNEL_ID_LEADERBOARD is required")
	}
	if cfg.StocksChannelID == "" {
		return cfg, fmt.Errorf("DISCORD_CHANNEL_ID_STOCKS is required")
	}
	return cfg, nil
}

func LoadAPIFromEnv() APIConfig {
	loadDotenv()

	addr := strings.TrimSpace(os.Getenv("PORT"))
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("STONKBOT_API_ADDR", ":8080")
	}
	return APIConfig{
		Addr:    addr,
		DataDir: envDefault("STONKBOT_DATA_DIR", "./backend"),
	}
}

func LoadCLIFromEnv() CLIConfig {
	loadDotenv()
	return CLIConfig{
		DataDir: envDefault("STONKBOT_DATA_DIR", "./backend"),
	}
}

// loadDotenv merges a .env file if one exists; a missing file is fine.
func loadDotenv() {
	_ = godotenv.Load()
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

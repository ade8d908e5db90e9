package bot

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"stonkbot/internal/board"
	"stonkbot/internal/config"
	"stonkbot/internal/sched"
	"stonkbot/internal/store"

	"github.com/bwmarrin/discordgo"
)

// Bot wires the Discord transport to the leaderboard store. All core errors
// stop at this layer: query handlers turn them into user-visible replies,
// scheduled tasks log and move on.
type Bot struct {
	cfg       config.BotConfig
	log       *slog.Logger
	store     *store.Store
	session   *discordgo.Session
	usernames []string

	// sendEmbed is the only outbound path; tests swap it out.
	sendEmbed func(channelID string, embed *discordgo.MessageEmbed) error
}

func New(cfg config.BotConfig, logger *slog.Logger, st *store.Store) (*Bot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	b := &Bot{
		cfg:     cfg,
		log:     logger,
		store:   st,
		session: session,
	}
	b.sendEmbed = func(channelID string, embed *discordgo.MessageEmbed) error {
		_, err := session.ChannelMessageSendEmbed(channelID, embed)
		return err
	}

	names, err := st.Usernames()
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("load usernames: %w", err)
		}
		logger.Warn("username list missing, autocomplete will be empty", "err", err)
	}
	b.usernames = names

	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		logger.Info("logged in", "user", r.User.Username)
	})
	session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		b.handleInteraction(i)
	})
	return b, nil
}

// Start opens the gateway connection and registers the slash commands.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	appID := b.session.State.User.ID
	for _, cmd := range commands() {
		if _, err := b.session.ApplicationCommandCreate(appID, "", cmd); err != nil {
			return fmt.Errorf("register command %s: %w", cmd.Name, err)
		}
	}
	b.log.Info("commands registered", "count", len(commands()))
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// RegisterSchedule attaches the three scheduled tasks. The scheduler is
// expected to run in US/Eastern so the trading-hours gates line up with the
// market clock.
func (b *Bot) RegisterSchedule(s *sched.Scheduler) {
	s.Every("leaderboard-update", sched.Window(9, 15, 16, 15), b.LeaderboardUpdate)
	s.DailyAt("morning-baseline", 9, 30, sched.Weekday, b.CaptureMorningBaseline)
	s.DailyAt("daily-summary", 16, 0, sched.Weekday, b.SendDailySummary)
}

func commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "userinfo",
			Description: "Get user information",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "username",
					Description:  "Select a username",
					Required:     true,
					Autocomplete: true,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Get current leaderboard",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "Number of top users to display (default: 1)",
				},
			},
		},
	}
}

func (b *Bot) handleInteraction(i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		switch data.Name {
		case "userinfo":
			b.handleUserInfo(i, data)
		case "leaderboard":
			b.handleLeaderboard(i, data)
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(i)
	}
}

func (b *Bot) handleUserInfo(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	username := ""
	for _, opt := range data.Options {
		if opt.Name == "username" {
			username = opt.StringValue()
		}
	}

	snap, err := b.store.ReadLatest()
	if err != nil {
		b.respondText(i, fmt.Sprintf("Error fetching user info: %v", err))
		return
	}
	rec, ok := snap.User(username)
	if !ok {
		b.respondText(i, fmt.Sprintf("User '%s' not found.", username))
		return
	}
	b.respondEmbed(i, userInfoEmbed(username, rec, time.Now()))
}

func (b *Bot) handleLeaderboard(i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	count := 1
	for _, opt := range data.Options {
		if opt.Name == "count" {
			count = int(opt.IntValue())
		}
	}

	snap, err := b.store.ReadLatest()
	if err != nil {
		b.respondText(i, fmt.Sprintf("Error fetching leaderboard: %v", err))
		return
	}
	entries := board.TopN(snap, count)
	b.respondEmbed(i, leaderboardEmbed(entries, time.Now()))
}

func (b *Bot) handleAutocomplete(i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	current := ""
	for _, opt := range data.Options {
		if opt.Focused {
			current = opt.StringValue()
		}
	}

	matches := filterUsernames(b.usernames, current)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(matches))
	for _, name := range matches {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
	}
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		b.log.Error("autocomplete respond failed", "err", err)
	}
}

func (b *Bot) respondEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}},
	})
	if err != nil {
		b.log.Error("interaction respond failed", "err", err)
	}
}

func (b *Bot) respondText(i *discordgo.InteractionCreate, msg string) {
	err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: msg},
	})
	if err != nil {
		b.log.Error("interaction respond failed", "err", err)
	}
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"smbot/internal/bot"
	"smbot/internal/config"
	"smbot/internal/mailer"
	"smbot/internal/meeting"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "smbot",
		Usage: "Schedule meetings from a chat slash command and mail the invites.",
		Commands: []*cli.Command{
			runCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Read chat messages from stdin and handle /smbot commands.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "conversation", Value: "console_room", Usage: "Conversation id attached to stdin messages."},
			&cli.StringFlag{Name: "sender", Value: "console", Usage: "Sender identity attached to stdin messages."},
			&cli.StringFlag{Name: "sender-address", Usage: "Sender contact address, used as the event organizer."},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := setupLogger(cfg.LogLevel)

			smtp, err := mailer.New(logger, mailer.Config{
				Host:     cfg.SMTPHost,
				Port:     cfg.SMTPPort,
				Username: cfg.SMTPUsername,
				Password: cfg.SMTPPassword,
				From:     cfg.FromAddress,
			})
			if err != nil {
				return fmt.Errorf("create mailer: %w", err)
			}

			b := bot.New(logger, consoleChat{}, staticDirectory(cfg.Members), smtp,
				meeting.HostConfig{Host: cfg.PodHost, Port: cfg.PodPort})

			logger.Info("Reading commands from stdin.", "conversation", c.String("conversation"))
			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				b.HandleEvent(c.Context, bot.Event{
					Kind: bot.KindRoomMessage,
					Message: &bot.InboundMessage{
						ConversationID: c.String("conversation"),
						SenderID:       c.String("sender"),
						SenderAddress:  c.String("sender-address"),
						Text:           line,
					},
				})
			}
			return scanner.Err()
		},
	}
}

// consoleChat prints replies to stdout in place of the chat platform.
type consoleChat struct{}

func (consoleChat) SendReply(ctx context.Context, conversationID, html string) error {
	_, err := fmt.Printf("[%s] %s\n", conversationID, html)
	return err
}

// staticDirectory serves a fixed member map from configuration, standing in
// for the chat platform's user service.
type staticDirectory map[string]string

func (d staticDirectory) ListMembers(ctx context.Context, conversationID string) ([]string, error) {
	if len(d) == 0 {
		return nil, fmt.Errorf("no members configured for conversation %s", conversationID)
	}
	ids := make([]string, 0, len(d))
	for id := range d {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (d staticDirectory) ResolveAddresses(ctx context.Context, memberIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(memberIDs))
	for _, id := range memberIDs {
		if addr := d[id]; addr != "" {
			out[id] = addr
		}
	}
	return out, nil
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
}

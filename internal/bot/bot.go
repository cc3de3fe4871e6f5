// Package bot wires inbound chat events into the scheduling pipeline.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"smbot/internal/command"
	"smbot/internal/meeting"
	"smbot/internal/notify"
	"smbot/internal/schedule"
)

// EventKind tags an inbound chat platform event. The platform exposes many
// more hooks (room created, member promoted, ...); only the two message
// kinds carry logic, so only they exist here.
type EventKind int

const (
	KindRoomMessage EventKind = iota
	KindDirectMessage
)

// InboundMessage is one message delivered by the chat transport.
type InboundMessage struct {
	ConversationID string
	SenderID       string
	SenderAddress  string
	Text           string
}

// Event is the tagged-variant inbound event handed to the bot.
type Event struct {
	Kind    EventKind
	Message *InboundMessage
}

// Bot handles scheduling commands. Each inbound event is one independent,
// sequential unit of work; the collaborators are shared across events and
// must be safe for concurrent use.
type Bot struct {
	logger     *slog.Logger
	chat       notify.Chat
	directory  schedule.Directory
	dispatcher *notify.Dispatcher
	host       meeting.HostConfig
}

func New(logger *slog.Logger, chat notify.Chat, directory schedule.Directory, mailer notify.Mailer, host meeting.HostConfig) *Bot {
	return &Bot{
		logger:     logger,
		chat:       chat,
		directory:  directory,
		dispatcher: notify.NewDispatcher(logger, chat, mailer),
		host:       host,
	}
}

// HandleEvent dispatches one inbound event. Non-message kinds are no-ops.
// It never returns an error: every failure is resolved into a chat reply
// or a log line so the user is not left without feedback.
func (b *Bot) HandleEvent(ctx context.Context, ev Event) {
	switch ev.Kind {
	case KindRoomMessage, KindDirectMessage:
		if ev.Message != nil {
			b.handleMessage(ctx, ev.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *InboundMessage) {
	if !strings.HasPrefix(strings.TrimSpace(msg.Text), command.Name) {
		return
	}
	b.logger.Info("Handling scheduling command", "conversationID", msg.ConversationID, "sender", msg.SenderID)
	b.handleCommand(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *InboundMessage) {
	opts, err := command.Parse(msg.Text)
	if err != nil {
		b.logger.Info("Command rejected", "error", err)
		b.replyHelp(ctx, msg.ConversationID, err)
		return
	}
	if opts.Help {
		b.reply(ctx, msg.ConversationID, command.Usage())
		return
	}

	window, err := schedule.ResolveWindow(opts.Date, opts.Time, opts.Duration)
	if err != nil {
		b.logger.Info("Date/time rejected", "error", err)
		var derr *schedule.DateTimeError
		if errors.As(err, &derr) {
			b.replyHelp(ctx, msg.ConversationID, err)
		} else {
			b.reply(ctx, msg.ConversationID, "Failed to schedule meeting.")
		}
		return
	}

	participants, err := schedule.ResolveParticipants(ctx, b.directory, msg.ConversationID, msg.SenderID)
	if err != nil {
		b.logger.Error("Participant resolution failed", "conversationID", msg.ConversationID, "error", err)
		b.reply(ctx, msg.ConversationID, "Failed to schedule meeting: could not resolve the room members.")
		return
	}

	joinURL := meeting.JoinURL(msg.ConversationID, b.host)
	event := meeting.NewEvent(opts.Subject, window, msg.SenderAddress, participants, joinURL)

	document, err := meeting.EncodeICS(event)
	if err != nil {
		b.logger.Error("Calendar document construction failed", "uid", event.UID, "error", err)
		b.reply(ctx, msg.ConversationID, "Failed to schedule meeting.")
		return
	}

	if err := b.dispatcher.Dispatch(ctx, msg.ConversationID, event, document); err != nil {
		// The confirmation already went out; mail delivery is not retried.
		b.logger.Error("Invite mail delivery failed", "uid", event.UID, "error", err)
	}
}

func (b *Bot) reply(ctx context.Context, conversationID, text string) {
	if err := b.chat.SendReply(ctx, conversationID, notify.HTMLBody(text)); err != nil {
		b.logger.Error("Failed to send chat reply", "conversationID", conversationID, "error", err)
	}
}

func (b *Bot) replyHelp(ctx context.Context, conversationID string, cause error) {
	b.reply(ctx, conversationID, cause.Error()+"\n"+command.Usage())
}

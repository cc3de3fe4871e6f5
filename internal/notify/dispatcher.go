// Package notify delivers the outcome of a scheduling request: the in-chat
// confirmation and the emailed calendar invite.
package notify

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"smbot/internal/meeting"
)

// Chat sends a reply into the originating conversation. Implementations
// wrap the chat platform's message API and must be safe for concurrent use.
type Chat interface {
	SendReply(ctx context.Context, conversationID, html string) error
}

// Mailer delivers a message with a single attachment to a list of
// recipients. Implementations wrap the mail transport and must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, subject string, to []string, attachment Attachment) error
}

// Attachment is the calendar document as handed to the mail transport.
type Attachment struct {
	Filename    string
	ContentType string
	Body        []byte
}

// DispatchError reports a failed mail transmission. The chat confirmation
// is sent independently, so by the time this surfaces the user has already
// seen the meeting summary.
type DispatchError struct {
	Err error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch invite mail: %v", e.Err)
}

func (e *DispatchError) Unwrap() error { return e.Err }

// Dispatcher fans one built meeting out to the chat room and the invitees'
// mailboxes.
type Dispatcher struct {
	logger *slog.Logger
	chat   Chat
	mailer Mailer
}

func NewDispatcher(logger *slog.Logger, chat Chat, mailer Mailer) *Dispatcher {
	return &Dispatcher{logger: logger, chat: chat, mailer: mailer}
}

// HTMLBody converts a plain-text reply into the markup the chat transport
// expects: content is HTML-escaped and newlines become line breaks.
func HTMLBody(text string) string {
	return strings.ReplaceAll(html.EscapeString(text), "\n", "<br />")
}

// Confirmation renders the human-readable summary replied into the chat:
// subject, resolved window, join URL and one line per invited member.
func Confirmation(event *meeting.Event) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Schedule meeting %q from %s to %s\n",
		event.Subject,
		event.Window.Start.Format("Mon Jan 2 15:04 2006 MST"),
		event.Window.End.Format("Mon Jan 2 15:04 2006 MST"))
	fmt.Fprintf(&b, "Meeting URL: %s\n", event.JoinURL)
	for _, a := range event.Attendees {
		fmt.Fprintf(&b, "\n  Inviting %s %s", a.Identity, a.Address)
	}
	return b.String()
}

// Dispatch sends the confirmation into the conversation and mails the
// calendar document to every resolved attendee. The two side effects are
// independent: a confirmation failure does not stop the mail, and a mail
// failure comes back as a *DispatchError after the confirmation is already
// out.
func (d *Dispatcher) Dispatch(ctx context.Context, conversationID string, event *meeting.Event, document []byte) error {
	if err := d.chat.SendReply(ctx, conversationID, HTMLBody(Confirmation(event))); err != nil {
		d.logger.Error("Failed to send chat confirmation", "conversationID", conversationID, "error", err)
	}

	recipients := event.RecipientAddresses()
	if len(recipients) == 0 {
		d.logger.Info("No deliverable attendees, skipping invite mail", "subject", event.Subject)
		return nil
	}

	attachment := Attachment{
		Filename:    meeting.AttachmentFilename,
		ContentType: meeting.AttachmentContentType,
		Body:        document,
	}
	if err := d.mailer.Send(ctx, event.Subject, recipients, attachment); err != nil {
		return &DispatchError{Err: err}
	}

	d.logger.Info("Invite mail dispatched", "subject", event.Subject, "recipients", len(recipients))
	return nil
}

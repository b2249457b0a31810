package notify

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
	"go.uber.org/zap"
	"immobiliare-gpt-backend/internal/models"
)

const sendTimeout = 5 * time.Second

// Message is one rendered e-mail.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// Mailer sends transactional e-mail.
type Mailer interface {
	Send(ctx context.Context, to string, msg Message) error
}

type MailerSend struct {
	client    *mailersend.Mailersend
	fromEmail string
	fromName  string
}

func NewMailerSend(apiKey, fromEmail, fromName string) *MailerSend {
	return &MailerSend{
		client:    mailersend.NewMailersend(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (m *MailerSend) Send(ctx context.Context, to string, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	message := m.client.Email.NewMessage()
	message.SetFrom(mailersend.From{Name: m.fromName, Email: m.fromEmail})
	message.SetRecipients([]mailersend.Recipient{{Email: to}})
	message.SetSubject(msg.Subject)
	message.SetHTML(msg.HTML)
	message.SetText(msg.Text)

	if _, err := m.client.Email.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

// Noop discards every message.
type Noop struct{}

func (Noop) Send(context.Context, string, Message) error { return nil }

// ConfirmationMessage is sent to the contact address of a new request.
func ConfirmationMessage(req *models.AdRequest, imageCount int) Message {
	text := fmt.Sprintf(
		"We received your request %q with %d photos.\nReference: %s\nYou will find the optimized listing in your dashboard once it is completed.",
		req.Title, imageCount, req.ID)
	body := fmt.Sprintf(
		"<p>We received your request <strong>%s</strong> with %d photos.</p><p>Reference: <code>%s</code></p><p>You will find the optimized listing in your dashboard once it is completed.</p>",
		html.EscapeString(req.Title), imageCount, req.ID)

	return Message{
		Subject: "Your listing request was received",
		Text:    text,
		HTML:    body,
	}
}

// ContactMessage forwards a contact form submission to the team inbox.
func ContactMessage(c *models.Contact) Message {
	text := fmt.Sprintf("From: %s <%s>\n\n%s", c.Name, c.Email, c.Message)
	body := fmt.Sprintf("<p>From: %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(c.Name),
		html.EscapeString(c.Email),
		strings.ReplaceAll(html.EscapeString(c.Message), "\n", "<br>"))

	return Message{
		Subject: "New contact message from " + c.Name,
		Text:    text,
		HTML:    body,
	}
}

// Notifier turns domain events into e-mail.
type Notifier struct {
	mailer       Mailer
	contactInbox string
	logger       *zap.Logger
}

func NewNotifier(mailer Mailer, contactInbox string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{mailer: mailer, contactInbox: contactInbox, logger: logger}
}

// PublishSubmitted confirms a successful submission to the request's
// contact address.
func (n *Notifier) PublishSubmitted(ctx context.Context, req *models.AdRequest, imageCount int) error {
	return n.mailer.Send(ctx, req.Email, ConfirmationMessage(req, imageCount))
}

// ForwardContact delivers a contact message to the team inbox. It does
// nothing when no inbox is configured.
func (n *Notifier) ForwardContact(ctx context.Context, c *models.Contact) error {
	if n.contactInbox == "" {
		n.logger.Debug("no contact inbox configured, message not forwarded")
		return nil
	}
	return n.mailer.Send(ctx, n.contactInbox, ContactMessage(c))
}

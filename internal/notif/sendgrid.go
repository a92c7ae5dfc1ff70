package notif

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"courier/internal/config"
)

const sendGridAPIURL = "https://api.sendgrid.com/v3/mail/send"

// SendGridClient sends transactional email through the SendGrid v3 HTTP
// API. With no API key configured it skips delivery with a warning instead
// of failing, so development environments work without credentials.
type SendGridClient struct {
	apiKey    string
	apiURL    string
	fromEmail string
	fromName  string
	appName   string
	appURL    string
	client    *http.Client
	logger    *zap.SugaredLogger
	templates map[string]*template.Template
}

func NewSendGridClient(cfg *config.Config, logger *zap.SugaredLogger) *SendGridClient {
	templates := map[string]*template.Template{
		"new_message":   template.Must(template.New("new_message").Parse(newMessageTemplate)),
		"welcome":       template.Must(template.New("welcome").Parse(welcomeTemplate)),
		"unread_digest": template.Must(template.New("unread_digest").Parse(unreadDigestTemplate)),
	}

	return &SendGridClient{
		apiKey:    cfg.SendGrid.APIKey,
		apiURL:    sendGridAPIURL,
		fromEmail: cfg.SendGrid.FromEmail,
		fromName:  cfg.SendGrid.FromName,
		appName:   cfg.Server.AppName,
		appURL:    cfg.Server.AppURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
		templates: templates,
	}
}

func (c *SendGridClient) SendNewMessageNotification(ctx context.Context, receiverEmail, receiverName, senderName, preview string) error {
	subject := fmt.Sprintf("New message from %s", senderName)
	data := map[string]string{
		"ReceiverName": receiverName,
		"SenderName":   senderName,
		"Preview":      preview,
		"AppName":      c.appName,
		"AppURL":       c.appURL,
	}
	return c.sendTemplate(ctx, receiverEmail, receiverName, subject, "new_message", data)
}

func (c *SendGridClient) SendWelcomeEmail(ctx context.Context, email, username string) error {
	subject := fmt.Sprintf("Welcome to %s!", c.appName)
	data := map[string]string{
		"Username": username,
		"AppName":  c.appName,
		"AppURL":   c.appURL,
	}
	return c.sendTemplate(ctx, email, username, subject, "welcome", data)
}

func (c *SendGridClient) SendUnreadDigest(ctx context.Context, email, username string, unreadCount int, senderNames []string) error {
	plural := ""
	if unreadCount != 1 {
		plural = "s"
	}
	subject := fmt.Sprintf("You have %d unread message%s", unreadCount, plural)

	// Show at most three senders by name.
	senderList := strings.Join(lo.Slice(senderNames, 0, 3), ", ")
	if rest := len(senderNames) - 3; rest > 0 {
		senderList = fmt.Sprintf("%s and %d others", senderList, rest)
	}

	data := map[string]string{
		"Username":    username,
		"UnreadCount": fmt.Sprintf("%d", unreadCount),
		"Plural":      plural,
		"SenderList":  senderList,
		"AppName":     c.appName,
		"AppURL":      c.appURL,
	}
	return c.sendTemplate(ctx, email, username, subject, "unread_digest", data)
}

func (c *SendGridClient) sendTemplate(ctx context.Context, toEmail, toName, subject, templateKey string, data map[string]string) error {
	tpl, ok := c.templates[templateKey]
	if !ok {
		return fmt.Errorf("template %q not found", templateKey)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return err
	}
	return c.send(ctx, toEmail, toName, subject, buf.String())
}

func (c *SendGridClient) send(ctx context.Context, toEmail, toName, subject, html string) error {
	if c.apiKey == "" {
		c.logger.Warnw("sendgrid api key not configured, email skipped", "to", toEmail)
		return nil
	}

	payload := map[string]interface{}{
		"personalizations": []map[string]interface{}{
			{"to": []map[string]string{{"email": toEmail, "name": toName}}},
		},
		"from":    map[string]string{"email": c.fromEmail, "name": c.fromName},
		"subject": subject,
		"content": []map[string]string{{"type": "text/html", "value": html}},
	}

	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(payload); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Infow("email sent", "to", toEmail, "subject", subject)
		return nil
	}
	return fmt.Errorf("sendgrid send failed, status=%d", resp.StatusCode)
}

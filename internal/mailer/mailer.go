package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// Default deadline for SMTP delivery.
const defaultTimeout = 10 * time.Second

// ErrEmptyMessage is returned when a message has no body.
var ErrEmptyMessage = errors.New("mailer: empty message")

// Message is a contact form submission to be delivered to the site owner.
type Message struct {
	SubmissionID string
	Name         string
	Email        string
	Body         string
}

// Config carries SMTP delivery settings.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	To       string
}

// SendFunc performs the raw SMTP delivery. It matches smtp.SendMail so tests
// can stub delivery without a live endpoint.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Client delivers contact messages over SMTP. When no host is configured,
// delivery is recorded in memory instead so the contact flow stays usable in
// development and tests.
type Client struct {
	cfg     Config
	timeout time.Duration
	send    SendFunc
	fake    *fakeOutbox
}

// New constructs a Client with the provided config.
func New(cfg Config) *Client {
	c := &Client{cfg: cfg, timeout: defaultTimeout, send: smtp.SendMail}
	if !c.configured() {
		c.fake = newFakeOutbox()
	}
	return c
}

// SetSendFunc replaces the SMTP delivery function.
func (c *Client) SetSendFunc(fn SendFunc) {
	if fn != nil {
		c.send = fn
	}
}

// NewFromEnv builds a Client from PORTFOLIO_WEB_SMTP_* environment variables.
func NewFromEnv() *Client {
	return New(Config{
		Host:     os.Getenv("PORTFOLIO_WEB_SMTP_HOST"),
		Port:     envOr("PORTFOLIO_WEB_SMTP_PORT", "587"),
		Username: os.Getenv("PORTFOLIO_WEB_SMTP_USER"),
		Password: os.Getenv("PORTFOLIO_WEB_SMTP_PASS"),
		To:       os.Getenv("PORTFOLIO_WEB_CONTACT_TO"),
	})
}

func (c *Client) configured() bool {
	return c != nil &&
		strings.TrimSpace(c.cfg.Host) != "" &&
		strings.TrimSpace(c.cfg.Username) != "" &&
		strings.TrimSpace(c.cfg.Password) != "" &&
		strings.TrimSpace(c.cfg.To) != ""
}

// Send delivers the message, honoring the context deadline.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.Body) == "" {
		return ErrEmptyMessage
	}
	if !c.configured() {
		c.fake.record(msg)
		return nil
	}

	subject := fmt.Sprintf("Portfolio contact: %s", msg.Name)
	body := fmt.Sprintf("New contact form submission (%s)\n\nName: %s\nEmail: %s\n\n%s\n",
		msg.SubmissionID, msg.Name, msg.Email, msg.Body)
	raw := []byte("To: " + c.cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + c.cfg.Username + "\r\n" +
		"Reply-To: " + msg.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", c.cfg.Username, c.cfg.Password, c.cfg.Host)
	addr := c.cfg.Host + ":" + c.cfg.Port

	// net/smtp has no context support; bound it with a goroutine.
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- c.send(addr, auth, c.cfg.Username, []string{c.cfg.To}, raw)
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("mailer: send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("mailer: send: %w", ctx.Err())
	}
}

// Delivered returns messages captured by the fake outbox. It returns nil when
// real SMTP delivery is configured.
func (c *Client) Delivered() []Message {
	if c == nil || c.fake == nil {
		return nil
	}
	return c.fake.all()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

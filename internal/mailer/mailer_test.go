package mailer

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnconfiguredClientUsesFakeOutbox(t *testing.T) {
	c := New(Config{})

	err := c.Send(context.Background(), Message{
		SubmissionID: "sub-1",
		Name:         "Jordan",
		Email:        "jordan@example.com",
		Body:         "hello",
	})
	require.NoError(t, err)

	got := c.Delivered()
	require.Len(t, got, 1)
	assert.Equal(t, "sub-1", got[0].SubmissionID)
	assert.Equal(t, "Jordan", got[0].Name)
}

func TestSendRejectsEmptyBody(t *testing.T) {
	c := New(Config{})
	err := c.Send(context.Background(), Message{Name: "X", Email: "x@example.com", Body: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, c.Delivered())
}

func TestPartialConfigStaysFake(t *testing.T) {
	// host without credentials must not attempt real delivery
	c := New(Config{Host: "smtp.example.com", Port: "587"})
	require.NoError(t, c.Send(context.Background(), Message{Body: "hi"}))
	assert.Len(t, c.Delivered(), 1)
}

func configuredClient() *Client {
	return New(Config{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "sender@example.com",
		Password: "secret",
		To:       "owner@example.com",
	})
}

func TestSendUsesInjectedSender(t *testing.T) {
	c := configuredClient()
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	c.SetSendFunc(func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	})

	err := c.Send(context.Background(), Message{
		SubmissionID: "sub-2",
		Name:         "Jordan",
		Email:        "jordan@example.com",
		Body:         "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "sender@example.com", gotFrom)
	assert.Equal(t, []string{"owner@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Portfolio contact: Jordan")
	assert.Contains(t, string(gotMsg), "Reply-To: jordan@example.com")
}

func TestSendWrapsDeliveryError(t *testing.T) {
	c := configuredClient()
	c.SetSendFunc(func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	})

	err := c.Send(context.Background(), Message{Body: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Nil(t, c.Delivered(), "configured client has no fake outbox")
}

func TestDeliveredReturnsCopy(t *testing.T) {
	c := New(Config{})
	require.NoError(t, c.Send(context.Background(), Message{Body: "one"}))

	first := c.Delivered()
	require.Len(t, first, 1)
	first[0].Body = "mutated"

	second := c.Delivered()
	assert.Equal(t, "one", second[0].Body)
}

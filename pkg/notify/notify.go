package notify

import (
	"context"
	"fmt"
	"time"
)

const (
	ChannelEmail = "email"
	ChannelPhone = "phone"
)

// Sender is the outbound notification port: one-time codes during channel
// verification, decision notices after listing moderation.
type Sender interface {
	SendCode(ctx context.Context, channel, target, code string) error
	SendApproval(ctx context.Context, contact, listingTitle string) error
	SendRejection(ctx context.Context, contact, listingTitle, reason string) error
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// Dispatcher routes messages to the configured transports and bounds every
// send with a timeout, so a slow provider fails the call instead of hanging
// the request.
type Dispatcher struct {
	email   EmailSender
	sms     SMSSender
	timeout time.Duration
}

func NewDispatcher(email EmailSender, sms SMSSender, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		email:   email,
		sms:     sms,
		timeout: timeout,
	}
}

func (d *Dispatcher) SendCode(ctx context.Context, channel, target, code string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	switch channel {
	case ChannelPhone:
		return d.sms.Send(ctx, target, fmt.Sprintf("Your verification code is %s", code))
	case ChannelEmail:
		body := fmt.Sprintf("Your verification code is %s. It expires shortly, so use it soon.", code)
		return d.email.Send(ctx, target, "Your verification code", body)
	default:
		return fmt.Errorf("unknown notification channel: %q", channel)
	}
}

func (d *Dispatcher) SendApproval(ctx context.Context, contact, listingTitle string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	body := fmt.Sprintf("Good news: your listing %q has been approved and is now live.", listingTitle)

	return d.email.Send(ctx, contact, "Your listing has been approved", body)
}

func (d *Dispatcher) SendRejection(ctx context.Context, contact, listingTitle, reason string) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	body := fmt.Sprintf("Your listing %q was not approved. Reason: %s", listingTitle, reason)

	return d.email.Send(ctx, contact, "Your listing was rejected", body)
}

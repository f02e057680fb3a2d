package mock_notify

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type Sender struct {
	mock.Mock
}

func (m *Sender) SendCode(ctx context.Context, channel, target, code string) error {
	args := m.Called(ctx, channel, target, code)

	return args.Error(0)
}

func (m *Sender) SendApproval(ctx context.Context, contact, listingTitle string) error {
	args := m.Called(ctx, contact, listingTitle)

	return args.Error(0)
}

func (m *Sender) SendRejection(ctx context.Context, contact, listingTitle, reason string) error {
	args := m.Called(ctx, contact, listingTitle, reason)

	return args.Error(0)
}

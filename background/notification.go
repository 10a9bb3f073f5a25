package background

import (
	"context"

	"github.com/bitmark-inc/beacon-api/external/expo"
)

// PushGateway delivers a batch of push messages in a single request
type PushGateway interface {
	Push(ctx context.Context, messages []expo.Message) ([]expo.Ticket, error)
}

// ExpoPushGateway sends push messages through the expo push service
type ExpoPushGateway struct {
	client *expo.Client
}

func NewExpoPushGateway(client *expo.Client) *ExpoPushGateway {
	return &ExpoPushGateway{
		client: client,
	}
}

func (g *ExpoPushGateway) Push(ctx context.Context, messages []expo.Message) ([]expo.Ticket, error) {
	return g.client.Push(ctx, messages)
}

package ports

import "context"

// EventPublisher sends integration events to downstream services such as the
// payout initiator.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// RoutingKeyCommissionsReady announces that settlement released commissions for payout.
const RoutingKeyCommissionsReady = "commissions.ready_for_payout"

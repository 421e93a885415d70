package out_ws

import (
	"context"

	"carpool/internal/carpool/application/ports/out"
	"carpool/internal/shared/logger"
	"carpool/internal/shared/ws"
)

// HubBroadcaster implements out.ActivityBroadcaster against the dashboard's
// in-process websocket hub. Used where the mutation happens in the same
// process as the connected clients.
type HubBroadcaster struct {
	hub *ws.Hub
	log *logger.Logger
}

func NewHubBroadcaster(hub *ws.Hub, log *logger.Logger) *HubBroadcaster {
	return &HubBroadcaster{hub: hub, log: log}
}

func (b *HubBroadcaster) Broadcast(_ context.Context, event out.ActivityEvent) error {
	return b.hub.BroadcastJSON(event)
}

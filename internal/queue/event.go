// Package queue defines message payloads exchanged over the message broker.
package queue

// Room event types.
const (
    EventStatusUpdated    = "room.status_updated"
    EventChecklistUpdated = "room.checklist_updated"
    EventRoomsReset       = "rooms.reset"
)

// RoomEvent is published after a room mutation succeeds.  It carries
// enough for a consumer to log or notify without calling the API.
type RoomEvent struct {
    Type           string `json:"type"`
    RoomID         int    `json:"room_id,omitempty"`
    Floor          int    `json:"floor,omitempty"`
    Status         string `json:"status,omitempty"`
    ChecklistItems int    `json:"checklist_items,omitempty"`
    RoomsReset     int    `json:"rooms_reset,omitempty"`
    OccurredAt     string `json:"occurred_at"`
}

package queue

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/zap"
)

func TestConsumer_HandleAppendsLines(t *testing.T) {
    path := filepath.Join(t.TempDir(), "logs", "room-events.log")
    c := &Consumer{LogPath: path, Log: zap.NewNop()}

    require.NoError(t, c.Handle([]byte(`{"type":"room.status_updated","room_id":101,"floor":1,"status":"Ocupado","occurred_at":"2024-05-01T12:00:00Z"}`)))
    require.NoError(t, c.Handle([]byte(`{"type":"rooms.reset","rooms_reset":198,"occurred_at":"2024-05-01T12:01:00Z"}`)))

    data, err := os.ReadFile(path)
    require.NoError(t, err)
    assert.Equal(t,
        "[2024-05-01T12:00:00Z] Room status updated | room=101 | floor=1 | status=\"Ocupado\"\n"+
            "[2024-05-01T12:01:00Z] All rooms reset | rooms=198\n",
        string(data))
}

func TestConsumer_HandleRejectsBadPayloads(t *testing.T) {
    c := &Consumer{LogPath: filepath.Join(t.TempDir(), "events.log"), Log: zap.NewNop()}

    assert.Error(t, c.Handle([]byte(`not json`)))
    assert.Error(t, c.Handle([]byte(`{"room_id":101}`)))
}

func TestFormatEvent_Checklist(t *testing.T) {
    line := FormatEvent(RoomEvent{Type: EventChecklistUpdated, RoomID: 305, Floor: 3, ChecklistItems: 4, OccurredAt: "t"})
    assert.Equal(t, "[t] Room checklist updated | room=305 | floor=3 | items=4\n", line)
}

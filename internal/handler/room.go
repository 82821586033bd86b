package handler

import (
    "bytes"
    "encoding/json"
    "errors"
    "fmt"
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/pcm-room-status/internal/model"
    q "github.com/iliyamo/pcm-room-status/internal/queue"
    "github.com/iliyamo/pcm-room-status/internal/repository"
    "github.com/iliyamo/pcm-room-status/internal/service"
)

// Hints attached to room errors so the dashboard can explain the id space.
var (
    roomIDSuggestion = echo.Map{"suggestion": "IDs válidos vão de 101-122, 201-222, ..., 901-922"}
    roomIDRanges     = echo.Map{"validFloors": "1-9", "validRooms": "01-22 por andar"}
)

// RoomHandler serves the room registry.  None of its routes require a
// token.
type RoomHandler struct {
    Rooms  *repository.RoomRepo
    Events service.Publisher
    Log    *zap.Logger
}

func NewRoomHandler(rooms *repository.RoomRepo, events service.Publisher, log *zap.Logger) *RoomHandler {
    if events == nil {
        events = service.NopPublisher{}
    }
    return &RoomHandler{Rooms: rooms, Events: events, Log: log}
}

// roomID accepts an integral JSON number (101 or 101.0) or a string
// holding the id in canonical form ("101", not "0101" or "+101").
type roomID int

func (id *roomID) UnmarshalJSON(b []byte) error {
    s := string(bytes.TrimSpace(b))
    if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
        n, ok := canonicalID(s[1 : len(s)-1])
        if !ok {
            return fmt.Errorf("room id %s is not an integer", b)
        }
        *id = roomID(n)
        return nil
    }
    f, err := strconv.ParseFloat(s, 64)
    if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
        return fmt.Errorf("room id %s is not an integer", b)
    }
    *id = roomID(int(f))
    return nil
}

// canonicalID parses s only when it is exactly how the id prints, so
// the lookup matches the stored key verbatim.
func canonicalID(s string) (int, bool) {
    n, err := strconv.Atoi(s)
    if err != nil || strconv.Itoa(n) != s {
        return 0, false
    }
    return n, true
}

type updateStatusReq struct {
    ID     roomID `json:"id"`
    Status string `json:"status"`
}

type updateChecklistReq struct {
    ID        roomID          `json:"id"`
    Checklist json.RawMessage `json:"checklist"`
}

func (h *RoomHandler) publish(ev q.RoomEvent) {
    ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
    service.PublishAsync(h.Events, h.Log, ev)
}

// List handles GET /api/quartos with optional ?status= and ?andar=.
func (h *RoomHandler) List(c echo.Context) error {
    f := repository.RoomFilter{Status: model.RoomStatus(c.QueryParam("status"))}
    if raw := strings.TrimSpace(c.QueryParam("andar")); raw != "" {
        floor, err := strconv.Atoi(raw)
        if err != nil {
            return fail(c, http.StatusBadRequest, "Andar inválido. Deve ser entre 1 e 9")
        }
        f.Floor, f.HasFloor = floor, true
    }
    rooms := h.Rooms.List(c.Request().Context(), f)
    return ok(c, echo.Map{
        "data":        rooms,
        "total":       len(rooms),
        "lastUpdated": time.Now().UTC(),
    })
}

// ListByFloor handles GET /api/quartos/andar/:numero.
func (h *RoomHandler) ListByFloor(c echo.Context) error {
    floor, err := strconv.Atoi(c.Param("numero"))
    if err != nil {
        return fail(c, http.StatusBadRequest, "Andar inválido. Deve ser entre 1 e 9")
    }
    rooms, err := h.Rooms.ListByFloor(c.Request().Context(), floor)
    if errors.Is(err, repository.ErrInvalidFloor) {
        return fail(c, http.StatusBadRequest, "Andar inválido. Deve ser entre 1 e 9")
    }
    if err != nil {
        return err
    }
    return ok(c, echo.Map{"data": rooms, "total": len(rooms), "andar": floor})
}

// Get handles GET /api/quartos/:id.
func (h *RoomHandler) Get(c echo.Context) error {
    raw := c.Param("id")
    id, isID := canonicalID(raw)
    if !isID {
        return fail(c, http.StatusNotFound, fmt.Sprintf("Quarto %s não encontrado", raw), roomIDSuggestion)
    }
    room, err := h.Rooms.Get(c.Request().Context(), id)
    if errors.Is(err, repository.ErrRoomNotFound) {
        return fail(c, http.StatusNotFound, fmt.Sprintf("Quarto %s não encontrado", raw), roomIDSuggestion)
    }
    if err != nil {
        return err
    }
    return ok(c, echo.Map{"data": room, "message": fmt.Sprintf("Quarto %s encontrado", raw)})
}

// UpdateStatus handles POST /api/quartos/atualizar.
func (h *RoomHandler) UpdateStatus(c echo.Context) error {
    var req updateStatusReq
    if err := c.Bind(&req); err != nil {
        return invalidBody(c)
    }
    id := int(req.ID)
    room, err := h.Rooms.UpdateStatus(c.Request().Context(), id, model.RoomStatus(req.Status))
    switch {
    case errors.Is(err, repository.ErrRoomNotFound):
        return fail(c, http.StatusNotFound, fmt.Sprintf("Quarto %d não existe", id), roomIDRanges)
    case errors.Is(err, repository.ErrInvalidStatus):
        return fail(c, http.StatusBadRequest, "Status inválido", echo.Map{"validStatus": model.RoomStatuses})
    case err != nil:
        return err
    }
    h.publish(q.RoomEvent{Type: q.EventStatusUpdated, RoomID: room.ID, Floor: room.Floor, Status: string(room.Status)})
    return ok(c, echo.Map{
        "message": fmt.Sprintf("Quarto %d atualizado para: %s", id, room.Status),
        "data":    room,
    })
}

// UpdateChecklist handles POST /api/quartos/atualizar-checklist.
func (h *RoomHandler) UpdateChecklist(c echo.Context) error {
    var req updateChecklistReq
    if err := c.Bind(&req); err != nil {
        return invalidBody(c)
    }
    id := int(req.ID)
    ctx := c.Request().Context()
    // an unknown room is reported before a malformed checklist
    if _, err := h.Rooms.Get(ctx, id); errors.Is(err, repository.ErrRoomNotFound) {
        return fail(c, http.StatusNotFound, fmt.Sprintf("Quarto %d não existe", id), roomIDRanges)
    }
    items, isArray := decodeChecklist(req.Checklist)
    if !isArray {
        return fail(c, http.StatusBadRequest, "Checklist deve ser um array")
    }
    room, err := h.Rooms.UpdateChecklist(ctx, id, items)
    if errors.Is(err, repository.ErrRoomNotFound) {
        return fail(c, http.StatusNotFound, fmt.Sprintf("Quarto %d não existe", id), roomIDRanges)
    }
    if err != nil {
        return err
    }
    h.publish(q.RoomEvent{Type: q.EventChecklistUpdated, RoomID: room.ID, Floor: room.Floor, ChecklistItems: len(room.Checklist)})
    return ok(c, echo.Map{
        "message": fmt.Sprintf("Checklist do quarto %d atualizado", id),
        "data":    room,
    })
}

func decodeChecklist(raw json.RawMessage) ([]json.RawMessage, bool) {
    raw = bytes.TrimSpace(raw)
    if len(raw) == 0 || raw[0] != '[' {
        return nil, false
    }
    var items []json.RawMessage
    if err := json.Unmarshal(raw, &items); err != nil {
        return nil, false
    }
    return items, true
}

// Reset handles POST /api/quartos/reset.
func (h *RoomHandler) Reset(c echo.Context) error {
    n := h.Rooms.ResetAll(c.Request().Context())
    h.Log.Info("rooms reset", zap.Int("rooms", n))
    h.publish(q.RoomEvent{Type: q.EventRoomsReset, RoomsReset: n})
    return ok(c, echo.Map{
        "message":   fmt.Sprintf("Todos os %d quartos resetados para \"%s\"", n, model.StatusVacantClean),
        "timestamp": time.Now().UTC(),
    })
}

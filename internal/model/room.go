package model

import (
    "encoding/json"
    "time"
)

// RoomStatus is the housekeeping state of a room.  Any status may move
// to any other; there is no transition table.
type RoomStatus string

const (
    StatusVacantClean RoomStatus = "Vago limpo"
    StatusVacantDirty RoomStatus = "Vago sujo"
    StatusOccupied    RoomStatus = "Ocupado"
)

// Hotel layout.  Room ids are floor*100 + number.
const (
    MinFloor      = 1
    MaxFloor      = 9
    RoomsPerFloor = 22
)

// RoomStatuses lists the accepted statuses in display order.
var RoomStatuses = []RoomStatus{StatusVacantClean, StatusVacantDirty, StatusOccupied}

// Valid reports whether s is one of the three known statuses.
func (s RoomStatus) Valid() bool {
    for _, v := range RoomStatuses {
        if s == v {
            return true
        }
    }
    return false
}

// Room is a single hotel room as served by the API and stored on disk.
// The JSON names are the ones the dashboard already consumes.
//
// Fields:
//  ID          – floor*100 + room number, never changes.
//  Status      – current housekeeping status.
//  Checklist   – opaque cleaning items, kept verbatim and never null.
//  Floor       – derived from ID.
//  LastUpdated – set on every mutation.
type Room struct {
    ID          int               `json:"ID_QUARTO"`
    Status      RoomStatus        `json:"STATUS"`
    Checklist   []json.RawMessage `json:"CHECKLIST"`
    Floor       int               `json:"ANDAR"`
    LastUpdated time.Time         `json:"ULTIMA_ATUALIZACAO"`
}

// Clone returns a copy that shares no memory with r.
func (r Room) Clone() Room {
    out := r
    out.Checklist = make([]json.RawMessage, len(r.Checklist))
    for i, item := range r.Checklist {
        out.Checklist[i] = append(json.RawMessage(nil), item...)
    }
    return out
}

// RoomID builds the id of room number n on floor f.
func RoomID(floor, number int) int { return floor*100 + number }

// FloorOf returns the floor encoded in a room id.
func FloorOf(id int) int { return id / 100 }

// ValidFloor reports whether f is inside the hotel.
func ValidFloor(f int) bool { return f >= MinFloor && f <= MaxFloor }

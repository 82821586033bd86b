package repository

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/iliyamo/pcm-room-status/internal/model"
)

// RoomFilter narrows List.  An empty Status means any status.  Floor is
// only applied when HasFloor is set, and then it must match exactly, so
// a floor outside 1-9 yields no rooms.
type RoomFilter struct {
	Status   model.RoomStatus
	Floor    int
	HasFloor bool
}

// RoomRepo is the room registry.  The set of rooms is fixed at load
// time; only status, checklist and timestamp ever change.
type RoomRepo struct{ Store *Store }

func NewRoomRepo(s *Store) *RoomRepo { return &RoomRepo{Store: s} }

// List returns copies of the matching rooms ordered by id.
func (r *RoomRepo) List(_ context.Context, f RoomFilter) []model.Room {
	s := r.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		if f.Status != "" && room.Status != f.Status {
			continue
		}
		if f.HasFloor && room.Floor != f.Floor {
			continue
		}
		out = append(out, room.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListByFloor returns the rooms of one floor.
func (r *RoomRepo) ListByFloor(ctx context.Context, floor int) ([]model.Room, error) {
	if !model.ValidFloor(floor) {
		return nil, ErrInvalidFloor
	}
	return r.List(ctx, RoomFilter{Floor: floor, HasFloor: true}), nil
}

// Get fetches a single room.
func (r *RoomRepo) Get(_ context.Context, id int) (model.Room, error) {
	s := r.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return model.Room{}, ErrRoomNotFound
	}
	return room.Clone(), nil
}

// UpdateStatus sets the status of a room.  An unknown id is reported
// before an invalid status; neither case touches the room.
func (r *RoomRepo) UpdateStatus(ctx context.Context, id int, status model.RoomStatus) (model.Room, error) {
	s := r.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return model.Room{}, ErrRoomNotFound
	}
	if !status.Valid() {
		return model.Room{}, ErrInvalidStatus
	}
	room.Status = status
	room.LastUpdated = s.now()
	s.flushRooms(ctx)
	return room.Clone(), nil
}

// UpdateChecklist replaces the checklist of a room.  A nil list is
// stored as empty.
func (r *RoomRepo) UpdateChecklist(ctx context.Context, id int, items []json.RawMessage) (model.Room, error) {
	s := r.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	room, ok := s.rooms[id]
	if !ok {
		return model.Room{}, ErrRoomNotFound
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	room.Checklist = model.Room{Checklist: items}.Clone().Checklist
	room.LastUpdated = s.now()
	s.flushRooms(ctx)
	return room.Clone(), nil
}

// ResetAll marks every room vacant and clean and returns how many rooms
// were reset.
func (r *RoomRepo) ResetAll(ctx context.Context) int {
	s := r.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, room := range s.rooms {
		room.Status = model.StatusVacantClean
		room.LastUpdated = now
	}
	s.flushRooms(ctx)
	return len(s.rooms)
}

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/pcm-room-status/internal/model"
	"github.com/iliyamo/pcm-room-status/internal/storage"
)

const flushTimeout = 5 * time.Second

// Store owns the rooms and users collections for the lifetime of the
// process.  Memory is the source of truth; every mutation is written
// through to the backend while the lock is held, so documents are saved
// in the order the mutations happened.
type Store struct {
	mu      sync.Mutex
	rooms   map[int]*model.Room
	users   []model.User
	backend storage.Backend
	log     *zap.Logger
	now     func() time.Time
}

// NewStore returns an empty store.  Call Load before serving requests.
func NewStore(backend storage.Backend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		rooms:   map[int]*model.Room{},
		backend: backend,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Load reads both documents.  A document that is missing or cannot be
// parsed is replaced by the default content, which is saved right away.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms, err := s.loadRooms(ctx)
	if err != nil {
		s.logLoadFailure(storage.DocRooms, err)
		s.rooms = seedRooms(s.now())
		s.flushRooms(ctx)
	} else {
		s.rooms = rooms
	}

	users, err := s.loadUsers(ctx)
	if err != nil {
		s.logLoadFailure(storage.DocUsers, err)
		s.users = seedUsers()
		s.flushUsers(ctx)
	} else {
		s.users = users
	}
	s.log.Info("store loaded", zap.Int("rooms", len(s.rooms)), zap.Int("users", len(s.users)))
}

func (s *Store) logLoadFailure(doc string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.log.Info("document absent, seeding defaults", zap.String("doc", doc))
		return
	}
	s.log.Error("load document failed, seeding defaults", zap.String("doc", doc), zap.Error(err))
}

func (s *Store) loadRooms(ctx context.Context) (map[int]*model.Room, error) {
	data, err := s.backend.Load(ctx, storage.DocRooms)
	if err != nil {
		return nil, err
	}
	var raw map[string]*model.Room
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	if raw == nil {
		return nil, errors.New("decode rooms: empty document")
	}
	rooms := make(map[int]*model.Room, len(raw))
	for key, r := range raw {
		if r == nil {
			continue
		}
		if r.ID == 0 {
			id, err := strconv.Atoi(key)
			if err != nil {
				return nil, fmt.Errorf("decode rooms: bad id %q", key)
			}
			r.ID = id
		}
		if r.Checklist == nil {
			r.Checklist = []json.RawMessage{}
		}
		if r.Floor == 0 {
			r.Floor = model.FloorOf(r.ID)
		}
		rooms[r.ID] = r
	}
	return rooms, nil
}

func (s *Store) loadUsers(ctx context.Context) ([]model.User, error) {
	data, err := s.backend.Load(ctx, storage.DocUsers)
	if err != nil {
		return nil, err
	}
	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	if users == nil {
		return nil, errors.New("decode users: empty document")
	}
	return users, nil
}

// Flush writes both documents.  It is called on shutdown.
func (s *Store) Flush(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushRooms(ctx)
	s.flushUsers(ctx)
}

// flushRooms and flushUsers must be called with s.mu held.  Failures are
// logged and dropped; the in-memory state stays authoritative.
func (s *Store) flushRooms(ctx context.Context) {
	byKey := make(map[string]*model.Room, len(s.rooms))
	for id, r := range s.rooms {
		byKey[strconv.Itoa(id)] = r
	}
	s.save(ctx, storage.DocRooms, byKey)
}

func (s *Store) flushUsers(ctx context.Context) {
	s.save(ctx, storage.DocUsers, s.users)
}

func (s *Store) save(ctx context.Context, doc string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.log.Error("encode document failed", zap.String("doc", doc), zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()
	if err := s.backend.Save(ctx, doc, data); err != nil {
		s.log.Error("save document failed", zap.String("doc", doc), zap.Error(err))
		return
	}
	s.log.Debug("document saved", zap.String("doc", doc), zap.Int("bytes", len(data)))
}

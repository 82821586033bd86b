package repository

import (
	"encoding/json"
	"time"

	"github.com/iliyamo/pcm-room-status/internal/model"
)

// seedRooms builds the full hotel with every room vacant and clean.
func seedRooms(now time.Time) map[int]*model.Room {
	rooms := make(map[int]*model.Room, (model.MaxFloor-model.MinFloor+1)*model.RoomsPerFloor)
	for floor := model.MinFloor; floor <= model.MaxFloor; floor++ {
		for n := 1; n <= model.RoomsPerFloor; n++ {
			id := model.RoomID(floor, n)
			rooms[id] = &model.Room{
				ID:          id,
				Status:      model.StatusVacantClean,
				Checklist:   []json.RawMessage{},
				Floor:       floor,
				LastUpdated: now,
			}
		}
	}
	return rooms
}

func seedUsers() []model.User {
	return []model.User{
		{Email: "admin@goinn.com", Password: "admin123", Role: model.RoleAdmin, Nickname: "Administrador"},
		{Email: "user@goinn.com", Password: "user123", Role: model.RoleUser, Nickname: "Usuário"},
		{Email: "carlos@goinn.com", Password: "carlos123", Role: model.RoleUser, Nickname: "Carlos"},
		{Email: "douglas@goinn.com", Password: "123", Role: model.RoleUser, Nickname: "Douglas"},
	}
}

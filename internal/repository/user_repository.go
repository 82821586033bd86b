package repository

import (
	"context"

	"github.com/iliyamo/pcm-room-status/internal/model"
)

// NewUser carries the fields needed to create an account.
type NewUser struct {
	Email    string
	Password string
	Role     string
	Nickname string
}

// UserRepo is the user registry.
type UserRepo struct{ Store *Store }

func NewUserRepo(s *Store) *UserRepo { return &UserRepo{Store: s} }

// indexOf must be called with the store lock held.
func (r *UserRepo) indexOf(email string) int {
	for i, u := range r.Store.users {
		if u.Email == email {
			return i
		}
	}
	return -1
}

// List returns every account without passwords.
func (r *UserRepo) List(_ context.Context) []model.PublicUser {
	s := r.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.PublicUser, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Public())
	}
	return out
}

// Count returns the number of accounts.
func (r *UserRepo) Count(_ context.Context) int {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	return len(r.Store.users)
}

// GetByEmail fetches a user by exact email.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (model.User, error) {
	s := r.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := r.indexOf(email)
	if i < 0 {
		return model.User{}, ErrUserNotFound
	}
	return s.users[i], nil
}

// Authenticate returns the user whose email and password both match
// exactly.
func (r *UserRepo) Authenticate(_ context.Context, email, password string) (model.User, error) {
	s := r.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := r.indexOf(email)
	if i < 0 || email == "" || s.users[i].Password != password {
		return model.User{}, ErrInvalidCredentials
	}
	return s.users[i], nil
}

// Create appends a new account.  The nickname defaults to the local part
// of the email.
func (r *UserRepo) Create(ctx context.Context, nu NewUser) (model.User, error) {
	if nu.Email == "" || nu.Password == "" || nu.Role == "" {
		return model.User{}, ErrMissingFields
	}
	if !model.ValidRole(nu.Role) {
		return model.User{}, ErrInvalidRole
	}
	s := r.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.indexOf(nu.Email) >= 0 {
		return model.User{}, ErrEmailExists
	}
	u := model.User{Email: nu.Email, Password: nu.Password, Role: nu.Role, Nickname: nu.Nickname}
	if u.Nickname == "" {
		u.Nickname = model.DefaultNickname(u.Email)
	}
	s.users = append(s.users, u)
	s.flushUsers(ctx)
	return u, nil
}

// UpdateNickname overwrites the nickname of an account.
func (r *UserRepo) UpdateNickname(ctx context.Context, email, nickname string) error {
	s := r.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := r.indexOf(email)
	if i < 0 {
		return ErrUserNotFound
	}
	s.users[i].Nickname = nickname
	s.flushUsers(ctx)
	return nil
}

// Delete removes an account.
func (r *UserRepo) Delete(ctx context.Context, email string) error {
	s := r.Store
	s.mu.Lock()
	defer s.mu.Unlock()

	i := r.indexOf(email)
	if i < 0 {
		return ErrUserNotFound
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	s.flushUsers(ctx)
	return nil
}

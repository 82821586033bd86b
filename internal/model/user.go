package model

import "strings"

// Role names.  Only admins may manage other accounts.
const (
    RoleAdmin = "admin"
    RoleUser  = "user"
)

// ValidRole reports whether r is a known role.
func ValidRole(r string) bool { return r == RoleAdmin || r == RoleUser }

// User is an account as stored in the users document.  The password is
// kept and compared in plain text; the mock never hashes it.
type User struct {
    Email    string `json:"email"`
    Password string `json:"senha"`
    Role     string `json:"role"`
    Nickname string `json:"nickname,omitempty"`
}

// PublicUser is the view of a user returned to clients.
type PublicUser struct {
    Email    string `json:"email"`
    Role     string `json:"role"`
    Nickname string `json:"nickname"`
}

// DisplayName returns the nickname, falling back to the local part of
// the email address.
func (u User) DisplayName() string {
    if u.Nickname != "" {
        return u.Nickname
    }
    return DefaultNickname(u.Email)
}

// Public strips the password.
func (u User) Public() PublicUser {
    return PublicUser{Email: u.Email, Role: u.Role, Nickname: u.DisplayName()}
}

// DefaultNickname is everything before the first "@".
func DefaultNickname(email string) string {
    local, _, _ := strings.Cut(email, "@")
    return local
}

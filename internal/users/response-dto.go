package users

import "staymate/internal/shared/upstream"

// AuthResponse is the login/register result: the minted session token plus
// the authenticated user.
type AuthResponse struct {
	Token string        `json:"token"`
	User  upstream.User `json:"user"`
}

package i

import (
	dmn "github.com/mazehunt/mazehunt-api/domain"
)

// Authenticator handles account registration and sign-in.
type Authenticator interface {
	Register(username, password string) error
	SignIn(username, password string) (*dmn.User, string, error)
}

// Package tokenpkg provides token based authentication.
package tokenpkg

import "time"

// Maker is an interface for managing authentication tokens.
type Maker interface {
	// CreateToken creates a new token for a specific username and duration.
	CreateToken(username string, duration time.Duration) (string, *Payload, error)

	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

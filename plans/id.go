package plans

import "github.com/google/uuid"

// NewID returns a fresh step id.
type NewID func() string

func (Module) NewID() NewID {
	return uuid.NewString
}

package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	GenerationState  = "generation:state"
	ThemeAppearance  = "theme:appearance"
	AppearanceSystem = "appearance:system"
	AuthState        = "auth:state"
)

// Envelope wraps every payload pushed to the front end so listeners can
// de-duplicate and order deliveries.
type Envelope struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

func NewEnvelope(name string, payload any) Envelope {
	return Envelope{
		ID:        uuid.NewString(),
		Name:      name,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

package domain

import (
	"context"
	"time"
)

// Preference holds per-user display settings mirrored from the client.
type Preference struct {
	UserID    string    `json:"user_id"`
	Currency  string    `json:"currency"` // NGN | USD
	UpdatedAt time.Time `json:"updated_at"`
}

type PreferenceRepository interface {
	Get(ctx context.Context, userID string) (*Preference, error)
	Upsert(ctx context.Context, p *Preference) error
}

type PreferenceUsecase interface {
	// GetCurrency returns the stored preference, defaulting to NGN.
	GetCurrency(ctx context.Context, userID string) (string, error)
	// SetCurrency persists the preference. The mirror write is
	// best-effort from the client's point of view but errors are
	// still returned so the handler can log them.
	SetCurrency(ctx context.Context, userID, cur string) error
}

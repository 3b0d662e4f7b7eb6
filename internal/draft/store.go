package draft

import (
	"context"
	"errors"
)

var ErrSessionNotFound = errors.New("draft session not found")

// Store keeps one draft per editing session. Load returns a manager the
// caller owns; changes are only visible to others after Save.
type Store interface {
	Create(ctx context.Context) (string, *Manager, error)
	Load(ctx context.Context, id string) (*Manager, error)
	Save(ctx context.Context, id string, m *Manager) error
	Delete(ctx context.Context, id string) error
}

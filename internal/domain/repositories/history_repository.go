package repositories

import (
	"context"

	"github.com/carecost/predictor/internal/domain/entities"
)

// HistoryRepository defines the interface for prediction history operations.
// History is append-only and scoped to one running process.
type HistoryRepository interface {
	// Append adds a new entry to the history log
	Append(ctx context.Context, entry *entities.HistoryEntry) error

	// ListByUser retrieves history entries for a user, oldest first
	ListByUser(ctx context.Context, userID string) ([]*entities.HistoryEntry, error)

	// GetByID retrieves a single history entry
	GetByID(ctx context.Context, id string) (*entities.HistoryEntry, error)

	// Clear removes all entries for a user
	Clear(ctx context.Context, userID string) error

	// Count returns the number of entries for a user
	Count(ctx context.Context, userID string) (int, error)
}

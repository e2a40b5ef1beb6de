package history

import (
	"context"
	"fmt"
	"sync"

	"github.com/carecost/predictor/internal/domain/entities"
	"github.com/carecost/predictor/internal/domain/repositories"
	apperrors "github.com/carecost/predictor/pkg/errors"
)

// MemoryAdapter implements HistoryRepository with a process-local,
// append-only log. Entries live for the duration of the process and are
// never persisted.
type MemoryAdapter struct {
	mu      sync.RWMutex
	byUser  map[string][]*entities.HistoryEntry
	byID    map[string]*entities.HistoryEntry
}

// NewMemoryAdapter creates an empty in-memory history log.
func NewMemoryAdapter() repositories.HistoryRepository {
	return &MemoryAdapter{
		byUser: make(map[string][]*entities.HistoryEntry),
		byID:   make(map[string]*entities.HistoryEntry),
	}
}

// Append adds an entry to the log.
func (a *MemoryAdapter) Append(ctx context.Context, entry *entities.HistoryEntry) error {
	if entry.ID == "" {
		return apperrors.NewValidationError("history entry ID is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.byID[entry.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("history entry %s already exists", entry.ID))
	}

	stored := *entry
	a.byID[entry.ID] = &stored
	a.byUser[entry.UserID] = append(a.byUser[entry.UserID], &stored)
	return nil
}

// ListByUser returns a user's entries, oldest first.
func (a *MemoryAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.HistoryEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entries := a.byUser[userID]
	out := make([]*entities.HistoryEntry, len(entries))
	for i, e := range entries {
		clone := *e
		out[i] = &clone
	}
	return out, nil
}

// GetByID returns one entry.
func (a *MemoryAdapter) GetByID(ctx context.Context, id string) (*entities.HistoryEntry, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entry, ok := a.byID[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("history entry %s not found", id))
	}
	clone := *entry
	return &clone, nil
}

// Clear drops all of a user's entries.
func (a *MemoryAdapter) Clear(ctx context.Context, userID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, e := range a.byUser[userID] {
		delete(a.byID, e.ID)
	}
	delete(a.byUser, userID)
	return nil
}

// Count returns the number of entries for a user.
func (a *MemoryAdapter) Count(ctx context.Context, userID string) (int, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.byUser[userID]), nil
}

package repository

import (
	"context"

	"arrivals-board/internal/domain/entity"
)

// NotificationJournalRepository defines the interface for the persisted
// log of dispatched delay notifications. The journal is diagnostic only;
// per-session dedup never reads from it.
type NotificationJournalRepository interface {
	Insert(ctx context.Context, record *entity.NotificationRecord) error
	FindRecent(ctx context.Context, limit int64) ([]entity.NotificationRecord, error)
}

package repository

import (
	"context"

	"arrivals-board/internal/domain/entity"
)

// NotifierRepository defines the interface for the host notification
// capability. The capability is optional and permission-gated: permission
// is requested once at session start and Send fails when it was denied or
// the capability is absent.
type NotifierRepository interface {
	RequestPermission(ctx context.Context) entity.PermissionState
	Send(ctx context.Context, notification *entity.Notification) error
}

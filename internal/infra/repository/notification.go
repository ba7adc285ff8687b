package repository

import (
	"context"
	"time"

	"dealerbid/internal/infra"
	"dealerbid/internal/infra/db"
)

// NotificationRepository writes outbox rows; the notify dispatcher drains
// them out-of-band so a slow SMS/email provider can never fail a bid.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte, runAt time.Time) error {
	query := `
		INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
		VALUES ($1, $2, $3, $4, 'pending')
	`

	if _, err := tx.Exec(ctx, query, kind, topic, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}

	return nil
}

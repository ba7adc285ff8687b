package notify

import (
	"context"
	"log/slog"
	"time"

	"dealerbid/internal/pkg/clock"
	"dealerbid/internal/pkg/config"
	"dealerbid/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dispatcher drains the notification_jobs outbox. Jobs are claimed with
// FOR UPDATE SKIP LOCKED so several instances can poll the same table.
type Dispatcher struct {
	pool    *pgxpool.Pool
	cfg     config.NotifyConfig
	clock   clock.Clock
	senders map[string]Sender
}

func NewDispatcher(pool *pgxpool.Pool, cfg config.Config, clk clock.Clock, senders ...Sender) *Dispatcher {
	byKind := make(map[string]Sender, len(senders))
	for _, s := range senders {
		byKind[s.Kind()] = s
	}
	return &Dispatcher{
		pool:    pool,
		cfg:     cfg.Notify,
		clock:   clk,
		senders: byKind,
	}
}

// Run polls until the context is cancelled. It is meant to be launched as a
// background goroutine from the application lifecycle.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.DispatchPending(ctx); err != nil {
				slog.Error("notification dispatch cycle failed", "error", err.Error())
			}
		}
	}
}

type claimedJob struct {
	ID       uuid.UUID
	Kind     string
	Topic    string
	Payload  []byte
	Attempts int32
}

// DispatchPending claims one batch of due jobs and delivers them. Exposed so
// tests can step the outbox without the polling loop.
func (d *Dispatcher) DispatchPending(ctx context.Context) error {
	jobs, err := d.claimBatch(ctx)
	if err != nil {
		return err
	}

	for _, job := range jobs {
		d.deliver(ctx, job)
	}
	return nil
}

func (d *Dispatcher) claimBatch(ctx context.Context) ([]claimedJob, error) {
	now := d.clock.Now()

	rows, err := d.pool.Query(ctx, `
		UPDATE notification_jobs
		SET status = 'processing', attempts = attempts + 1, updated_at = $1
		WHERE id IN (
			SELECT id FROM notification_jobs
			WHERE status = 'pending' AND run_at <= $1
			ORDER BY run_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, kind, topic, payload, attempts`,
		now, d.cfg.BatchSize)
	if err != nil {
		return nil, errs.Wrap(err, "failed to claim notification jobs")
	}
	defer rows.Close()

	var jobs []claimedJob
	for rows.Next() {
		var job claimedJob
		if err := rows.Scan(&job.ID, &job.Kind, &job.Topic, &job.Payload, &job.Attempts); err != nil {
			return nil, errs.Wrap(err, "failed to scan notification job")
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (d *Dispatcher) deliver(ctx context.Context, job claimedJob) {
	sender, ok := d.senders[job.Kind]
	if !ok {
		d.markFailed(ctx, job.ID, "no sender registered for kind "+job.Kind)
		return
	}

	recipient, subject, body, err := render(job.Kind, job.Topic, job.Payload)
	if err != nil {
		// A payload that cannot render will never succeed; no retry.
		d.markFailed(ctx, job.ID, err.Error())
		return
	}

	if err := sender.Send(ctx, recipient, subject, body); err != nil {
		if job.Attempts >= d.cfg.MaxAttempts {
			d.markFailed(ctx, job.ID, err.Error())
			return
		}
		d.scheduleRetry(ctx, job, err.Error())
		return
	}

	d.markSent(ctx, job.ID)
}

func (d *Dispatcher) markSent(ctx context.Context, id uuid.UUID) {
	now := d.clock.Now()
	_, err := d.pool.Exec(ctx,
		`UPDATE notification_jobs SET status = 'sent', last_error = NULL, updated_at = $2 WHERE id = $1`,
		id, now)
	if err != nil {
		slog.Error("failed to mark notification sent", "job_id", id, "error", err.Error())
	}
}

func (d *Dispatcher) markFailed(ctx context.Context, id uuid.UUID, reason string) {
	now := d.clock.Now()
	_, err := d.pool.Exec(ctx,
		`UPDATE notification_jobs SET status = 'failed', last_error = $2, updated_at = $3 WHERE id = $1`,
		id, reason, now)
	if err != nil {
		slog.Error("failed to mark notification failed", "job_id", id, "error", err.Error())
	}
	slog.Warn("notification permanently failed", "job_id", id, "reason", reason)
}

// scheduleRetry returns the job to pending with a delay growing linearly in
// the attempt count.
func (d *Dispatcher) scheduleRetry(ctx context.Context, job claimedJob, reason string) {
	now := d.clock.Now()
	runAt := now.Add(time.Duration(job.Attempts) * d.cfg.PollInterval * 4)
	_, err := d.pool.Exec(ctx,
		`UPDATE notification_jobs SET status = 'pending', run_at = $2, last_error = $3, updated_at = $4 WHERE id = $1`,
		job.ID, runAt, reason, now)
	if err != nil {
		slog.Error("failed to schedule notification retry", "job_id", job.ID, "error", err.Error())
	}
}

package services

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/internlink/internship-service/internal/models"
	"github.com/internlink/internship-service/internal/repositories"
)

const (
	// DefaultScanInterval is how often the scanner sweeps for due tasks.
	DefaultScanInterval = time.Hour

	// reminderWindow bounds the lookahead. Tasks due further out than this
	// are picked up by a later sweep.
	reminderWindow = 72 * time.Hour
)

// DeadlineScanner periodically finds open tasks whose deadline is close and
// hands each one to the notification service. It is a best-effort background
// process: a failed cycle is logged and the next tick tries again.
type DeadlineScanner struct {
	repo          repositories.Repository
	notifications NotificationService
	logger        *slog.Logger
	interval      time.Duration
	now           func() time.Time

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

func NewDeadlineScanner(repo repositories.Repository, notifications NotificationService, logger *slog.Logger, interval time.Duration) *DeadlineScanner {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	return &DeadlineScanner{
		repo:          repo,
		notifications: notifications,
		logger:        logger,
		interval:      interval,
		now:           time.Now,
		done:          make(chan struct{}),
	}
}

// Start runs the scan loop until ctx is cancelled. It returns immediately;
// the loop runs on its own goroutine. One sweep runs right away so a
// restarted service does not wait a full interval to catch up. Calling
// Start again is a no-op; there is never more than one loop.
func (d *DeadlineScanner) Start(ctx context.Context) {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	d.mu.Unlock()

	go func() {
		defer close(d.done)

		d.logger.Info("deadline scanner started", "interval", d.interval)
		d.runCycle(ctx)

		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				d.logger.Info("deadline scanner stopped")
				return
			case <-ticker.C:
				d.runCycle(ctx)
			}
		}
	}()
}

// Done is closed once the loop has exited. A scanner that was never
// started reports done immediately.
func (d *DeadlineScanner) Done() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.started {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return d.done
}

// runCycle isolates one sweep. A panic inside a cycle must not take the
// loop down with it.
func (d *DeadlineScanner) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("deadline scan panicked", "panic", r)
		}
	}()
	if err := d.Scan(ctx); err != nil {
		d.logger.Error("deadline scan failed", "error", err)
	}
}

// Scan performs one sweep: every pending or in-progress task due within the
// next three days gets a reminder. Per-task failures are logged and the
// sweep continues; only the task query itself fails the whole sweep.
func (d *DeadlineScanner) Scan(ctx context.Context) error {
	now := d.now()
	tasks, err := d.repo.Tasks().GetDueBetween(ctx, repositories.DueTaskFilters{
		From:     now,
		To:       now.Add(reminderWindow),
		Statuses: []models.TaskStatus{models.TaskPending, models.TaskInProgress},
	})
	if err != nil {
		return err
	}

	sent := 0
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		daysLeft := daysUntil(now, *task.DueDate)
		if daysLeft < 1 || daysLeft > 3 {
			continue
		}
		if err := d.notifications.DeadlineReminder(ctx, task, daysLeft); err != nil {
			d.logger.Warn("deadline reminder not sent", "task_id", task.ID, "error", err)
			continue
		}
		sent++
	}

	if sent > 0 {
		d.logger.Info("deadline reminders sent", "count", sent, "candidates", len(tasks))
	}
	return nil
}

// daysUntil counts whole days remaining, rounding up: a task due in 2 hours
// has 1 day left, one due in 49 hours has 3.
func daysUntil(now, due time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}

package referrals

import (
	"context"
	"errors"
	"sync"

	"github.com/brightpath-health/clinicstore/internal/notify"
	"github.com/brightpath-health/clinicstore/internal/observability/metrics"
	"github.com/brightpath-health/clinicstore/pkg/logging"
)

// defaultQueueCapacity bounds the work queue when the caller passes no
// capacity of its own.
const defaultQueueCapacity = 128

// ErrQueueFull is returned when a create would push the queue past its
// capacity. Nothing is persisted, queued or notified in that case.
var ErrQueueFull = errors.New("referrals: work queue is full")

// Coordinator is the single authority in the process for turning a referral
// request into a persisted record, a queued unit of pending work, and the
// three side-channel outputs. Construct exactly one per process (cmd wiring
// does this) and pass it to every caller; its public operations are
// mutually exclusive, so the queue, the side-channel files and the
// underlying file rewrite can never interleave between two calls.
//
// The queue holds copies of records already persisted; the file remains the
// source of truth. Queue order is insertion order, first in first out.
type Coordinator struct {
	mu       sync.Mutex
	repo     *Repository
	notify   *notify.Service
	queue    []Referral
	capacity int
	metrics  *metrics.RecordMetrics
	logger   *logging.Logger
}

// NewCoordinator constructs the workflow coordinator. A capacity of zero or
// less falls back to defaultQueueCapacity.
func NewCoordinator(repo *Repository, notifier *notify.Service, capacity int, m *metrics.RecordMetrics, logger *logging.Logger) *Coordinator {
	if repo == nil {
		panic("referrals: repository required")
	}
	if notifier == nil {
		panic("referrals: notify service required")
	}
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Coordinator{repo: repo, notify: notifier, capacity: capacity, metrics: m, logger: logger}
}

// CreateAndQueue persists the candidate, appends the persisted copy to the
// queue tail, and writes the email simulation, EHR-update line and
// CREATED_AND_QUEUED audit line. All five effects happen under one critical
// section, so concurrent callers can never interleave them or allocate the
// same identifier. Returns the generated id.
func (c *Coordinator) CreateAndQueue(ctx context.Context, candidate Referral) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) >= c.capacity {
		c.logger.Warn("referral rejected, queue full", "capacity", c.capacity)
		return "", ErrQueueFull
	}

	saved, err := c.repo.Create(ctx, candidate)
	if err != nil {
		return "", err
	}

	c.queue = append(c.queue, saved)
	c.metrics.SetQueueDepth(len(c.queue))

	n := saved.notice()
	if err := c.notify.EmailSimulation(n); err != nil {
		return "", err
	}
	if err := c.notify.EHRUpdate(n); err != nil {
		return "", err
	}
	if err := c.notify.Audit("CREATED_AND_QUEUED", n); err != nil {
		return "", err
	}
	c.metrics.ObserveAudit("CREATED_AND_QUEUED")

	c.logger.Info("referral created and queued",
		"referral_id", saved.ID,
		"patient_id", saved.PatientID,
		"urgency", saved.UrgencyLevel,
		"queue_depth", len(c.queue),
	)
	return saved.ID, nil
}

// Update rewrites a persisted referral inside the same critical section as
// CreateAndQueue, so the full-file rewrite can never straddle a concurrent
// create's append and drop its row. Returns false when the id is unknown.
func (c *Coordinator) Update(ctx context.Context, candidate Referral) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.repo.Update(ctx, candidate)
}

// ProcessNext pops the queue head, writes a PROCESSED audit line, and
// returns the popped record. Returns nil when the queue is empty; that is
// not an error.
func (c *Coordinator) ProcessNext(ctx context.Context) (*Referral, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 {
		return nil, nil
	}

	head := c.queue[0]
	c.queue = c.queue[1:]
	c.metrics.SetQueueDepth(len(c.queue))

	if err := c.notify.Audit("PROCESSED", head.notice()); err != nil {
		return nil, err
	}
	c.metrics.ObserveAudit("PROCESSED")

	c.logger.Info("referral processed", "referral_id", head.ID, "queue_depth", len(c.queue))
	return &head, nil
}

// QueueSize reports the number of referrals awaiting processing.
func (c *Coordinator) QueueSize() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

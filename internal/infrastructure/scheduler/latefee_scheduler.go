// Package scheduler runs periodic background jobs for the platform.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/armonia/backend/internal/application/billing"
	"github.com/armonia/backend/internal/domain/complexes"
	"github.com/armonia/backend/internal/domain/shared"
)

// tickerInterval controls how often the loop checks whether the daily
// run time has been reached.
const tickerInterval = 1 * time.Minute

// LateFeeAssessor runs a late fee assessment for a single complex.
type LateFeeAssessor interface {
	AssessLateFees(ctx context.Context, tenantID uuid.UUID, actor billing.Actor) (*billing.LateFeeRunResult, error)
}

// ComplexLister lists complexes eligible for scheduled runs.
type ComplexLister interface {
	FindByStatus(ctx context.Context, status complexes.ComplexStatus, filter shared.Filter) ([]complexes.ResidentialComplex, error)
}

// LateFeeSchedulerConfig holds configuration for the daily late fee run.
type LateFeeSchedulerConfig struct {
	Enabled    bool
	RunHour    int // local hour of day, 0-23
	RunMinute  int // minute of the hour, 0-59
	RunTimeout time.Duration
	PageSize   int // complexes fetched per page
}

// DefaultLateFeeSchedulerConfig runs at 3:00 AM daily.
func DefaultLateFeeSchedulerConfig() LateFeeSchedulerConfig {
	return LateFeeSchedulerConfig{
		Enabled:    true,
		RunHour:    3,
		RunMinute:  0,
		RunTimeout: 10 * time.Minute,
		PageSize:   100,
	}
}

// systemActor identifies scheduled runs in the activity log.
var systemActor = billing.Actor{ID: uuid.Nil, Name: "sistema", Role: "SYSTEM"}

// LateFeeScheduler assesses late fees for every active and trial complex
// once a day at a configured local time.
type LateFeeScheduler struct {
	config    LateFeeSchedulerConfig
	assessor  LateFeeAssessor
	complexes ComplexLister
	logger    *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	lastRunAt *time.Time
	nextRunAt *time.Time
}

// NewLateFeeScheduler creates a new daily late fee scheduler.
func NewLateFeeScheduler(
	config LateFeeSchedulerConfig,
	assessor LateFeeAssessor,
	complexLister ComplexLister,
	logger *zap.Logger,
) *LateFeeScheduler {
	if config.PageSize <= 0 {
		config.PageSize = DefaultLateFeeSchedulerConfig().PageSize
	}
	if config.RunTimeout <= 0 {
		config.RunTimeout = DefaultLateFeeSchedulerConfig().RunTimeout
	}
	return &LateFeeScheduler{
		config:    config,
		assessor:  assessor,
		complexes: complexLister,
		logger:    logger,
	}
}

// Start starts the scheduler loop. It returns immediately; the loop runs
// in a background goroutine until Stop is called.
func (s *LateFeeScheduler) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.logger.Info("Late fee scheduler disabled")
		return nil
	}

	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.calculateNextRunTime()

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Late fee scheduler started",
		zap.Int("run_hour", s.config.RunHour),
		zap.Int("run_minute", s.config.RunMinute),
		zap.Timep("next_run_at", s.nextRunAt),
	)
	return nil
}

// Stop stops the scheduler and waits for an in-flight run to finish,
// bounded by the context deadline.
func (s *LateFeeScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Late fee scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Late fee scheduler stop timed out")
		return ctx.Err()
	}
}

// NextRunAt returns the next scheduled run time.
func (s *LateFeeScheduler) NextRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRunAt
}

// LastRunAt returns the time of the last completed run.
func (s *LateFeeScheduler) LastRunAt() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunAt
}

func (s *LateFeeScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(tickerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.RunOnce(ctx)
				s.calculateNextRunTime()
			}
		}
	}
}

func (s *LateFeeScheduler) shouldRun(now time.Time) bool {
	return now.Hour() == s.config.RunHour && now.Minute() == s.config.RunMinute
}

func (s *LateFeeScheduler) calculateNextRunTime() {
	now := time.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.config.RunHour, s.config.RunMinute, 0, 0, now.Location())
	if now.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	s.mu.Lock()
	s.nextRunAt = &next
	s.mu.Unlock()
}

// RunOnce assesses late fees for every billable complex. It is called by
// the daily loop and can also be invoked directly for a manual run.
func (s *LateFeeScheduler) RunOnce(ctx context.Context) {
	started := time.Now()
	s.mu.Lock()
	s.lastRunAt = &started
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	s.logger.Info("Starting daily late fee assessment")

	var assessed, skipped, failed int
	for _, status := range []complexes.ComplexStatus{complexes.ComplexStatusActive, complexes.ComplexStatusTrial} {
		a, sk, f := s.runForStatus(ctx, status)
		assessed += a
		skipped += sk
		failed += f
	}

	s.logger.Info("Daily late fee assessment finished",
		zap.Int("assessed", assessed),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(started)),
	)
}

func (s *LateFeeScheduler) runForStatus(ctx context.Context, status complexes.ComplexStatus) (assessed, skipped, failed int) {
	filter := shared.DefaultFilter()
	filter.PageSize = s.config.PageSize

	for {
		page, err := s.complexes.FindByStatus(ctx, status, filter)
		if err != nil {
			s.logger.Error("Failed to list complexes for late fee run",
				zap.String("status", string(status)),
				zap.Error(err),
			)
			failed++
			return
		}
		if len(page) == 0 {
			return
		}

		for i := range page {
			tenantID := page[i].ID
			result, err := s.assessor.AssessLateFees(ctx, tenantID, systemActor)
			switch {
			case errors.Is(err, shared.ErrFeatureNotInPlan):
				// Plan does not include late fees, nothing to do.
				skipped++
			case err != nil:
				s.logger.Error("Late fee assessment failed for complex",
					zap.String("tenant_id", tenantID.String()),
					zap.Error(err),
				)
				failed++
			default:
				assessed += result.Assessed
				skipped += result.Skipped
				s.logger.Debug("Late fees assessed",
					zap.String("tenant_id", tenantID.String()),
					zap.Int("assessed", result.Assessed),
					zap.Int("skipped", result.Skipped),
				)
			}
		}

		if len(page) < filter.PageSize {
			return
		}
		filter.Page++
	}
}

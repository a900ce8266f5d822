package cron

import (
	"context"
	"time"

	"toolshare/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const reconcileTimeout = 2 * time.Minute

// PaymentReconciler activates approved bookings whose payment has settled.
type PaymentReconciler interface {
	ReconcilePayments(ctx context.Context) (int, error)
}

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registers the periodic jobs. Specs use six fields, seconds first, evaluated in UTC.
func NewScheduler(reconcileSpec string, payments PaymentReconciler) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(reconcileSpec, reconcileJob(payments)); err != nil {
		return nil, err
	}
	return &Scheduler{cron: c}, nil
}

func reconcileJob(payments PaymentReconciler) func() {
	return func() {
		logger := utils.GetLogger()
		ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
		defer cancel()

		n, err := payments.ReconcilePayments(ctx)
		if err != nil {
			logger.Error("Payment reconciliation failed", zap.Error(err))
			return
		}
		if n > 0 {
			logger.Info("Payment reconciliation activated bookings", zap.Int("count", n))
		}
	}
}

// Start starts the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	utils.GetLogger().Info("Starting scheduler", zap.Int("jobs", len(s.cron.Entries())))
	s.cron.Start()
}

// Stop stops the scheduler and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

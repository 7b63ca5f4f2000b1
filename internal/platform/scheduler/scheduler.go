package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// sweepTimeout bounds one run of the overdue sweep.
const sweepTimeout = 5 * time.Minute

// OverdueScheduler runs the overdue sweep on a cron spec.
type OverdueScheduler struct {
	cronEngine *cron.Cron
	sweeper    portssvc.OverdueSweeperSvc
	logger     *slog.Logger
	spec       string
	now        func() time.Time
}

// NewOverdueScheduler creates a scheduler for spec, a standard 5-field cron expression
// evaluated in loc. An empty spec disables the job.
func NewOverdueScheduler(sweeper portssvc.OverdueSweeperSvc, logger *slog.Logger, spec string, loc *time.Location) *OverdueScheduler {
	if loc == nil {
		loc = time.Local
	}
	return &OverdueScheduler{
		cronEngine: cron.New(cron.WithLocation(loc)),
		sweeper:    sweeper,
		logger:     logger,
		spec:       spec,
		now:        time.Now,
	}
}

// Start registers the sweep job and starts the cron engine.
func (s *OverdueScheduler) Start() error {
	if s.spec == "" {
		s.logger.Info("Overdue sweep disabled")
		return nil
	}
	if _, err := s.cronEngine.AddFunc(s.spec, s.runJob); err != nil {
		return fmt.Errorf("invalid overdue sweep schedule %q: %w", s.spec, err)
	}
	s.cronEngine.Start()
	s.logger.Info("Overdue scheduler started", slog.String("spec", s.spec))
	return nil
}

func (s *OverdueScheduler) runJob() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce sweeps payments then invoices. A failure of one sweep does not skip the other.
func (s *OverdueScheduler) RunOnce(ctx context.Context) (payments, invoices int) {
	now := s.now()
	s.logger.Info("Overdue sweep triggered", slog.Time("at", now))

	payments, err := s.sweeper.MarkOverduePayments(ctx, now)
	if err != nil {
		s.logger.Error("Overdue payment sweep failed", slog.String("error", err.Error()), slog.Int("moved", payments))
	}
	invoices, err = s.sweeper.MarkUnpaidInvoices(ctx, now)
	if err != nil {
		s.logger.Error("Unpaid invoice sweep failed", slog.String("error", err.Error()), slog.Int("moved", invoices))
	}

	s.logger.Info("Overdue sweep finished", slog.Int("payments", payments), slog.Int("invoices", invoices))
	return payments, invoices
}

// Stop stops the engine and waits for a running sweep to finish.
func (s *OverdueScheduler) Stop() {
	s.logger.Info("Stopping overdue scheduler...")
	<-s.cronEngine.Stop().Done()
	s.logger.Info("Overdue scheduler stopped")
}

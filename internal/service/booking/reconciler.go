// internal/service/booking/reconciler.go
package booking

import (
	"context"
	"time"

	"fleetride-service/internal/domain/car"
	"fleetride-service/internal/domain/driver"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Reconciler sweeps cars and drivers left busy after a failed release
// (crash between the status write and the resource release) and hands
// them back to the pool. Each sweep is a single idempotent statement
// per registry. minAge keeps the sweep off resources reserved by an
// allocation still in flight: a car is flipped busy before its booking
// row exists, and releasing it in that window would let a second
// request double-book it.
type Reconciler struct {
	carRepo    car.Repository
	driverRepo driver.Repository
	minAge     time.Duration
	cron       *cron.Cron
	logger     *zap.Logger
}

func NewReconciler(carRepo car.Repository, driverRepo driver.Repository, minAge time.Duration, logger *zap.Logger) *Reconciler {
	if minAge <= 0 {
		minAge = 10 * time.Minute
	}
	return &Reconciler{
		carRepo:    carRepo,
		driverRepo: driverRepo,
		minAge:     minAge,
		cron:       cron.New(),
		logger:     logger,
	}
}

// Start schedules the sweep. The schedule is a cron expression or a
// descriptor like "@every 5m".
func (r *Reconciler) Start(schedule string) error {
	_, err := r.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		r.Sweep(ctx)
	})
	if err != nil {
		return err
	}
	r.cron.Start()
	r.logger.Info("release reconciler started", zap.String("schedule", schedule))
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (r *Reconciler) Stop() {
	<-r.cron.Stop().Done()
}

// Sweep releases every orphaned car and driver untouched for at least
// minAge.
func (r *Reconciler) Sweep(ctx context.Context) {
	cars, err := r.carRepo.ReleaseOrphaned(ctx, r.minAge)
	if err != nil {
		r.logger.Error("failed to sweep orphaned cars", zap.Error(err))
	}
	drivers, err := r.driverRepo.ReleaseOrphaned(ctx, r.minAge)
	if err != nil {
		r.logger.Error("failed to sweep orphaned drivers", zap.Error(err))
	}
	if cars > 0 || drivers > 0 {
		r.logger.Warn("released orphaned resources",
			zap.Int64("cars", cars),
			zap.Int64("drivers", drivers))
	}
}

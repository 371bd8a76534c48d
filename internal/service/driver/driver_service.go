// internal/service/driver/driver_service.go
package driver

import (
	"context"
	"fmt"

	"fleetride-service/internal/domain/driver"
	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type DriverService struct {
	driverRepo driver.Repository
	userRepo   user.Repository
	logger     *zap.Logger
}

func NewDriverService(driverRepo driver.Repository, userRepo user.Repository, logger *zap.Logger) *DriverService {
	return &DriverService{
		driverRepo: driverRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// Create promotes an existing user account to a driver. The account
// role flips to driver so the auth middleware admits driver routes.
func (s *DriverService) Create(ctx context.Context, req *driver.CreateRequest) (*driver.Driver, error) {
	u, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, xerrors.Validationf("user %d is deactivated", req.UserID)
	}

	exists, err := s.driverRepo.ExistsByUserOrLicense(ctx, req.UserID, req.LicenseNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check driver registration: %w", err)
	}
	if exists {
		return nil, xerrors.Conflictf("user or license already registered as a driver")
	}

	d := &driver.Driver{
		UserID:        req.UserID,
		LicenseNumber: req.LicenseNumber,
		Status:        driver.StatusAvailable,
	}
	if err := s.driverRepo.Create(ctx, d); err != nil {
		return nil, err
	}
	if err := s.userRepo.SetRole(ctx, req.UserID, user.RoleDriver); err != nil {
		return nil, fmt.Errorf("failed to promote user role: %w", err)
	}

	d.User = u.Info()
	s.logger.Info("driver registered",
		zap.Int64("driver_id", d.ID),
		zap.Int64("user_id", d.UserID))
	return d, nil
}

func (s *DriverService) Get(ctx context.Context, id int64) (*driver.Driver, error) {
	return s.driverRepo.FindByID(ctx, id)
}

func (s *DriverService) List(ctx context.Context, filters *driver.ListFilters) ([]driver.Driver, error) {
	if filters != nil && filters.Status != "" && !filters.Status.Valid() {
		return nil, xerrors.Validationf("unknown driver status %q", filters.Status)
	}
	return s.driverRepo.List(ctx, filters)
}

// Update patches driver info. Status changes are restricted to moves
// between AVAILABLE and OFFLINE; the allocator owns ON_RIDE.
func (s *DriverService) Update(ctx context.Context, id int64, req *driver.UpdateRequest) (*driver.Driver, error) {
	d, err := s.driverRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.LicenseNumber != nil {
		d.LicenseNumber = *req.LicenseNumber
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, xerrors.Validationf("unknown driver status %q", *req.Status)
		}
		if *req.Status != d.Status {
			if d.Status == driver.StatusOnRide || *req.Status == driver.StatusOnRide {
				return nil, xerrors.InvalidStatef("driver %d cannot move from %s to %s", d.ID, d.Status, *req.Status)
			}
			d.Status = *req.Status
		}
	}

	if err := s.driverRepo.Update(ctx, id, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Deregister soft-deletes a driver: the driver goes OFFLINE and the
// backing user account reverts to a plain user. A driver on an active
// trip cannot be deregistered.
func (s *DriverService) Deregister(ctx context.Context, id int64) error {
	d, err := s.driverRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if d.Status == driver.StatusOnRide {
		return xerrors.InvalidStatef("driver %d is on an active trip", id)
	}
	if err := s.driverRepo.SetOffline(ctx, id); err != nil {
		return err
	}
	if err := s.userRepo.SetRole(ctx, d.UserID, user.RoleUser); err != nil {
		return fmt.Errorf("failed to revert user role: %w", err)
	}
	s.logger.Info("driver deregistered", zap.Int64("driver_id", id))
	return nil
}

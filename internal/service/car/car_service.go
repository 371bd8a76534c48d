// internal/service/car/car_service.go
package car

import (
	"context"
	"fmt"

	"fleetride-service/internal/domain/car"
	xerrors "fleetride-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type CarService struct {
	carRepo car.Repository
	logger  *zap.Logger
}

func NewCarService(carRepo car.Repository, logger *zap.Logger) *CarService {
	return &CarService{carRepo: carRepo, logger: logger}
}

// Create registers a new fleet vehicle. New cars always start AVAILABLE.
func (s *CarService) Create(ctx context.Context, req *car.CreateRequest) (*car.Car, error) {
	exists, err := s.carRepo.ExistsByPlate(ctx, req.LicensePlate)
	if err != nil {
		return nil, fmt.Errorf("failed to check license plate: %w", err)
	}
	if exists {
		return nil, xerrors.Conflictf("car with plate %s already registered", req.LicensePlate)
	}

	c := &car.Car{
		Model:        req.Model,
		LicensePlate: req.LicensePlate,
		Capacity:     req.Capacity,
		PricePerKm:   req.PricePerKm,
		PricePerDay:  req.PricePerDay,
		Status:       car.StatusAvailable,
	}
	if err := s.carRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("car registered",
		zap.Int64("car_id", c.ID),
		zap.String("plate", c.LicensePlate))
	return c, nil
}

func (s *CarService) Get(ctx context.Context, id int64) (*car.Car, error) {
	return s.carRepo.FindByID(ctx, id)
}

func (s *CarService) List(ctx context.Context, filters *car.ListFilters) ([]car.Car, error) {
	if filters != nil && filters.Status != "" && !filters.Status.Valid() {
		return nil, xerrors.Validationf("unknown car status %q", filters.Status)
	}
	return s.carRepo.List(ctx, filters)
}

// Update patches car info. Status changes are restricted to moves in
// and out of MAINTENANCE; the allocator owns ON_RIDE and RENTED.
func (s *CarService) Update(ctx context.Context, id int64, req *car.UpdateRequest) (*car.Car, error) {
	c, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Model != nil {
		c.Model = *req.Model
	}
	if req.LicensePlate != nil && *req.LicensePlate != c.LicensePlate {
		exists, err := s.carRepo.ExistsByPlate(ctx, *req.LicensePlate)
		if err != nil {
			return nil, fmt.Errorf("failed to check license plate: %w", err)
		}
		if exists {
			return nil, xerrors.Conflictf("car with plate %s already registered", *req.LicensePlate)
		}
		c.LicensePlate = *req.LicensePlate
	}
	if req.Capacity != nil {
		c.Capacity = *req.Capacity
	}
	if req.PricePerKm != nil {
		c.PricePerKm = *req.PricePerKm
	}
	if req.PricePerDay != nil {
		c.PricePerDay = *req.PricePerDay
	}
	if req.Status != nil {
		if err := s.applyStatusChange(c, *req.Status); err != nil {
			return nil, err
		}
	}

	if err := s.carRepo.Update(ctx, id, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Decommission soft-deletes a car by parking it in MAINTENANCE. A car
// on an active booking cannot be pulled out from under it.
func (s *CarService) Decommission(ctx context.Context, id int64) error {
	c, err := s.carRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c.Status == car.StatusOnRide || c.Status == car.StatusRented {
		return xerrors.InvalidStatef("car %d is on an active booking", id)
	}
	if c.Status == car.StatusMaintenance {
		return nil
	}
	if err := s.carRepo.SetStatus(ctx, id, car.StatusMaintenance); err != nil {
		return err
	}
	s.logger.Info("car decommissioned", zap.Int64("car_id", id))
	return nil
}

func (s *CarService) applyStatusChange(c *car.Car, target car.Status) error {
	if !target.Valid() {
		return xerrors.Validationf("unknown car status %q", target)
	}
	switch {
	case target == c.Status:
		return nil
	case target == car.StatusMaintenance && c.Status == car.StatusAvailable:
	case target == car.StatusAvailable && c.Status == car.StatusMaintenance:
	default:
		return xerrors.InvalidStatef("car %d cannot move from %s to %s", c.ID, c.Status, target)
	}
	c.Status = target
	return nil
}

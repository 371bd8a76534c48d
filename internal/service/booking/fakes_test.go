package booking

import (
	"context"
	"sync"
	"time"

	"fleetride-service/internal/domain/booking"
	"fleetride-service/internal/domain/car"
	"fleetride-service/internal/domain/driver"
	"fleetride-service/internal/domain/user"
	xerrors "fleetride-service/internal/pkg/errors"
)

// In-memory repositories for service tests. The car and driver fakes
// guard their maps with a mutex so the concurrency tests exercise the
// same one-winner semantics the SQL conditional updates provide.

type fakeCarRepo struct {
	mu   sync.Mutex
	cars map[int64]*car.Car

	failRelease map[int64]error
}

func newFakeCarRepo(cars ...*car.Car) *fakeCarRepo {
	r := &fakeCarRepo{cars: make(map[int64]*car.Car)}
	for _, c := range cars {
		r.cars[c.ID] = c
	}
	return r
}

func (r *fakeCarRepo) Create(ctx context.Context, c *car.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = int64(len(r.cars) + 1)
	r.cars[c.ID] = c
	return nil
}

func (r *fakeCarRepo) FindByID(ctx context.Context, id int64) (*car.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cars[id]
	if !ok {
		return nil, xerrors.NotFoundf("car %d not found", id)
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCarRepo) List(ctx context.Context, filters *car.ListFilters) ([]car.Car, error) {
	return nil, nil
}

func (r *fakeCarRepo) Update(ctx context.Context, id int64, c *car.Car) error { return nil }

func (r *fakeCarRepo) SetStatus(ctx context.Context, id int64, status car.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cars[id]
	if !ok {
		return xerrors.NotFoundf("car %d not found", id)
	}
	c.Status = status
	return nil
}

func (r *fakeCarRepo) ExistsByPlate(ctx context.Context, plate string) (bool, error) {
	return false, nil
}

func (r *fakeCarRepo) Reserve(ctx context.Context, id int64, target car.Status) (*car.Car, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cars[id]
	if !ok || c.Status != car.StatusAvailable {
		return nil, nil
	}
	c.Status = target
	c.UpdatedAt = time.Now()
	cp := *c
	return &cp, nil
}

func (r *fakeCarRepo) Release(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failRelease[id]; ok {
		return err
	}
	c, ok := r.cars[id]
	if !ok {
		return nil
	}
	if c.Status == car.StatusOnRide || c.Status == car.StatusRented {
		c.Status = car.StatusAvailable
	}
	return nil
}

func (r *fakeCarRepo) ReleaseOrphaned(ctx context.Context, olderThan time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	var released int64
	for _, c := range r.cars {
		if (c.Status == car.StatusOnRide || c.Status == car.StatusRented) && c.UpdatedAt.Before(cutoff) {
			c.Status = car.StatusAvailable
			c.UpdatedAt = time.Now()
			released++
		}
	}
	return released, nil
}

func (r *fakeCarRepo) status(id int64) car.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cars[id].Status
}

func (r *fakeCarRepo) backdate(id int64, age time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cars[id].UpdatedAt = time.Now().Add(-age)
}

type fakeDriverRepo struct {
	mu      sync.Mutex
	drivers map[int64]*driver.Driver

	failRelease map[int64]error
}

func newFakeDriverRepo(drivers ...*driver.Driver) *fakeDriverRepo {
	r := &fakeDriverRepo{drivers: make(map[int64]*driver.Driver)}
	for _, d := range drivers {
		r.drivers[d.ID] = d
	}
	return r
}

func (r *fakeDriverRepo) Create(ctx context.Context, d *driver.Driver) error { return nil }

func (r *fakeDriverRepo) FindByID(ctx context.Context, id int64) (*driver.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[id]
	if !ok {
		return nil, xerrors.NotFoundf("driver %d not found", id)
	}
	dp := *d
	return &dp, nil
}

func (r *fakeDriverRepo) List(ctx context.Context, filters *driver.ListFilters) ([]driver.Driver, error) {
	return nil, nil
}

func (r *fakeDriverRepo) Update(ctx context.Context, id int64, d *driver.Driver) error { return nil }

func (r *fakeDriverRepo) SetOffline(ctx context.Context, id int64) error { return nil }

func (r *fakeDriverRepo) ExistsByUserOrLicense(ctx context.Context, userID int64, license string) (bool, error) {
	return false, nil
}

func (r *fakeDriverRepo) ClaimAvailable(ctx context.Context, carID int64) (*driver.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.drivers {
		if d.Status == driver.StatusAvailable && d.CurrentCarID == nil {
			d.Status = driver.StatusOnRide
			id := carID
			d.CurrentCarID = &id
			d.UpdatedAt = time.Now()
			dp := *d
			return &dp, nil
		}
	}
	return nil, nil
}

func (r *fakeDriverRepo) Release(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failRelease[id]; ok {
		return err
	}
	d, ok := r.drivers[id]
	if !ok {
		return nil
	}
	if d.Status == driver.StatusOnRide {
		d.Status = driver.StatusAvailable
		d.CurrentCarID = nil
	}
	return nil
}

func (r *fakeDriverRepo) ReleaseOrphaned(ctx context.Context, olderThan time.Duration) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	var released int64
	for _, d := range r.drivers {
		if d.Status == driver.StatusOnRide && d.UpdatedAt.Before(cutoff) {
			d.Status = driver.StatusAvailable
			d.CurrentCarID = nil
			d.UpdatedAt = time.Now()
			released++
		}
	}
	return released, nil
}

func (r *fakeDriverRepo) status(id int64) driver.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drivers[id].Status
}

func (r *fakeDriverRepo) currentCar(id int64) *int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.drivers[id].CurrentCarID
}

func (r *fakeDriverRepo) backdate(id int64, age time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drivers[id].UpdatedAt = time.Now().Add(-age)
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[int64]*booking.Booking
	nextID   int64

	failCreate error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*booking.Booking), nextID: 1}
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate != nil {
		return r.failCreate
	}
	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	cp.Cars = append([]booking.CarEntry(nil), b.Cars...)
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, xerrors.NotFoundf("booking %d not found", id)
	}
	cp := *b
	cp.Cars = append([]booking.CarEntry(nil), b.Cars...)
	return &cp, nil
}

func (r *fakeBookingRepo) ListByUser(ctx context.Context, userID int64, bookingType booking.Type) ([]booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []booking.Booking
	for _, b := range r.bookings {
		if b.UserID == userID && (bookingType == "" || b.Type == bookingType) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatusIf(ctx context.Context, id int64, from, to booking.Status, stampEnd bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	if stampEnd && b.EndTime == nil {
		now := time.Now()
		b.EndTime = &now
	}
	for i := range b.Cars {
		b.Cars[i].Status = to
	}
	return true, nil
}

type fakeUserRepo struct {
	users map[int64]*user.User
}

func newFakeUserRepo(users ...*user.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]*user.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, u *user.User) error { return nil }

func (r *fakeUserRepo) FindByID(ctx context.Context, id int64) (*user.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, xerrors.NotFoundf("user %d not found", id)
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, xerrors.NotFoundf("user with email %s not found", email)
}

func (r *fakeUserRepo) Update(ctx context.Context, id int64, u *user.User) error { return nil }

func (r *fakeUserRepo) SetRole(ctx context.Context, id int64, role user.Role) error { return nil }

func (r *fakeUserRepo) Deactivate(ctx context.Context, id int64) error { return nil }

func (r *fakeUserRepo) ExistsByEmailOrPhone(ctx context.Context, email, phone string) (bool, error) {
	return false, nil
}

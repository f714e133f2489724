package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gocomet/rides-api/internal/domain/ride"
)

// RideRepository stores rides in memory, in insertion order. IDs start at 1
// and are never reused.
type RideRepository struct {
	mu     sync.RWMutex
	rides  []*ride.Ride
	nextID int64
	now    func() time.Time
}

var _ ride.Repository = (*RideRepository)(nil)

// NewRideRepository creates an empty repository
func NewRideRepository() *RideRepository {
	return &RideRepository{
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a ride with the next ID and the current time
func (r *RideRepository) Create(ctx context.Context, in ride.Input) (*ride.Ride, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ride.StorageError{Op: "insert", Err: err}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rd := &ride.Ride{
		ID:             r.nextID,
		StartLatitude:  in.StartLatitude,
		StartLongitude: in.StartLongitude,
		EndLatitude:    in.EndLatitude,
		EndLongitude:   in.EndLongitude,
		RiderName:      in.RiderName,
		DriverName:     in.DriverName,
		DriverVehicle:  in.DriverVehicle,
		CreatedAt:      r.now(),
	}
	r.nextID++
	r.rides = append(r.rides, rd)

	stored := *rd
	return &stored, nil
}

// List returns one page of rides in ID order
func (r *RideRepository) List(ctx context.Context, page ride.Page) ([]*ride.Ride, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, &ride.StorageError{Op: "list", Err: err}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	offset := page.Offset()
	if offset >= len(r.rides) {
		return []*ride.Ride{}, nil
	}

	end := len(r.rides)
	if remaining := end - offset; page.Limit() < remaining {
		end = offset + page.Limit()
	}
	out := make([]*ride.Ride, 0, end-offset)
	for _, rd := range r.rides[offset:end] {
		cp := *rd
		out = append(out, &cp)
	}
	return out, nil
}

// GetByID returns the ride with id; found is false when there is none
func (r *RideRepository) GetByID(ctx context.Context, id int64) (*ride.Ride, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, &ride.StorageError{Op: "get", Err: err}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	// IDs are dense and ordered, so the slice index is id-1
	if id < 1 || id > int64(len(r.rides)) {
		return nil, false, nil
	}
	cp := *r.rides[id-1]
	return &cp, true, nil
}

// Len returns the number of stored rides
func (r *RideRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rides)
}

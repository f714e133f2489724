package ride

import (
	"context"
	"time"
)

// Ride represents a persisted trip record
type Ride struct {
	ID             int64     `json:"rideID"`
	StartLatitude  float64   `json:"startLat"`
	StartLongitude float64   `json:"startLong"`
	EndLatitude    float64   `json:"endLat"`
	EndLongitude   float64   `json:"endLong"`
	RiderName      string    `json:"riderName"`
	DriverName     string    `json:"driverName"`
	DriverVehicle  string    `json:"driverVehicle"`
	CreatedAt      time.Time `json:"created"`
}

// Input holds the validated client-supplied fields of a new ride
type Input struct {
	StartLatitude  float64
	StartLongitude float64
	EndLatitude    float64
	EndLongitude   float64
	RiderName      string
	DriverName     string
	DriverVehicle  string
}

// Repository interface
type Repository interface {
	// Create inserts a ride and returns the stored record, including the
	// generated ID and creation timestamp.
	Create(ctx context.Context, in Input) (*Ride, error)

	// List returns up to page.Size rides ordered by ID, starting at page.Offset().
	// An empty window yields an empty slice and a nil error.
	List(ctx context.Context, page Page) ([]*Ride, error)

	// GetByID reports found=false with a nil error when no ride has the given ID.
	GetByID(ctx context.Context, id int64) (r *Ride, found bool, err error)
}


package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gocomet/rides-api/internal/domain/ride"
)

const rideColumns = `ride_id, start_lat, start_long, end_lat, end_long, rider_name, driver_name, driver_vehicle, created`

// RideRepository is a PostgreSQL implementation of ride.Repository.
type RideRepository struct {
	db TxBeginner
}

var _ ride.Repository = (*RideRepository)(nil)

// NewRideRepository creates a ride repository over an owned connection pool.
func NewRideRepository(db *sql.DB) *RideRepository {
	return &RideRepository{db: db}
}

// Create inserts the ride and reads the stored row back inside one transaction.
func (r *RideRepository) Create(ctx context.Context, in ride.Input) (created *ride.Ride, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &ride.StorageError{Op: "begin", Err: err}
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO rides (start_lat, start_long, end_lat, end_long, rider_name, driver_name, driver_vehicle)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ride_id
	`,
		in.StartLatitude,
		in.StartLongitude,
		in.EndLatitude,
		in.EndLongitude,
		in.RiderName,
		in.DriverName,
		in.DriverVehicle,
	).Scan(&id)
	if err != nil {
		return nil, &ride.StorageError{Op: "insert", Err: err}
	}

	created, err = scanRide(tx.QueryRowContext(ctx, `SELECT `+rideColumns+` FROM rides WHERE ride_id = $1`, id))
	if err != nil {
		return nil, &ride.StorageError{Op: "reload", Err: err}
	}

	if err = tx.Commit(); err != nil {
		return nil, &ride.StorageError{Op: "commit", Err: err}
	}

	return created, nil
}

// List returns one page of rides in ID order.
func (r *RideRepository) List(ctx context.Context, page ride.Page) ([]*ride.Ride, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rideColumns+` FROM rides ORDER BY ride_id ASC LIMIT $1 OFFSET $2`,
		page.Limit(), page.Offset(),
	)
	if err != nil {
		return nil, &ride.StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	rides := make([]*ride.Ride, 0, min(page.Limit(), ride.MaxPageSize))
	for rows.Next() {
		rd, err := scanRide(rows)
		if err != nil {
			return nil, &ride.StorageError{Op: "list", Err: err}
		}
		rides = append(rides, rd)
	}
	if err := rows.Err(); err != nil {
		return nil, &ride.StorageError{Op: "list", Err: err}
	}

	return rides, nil
}

// GetByID retrieves a ride by ID.
func (r *RideRepository) GetByID(ctx context.Context, id int64) (*ride.Ride, bool, error) {
	rd, err := scanRide(r.db.QueryRowContext(ctx, `SELECT `+rideColumns+` FROM rides WHERE ride_id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, &ride.StorageError{Op: fmt.Sprintf("get %d", id), Err: err}
	}
	return rd, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(row rowScanner) (*ride.Ride, error) {
	var rd ride.Ride
	if err := row.Scan(
		&rd.ID,
		&rd.StartLatitude,
		&rd.StartLongitude,
		&rd.EndLatitude,
		&rd.EndLongitude,
		&rd.RiderName,
		&rd.DriverName,
		&rd.DriverVehicle,
		&rd.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &rd, nil
}

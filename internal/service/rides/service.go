package rides

import (
	"context"
	"errors"
	"fmt"

	"github.com/gocomet/rides-api/internal/domain/ride"
	"github.com/gocomet/rides-api/pkg/logger"
	"github.com/gocomet/rides-api/pkg/monitoring"
	"github.com/gocomet/rides-api/pkg/websocket"
)

// EventRideCreated is published to the live feed after every successful create
const EventRideCreated = "ride_created"

// Publisher delivers events to live feed subscribers
type Publisher interface {
	Publish(msg websocket.Message)
}

// Service validates ride input and coordinates persistence
type Service struct {
	repo      ride.Repository
	logger    *logger.Logger
	nr        *monitoring.NewRelicApp
	publisher Publisher
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the service logger
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithMonitoring records ride events in New Relic
func WithMonitoring(nr *monitoring.NewRelicApp) Option {
	return func(s *Service) { s.nr = nr }
}

// WithPublisher sends created rides to the live feed
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// NewService creates a ride service over repo
func NewService(repo ride.Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		logger: logger.NewNop(),
		nr:     monitoring.Disabled(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates raw input and persists the ride. Invalid input never
// reaches the repository.
func (s *Service) Create(ctx context.Context, raw ride.RawInput) (*ride.Ride, error) {
	in, err := ride.Validate(raw)
	if err != nil {
		var ve *ride.ValidationError
		if errors.As(err, &ve) {
			s.nr.RecordValidationFailure(ve.Field)
		}
		return nil, err
	}

	created, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create ride: %w", err)
	}

	s.logger.Info("Ride created",
		logger.Int64("ride_id", created.ID),
		logger.String("driver_vehicle", created.DriverVehicle),
	)
	s.nr.RecordRideCreated(created.ID, created.DriverVehicle)

	if s.publisher != nil {
		s.publisher.Publish(websocket.Message{Type: EventRideCreated, Data: created})
	}

	return created, nil
}

// List returns one page of rides; an empty page is ride.ErrRidesNotFound
func (s *Service) List(ctx context.Context, page ride.Page) ([]*ride.Ride, error) {
	rides, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list rides: %w", err)
	}
	if len(rides) == 0 {
		return nil, ride.ErrRidesNotFound
	}

	s.nr.RecordListPageSize(len(rides))
	return rides, nil
}

// Get returns the ride with the given ID, or ride.ErrRidesNotFound
func (s *Service) Get(ctx context.Context, id int64) (*ride.Ride, error) {
	rd, found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ride %d: %w", id, err)
	}
	if !found {
		return nil, ride.ErrRidesNotFound
	}
	return rd, nil
}

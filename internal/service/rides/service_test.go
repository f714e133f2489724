package rides

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocomet/rides-api/internal/domain/ride"
	"github.com/gocomet/rides-api/internal/repository/memory"
	"github.com/gocomet/rides-api/pkg/websocket"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []websocket.Message
}

func (p *recordingPublisher) Publish(msg websocket.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
}

// failingRepo fails every call with a storage error
type failingRepo struct{}

func (failingRepo) Create(context.Context, ride.Input) (*ride.Ride, error) {
	return nil, &ride.StorageError{Op: "insert", Err: errors.New("disk full")}
}

func (failingRepo) List(context.Context, ride.Page) ([]*ride.Ride, error) {
	return nil, &ride.StorageError{Op: "list", Err: errors.New("disk full")}
}

func (failingRepo) GetByID(context.Context, int64) (*ride.Ride, bool, error) {
	return nil, false, &ride.StorageError{Op: "get", Err: errors.New("disk full")}
}

func scenarioInput() ride.RawInput {
	return ride.RawInput{
		StartLat:      90.0,
		StartLong:     90.0,
		EndLat:        90.0,
		EndLong:       90.0,
		RiderName:     "riderA",
		DriverName:    "driverA",
		DriverVehicle: "SWR2022",
	}
}

func TestService_CreateThenGet(t *testing.T) {
	repo := memory.NewRideRepository()
	pub := &recordingPublisher{}
	svc := NewService(repo, WithPublisher(pub))
	ctx := context.Background()

	created, err := svc.Create(ctx, scenarioInput())
	require.NoError(t, err)
	assert.Equal(t, "SWR2022", created.DriverVehicle)
	assert.Positive(t, created.ID)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, EventRideCreated, pub.msgs[0].Type)
	assert.Equal(t, created, pub.msgs[0].Data)
}

func TestService_CreateInvalidDoesNotPersist(t *testing.T) {
	repo := memory.NewRideRepository()
	pub := &recordingPublisher{}
	svc := NewService(repo, WithPublisher(pub))

	raw := scenarioInput()
	raw.StartLong = 181.0

	_, err := svc.Create(context.Background(), raw)
	assert.True(t, ride.IsValidation(err))
	assert.Equal(t, 0, repo.Len())
	assert.Empty(t, pub.msgs)
}

func TestService_ListEmptyIsNotFound(t *testing.T) {
	svc := NewService(memory.NewRideRepository())

	_, err := svc.List(context.Background(), ride.Page{Index: 0, Size: 25})
	assert.ErrorIs(t, err, ride.ErrRidesNotFound)
}

func TestService_ListBoundedByPageSize(t *testing.T) {
	svc := NewService(memory.NewRideRepository())
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, scenarioInput())
		require.NoError(t, err)
	}

	rides, err := svc.List(ctx, ride.Page{Index: 0, Size: 2})
	require.NoError(t, err)
	assert.Len(t, rides, 2)

	_, err = svc.List(ctx, ride.Page{Index: 5, Size: 2})
	assert.ErrorIs(t, err, ride.ErrRidesNotFound)
}

func TestService_GetUnknownIsNotFound(t *testing.T) {
	svc := NewService(memory.NewRideRepository())

	_, err := svc.Get(context.Background(), 12345)
	assert.ErrorIs(t, err, ride.ErrRidesNotFound)
}

func TestService_StorageFailuresPropagate(t *testing.T) {
	svc := NewService(failingRepo{})
	ctx := context.Background()

	_, err := svc.Create(ctx, scenarioInput())
	assert.True(t, ride.IsStorage(err))

	_, err = svc.List(ctx, ride.Page{Size: 10})
	assert.True(t, ride.IsStorage(err))
	assert.NotErrorIs(t, err, ride.ErrRidesNotFound)

	_, err = svc.Get(ctx, 1)
	assert.True(t, ride.IsStorage(err))
}

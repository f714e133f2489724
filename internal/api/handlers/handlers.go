package handlers

import (
	"net/http"

	gorilla "github.com/gorilla/websocket"

	"github.com/gocomet/rides-api/internal/domain/ride"
	"github.com/gocomet/rides-api/internal/service/rides"
	"github.com/gocomet/rides-api/pkg/logger"
	"github.com/gocomet/rides-api/pkg/websocket"
)

// Options tunes handler behaviour
type Options struct {
	// LegacyResponses answers with 200 for every outcome and wraps single
	// rides in a one-element array
	LegacyResponses bool
	DefaultPageSize int
	MaxPageSize     int
	ReadBufferSize  int
	WriteBufferSize int
}

// Handlers holds all handler dependencies
type Handlers struct {
	Rides    *rides.Service
	Logger   *logger.Logger
	Hub      *websocket.Hub
	opts     Options
	upgrader gorilla.Upgrader
}

// NewHandlers creates a new Handlers instance
func NewHandlers(svc *rides.Service, logger *logger.Logger, hub *websocket.Hub, opts Options) *Handlers {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = ride.DefaultPageSize
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = ride.MaxPageSize
	}
	if opts.ReadBufferSize <= 0 {
		opts.ReadBufferSize = 1024
	}
	if opts.WriteBufferSize <= 0 {
		opts.WriteBufferSize = 1024
	}

	return &Handlers{
		Rides:  svc,
		Logger: logger,
		Hub:    hub,
		opts:   opts,
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  opts.ReadBufferSize,
			WriteBufferSize: opts.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true // read-only public feed
			},
		},
	}
}

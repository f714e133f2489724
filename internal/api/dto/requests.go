package dto

import "github.com/gocomet/rides-api/internal/domain/ride"

// CreateRideRequest represents a request to create a new ride. Fields are
// untyped; type mismatches are reported by the validator.
type CreateRideRequest struct {
	StartLat      any `json:"start_lat"`
	StartLong     any `json:"start_long"`
	EndLat        any `json:"end_lat"`
	EndLong       any `json:"end_long"`
	RiderName     any `json:"rider_name"`
	DriverName    any `json:"driver_name"`
	DriverVehicle any `json:"driver_vehicle"`
}

// RawInput converts the request into the validator's input
func (r CreateRideRequest) RawInput() ride.RawInput {
	return ride.RawInput{
		StartLat:      r.StartLat,
		StartLong:     r.StartLong,
		EndLat:        r.EndLat,
		EndLong:       r.EndLong,
		RiderName:     r.RiderName,
		DriverName:    r.DriverName,
		DriverVehicle: r.DriverVehicle,
	}
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

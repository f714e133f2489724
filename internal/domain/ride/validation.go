package ride

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Coordinate bounds in degrees, inclusive
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

const (
	msgStartCoordinates = "Start latitude and longitude must be between -90 - 90 and -180 to 180 degrees respectively"
	msgEndCoordinates   = "End latitude and longitude must be between -90 - 90 and -180 to 180 degrees respectively"
	msgRiderName        = "Rider name must be a non empty string"
	msgDriverName       = "Driver name must be a non empty string"
	msgDriverVehicle    = "Driver vehicle must be a non empty string"
)

var (
	errCoordinates    = &ValidationError{Field: "coordinates", Message: "latitude and longitude must be between -90 - 90 and -180 to 180 degrees respectively"}
	errNonEmptyString = &ValidationError{Field: "string", Message: "value must be a non empty string"}
)

// RawInput is a ride creation request as decoded from JSON, before any type checks.
// Coordinates may arrive as numbers or numeric strings; names must be strings.
type RawInput struct {
	StartLat      any
	StartLong     any
	EndLat        any
	EndLong       any
	RiderName     any
	DriverName    any
	DriverVehicle any
}

// ValidateCoordinates checks a latitude/longitude pair against the WGS84 ranges.
// NaN never validates.
func ValidateCoordinates(lat, long float64) error {
	if !(lat >= MinLatitude && lat <= MaxLatitude) || !(long >= MinLongitude && long <= MaxLongitude) {
		return errCoordinates
	}
	return nil
}

// ValidateNonEmptyString fails unless value is a string of at least one byte.
// No trimming is applied.
func ValidateNonEmptyString(value any) error {
	s, ok := value.(string)
	if !ok || len(s) == 0 {
		return errNonEmptyString
	}
	return nil
}

// Validate runs every creation check in order and returns the first failure.
// The order is start coordinates, end coordinates, rider name, driver name,
// driver vehicle.
func Validate(raw RawInput) (Input, error) {
	startLat, okLat := toFloat(raw.StartLat)
	startLong, okLong := toFloat(raw.StartLong)
	if !okLat || !okLong || ValidateCoordinates(startLat, startLong) != nil {
		return Input{}, &ValidationError{Field: "start", Message: msgStartCoordinates}
	}

	endLat, okLat := toFloat(raw.EndLat)
	endLong, okLong := toFloat(raw.EndLong)
	if !okLat || !okLong || ValidateCoordinates(endLat, endLong) != nil {
		return Input{}, &ValidationError{Field: "end", Message: msgEndCoordinates}
	}

	if ValidateNonEmptyString(raw.RiderName) != nil {
		return Input{}, &ValidationError{Field: "rider_name", Message: msgRiderName}
	}
	if ValidateNonEmptyString(raw.DriverName) != nil {
		return Input{}, &ValidationError{Field: "driver_name", Message: msgDriverName}
	}
	if ValidateNonEmptyString(raw.DriverVehicle) != nil {
		return Input{}, &ValidationError{Field: "driver_vehicle", Message: msgDriverVehicle}
	}

	return Input{
		StartLatitude:  startLat,
		StartLongitude: startLong,
		EndLatitude:    endLat,
		EndLongitude:   endLong,
		RiderName:      raw.RiderName.(string),
		DriverName:     raw.DriverName.(string),
		DriverVehicle:  raw.DriverVehicle.(string),
	}, nil
}

// toFloat coerces a decoded JSON value into a float64. Range checks are left
// to ValidateCoordinates.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

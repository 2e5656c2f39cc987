package geofence

import "errors"

var (
	ErrZoneNotFound = errors.New("geofence zone not found")
)

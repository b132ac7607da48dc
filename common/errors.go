package common

import "errors"

var (
	// ErrInvalidDate is returned for date inputs that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidWindow is returned for window lengths outside [MinWindow, MaxWindow].
	ErrInvalidWindow = errors.New("invalid window length")
	ErrInvalidPeriod = errors.New("invalid period")
	// ErrNoDataInRange means the query was valid but selected no rows.
	ErrNoDataInRange = errors.New("no data in range")
)

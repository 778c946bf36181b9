package attendance

import "errors"

// Attendance domain errors
var (
	ErrMalformedDate = errors.New("attendance date is not a valid YYYY-MM-DD date")
)

// Package lenient parses the free-text numeric fields that operators type into
// employee and payroll records.
//
// Every function here is total: blank or unparsable input yields the zero value
// instead of an error. Callers that need to tell "0" apart from "garbage" must
// validate before calling.
package lenient

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// UnparsableSerial is the sort key given to serial numbers that are not integers.
const UnparsableSerial = math.MaxInt

// Decimal parses s as a decimal number. Surrounding whitespace is ignored.
// Blank or malformed input returns decimal.Zero.
func Decimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Int parses s as a base-10 integer. Blank or malformed input returns 0.
func Int(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// SerialKey turns an employee serial number into an ordering key.
// Blank serials count as 0; anything else that is not an integer sorts last.
func SerialKey(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return UnparsableSerial
	}
	return n
}

package resolver

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

var errElapsedFormat = errors.New("expected H:MM:SS")

// maxElapsedHours keeps hours plus the largest minutes and seconds inside
// time.Duration.
const maxElapsedHours = math.MaxInt64/int64(time.Hour) - 1

// ParseElapsed parses a GTFS service-day time such as "8:05:00" or
// "25:10:00" as the elapsed time since the start of the service day. Hours
// are unbounded so times after midnight stay after the evening ones. The
// seconds field may carry a fractional part.
func ParseElapsed(value string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, errElapsedFormat
	}

	hours, err := parseDigits(parts[0])
	if err != nil || hours > maxElapsedHours {
		return 0, errElapsedFormat
	}

	if len(parts[1]) != 2 {
		return 0, errElapsedFormat
	}
	minutes, err := parseDigits(parts[1])
	if err != nil || minutes > 59 {
		return 0, errElapsedFormat
	}

	whole, fraction, hasFraction := strings.Cut(parts[2], ".")
	if len(whole) != 2 {
		return 0, errElapsedFormat
	}
	seconds, err := parseDigits(whole)
	if err != nil || seconds > 59 {
		return 0, errElapsedFormat
	}

	var nanoseconds int64
	if hasFraction {
		if nanoseconds, err = parseFraction(fraction); err != nil {
			return 0, errElapsedFormat
		}
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(nanoseconds), nil
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// parseDigits accepts a non-empty run of ASCII digits only.
func parseDigits(value string) (int64, error) {
	if !isDigits(value) {
		return 0, errElapsedFormat
	}

	return strconv.ParseInt(value, 10, 64)
}

// parseFraction turns the digits after the decimal point into nanoseconds,
// dropping anything finer.
func parseFraction(fraction string) (int64, error) {
	if !isDigits(fraction) {
		return 0, errElapsedFormat
	}
	if len(fraction) > 9 {
		fraction = fraction[:9]
	}
	digits, err := parseDigits(fraction)
	if err != nil {
		return 0, err
	}

	for i := len(fraction); i < 9; i++ {
		digits *= 10
	}

	return digits, nil
}

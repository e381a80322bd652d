package resolver

import (
	"strconv"
	"time"

	"github.com/travigo/gtfs2geojson/pkg/tabular"
)

// TripTimeSpan is the first and last usable stop time of one trip.
// Either end stays unset when every row for the trip was malformed.
type TripTimeSpan struct {
	EarliestSequence int
	LatestSequence   int
	Departure        time.Duration
	Arrival          time.Duration

	hasEarliest bool
	hasLatest   bool
}

// Duration is the arrival at the latest stop minus the departure from the
// earliest one, defined once both ends are set.
func (s *TripTimeSpan) Duration() (time.Duration, bool) {
	if s == nil || !s.hasEarliest || !s.hasLatest {
		return 0, false
	}

	return s.Arrival - s.Departure, true
}

func (s *TripTimeSpan) observe(sequence int, departure time.Duration, arrival time.Duration) {
	if !s.hasEarliest || sequence < s.EarliestSequence {
		s.EarliestSequence = sequence
		s.Departure = departure
		s.hasEarliest = true
	}

	if !s.hasLatest || sequence > s.LatestSequence {
		s.LatestSequence = sequence
		s.Arrival = arrival
		s.hasLatest = true
	}
}

// ResolveTripTimes scans the stop_times table once and returns the span of
// every trip it mentions.
func ResolveTripTimes(stopTimes *tabular.Table, reporter Reporter) (map[string]*TripTimeSpan, error) {
	if err := stopTimes.Require("trip_id", "arrival_time", "departure_time", "stop_sequence"); err != nil {
		return nil, err
	}

	spans := map[string]*TripTimeSpan{}

	for _, record := range stopTimes.Records() {
		tripID := record.Get("trip_id")

		span, exists := spans[tripID]
		if !exists {
			span = &TripTimeSpan{}
			spans[tripID] = span
		}

		sequence, err := strconv.Atoi(record.Get("stop_sequence"))
		if err != nil {
			reporter.Report(&MalformedValue{
				Table:  stopTimes.Name,
				Line:   record.Line,
				Column: "stop_sequence",
				Value:  record.Get("stop_sequence"),
			})
			continue
		}

		arrivalValue, departureValue := record.Get("arrival_time"), record.Get("departure_time")
		if arrivalValue == "" || departureValue == "" {
			// Untimed stop, interpolated by consumers
			continue
		}

		arrival, err := ParseElapsed(arrivalValue)
		if err != nil {
			reporter.Report(&MalformedTimeValue{TripID: tripID, Line: record.Line, Column: "arrival_time", Value: arrivalValue})
			continue
		}
		departure, err := ParseElapsed(departureValue)
		if err != nil {
			reporter.Report(&MalformedTimeValue{TripID: tripID, Line: record.Line, Column: "departure_time", Value: departureValue})
			continue
		}

		span.observe(sequence, departure, arrival)
	}

	return spans, nil
}

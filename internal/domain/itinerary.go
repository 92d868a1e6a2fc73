package domain

import "time"

// Segment is one flown leg between two airports, as translated from the
// provider payload at the adapter boundary.
type Segment struct {
	CarrierCode string
	Number      string
	Origin      string
	Destination string
	DepartureAt time.Time
	ArrivalAt   time.Time
	Duration    string
}

// Leg is one direction of a trip (outbound or return).
type Leg struct {
	Duration string
	Segments []Segment
}

// Itinerary is a single priced offer returned by the provider. All payload
// shape assumptions live in the provider adapter; the rest of the code only
// sees this struct.
type Itinerary struct {
	ID       string
	Price    float64
	Currency string
	Legs     []Leg
}

// FinalDestination returns the arrival airport of the last segment of the
// outbound leg, or "" when the itinerary carries no segments.
func (it Itinerary) FinalDestination() string {
	if len(it.Legs) == 0 || len(it.Legs[0].Segments) == 0 {
		return ""
	}

	segments := it.Legs[0].Segments
	return segments[len(segments)-1].Destination
}

// Stops counts intermediate stops on the outbound leg.
func (it Itinerary) Stops() int {
	if len(it.Legs) == 0 || len(it.Legs[0].Segments) == 0 {
		return 0
	}

	return len(it.Legs[0].Segments) - 1
}

// CarrierCodes returns the distinct carriers across all legs, in first-seen
// order.
func (it Itinerary) CarrierCodes() []string {
	seen := map[string]bool{}
	var codes []string
	for _, leg := range it.Legs {
		for _, segment := range leg.Segments {
			if segment.CarrierCode == "" || seen[segment.CarrierCode] {
				continue
			}
			seen[segment.CarrierCode] = true
			codes = append(codes, segment.CarrierCode)
		}
	}

	return codes
}

package amadeus

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mcravey/makemefly/internal/domain"
)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type flightOffersResponse struct {
	Data []flightOfferSchema `json:"data"`
}

type flightOfferSchema struct {
	ID          string            `json:"id"`
	Price       priceSchema       `json:"price"`
	Itineraries []itinerarySchema `json:"itineraries"`
}

type priceSchema struct {
	GrandTotal string `json:"grandTotal"`
	Currency   string `json:"currency"`
}

type itinerarySchema struct {
	Duration string          `json:"duration"`
	Segments []segmentSchema `json:"segments"`
}

type segmentSchema struct {
	Departure   endpointSchema `json:"departure"`
	Arrival     endpointSchema `json:"arrival"`
	CarrierCode string         `json:"carrierCode"`
	Number      string         `json:"number"`
	Duration    string         `json:"duration"`
}

type endpointSchema struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

func (r flightOffersResponse) toItineraries() ([]domain.Itinerary, error) {
	itineraries := make([]domain.Itinerary, 0, len(r.Data))
	for _, offer := range r.Data {
		price, err := strconv.ParseFloat(offer.Price.GrandTotal, 64)
		if err != nil {
			return nil, fmt.Errorf("parse offer %s grand total %q: %w", offer.ID, offer.Price.GrandTotal, err)
		}

		legs := make([]domain.Leg, 0, len(offer.Itineraries))
		for _, leg := range offer.Itineraries {
			segments := make([]domain.Segment, 0, len(leg.Segments))
			for _, segment := range leg.Segments {
				segments = append(segments, domain.Segment{
					CarrierCode: segment.CarrierCode,
					Number:      segment.Number,
					Origin:      segment.Departure.IATACode,
					Destination: segment.Arrival.IATACode,
					DepartureAt: parseSegmentTime(segment.Departure.At),
					ArrivalAt:   parseSegmentTime(segment.Arrival.At),
					Duration:    segment.Duration,
				})
			}
			legs = append(legs, domain.Leg{Duration: leg.Duration, Segments: segments})
		}

		itineraries = append(itineraries, domain.Itinerary{
			ID:       offer.ID,
			Price:    price,
			Currency: offer.Price.Currency,
			Legs:     legs,
		})
	}

	return itineraries, nil
}

// Segment timestamps arrive as local times without a zone, e.g.
// "2026-04-01T13:45:00". An unparsable timestamp is left zero rather than
// failing the whole offer.
func parseSegmentTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse("2006-01-02T15:04:05", raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

type directDestinationsResponse struct {
	Data []struct {
		IATACode string `json:"iataCode"`
	} `json:"data"`
}

type flightDestinationsResponse struct {
	Data []struct {
		Destination string `json:"destination"`
	} `json:"data"`
}

type airlinesResponse struct {
	Data []struct {
		IATACode     string `json:"iataCode"`
		BusinessName string `json:"businessName"`
		CommonName   string `json:"commonName"`
	} `json:"data"`
}

type priceMetricsResponse struct {
	Data []struct {
		PriceMetrics []struct {
			Amount          string `json:"amount"`
			QuartileRanking string `json:"quartileRanking"`
		} `json:"priceMetrics"`
	} `json:"data"`
}

func (r priceMetricsResponse) toQuartiles() *domain.PriceQuartiles {
	if len(r.Data) == 0 {
		return nil
	}

	quartiles := &domain.PriceQuartiles{}
	found := false
	for _, metric := range r.Data[0].PriceMetrics {
		amount, err := strconv.ParseFloat(metric.Amount, 64)
		if err != nil {
			continue
		}
		value := amount
		switch metric.QuartileRanking {
		case "FIRST":
			quartiles.First = &value
			found = true
		case "MEDIUM":
			quartiles.Medium = &value
			found = true
		case "THIRD":
			quartiles.Third = &value
			found = true
		}
	}

	if !found {
		return nil
	}

	return quartiles
}

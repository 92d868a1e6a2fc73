package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupDestinationsCollapsesSecondaryAirports(t *testing.T) {
	got := DedupDestinations([]string{"YVR", "HND", "NRT", "LGW", "LHR"})

	assert.Equal(t, []string{"YVR", "NRT", "LHR"}, got)
}

func TestDedupDestinationsPreservesUnknownCodes(t *testing.T) {
	got := DedupDestinations([]string{"XXX", "YYY", "XXX"})

	assert.Equal(t, []string{"XXX", "YYY"}, got)
}

func TestComputeUpgradeValueSortsByMultiplier(t *testing.T) {
	economy := []Itinerary{
		testItinerary("A", 500),
		testItinerary("B", 600),
	}
	business := []Itinerary{
		testItinerary("A", 1200),
		testItinerary("B", 900),
	}

	got := ComputeUpgradeValue(economy, business)

	require.Len(t, got, 2)
	assert.Equal(t, UpgradeComparison{Destination: "B", Economy: 600, Business: 900, Premium: 300, Multiplier: 1.5}, got[0])
	assert.Equal(t, UpgradeComparison{Destination: "A", Economy: 500, Business: 1200, Premium: 700, Multiplier: 2.4}, got[1])
}

func TestComputeUpgradeValueExcludesNonOverlappingDestinations(t *testing.T) {
	economy := []Itinerary{testItinerary("A", 500), testItinerary("C", 400)}
	business := []Itinerary{testItinerary("A", 1000), testItinerary("D", 2000)}

	got := ComputeUpgradeValue(economy, business)

	require.Len(t, got, 1)
	assert.Equal(t, "A", got[0].Destination)
}

func TestComputeUpgradeValueZeroEconomyPriceYieldsZeroMultiplier(t *testing.T) {
	got := ComputeUpgradeValue([]Itinerary{testItinerary("A", 0)}, []Itinerary{testItinerary("A", 800)})

	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Multiplier)
	assert.Equal(t, 800.0, got[0].Premium)
}

func TestCheapestByDestinationKeepsMinimumPerDestination(t *testing.T) {
	got := CheapestByDestination([]Itinerary{
		testItinerary("NRT", 900),
		testItinerary("NRT", 700),
		testItinerary("LHR", 400),
		{Price: 100}, // no segments, no destination
	})

	require.Len(t, got, 2)
	assert.Equal(t, 700.0, got["NRT"].Price)
	assert.Equal(t, 400.0, got["LHR"].Price)
}

func TestDealLabelGrading(t *testing.T) {
	first, medium, third := 500.0, 700.0, 900.0
	full := &PriceQuartiles{First: &first, Medium: &medium, Third: &third}

	tests := []struct {
		name      string
		price     float64
		quartiles *PriceQuartiles
		want      string
	}{
		{name: "at or below first quartile", price: 450, quartiles: full, want: DealLabelGreat},
		{name: "between first and medium", price: 600, quartiles: full, want: DealLabelGood},
		{name: "between medium and third", price: 850, quartiles: full, want: DealLabelAverage},
		{name: "above third", price: 950, quartiles: full, want: DealLabelAboveAverage},
		{name: "no thresholds at all", price: 600, quartiles: nil, want: DealLabelUnknown},
		{name: "empty thresholds", price: 600, quartiles: &PriceQuartiles{}, want: DealLabelUnknown},
		{name: "third unknown caps grading", price: 950, quartiles: &PriceQuartiles{First: &first, Medium: &medium}, want: DealLabelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DealLabel(tt.price, tt.quartiles))
		})
	}
}

func TestClassifyOrderFirstMatchWins(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "auth kind",
			err:         &ProviderError{Kind: FailureAuth},
			wantMessage: "trouble connecting",
		},
		{
			name:        "401 status without kind",
			err:         &ProviderError{Kind: FailureClient, StatusCode: 401},
			wantMessage: "trouble connecting",
		},
		{
			name:        "rate limited",
			err:         &ProviderError{Kind: FailureClient, StatusCode: 429},
			wantMessage: "faster than our data provider allows",
		},
		{
			name:        "server error",
			err:         &ProviderError{Kind: FailureServer, StatusCode: 503},
			wantMessage: "experiencing issues",
		},
		{
			name:        "network failure",
			err:         &ProviderError{Kind: FailureNetwork},
			wantMessage: "taking longer than expected",
		},
		{
			name:        "quota keyword in body",
			err:         &ProviderError{Kind: FailureClient, StatusCode: 400, Body: `{"detail":"Monthly QUOTA exceeded"}`},
			wantMessage: "hit our data limit",
		},
		{
			name:        "limit keyword in body",
			err:         &ProviderError{Kind: FailureClient, StatusCode: 400, Body: "request limit reached"},
			wantMessage: "hit our data limit",
		},
		{
			name:        "unmatched client error",
			err:         &ProviderError{Kind: FailureClient, StatusCode: 400, Body: "bad request"},
			wantMessage: "Something unexpected happened",
		},
		{
			name:        "plain error",
			err:         errors.New("boom"),
			wantMessage: "Something unexpected happened",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := Classify(tt.err)
			assert.True(t, classified.Recoverable)
			assert.Contains(t, classified.Message, tt.wantMessage)
		})
	}
}

func TestClassifyPassesThroughClassifiedErrors(t *testing.T) {
	assert.Same(t, ErrCapExceeded, Classify(ErrCapExceeded))
	assert.False(t, Classify(ErrCapExceeded).Recoverable)

	wrapped := fmt.Errorf("batch: %w", ErrCapExceeded)
	assert.Same(t, ErrCapExceeded, Classify(wrapped))
}

func TestCleanAirlineName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "strips stacked suffixes", raw: "ACME AIRLINES LTD. D/B/A", want: "Acme Airlines"},
		{name: "title cases long names", raw: "AIR CANADA INC.", want: "Air Canada"},
		{name: "preserves short all-caps", raw: "KLM", want: "KLM"},
		{name: "very short names untouched", raw: "X", want: "X"},
		{name: "holding company chain", raw: "FLYCORP HOLDINGS GROUP", want: "Flycorp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanAirlineName(tt.raw))
		})
	}
}

func TestParseCabin(t *testing.T) {
	cabin, err := ParseCabin(" business ")
	require.NoError(t, err)
	assert.Equal(t, CabinBusiness, cabin)

	_, err = ParseCabin("steerage")
	require.Error(t, err)
}

func TestDetectCurrencyDefaultsToUSD(t *testing.T) {
	assert.Equal(t, "CAD", DetectCurrency("YVR"))
	assert.Equal(t, "JPY", DetectCurrency("NRT"))
	assert.Equal(t, "USD", DetectCurrency("XXX"))
}

func TestHubDestinationsFiltersByRegion(t *testing.T) {
	all := HubDestinations(nil)
	assert.Contains(t, all, "SFO")
	assert.Contains(t, all, "DXB")

	europe := HubDestinations([]string{"Europe"})
	assert.Contains(t, europe, "LHR")
	assert.NotContains(t, europe, "SFO")

	assert.Empty(t, HubDestinations([]string{"Atlantis"}))
}

func TestItineraryFinalDestinationAndStops(t *testing.T) {
	it := Itinerary{
		Legs: []Leg{
			{Segments: []Segment{
				{CarrierCode: "AC", Origin: "YVR", Destination: "YYZ"},
				{CarrierCode: "AC", Origin: "YYZ", Destination: "NRT"},
			}},
			{Segments: []Segment{
				{CarrierCode: "NH", Origin: "NRT", Destination: "YVR"},
			}},
		},
	}

	assert.Equal(t, "NRT", it.FinalDestination())
	assert.Equal(t, 1, it.Stops())
	assert.Equal(t, []string{"AC", "NH"}, it.CarrierCodes())

	assert.Equal(t, "", Itinerary{}.FinalDestination())
	assert.Equal(t, 0, Itinerary{}.Stops())
}

func TestSortByPriceIsStableAscending(t *testing.T) {
	itineraries := []Itinerary{
		{ID: "b", Price: 700},
		{ID: "a", Price: 300},
		{ID: "c", Price: 700},
	}

	SortByPrice(itineraries)

	assert.Equal(t, []string{"a", "b", "c"}, []string{itineraries[0].ID, itineraries[1].ID, itineraries[2].ID})
}

func testItinerary(dest string, price float64) Itinerary {
	return Itinerary{
		Price: price,
		Legs: []Leg{{
			Segments: []Segment{{
				Origin:      "YVR",
				Destination: dest,
				DepartureAt: time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC),
			}},
		}},
	}
}

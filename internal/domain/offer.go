package domain

import "sort"

// DateLayout is the calendar-day form the provider API speaks. Dates stay as
// strings in this layout through the domain; lexicographic order matches
// chronological order.
const DateLayout = "2006-01-02"

// SearchQuery fully specifies one upstream flight-offers call.
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Cabin         Cabin
	Adults        int
	MaxResults    int
	Currency      string
	NonStop       bool
	MaxPrice      int
}

// FlexibleOffer is the cheapest itinerary found for one (cabin, destination)
// pair across several sampled departure dates.
type FlexibleOffer struct {
	Itinerary    Itinerary
	Price        float64
	Date         string
	MaxPrice     float64
	Savings      float64
	DatesChecked int
}

// UpgradeComparison relates the cheapest economy and business fares to the
// same destination. A lower multiplier means a relatively better upgrade.
type UpgradeComparison struct {
	Destination string
	Economy     float64
	Business    float64
	Premium     float64
	Multiplier  float64
}

// CheapestByDestination keeps the minimum-price itinerary per final
// destination.
func CheapestByDestination(itineraries []Itinerary) map[string]Itinerary {
	byDest := map[string]Itinerary{}
	for _, it := range itineraries {
		dest := it.FinalDestination()
		if dest == "" {
			continue
		}
		if current, ok := byDest[dest]; !ok || it.Price < current.Price {
			byDest[dest] = it
		}
	}

	return byDest
}

// ComputeUpgradeValue compares economy and business itineraries for
// destinations present in both sets, sorted ascending by multiplier.
// Destinations missing from either cabin are excluded.
func ComputeUpgradeValue(economy, business []Itinerary) []UpgradeComparison {
	econ := CheapestByDestination(economy)
	biz := CheapestByDestination(business)

	var comparisons []UpgradeComparison
	for dest, econOffer := range econ {
		bizOffer, ok := biz[dest]
		if !ok {
			continue
		}

		multiplier := 0.0
		if econOffer.Price > 0 {
			multiplier = bizOffer.Price / econOffer.Price
		}

		comparisons = append(comparisons, UpgradeComparison{
			Destination: dest,
			Economy:     econOffer.Price,
			Business:    bizOffer.Price,
			Premium:     bizOffer.Price - econOffer.Price,
			Multiplier:  multiplier,
		})
	}

	sort.Slice(comparisons, func(i, j int) bool {
		return comparisons[i].Multiplier < comparisons[j].Multiplier
	})

	return comparisons
}

// SortByPrice orders itineraries ascending by total price, in place.
func SortByPrice(itineraries []Itinerary) {
	sort.SliceStable(itineraries, func(i, j int) bool {
		return itineraries[i].Price < itineraries[j].Price
	})
}

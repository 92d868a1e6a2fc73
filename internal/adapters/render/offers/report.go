package offers

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/mcravey/makemefly/internal/domain"
)

// Row is one rendered offer: the cheapest itinerary found for a destination
// within a cabin.
type Row struct {
	Destination  string
	City         string
	Airline      string
	Stops        int
	Price        float64
	Deal         string
	Date         string
	Savings      float64
	DatesChecked int
	URL          string
}

type CabinSection struct {
	Cabin domain.Cabin
	Rows  []Row
}

// Report is the full renderable outcome of one batch.
type Report struct {
	Origin   string
	Currency string
	Flexible bool
	Sections []CabinSection
	Upgrades []domain.UpgradeComparison
}

// BuildFixedReport reduces a fixed-date batch to one row per destination per
// cabin, graded against the quartile scores, plus the cross-cabin upgrade
// comparison.
func BuildFixedReport(
	origin, currency, departureDate string,
	results map[domain.Cabin][]domain.Itinerary,
	scores map[string]*domain.PriceQuartiles,
	airlineNames map[string]string,
) Report {
	report := Report{Origin: origin, Currency: currency}

	for _, cabin := range domain.AllCabins() {
		itineraries, ok := results[cabin]
		if !ok {
			continue
		}

		var rows []Row
		for dest, it := range domain.CheapestByDestination(itineraries) {
			rows = append(rows, Row{
				Destination: dest,
				City:        domain.CityName(dest),
				Airline:     airlineLabel(it, airlineNames),
				Stops:       it.Stops(),
				Price:       it.Price,
				Deal:        domain.DealLabel(it.Price, scores[dest]),
				Date:        departureDate,
				URL:         GoogleFlightsURL(origin, dest, departureDate, cabin),
			})
		}
		sortRows(rows)
		report.Sections = append(report.Sections, CabinSection{Cabin: cabin, Rows: rows})
	}

	report.Upgrades = domain.ComputeUpgradeValue(results[domain.CabinEconomy], results[domain.CabinBusiness])

	return report
}

// BuildFlexibleReport renders the cheapest-date offers with their spread
// across sampled dates.
func BuildFlexibleReport(
	origin, currency string,
	results map[domain.Cabin]map[string]domain.FlexibleOffer,
	airlineNames map[string]string,
) Report {
	report := Report{Origin: origin, Currency: currency, Flexible: true}

	econ, biz := flexibleItineraries(results)

	for _, cabin := range domain.AllCabins() {
		byDest, ok := results[cabin]
		if !ok {
			continue
		}

		var rows []Row
		for dest, offer := range byDest {
			rows = append(rows, Row{
				Destination:  dest,
				City:         domain.CityName(dest),
				Airline:      airlineLabel(offer.Itinerary, airlineNames),
				Stops:        offer.Itinerary.Stops(),
				Price:        offer.Price,
				Date:         offer.Date,
				Savings:      offer.Savings,
				DatesChecked: offer.DatesChecked,
				URL:          GoogleFlightsURL(origin, dest, offer.Date, cabin),
			})
		}
		sortRows(rows)
		report.Sections = append(report.Sections, CabinSection{Cabin: cabin, Rows: rows})
	}

	report.Upgrades = domain.ComputeUpgradeValue(econ, biz)

	return report
}

// CarrierCodes collects every distinct carrier appearing in a report's rows'
// source results, so callers can resolve names in one batch beforehand.
func CarrierCodes(itinerariesByCabin map[domain.Cabin][]domain.Itinerary) []string {
	seen := map[string]bool{}
	var codes []string
	for _, itineraries := range itinerariesByCabin {
		for _, it := range itineraries {
			for _, code := range it.CarrierCodes() {
				if !seen[code] {
					seen[code] = true
					codes = append(codes, code)
				}
			}
		}
	}
	sort.Strings(codes)

	return codes
}

func flexibleItineraries(results map[domain.Cabin]map[string]domain.FlexibleOffer) (econ, biz []domain.Itinerary) {
	for _, offer := range results[domain.CabinEconomy] {
		econ = append(econ, offer.Itinerary)
	}
	for _, offer := range results[domain.CabinBusiness] {
		biz = append(biz, offer.Itinerary)
	}

	return econ, biz
}

func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Price != rows[j].Price {
			return rows[i].Price < rows[j].Price
		}
		return rows[i].Destination < rows[j].Destination
	})
}

func airlineLabel(it domain.Itinerary, names map[string]string) string {
	codes := it.CarrierCodes()
	if len(codes) == 0 {
		return ""
	}

	labels := make([]string, 0, len(codes))
	for _, code := range codes {
		if name, ok := names[code]; ok && name != "" {
			labels = append(labels, name)
		} else {
			labels = append(labels, code)
		}
	}

	return strings.Join(labels, " + ")
}

// GoogleFlightsURL builds a booking-site search link for one offer.
func GoogleFlightsURL(origin, dest, departureDate string, cabin domain.Cabin) string {
	cabinLabel := strings.ToLower(string(cabin))
	query := fmt.Sprintf("Flights to %s from %s on %s %s class", dest, origin, departureDate, cabinLabel)

	return "https://www.google.com/travel/flights?q=" + url.QueryEscape(query)
}

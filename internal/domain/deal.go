package domain

// PriceQuartiles holds the quartile thresholds from the provider's price
// analysis for a route and date. A nil field means the threshold is unknown.
type PriceQuartiles struct {
	First  *float64
	Medium *float64
	Third  *float64
}

const (
	DealLabelGreat        = "Great Deal"
	DealLabelGood         = "Good Price"
	DealLabelAverage      = "Average"
	DealLabelAboveAverage = "Above Average"
	DealLabelUnknown      = "N/A"
)

// DealLabel grades a price against quartile thresholds, first match wins.
func DealLabel(price float64, quartiles *PriceQuartiles) string {
	if quartiles == nil {
		return DealLabelUnknown
	}

	switch {
	case quartiles.First != nil && price <= *quartiles.First:
		return DealLabelGreat
	case quartiles.Medium != nil && price <= *quartiles.Medium:
		return DealLabelGood
	case quartiles.Third != nil && price <= *quartiles.Third:
		return DealLabelAverage
	case quartiles.Third != nil:
		return DealLabelAboveAverage
	default:
		return DealLabelUnknown
	}
}

package offers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcravey/makemefly/internal/domain"
)

func TestRenderFixedReport(t *testing.T) {
	report := BuildFixedReport("YVR", "CAD", "2026-09-10", map[domain.Cabin][]domain.Itinerary{
		domain.CabinEconomy:  {testItinerary("NRT", 720), testItinerary("LHR", 480)},
		domain.CabinBusiness: {testItinerary("NRT", 2100)},
	}, nil, map[string]string{"AC": "Air Canada"})

	output, err := Render(report, RenderOptions{
		CallsUsed:   42,
		CallsCap:    1000,
		ClientUsed:  3,
		ClientCap:   10,
		ShowLedgers: true,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Make Me Fly")
	assert.Contains(t, output, "from YVR, prices in CAD")
	assert.Contains(t, output, "Economy")
	assert.Contains(t, output, "Business")
	assert.Contains(t, output, "Tokyo")
	assert.Contains(t, output, "Air Canada")
	assert.Contains(t, output, "nonstop")
	assert.Contains(t, output, "google.com/travel/flights")
	assert.Contains(t, output, "API calls today: 42/1000")
	assert.Contains(t, output, "searches today: 3/10")
	assert.Contains(t, output, "Upgrade value")
}

func TestRenderFlexibleReportShowsSpread(t *testing.T) {
	report := BuildFlexibleReport("YVR", "CAD", map[domain.Cabin]map[string]domain.FlexibleOffer{
		domain.CabinEconomy: {
			"LHR": {
				Itinerary:    testItinerary("LHR", 610),
				Price:        610,
				Date:         "2026-05-08",
				Savings:      280,
				DatesChecked: 4,
			},
		},
	}, nil)

	output, err := Render(report, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "2026-05-08")
	assert.Contains(t, output, "save 280 vs worst of 4 dates")
	assert.NotContains(t, output, "API calls today")
}

func TestRenderEmptyReport(t *testing.T) {
	output, err := Render(Report{Origin: "YVR", Currency: "CAD"}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "No flights found")
}

package domain

// The provider's test environment prices in the origin airport's local
// currency regardless of the requested one, so the origin decides which
// currency we ask for and display.
var airportCurrency = map[string]string{
	// Canada
	"YVR": "CAD", "YYC": "CAD", "YYZ": "CAD",
	// United States
	"SFO": "USD", "LAX": "USD", "SEA": "USD", "PDX": "USD", "ORD": "USD",
	"JFK": "USD", "BOS": "USD", "IAD": "USD", "ATL": "USD", "DFW": "USD",
	"MIA": "USD", "DEN": "USD", "MSP": "USD", "EWR": "USD", "LGA": "USD",
	"DCA": "USD", "OAK": "USD", "SJC": "USD", "BUR": "USD", "SNA": "USD",
	"ONT": "USD", "LGB": "USD", "FLL": "USD", "MDW": "USD", "DAL": "USD",
	"BLI": "USD", "ANC": "USD", "HNL": "USD",
	// Europe, eurozone
	"CDG": "EUR", "ORY": "EUR", "AMS": "EUR", "FRA": "EUR", "MUC": "EUR",
	"BCN": "EUR", "MAD": "EUR", "FCO": "EUR", "DUB": "EUR",
	// Europe, non-euro
	"LHR": "GBP", "LGW": "GBP", "STN": "GBP", "LTN": "GBP",
	"ZRH": "CHF",
	"CPH": "DKK",
	"IST": "TRY",
	// Asia-Pacific
	"NRT": "JPY", "HND": "JPY",
	"ICN": "KRW",
	"HKG": "HKD",
	"SIN": "SGD",
	"BKK": "THB",
	"TPE": "TWD",
	"PVG": "CNY", "SHA": "CNY", "PEK": "CNY", "PKX": "CNY",
	"SYD": "AUD",
	"AKL": "NZD",
	"MNL": "PHP",
	"KUL": "MYR",
	// Mexico/Caribbean
	"CUN": "MXN", "MEX": "MXN", "PVR": "MXN", "SJD": "MXN",
	"MBJ": "USD", "AUA": "USD",
	// South America
	"GRU": "BRL", "GIG": "BRL", "CGH": "BRL",
	"BOG": "COP", "SCL": "CLP", "LIM": "PEN", "EZE": "ARS",
	// Africa
	"JNB": "ZAR", "CPT": "ZAR",
	"NBO": "KES",
	"CAI": "EGP",
	"ADD": "ETB",
	// Middle East
	"DXB": "AED", "AUH": "AED",
	"DOH": "QAR",
	"TLV": "ILS",
	"AMM": "JOD",
}

// DetectCurrency returns the local currency for an airport code, defaulting
// to USD.
func DetectCurrency(code string) string {
	if currency, ok := airportCurrency[code]; ok {
		return currency
	}

	return "USD"
}

package domain

// Region groups curated tier-1 hub airports so a search can stay regional.
type Region struct {
	Name string
	Hubs []string
}

var Regions = []Region{
	{Name: "North America", Hubs: []string{
		"SFO", "LAX", "SEA", "PDX", "YYC", "YYZ", "ORD", "JFK",
		"BOS", "IAD", "ATL", "DFW", "MIA", "DEN", "MSP",
	}},
	{Name: "Europe", Hubs: []string{
		"LHR", "CDG", "AMS", "FRA", "MUC", "ZRH", "BCN", "MAD",
		"FCO", "CPH", "IST", "DUB",
	}},
	{Name: "Asia-Pacific", Hubs: []string{
		"NRT", "HND", "ICN", "HKG", "SIN", "BKK", "TPE", "PVG",
		"SYD", "AKL",
	}},
	{Name: "Mexico/Caribbean", Hubs: []string{"CUN", "MEX", "PVR", "SJD", "MBJ", "AUA"}},
	{Name: "South America", Hubs: []string{"GRU", "BOG", "SCL", "LIM", "EZE"}},
	{Name: "Africa", Hubs: []string{"JNB", "CPT", "NBO", "CAI", "ADD"}},
	{Name: "Middle East", Hubs: []string{"DXB", "DOH", "AUH", "TLV", "AMM"}},
}

var cityNames = map[string]string{
	// North America
	"YVR": "Vancouver", "YYC": "Calgary", "YYZ": "Toronto",
	"SFO": "San Francisco", "LAX": "Los Angeles", "SEA": "Seattle",
	"PDX": "Portland", "ORD": "Chicago", "JFK": "New York",
	"BOS": "Boston", "IAD": "Washington DC", "ATL": "Atlanta",
	"DFW": "Dallas", "MIA": "Miami", "DEN": "Denver", "MSP": "Minneapolis",
	"EWR": "Newark", "LGA": "New York", "DCA": "Washington DC",
	"OAK": "Oakland", "SJC": "San Jose", "BUR": "Burbank",
	"SNA": "Santa Ana", "ONT": "Ontario", "LGB": "Long Beach",
	"FLL": "Fort Lauderdale", "MDW": "Chicago", "DAL": "Dallas",
	"BLI": "Bellingham", "ANC": "Anchorage", "HNL": "Honolulu",
	// Europe
	"LHR": "London", "CDG": "Paris", "AMS": "Amsterdam",
	"FRA": "Frankfurt", "MUC": "Munich", "ZRH": "Zurich",
	"BCN": "Barcelona", "MAD": "Madrid", "FCO": "Rome",
	"CPH": "Copenhagen", "IST": "Istanbul", "DUB": "Dublin",
	"ORY": "Paris", "LGW": "London", "STN": "London", "LTN": "London",
	// Asia-Pacific
	"NRT": "Tokyo", "HND": "Tokyo", "ICN": "Seoul", "HKG": "Hong Kong",
	"SIN": "Singapore", "BKK": "Bangkok", "TPE": "Taipei",
	"PVG": "Shanghai", "SHA": "Shanghai", "PEK": "Beijing", "PKX": "Beijing",
	"SYD": "Sydney", "AKL": "Auckland", "MNL": "Manila", "KUL": "Kuala Lumpur",
	// Mexico/Caribbean
	"CUN": "Cancun", "MEX": "Mexico City", "PVR": "Puerto Vallarta",
	"SJD": "San Jose del Cabo", "MBJ": "Montego Bay", "AUA": "Aruba",
	// South America
	"GRU": "Sao Paulo", "GIG": "Rio de Janeiro", "CGH": "Sao Paulo",
	"BOG": "Bogota", "SCL": "Santiago", "LIM": "Lima", "EZE": "Buenos Aires",
	// Africa
	"JNB": "Johannesburg", "CPT": "Cape Town", "NBO": "Nairobi",
	"CAI": "Cairo", "ADD": "Addis Ababa",
	// Middle East
	"DXB": "Dubai", "DOH": "Doha", "AUH": "Abu Dhabi",
	"TLV": "Tel Aviv", "AMM": "Amman",
}

// sameCitySkip maps secondary airports to the primary airport serving the
// same metro area.
var sameCitySkip = map[string]string{
	"HND": "NRT", // Tokyo
	"ORY": "CDG", // Paris
	"LGW": "LHR", // London
	"STN": "LHR",
	"LTN": "LHR",
	"EWR": "JFK", // New York
	"LGA": "JFK",
	"MDW": "ORD", // Chicago
	"SJC": "SFO", // SF Bay Area
	"OAK": "SFO",
	"BUR": "LAX", // Los Angeles
	"SNA": "LAX",
	"ONT": "LAX",
	"LGB": "LAX",
	"DCA": "IAD", // Washington DC
	"FLL": "MIA", // Miami / Fort Lauderdale
	"DAL": "DFW", // Dallas
	"GIG": "GRU", // Rio / Sao Paulo
	"CGH": "GRU",
	"PKX": "PEK", // Beijing
	"SHA": "PVG", // Shanghai
}

// CityName returns a display name for an airport code, falling back to the
// code itself.
func CityName(code string) string {
	if name, ok := cityNames[code]; ok {
		return name
	}

	return code
}

// DedupDestinations collapses secondary airports onto their primary airport,
// preserving first-seen order and dropping later duplicates.
func DedupDestinations(codes []string) []string {
	seen := map[string]bool{}
	result := make([]string, 0, len(codes))
	for _, code := range codes {
		primary := code
		if p, ok := sameCitySkip[code]; ok {
			primary = p
		}
		if seen[primary] {
			continue
		}
		seen[primary] = true
		result = append(result, primary)
	}

	return result
}

// HubDestinations returns curated hub airports, optionally filtered by region
// name. Unknown region names yield nothing.
func HubDestinations(regionNames []string) []string {
	var codes []string
	if len(regionNames) == 0 {
		for _, region := range Regions {
			codes = append(codes, region.Hubs...)
		}
		return codes
	}

	byName := map[string][]string{}
	for _, region := range Regions {
		byName[region.Name] = region.Hubs
	}
	for _, name := range regionNames {
		codes = append(codes, byName[name]...)
	}

	return codes
}

// RegionNames lists the curated regions in display order.
func RegionNames() []string {
	names := make([]string, 0, len(Regions))
	for _, region := range Regions {
		names = append(names, region.Name)
	}

	return names
}

package toml

type usageSchema struct {
	Date  string `toml:"date"`
	Calls int    `toml:"calls"`
}

type clientsSchema struct {
	Date    string         `toml:"date"`
	Clients map[string]int `toml:"clients"`
}

func (s *clientsSchema) applyDefaults() {
	if s.Clients == nil {
		s.Clients = map[string]int{}
	}
}

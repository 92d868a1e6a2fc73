package domain

import (
	"fmt"
	"strings"
)

type Cabin string

const (
	CabinEconomy  Cabin = "ECONOMY"
	CabinBusiness Cabin = "BUSINESS"
	CabinFirst    Cabin = "FIRST"
)

func AllCabins() []Cabin {
	return []Cabin{CabinEconomy, CabinBusiness, CabinFirst}
}

func (c Cabin) Label() string {
	switch c {
	case CabinEconomy:
		return "Economy"
	case CabinBusiness:
		return "Business"
	case CabinFirst:
		return "First"
	default:
		return string(c)
	}
}

func ParseCabin(raw string) (Cabin, error) {
	switch Cabin(strings.ToUpper(strings.TrimSpace(raw))) {
	case CabinEconomy:
		return CabinEconomy, nil
	case CabinBusiness:
		return CabinBusiness, nil
	case CabinFirst:
		return CabinFirst, nil
	default:
		return "", fmt.Errorf("unknown cabin class %q", raw)
	}
}

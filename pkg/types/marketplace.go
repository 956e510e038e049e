package domain

import (
	"slices"
	"strings"
)

// Marketplace is an Amazon marketplace code accepted by the API.
type Marketplace string

// Marketplace constants.
const (
	MarketplaceUS Marketplace = "US"
	MarketplaceCA Marketplace = "CA"
	MarketplaceMX Marketplace = "MX"
	MarketplaceUK Marketplace = "UK"
	MarketplaceDE Marketplace = "DE"
	MarketplaceFR Marketplace = "FR"
	MarketplaceIT Marketplace = "IT"
	MarketplaceES Marketplace = "ES"
	MarketplaceNL Marketplace = "NL"
	MarketplaceSE Marketplace = "SE"
	MarketplacePL Marketplace = "PL"
	MarketplaceEG Marketplace = "EG"
	MarketplaceTR Marketplace = "TR"
	MarketplaceIN Marketplace = "IN"
	MarketplaceJP Marketplace = "JP"
	MarketplaceAU Marketplace = "AU"
	MarketplaceSG Marketplace = "SG"
)

// marketplaceIDs maps each marketplace to its numeric API ID. Never mutated.
var marketplaceIDs = map[Marketplace]int{
	MarketplaceUS: 1,
	MarketplaceCA: 2,
	MarketplaceMX: 3,
	MarketplaceUK: 4,
	MarketplaceDE: 5,
	MarketplaceFR: 6,
	MarketplaceIT: 7,
	MarketplaceES: 8,
	MarketplaceNL: 9,
	MarketplaceSE: 10,
	MarketplacePL: 11,
	MarketplaceEG: 12,
	MarketplaceTR: 13,
	MarketplaceIN: 14,
	MarketplaceJP: 15,
	MarketplaceAU: 16,
	MarketplaceSG: 17,
}

// ID returns the numeric marketplace ID and whether m is a known marketplace.
func (m Marketplace) ID() (int, bool) {
	id, ok := marketplaceIDs[m]
	return id, ok
}

// Valid reports whether m is one of the supported marketplaces.
func (m Marketplace) Valid() bool {
	_, ok := marketplaceIDs[m]
	return ok
}

func (m Marketplace) String() string {
	return string(m)
}

// ParseMarketplace resolves a marketplace code case-insensitively.
func ParseMarketplace(s string) (Marketplace, bool) {
	m := Marketplace(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", false
	}
	return m, true
}

// MarketplaceByID returns the marketplace with the given numeric ID.
func MarketplaceByID(id int) (Marketplace, bool) {
	for m, mid := range marketplaceIDs {
		if mid == id {
			return m, true
		}
	}
	return "", false
}

// Marketplaces returns every supported marketplace ordered by ID.
func Marketplaces() []Marketplace {
	out := make([]Marketplace, 0, len(marketplaceIDs))
	for m := range marketplaceIDs {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b Marketplace) int {
		return marketplaceIDs[a] - marketplaceIDs[b]
	})
	return out
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

// fixtures holds the canned API responses.
type fixtures struct {
	Scans       []domain.Scan
	Results     domain.ResultsResponse[domain.Product]
	Convert     domain.ConvertResponse
	AsinConvert domain.AsinToIdentifiersResponse
	Eligibility []domain.InboundEligibility
}

func loadFixtures(dir string) (*fixtures, error) {
	fx := &fixtures{}
	files := []struct {
		name string
		dst  any
	}{
		{"scans.json", &fx.Scans},
		{"results.json", &fx.Results},
		{"convert.json", &fx.Convert},
		{"asin_convert.json", &fx.AsinConvert},
		{"eligibility.json", &fx.Eligibility},
	}

	for _, f := range files {
		if err := loadFixture(filepath.Join(dir, f.name), f.dst); err != nil {
			return nil, err
		}
	}
	return fx, nil
}

func loadFixture(path string, dst any) error {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return fmt.Errorf("reading fixture: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing fixture %s: %w", filepath.Base(path), err)
	}
	return nil
}

package config

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// Brand is a storefront the reports can be shown for.
type Brand struct {
	Code string
	Name string
}

var defaultBrands = []Brand{
	{Code: "nine", Name: "NINE ACCORD"},
	{Code: "curu", Name: "CURUNURU"},
}

type BrandRegistry interface {
	Lookup(code string) (Brand, bool)
	Brands() []Brand
}

type iniBrandRegistry struct {
	brands []Brand
	byCode map[string]Brand
}

// NewBrandRegistry loads brands from an INI file with one section per brand
// code:
//
//	[nine]
//	name = NINE ACCORD
//
// An empty path yields the built-in brands.
func NewBrandRegistry(path string) (BrandRegistry, error) {
	if path == "" {
		return newBrandRegistry(defaultBrands), nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load brands file: %w", err)
	}

	var brands []Brand
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		code := strings.ToLower(strings.TrimSpace(section.Name()))
		name := section.Key("name").MustString(strings.ToUpper(code))
		brands = append(brands, Brand{Code: code, Name: name})
	}
	if len(brands) == 0 {
		return nil, fmt.Errorf("no brands defined in %s", path)
	}
	return newBrandRegistry(brands), nil
}

func newBrandRegistry(brands []Brand) *iniBrandRegistry {
	r := &iniBrandRegistry{byCode: make(map[string]Brand, len(brands))}
	for _, b := range brands {
		if _, exists := r.byCode[b.Code]; exists {
			continue
		}
		r.byCode[b.Code] = b
		r.brands = append(r.brands, b)
	}
	return r
}

func (r *iniBrandRegistry) Lookup(code string) (Brand, bool) {
	b, ok := r.byCode[code]
	return b, ok
}

func (r *iniBrandRegistry) Brands() []Brand {
	return append([]Brand(nil), r.brands...)
}

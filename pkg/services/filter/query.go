package filter

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// Endpoint selects which report endpoint a query is built for.
type Endpoint int

const (
	EndpointWarehouse Endpoint = iota
	EndpointItem
)

// Filters is the user selection sent with a report request. Empty scalar
// values are still sent; the server treats them as "not chosen".
type Filters struct {
	Warehouses []string `url:"warehouse,omitempty"`
	Categories []string `url:"category,omitempty"`
	MainYear   string   `url:"main_year"`
	CompYear   string   `url:"comp_year"`
	StartMonth string   `url:"start_month"`
	EndMonth   string   `url:"end_month"`
}

// CompareSelected reports whether a comparison year was picked.
func (f Filters) CompareSelected() bool {
	return f.CompYear != ""
}

// Encode builds the query string parameters for an endpoint. The item endpoint
// does not support comparison and never receives comp_year.
func Encode(f Filters, endpoint Endpoint) (url.Values, error) {
	f.Warehouses = concrete(f.Warehouses)
	f.Categories = concrete(f.Categories)

	values, err := query.Values(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode filters: %w", err)
	}
	if endpoint == EndpointItem {
		values.Del("comp_year")
	}
	return values, nil
}

// FromSlicers combines the slicer selections with the scalar filters.
func FromSlicers(warehouses, categories *Slicer, scalars Filters) Filters {
	scalars.Warehouses = nil
	scalars.Categories = nil
	if warehouses != nil {
		scalars.Warehouses = warehouses.Selected()
	}
	if categories != nil {
		scalars.Categories = categories.Selected()
	}
	return scalars
}

// Parse reads filters from query parameters, dropping the "all" sentinel. A
// selection that contains the sentinel means no restriction.
func Parse(values url.Values) Filters {
	return Filters{
		Warehouses: selection(values["warehouse"]),
		Categories: selection(values["category"]),
		MainYear:   values.Get("main_year"),
		CompYear:   values.Get("comp_year"),
		StartMonth: values.Get("start_month"),
		EndMonth:   values.Get("end_month"),
	}
}

func selection(values []string) []string {
	for _, v := range values {
		if v == All {
			return nil
		}
	}
	return concrete(values)
}

func concrete(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" && v != All {
			out = append(out, v)
		}
	}
	return out
}

package export

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/config"
)

type filtersReport struct {
	Brand   config.Brand
	Options domain.FilterOptions
}

// Filters prints the filter options a brand offers.
func (c *Reporter) Filters(brand config.Brand, options domain.FilterOptions) error {
	funcMap := template.FuncMap{
		"list": func(values []string) string {
			if len(values) == 0 {
				return "-"
			}
			return strings.Join(values, ", ")
		},
	}

	tmpl := `{{.Brand.Name}} ({{.Brand.Code}})

창고: {{list .Options.Warehouses}}
구분: {{list .Options.Categories}}
년도: {{list .Options.Years}}
월:   {{list .Options.Months}}
`

	t, err := template.New("filters").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, filtersReport{Brand: brand, Options: options})
}

package dashboard

import (
	"context"
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/chart"
	"github.com/de-tools/sales-atlas/pkg/services/filter"
	"github.com/de-tools/sales-atlas/pkg/services/report"
)

const (
	ViewWarehouse = "dashboard_main"
	ViewItem      = "dashboard_item"
)

func validate(deps Deps) error {
	if deps.Source == nil {
		return fmt.Errorf("report source is nil")
	}
	if deps.Brand == "" {
		return fmt.Errorf("brand is empty")
	}
	return nil
}

// NewWarehouseView is the warehouse > category report with period comparison
// and the monthly bar chart.
func NewWarehouseView(deps Deps) (report.View, error) {
	if err := validate(deps); err != nil {
		return report.View{}, err
	}

	return report.View{
		Name:     ViewWarehouse,
		Endpoint: filter.EndpointWarehouse,
		Load: func(ctx context.Context, f filter.Filters) (domain.Report, error) {
			query, err := filter.Encode(f, filter.EndpointWarehouse)
			if err != nil {
				return domain.Report{}, err
			}
			resp, err := deps.Source.WarehouseReport(ctx, deps.Brand, query)
			if err != nil {
				return domain.Report{}, err
			}
			return adapters.MapWarehouseReportApiToDomain(resp), nil
		},
		Options: func(f filter.Filters) report.Options {
			return report.Options{
				CompareSelected: f.CompareSelected(),
				NameLabel:       "창고 / 구분",
				MainYear:        f.MainYear,
				CompYear:        f.CompYear,
				Formatter:       deps.Formatter,
			}
		},
		Chart: chart.WarehouseBars,
	}, nil
}

// NewItemView is the category > series > item report with stock, highlighted
// movements, the top series pie and live search.
func NewItemView(deps Deps) (report.View, error) {
	if err := validate(deps); err != nil {
		return report.View{}, err
	}

	return report.View{
		Name:     ViewItem,
		Endpoint: filter.EndpointItem,
		Load: func(ctx context.Context, f filter.Filters) (domain.Report, error) {
			query, err := filter.Encode(f, filter.EndpointItem)
			if err != nil {
				return domain.Report{}, err
			}
			resp, err := deps.Source.ItemReport(ctx, deps.Brand, query)
			if err != nil {
				return domain.Report{}, err
			}
			return adapters.MapItemReportApiToDomain(resp), nil
		},
		Options: func(f filter.Filters) report.Options {
			return report.Options{
				NameLabel: "구분 / 시리즈 / 품목",
				MainYear:  f.MainYear,
				Highlight: &report.Highlight{FromLevel: 2, Net: 100, Negative: -60},
				Formatter: deps.Formatter,
			}
		},
		Chart: func(r domain.Report) chart.Data {
			return chart.SeriesPie(r.Series)
		},
		Searchable:  true,
		ErrorPrefix: "데이터 로드 중 오류 발생: ",
	}, nil
}

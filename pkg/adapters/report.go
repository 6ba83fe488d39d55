package adapters

import (
	"fmt"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const (
	warehouseLevel = 1
	categoryLevel  = 2
)

func MapPairApiToDomain(pair *api.Pair) domain.Amount {
	if pair == nil {
		return domain.Amount{}
	}
	return domain.Amount{Net: pair.Net, Negative: pair.Neg}
}

func mapOptionalPair(pair *api.Pair) *domain.Amount {
	if pair == nil {
		return nil
	}
	amount := MapPairApiToDomain(pair)
	return &amount
}

func mapMetrics(data map[string]api.Pair) map[string]domain.Amount {
	metrics := make(map[string]domain.Amount, len(data))
	for period, pair := range data {
		metrics[period] = domain.Amount{Net: pair.Net, Negative: pair.Neg}
	}
	return metrics
}

func MapFiltersApiToDomain(filters api.Filters) domain.FilterOptions {
	return domain.FilterOptions{
		Warehouses: filters.Warehouses,
		Categories: filters.Categories,
		Years:      filters.Years,
		Months:     filters.Months,
	}
}

// MapWarehouseReportApiToDomain converts the warehouse report into a row tree.
// Warehouse rows are keyed by their name, category rows by "<warehouse>/<category>".
func MapWarehouseReportApiToDomain(report api.WarehouseReport) domain.Report {
	rows := make([]*domain.ReportNode, 0, len(report.Rows))
	subtotals := 0

	for _, row := range report.Rows {
		node := mapWarehouseRow(row)
		switch {
		case row.IsHeader:
			node.ID = row.Name
			node.Kind = domain.KindHeader
			node.Level = warehouseLevel
		case row.IsSubtotal:
			node.ID = fmt.Sprintf("subtotal_%d", subtotals)
			node.Kind = domain.KindSubtotal
			node.Level = 0
			subtotals++
		default:
			node.ID = row.Name
			node.Kind = domain.KindCategory
			node.Level = warehouseLevel
		}

		for _, cat := range row.Categories {
			child := mapWarehouseRow(cat)
			child.ID = fmt.Sprintf("%s/%s", node.ID, cat.Name)
			child.ParentID = cat.ParentID
			if child.ParentID == "" {
				child.ParentID = node.ID
			}
			child.Kind = domain.KindCategory
			child.Level = categoryLevel
			node.Children = append(node.Children, child)
		}
		rows = append(rows, node)
	}

	return domain.Report{Periods: report.Months, Rows: rows}
}

func mapWarehouseRow(row api.WarehouseRow) *domain.ReportNode {
	return &domain.ReportNode{
		Name:      row.Name,
		Metrics:   mapMetrics(row.Data),
		Total:     MapPairApiToDomain(row.Total),
		Compare:   mapOptionalPair(row.Compare),
		PctChange: row.PctChange,
	}
}

func itemKind(level int) domain.Kind {
	switch {
	case level <= 0:
		return domain.KindSubtotal
	case level == 1:
		return domain.KindHeader
	case level == 2:
		return domain.KindCategory
	default:
		return domain.KindItem
	}
}

type itemFrame struct {
	row    *api.ItemRow
	parent *domain.ReportNode
}

// MapItemReportApiToDomain converts the item report (category > series > item)
// into a row tree. The kind of each row follows its level.
func MapItemReportApiToDomain(report api.ItemReport) domain.Report {
	rows := make([]*domain.ReportNode, 0, len(report.Rows))

	stack := make([]itemFrame, 0, len(report.Rows))
	for i := len(report.Rows) - 1; i >= 0; i-- {
		stack = append(stack, itemFrame{row: &report.Rows[i]})
	}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		row := frame.row
		node := &domain.ReportNode{
			ID:       row.ID,
			ParentID: row.ParentID,
			Level:    row.Level,
			Kind:     itemKind(row.Level),
			Name:     row.Name,
			Metrics:  mapMetrics(row.Data),
			Total:    MapPairApiToDomain(row.Total),
			Stock:    row.Stock,
		}

		if frame.parent == nil {
			rows = append(rows, node)
		} else {
			if node.ParentID == "" {
				node.ParentID = frame.parent.ID
			}
			frame.parent.Children = append(frame.parent.Children, node)
		}

		for i := len(row.Children) - 1; i >= 0; i-- {
			stack = append(stack, itemFrame{row: &row.Children[i], parent: node})
		}
	}

	series := make([]domain.SeriesQuantity, 0, len(report.TopSeries))
	for _, s := range report.TopSeries {
		series = append(series, domain.SeriesQuantity{Series: s.Series, Quantity: s.Quantity})
	}

	return domain.Report{Periods: report.Months, Rows: rows, Series: series}
}

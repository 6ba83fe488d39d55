package report

import (
	"fmt"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

const (
	defaultNameLabel = "구분"
	missingYear      = "----"
)

// Cell is one rendered table cell of a body row.
type Cell struct {
	Text  string
	Class string
}

// HeaderCell is one header column group.
type HeaderCell struct {
	Label   string
	Class   string
	Colspan int
}

type Header struct {
	Cells []HeaderCell
}

// Columns returns the number of body columns the header spans.
func (h Header) Columns() int {
	total := 0
	for _, c := range h.Cells {
		total += c.Colspan
	}
	return total
}

// RenderRow is the render-ready projection of one ReportNode.
type RenderRow struct {
	ID          string
	ParentID    string
	Level       int
	Kind        domain.Kind
	Name        string
	Collapsible bool
	Class       string
	Cells       []Cell
}

func (r RenderRow) Columns() int {
	return len(r.Cells)
}

// Table is the flat rendering of a report tree.
type Table struct {
	Header     Header
	Rows       []RenderRow
	Periods    []string
	HasCompare bool
}

// Highlight marks large movements on deep rows.
type Highlight struct {
	FromLevel int
	Net       int64 // net >= Net is highlighted
	Negative  int64 // negative <= Negative is highlighted
}

type Options struct {
	// CompareSelected is true when the user picked a comparison period.
	CompareSelected bool
	NameLabel       string
	MainYear        string
	CompYear        string
	Highlight       *Highlight
	Formatter       Formatter
}

// Render flattens the tree in pre-order into render rows. The tree is not
// modified.
func Render(tree []*domain.ReportNode, periods []string, opts Options) Table {
	if opts.Formatter.printer == nil {
		opts.Formatter = DefaultFormatter()
	}
	hasCompare := opts.CompareSelected && domain.AnyCompare(tree)

	table := Table{
		Header:     renderHeader(periods, hasCompare, opts),
		Periods:    append([]string(nil), periods...),
		HasCompare: hasCompare,
	}

	domain.Walk(tree, func(node *domain.ReportNode, _ []*domain.ReportNode) bool {
		table.Rows = append(table.Rows, renderRow(node, periods, hasCompare, opts))
		return true
	})

	return table
}

func renderHeader(periods []string, hasCompare bool, opts Options) Header {
	nameLabel := opts.NameLabel
	if nameLabel == "" {
		nameLabel = defaultNameLabel
	}

	cells := make([]HeaderCell, 0, len(periods)+4)
	cells = append(cells,
		HeaderCell{Label: nameLabel, Colspan: 1},
		HeaderCell{Label: "총 합계 " + orMissing(opts.MainYear), Class: "total-header", Colspan: 2},
	)
	for _, p := range periods {
		cells = append(cells, HeaderCell{Label: p, Colspan: 2})
	}
	if hasCompare {
		cells = append(cells,
			HeaderCell{Label: "비교 합계 " + orMissing(opts.CompYear), Class: "total-header", Colspan: 2},
			HeaderCell{Label: "증감률(%)", Colspan: 1},
		)
	}
	return Header{Cells: cells}
}

func orMissing(year string) string {
	if year == "" {
		return missingYear
	}
	return year
}

func renderRow(node *domain.ReportNode, periods []string, hasCompare bool, opts Options) RenderRow {
	f := opts.Formatter
	collapsible := node.Collapsible()

	name := node.Name
	if node.Kind == domain.KindItem && node.Stock != nil {
		name = fmt.Sprintf("%s [%d]", node.Name, *node.Stock)
	}

	cells := make([]Cell, 0, 3+2*len(periods)+3)
	cells = append(cells,
		Cell{Text: name},
		Cell{Text: f.Int(node.Total.Net), Class: "total-cell"},
		Cell{Text: f.Int(node.Total.Negative), Class: "total-cell negative"},
	)

	highlight := opts.Highlight != nil && node.Level >= opts.Highlight.FromLevel
	for _, p := range periods {
		m := node.Metric(p)
		netClass, negClass := "", "negative"
		if highlight {
			if m.Net >= opts.Highlight.Net {
				netClass = "highlight-bold"
			}
			if m.Negative <= opts.Highlight.Negative {
				negClass += " highlight-bold"
			}
		}
		cells = append(cells,
			Cell{Text: f.Int(m.Net), Class: netClass},
			Cell{Text: f.Int(m.Negative), Class: negClass},
		)
	}

	if hasCompare {
		var c domain.Amount
		if node.Compare != nil {
			c = *node.Compare
		}
		cells = append(cells,
			Cell{Text: f.Int(c.Net), Class: "total-cell"},
			Cell{Text: f.Int(c.Negative), Class: "total-cell negative"},
			Cell{Text: f.Percent(node.PctChange), Class: strings.TrimSpace("total-cell " + percentClass(node.PctChange))},
		)
	}

	return RenderRow{
		ID:          node.ID,
		ParentID:    node.ParentID,
		Level:       node.Level,
		Kind:        node.Kind,
		Name:        node.Name,
		Collapsible: collapsible,
		Class:       rowClass(node, collapsible),
		Cells:       cells,
	}
}

func rowClass(node *domain.ReportNode, collapsible bool) string {
	classes := []string{fmt.Sprintf("%s-row", node.Kind), fmt.Sprintf("level-%d", node.Level)}
	if collapsible {
		classes = append(classes, "collapsible-header")
	}
	return strings.Join(classes, " ")
}

package domain

// Kind classifies a report row. It decides the render class and whether the row
// can be collapsed.
type Kind string

const (
	KindHeader   Kind = "header"
	KindSubtotal Kind = "subtotal"
	KindCategory Kind = "category"
	KindItem     Kind = "item"
)

// Amount is the metric pair carried by every row. Negative is the sum of the
// negative adjustments (returns) and is never positive.
type Amount struct {
	Net      int64
	Negative int64
}

// ReportNode is one row of the report hierarchy.
type ReportNode struct {
	ID        string
	ParentID  string
	Level     int
	Kind      Kind
	Name      string
	Metrics   map[string]Amount // period label -> amount
	Total     Amount
	Compare   *Amount
	PctChange *float64
	Stock     *int64
	Children  []*ReportNode
}

// Metric returns the amount for a period. A missing period is a zero amount.
func (n *ReportNode) Metric(period string) Amount {
	if n == nil || n.Metrics == nil {
		return Amount{}
	}
	return n.Metrics[period]
}

// IsRoot reports whether the node declares no parent.
func (n *ReportNode) IsRoot() bool {
	return n.ParentID == ""
}

// Collapsible reports whether the row acts as a group header.
func (n *ReportNode) Collapsible() bool {
	switch n.Kind {
	case KindHeader:
		return true
	case KindCategory:
		return len(n.Children) > 0
	default:
		return false
	}
}

// Report is a fetched report: the row tree plus the periods it covers.
type Report struct {
	Periods []string
	Rows    []*ReportNode
	Series  []SeriesQuantity
}

// SeriesQuantity is one entry of the ranked series summary of the item report.
type SeriesQuantity struct {
	Series   string
	Quantity int64
}

// FilterOptions lists the values the filter widgets offer.
type FilterOptions struct {
	Warehouses []string
	Categories []string
	Years      []string
	Months     []string
}

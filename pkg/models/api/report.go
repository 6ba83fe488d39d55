package api

// Pair is the metric pair as the reporting API encodes it.
type Pair struct {
	Net int64 `json:"net"`
	Neg int64 `json:"neg"`
}

type Filters struct {
	Warehouses []string `json:"warehouses"`
	Categories []string `json:"categories"`
	Years      []string `json:"years"`
	Months     []string `json:"months"`
}

// WarehouseRow is a row of the warehouse report. Warehouse rows carry their
// category rows inline; the subtotal row is flagged with IsSubtotal.
type WarehouseRow struct {
	Name       string          `json:"name"`
	ParentID   string          `json:"parentId,omitempty"`
	IsHeader   bool            `json:"is_header,omitempty"`
	IsSubtotal bool            `json:"is_subtotal,omitempty"`
	Data       map[string]Pair `json:"data"`
	Total      *Pair           `json:"total,omitempty"`
	Compare    *Pair           `json:"compare,omitempty"`
	PctChange  *float64        `json:"pct_change,omitempty"`
	Categories []WarehouseRow  `json:"categories,omitempty"`
}

type WarehouseReport struct {
	Months []string       `json:"months"`
	Rows   []WarehouseRow `json:"rows"`
	Error  string         `json:"error,omitempty"`
}

// ItemRow is a row of the item report tree (category > series > item).
type ItemRow struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	ParentID string          `json:"parentId,omitempty"`
	Level    int             `json:"level"`
	Data     map[string]Pair `json:"data"`
	Total    *Pair           `json:"total,omitempty"`
	Stock    *int64          `json:"stock,omitempty"`
	Children []ItemRow       `json:"children,omitempty"`
}

type SeriesQuantity struct {
	Series   string `json:"series"`
	Quantity int64  `json:"quantity"`
}

type ItemReport struct {
	Months    []string         `json:"months"`
	Rows      []ItemRow        `json:"rows"`
	TopSeries []SeriesQuantity `json:"top_series_data"`
	Error     string           `json:"error,omitempty"`
}

// ErrorBody is the body the reporting API sends with a failure status.
type ErrorBody struct {
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

package api

// RowState is the visibility of one rendered row as the browser applies it.
type RowState struct {
	ID      string `json:"id"`
	Open    bool   `json:"open"`
	Visible bool   `json:"visible"`
}

type BoardState struct {
	Board string `json:"board"`
	// Seq echoes the sequence number of the search request being answered.
	Seq    uint64     `json:"seq,omitempty"`
	Search string     `json:"search,omitempty"`
	Rows   []RowState `json:"rows"`
}

type ToggleRequest struct {
	Row  string `json:"row"`
	Cell int    `json:"cell"`
}

type SlicerRequest struct {
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

type SlicerOption struct {
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

type SlicerState struct {
	Dimension string         `json:"dimension"`
	Options   []SlicerOption `json:"options"`
	Query     string         `json:"query"`
}

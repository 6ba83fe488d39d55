package chart

import "github.com/de-tools/sales-atlas/pkg/models/domain"

const (
	excludedWarehouse = "케이스"
	pieTitle          = "시리즈별 판매량 Top 10 (케이스 제외)"
	barTitle          = "월별 창고 판매 현황"
)

var (
	warehouseColors = map[string]string{
		"안경원": "#e6194B",
		"면세":  "#f58231",
		"수출":  "#3cb44b",
		"케이스": "#808080",
	}
	otherColors = []string{"#4363d8", "#ffe119", "#911eb4", "#46f0f0", "#9A6324", "#000075"}

	// SeriesColors is the pie palette; the rank list reuses it for its swatches.
	SeriesColors = []string{
		"#3498db", "#e74c3c", "#2ecc71", "#f1c40f", "#9b59b6",
		"#34495e", "#1abc9c", "#e67e22", "#7f8c8d", "#d35400",
	}
)

// WarehouseBars builds one bar series per warehouse header row, plotting the
// net amount of every period. The case warehouse is left out.
func WarehouseBars(report domain.Report) Data {
	data := Data{Kind: KindBar, Title: barTitle, Labels: append([]string(nil), report.Periods...)}

	other := 0
	for _, row := range report.Rows {
		if row.Kind != domain.KindHeader || row.Name == excludedWarehouse {
			continue
		}

		color, ok := warehouseColors[row.Name]
		if !ok {
			color = otherColors[other%len(otherColors)]
			other++
		}

		values := make([]float64, len(report.Periods))
		for i, p := range report.Periods {
			values[i] = float64(row.Metric(p).Net)
		}
		data.Series = append(data.Series, Series{Label: row.Name, Values: values, Color: color})
	}
	return data
}

// RankEntry is one line of the ranked series list shown next to the pie.
type RankEntry struct {
	Rank     int
	Series   string
	Quantity int64
	Color    string
}

// SeriesPie builds the pie of the top selling series.
func SeriesPie(series []domain.SeriesQuantity) Data {
	data := Data{Kind: KindPie, Title: pieTitle}
	if len(series) == 0 {
		return data
	}

	s := Series{Label: "시리즈별 판매량", Colors: SeriesColors}
	for _, q := range series {
		data.Labels = append(data.Labels, q.Series)
		s.Values = append(s.Values, float64(q.Quantity))
	}
	data.Series = []Series{s}
	return data
}

// Ranking lists the series in the order received, with their pie colour.
func Ranking(series []domain.SeriesQuantity) []RankEntry {
	entries := make([]RankEntry, 0, len(series))
	for i, q := range series {
		entries = append(entries, RankEntry{
			Rank:     i + 1,
			Series:   q.Series,
			Quantity: q.Quantity,
			Color:    SeriesColors[i%len(SeriesColors)],
		})
	}
	return entries
}

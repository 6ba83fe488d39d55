package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/services/chart"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/mattn/go-runewidth"
)

type TableConfig struct {
	// MinWidth is the narrowest a column is drawn.
	MinWidth int
	// Indent is the number of spaces per tree level in the first column.
	Indent int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		MinWidth: 4,
		Indent:   2,
	}
}

// Reporter prints report tables as aligned text. Widths are measured in
// terminal cells so Hangul labels line up.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// Handle prints the visible rows of a table. Collapsible rows are marked with
// "+" when closed and "-" when open.
func (c *Reporter) Handle(table report.Table, rows []report.RowView) error {
	var body [][]string
	for _, row := range rows {
		if !row.Visible {
			continue
		}
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = cell.Text
		}
		if len(cells) > 0 {
			cells[0] = c.label(row, cells[0])
		}
		body = append(body, cells)
	}

	columns := table.Header.Columns()
	widths := make([]int, columns)
	for i := range widths {
		widths[i] = c.config.MinWidth
	}
	for _, cells := range body {
		for i, text := range cells {
			if i < columns {
				widths[i] = max(widths[i], runewidth.StringWidth(text))
			}
		}
	}
	c.fitHeader(table.Header, widths)

	var b strings.Builder
	sep := separator(widths)
	b.WriteString(sep)
	b.WriteString(c.headerLine(table.Header, widths))
	b.WriteString(sep)
	for _, cells := range body {
		b.WriteString(bodyLine(cells, widths))
	}
	b.WriteString(sep)

	_, err := io.WriteString(c.writer, b.String())
	return err
}

// Ranking prints the series ranking of the item view.
func (c *Reporter) Ranking(entries []chart.RankEntry) error {
	if len(entries) == 0 {
		return nil
	}
	width := 0
	for _, e := range entries {
		width = max(width, runewidth.StringWidth(e.Series))
	}

	var b strings.Builder
	b.WriteString("\n시리즈별 판매량 Top 10 (케이스 제외)\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "%2d. %s %d\n", e.Rank, runewidth.FillRight(e.Series, width), e.Quantity)
	}
	_, err := io.WriteString(c.writer, b.String())
	return err
}

func (c *Reporter) label(row report.RowView, text string) string {
	marker := "  "
	if row.Collapsible {
		marker = "+ "
		if row.Open {
			marker = "- "
		}
	}
	return strings.Repeat(" ", row.Level*c.config.Indent) + marker + text
}

// fitHeader widens the last column of a group when its label does not fit.
func (c *Reporter) fitHeader(header report.Header, widths []int) {
	col := 0
	for _, cell := range header.Cells {
		span := max(cell.Colspan, 1)
		if col+span > len(widths) {
			return
		}
		if need := runewidth.StringWidth(cell.Label) - spanWidth(widths[col:col+span]); need > 0 {
			widths[col+span-1] += need
		}
		col += span
	}
}

func (c *Reporter) headerLine(header report.Header, widths []int) string {
	var b strings.Builder
	b.WriteString("|")
	col := 0
	for _, cell := range header.Cells {
		span := max(cell.Colspan, 1)
		if col+span > len(widths) {
			break
		}
		b.WriteString(" " + runewidth.FillRight(cell.Label, spanWidth(widths[col:col+span])) + " |")
		col += span
	}
	b.WriteString("\n")
	return b.String()
}

func bodyLine(cells []string, widths []int) string {
	var b strings.Builder
	b.WriteString("|")
	for i, w := range widths {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		if i == 0 {
			text = runewidth.FillRight(text, w)
		} else {
			text = runewidth.FillLeft(text, w)
		}
		b.WriteString(" " + text + " |")
	}
	b.WriteString("\n")
	return b.String()
}

// spanWidth is the inner width of adjacent columns drawn as one cell.
func spanWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	return total + 3*(len(widths)-1)
}

func separator(widths []int) string {
	var b strings.Builder
	b.WriteString("+")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("+")
	}
	b.WriteString("\n")
	return b.String()
}

package chart

import (
	"fmt"
	"io"
	"math"
	"sync"

	svg "github.com/ajstarks/svgo"
)

const (
	width       = 720
	height      = 360
	margin      = 48
	legendWidth = 160
	titleHeight = 28
	fontStyle   = "font-family:sans-serif;font-size:12px"
	fallbackHex = "#808080"
)

type svgChart struct {
	mu        sync.Mutex
	data      Data
	destroyed bool
}

// NewSVG creates a chart that renders itself as a standalone SVG document.
func NewSVG(data Data) (Chart, error) {
	switch data.Kind {
	case KindBar, KindPie:
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", data.Kind)
	}
	return &svgChart{data: data}, nil
}

func (c *svgChart) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyed = true
}

func (c *svgChart) Render(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return ErrDestroyed
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#ffffff")
	if c.data.Title != "" {
		canvas.Text(width/2, 20, c.data.Title, fontStyle+";font-weight:bold;text-anchor:middle")
	}

	if c.data.Empty() {
		canvas.Text(width/2, height/2, "데이터 없음", fontStyle+";fill:#7f8c8d;text-anchor:middle")
	} else if c.data.Kind == KindPie {
		drawPie(canvas, c.data)
	} else {
		drawBars(canvas, c.data)
	}

	canvas.End()
	return nil
}

// drawBars draws grouped bars around a zero baseline: positive values rise
// above it and negative values hang below it.
func drawBars(canvas *svg.SVG, data Data) {
	plotW := width - 2*margin - legendWidth
	plotH := height - 2*margin - titleHeight
	top := margin + titleHeight
	bottom := top + plotH

	peak, trough := 0.0, 0.0
	for _, s := range data.Series {
		for _, v := range s.Values {
			peak = math.Max(peak, v)
			trough = math.Min(trough, v)
		}
	}
	span := peak - trough
	if span == 0 {
		span = 1
	}
	baseline := top + int(peak/span*float64(plotH))

	canvas.Line(margin, baseline, margin+plotW, baseline, "stroke:#34495e;stroke-width:1")
	canvas.Line(margin, top, margin, bottom, "stroke:#34495e;stroke-width:1")

	groups := len(data.Labels)
	if groups == 0 {
		return
	}
	groupW := plotW / groups
	barW := groupW / (len(data.Series) + 1)
	if barW < 1 {
		barW = 1
	}

	for g, label := range data.Labels {
		x0 := margin + g*groupW + barW/2
		for i, s := range data.Series {
			if g >= len(s.Values) || s.Values[g] == 0 {
				continue
			}
			v := s.Values[g]
			h := int(math.Abs(v) / span * float64(plotH))
			y := baseline - h
			if v < 0 {
				y = baseline
			}
			canvas.Rect(x0+i*barW, y, barW, h, "fill:"+colorOr(s.Color))
		}
		canvas.Text(margin+g*groupW+groupW/2, bottom+16, label, fontStyle+";text-anchor:middle")
	}

	legendX := margin + plotW + 24
	for i, s := range data.Series {
		y := top + i*20
		canvas.Rect(legendX, y, 12, 12, "fill:"+colorOr(s.Color))
		canvas.Text(legendX+18, y+10, s.Label, fontStyle)
	}
}

func drawPie(canvas *svg.SVG, data Data) {
	s := data.Series[0]
	total := 0.0
	for _, v := range s.Values {
		if v > 0 {
			total += v
		}
	}
	if total == 0 {
		return
	}

	r := (height - 2*margin - titleHeight) / 2
	cx := margin + r
	cy := margin + titleHeight + r

	angle := -math.Pi / 2
	for i, v := range s.Values {
		if v <= 0 {
			continue
		}
		fill := "fill:" + sliceColor(s, i) + ";stroke:#ffffff;stroke-width:1"
		if v == total {
			canvas.Circle(cx, cy, r, fill)
			break
		}

		sweep := v / total * 2 * math.Pi
		x1, y1 := cx+int(float64(r)*math.Cos(angle)), cy+int(float64(r)*math.Sin(angle))
		angle += sweep
		x2, y2 := cx+int(float64(r)*math.Cos(angle)), cy+int(float64(r)*math.Sin(angle))
		large := 0
		if sweep > math.Pi {
			large = 1
		}
		canvas.Path(fmt.Sprintf("M%d,%d L%d,%d A%d,%d 0 %d,1 %d,%d Z", cx, cy, x1, y1, r, r, large, x2, y2), fill)
	}

	legendX := cx + r + 40
	for i, label := range data.Labels {
		if i >= len(s.Values) {
			break
		}
		y := margin + titleHeight + i*20
		canvas.Rect(legendX, y, 12, 12, "fill:"+sliceColor(s, i))
		canvas.Text(legendX+18, y+10, fmt.Sprintf("%s (%.1f%%)", label, s.Values[i]/total*100), fontStyle)
	}
}

func sliceColor(s Series, i int) string {
	if len(s.Colors) == 0 {
		return colorOr(s.Color)
	}
	return s.Colors[i%len(s.Colors)]
}

func colorOr(c string) string {
	if c == "" {
		return fallbackHex
	}
	return c
}

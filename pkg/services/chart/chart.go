package chart

import (
	"errors"
	"io"
	"sync"
)

var ErrDestroyed = errors.New("chart destroyed")

type Kind string

const (
	KindBar Kind = "bar"
	KindPie Kind = "pie"
)

// Series is one data set. Bar charts draw one bar per label for each series;
// a pie chart uses a single series and colours slices from Colors.
type Series struct {
	Label  string
	Values []float64
	Color  string
	Colors []string
}

type Data struct {
	Kind   Kind
	Title  string
	Labels []string
	Series []Series
}

// Empty reports whether there is nothing to draw.
func (d Data) Empty() bool {
	for _, s := range d.Series {
		if len(s.Values) > 0 {
			return false
		}
	}
	return true
}

// Chart is a live chart instance bound to the page.
type Chart interface {
	Render(w io.Writer) error
	Destroy()
}

// Factory creates a chart for the data.
type Factory func(data Data) (Chart, error)

// Holder keeps at most one live chart. Replacing it destroys the previous
// instance before the new one is created.
type Holder struct {
	mu      sync.Mutex
	factory Factory
	current Chart
}

func NewHolder(factory Factory) *Holder {
	if factory == nil {
		factory = NewSVG
	}
	return &Holder{factory: factory}
}

func (h *Holder) Replace(data Data) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current != nil {
		h.current.Destroy()
		h.current = nil
	}

	c, err := h.factory(data)
	if err != nil {
		return err
	}
	h.current = c
	return nil
}

// Current returns the live chart, or nil.
func (h *Holder) Current() Chart {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Render writes the live chart. It fails with ErrDestroyed when no chart is live.
func (h *Holder) Render(w io.Writer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return ErrDestroyed
	}
	return h.current.Render(w)
}

func (h *Holder) Destroy() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current != nil {
		h.current.Destroy()
		h.current = nil
	}
}

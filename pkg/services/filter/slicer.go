package filter

import "fmt"

// All is the sentinel option that stands for "no restriction".
const All = "전체"

// Option is one checkbox of a slicer.
type Option struct {
	Value   string `json:"value"`
	Checked bool   `json:"checked"`
}

// Slicer is a multi-select list with an "all" option. The "all" option and the
// concrete options are mutually exclusive, and at least one box is always
// checked.
type Slicer struct {
	values  []string
	known   map[string]bool
	checked map[string]bool
	all     bool
}

// NewSlicer creates a slicer with "all" checked. A sentinel entry in values is
// ignored.
func NewSlicer(values []string) *Slicer {
	s := &Slicer{
		known:   make(map[string]bool, len(values)),
		checked: make(map[string]bool),
		all:     true,
	}
	for _, v := range values {
		if v == All || s.known[v] {
			continue
		}
		s.known[v] = true
		s.values = append(s.values, v)
	}
	return s
}

// Set applies one checkbox change.
func (s *Slicer) Set(value string, checked bool) error {
	switch {
	case value == All && checked:
		s.all = true
		s.checked = make(map[string]bool)
	case value == All:
		s.all = false
	case !s.known[value]:
		return fmt.Errorf("unknown option %q", value)
	case checked:
		s.checked[value] = true
		s.all = false
	default:
		delete(s.checked, value)
	}

	if len(s.checked) == 0 {
		s.all = true
	}
	return nil
}

// Select checks the given values in order. Unknown values are skipped.
func (s *Slicer) Select(values ...string) {
	for _, v := range values {
		_ = s.Set(v, true)
	}
}

func (s *Slicer) AllSelected() bool {
	return s.all
}

// Selected returns the checked concrete values in option order, or nil when
// "all" is checked.
func (s *Slicer) Selected() []string {
	if s.all {
		return nil
	}
	var out []string
	for _, v := range s.values {
		if s.checked[v] {
			out = append(out, v)
		}
	}
	return out
}

// Options lists every checkbox, the sentinel first.
func (s *Slicer) Options() []Option {
	out := make([]Option, 0, len(s.values)+1)
	out = append(out, Option{Value: All, Checked: s.all})
	for _, v := range s.values {
		out = append(out, Option{Value: v, Checked: s.checked[v]})
	}
	return out
}

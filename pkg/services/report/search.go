package report

import (
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Search applies a live search term. A non-empty term shows matching item rows
// with their ancestor chains plus every level 0 row; the empty term restores the
// visibility implied by the open flags. Open flags are never changed.
func (s *Session) Search(term string) {
	s.term = term
	if term == "" {
		s.matches = nil
		s.derive()
		return
	}

	needle := strings.ToLower(term)
	matches := make(map[string]bool)
	for i, row := range s.table.Rows {
		if row.Kind != domain.KindItem || !strings.Contains(strings.ToLower(displayName(row)), needle) {
			continue
		}
		matches[row.ID] = true
		for p, ok := s.parent(i); ok && !matches[s.table.Rows[p].ID]; p, ok = s.parent(p) {
			matches[s.table.Rows[p].ID] = true
		}
	}
	s.matches = matches
}

// displayName is the text shown in the first cell, including the stock suffix
// of item rows.
func displayName(row RenderRow) string {
	if len(row.Cells) > 0 {
		return row.Cells[0].Text
	}
	return row.Name
}

func (s *Session) Term() string {
	return s.term
}

func (s *Session) Searching() bool {
	return s.term != ""
}

func (s *Session) visibleAt(i int) bool {
	if !s.Searching() {
		return s.state[i].visible
	}
	row := s.table.Rows[i]
	return row.Level == 0 || s.matches[row.ID]
}

package report

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownRow     = errors.New("unknown row")
	ErrNotCollapsible = errors.New("row is not collapsible")
	ErrStaleResponse  = errors.New("stale response discarded")
	ErrSearchDisabled = errors.New("live search is not available for this view")
	ErrStaleSearch    = errors.New("stale search term discarded")
)

type rowState struct {
	open    bool
	visible bool
}

// RowView is a rendered row together with its current visibility state.
type RowView struct {
	RenderRow
	Open    bool
	Visible bool
}

// Session holds the transient open/visible state of one rendered table. A new
// session is created for every render and starts fully collapsed.
type Session struct {
	table    Table
	pos      map[string]int   // row id -> row index
	children map[string][]int // parent id -> direct child row indices
	state    []rowState

	term    string
	matches map[string]bool
}

func NewSession(table Table) *Session {
	s := &Session{
		table:    table,
		pos:      make(map[string]int, len(table.Rows)),
		children: make(map[string][]int),
		state:    make([]rowState, len(table.Rows)),
	}
	for i, row := range table.Rows {
		if _, exists := s.pos[row.ID]; !exists {
			s.pos[row.ID] = i
		}
		if row.ParentID != "" {
			s.children[row.ParentID] = append(s.children[row.ParentID], i)
		}
	}
	s.derive()
	return s
}

func (s *Session) Table() Table {
	return s.table
}

// parent returns the index of the row's parent, or false when the row is a
// root or its parent is not part of the render.
func (s *Session) parent(i int) (int, bool) {
	parentID := s.table.Rows[i].ParentID
	if parentID == "" {
		return 0, false
	}
	p, ok := s.pos[parentID]
	return p, ok
}

// derive recomputes visibility from the open flags: a row is visible when it
// has no (known) parent, or when its parent is visible and open.
func (s *Session) derive() {
	resolved := make([]bool, len(s.state))
	for i := range s.state {
		if resolved[i] {
			continue
		}

		chain := []int{i}
		onChain := map[int]bool{i: true}
		for {
			p, ok := s.parent(chain[len(chain)-1])
			if !ok || resolved[p] || onChain[p] {
				break
			}
			chain = append(chain, p)
			onChain[p] = true
		}

		for j := len(chain) - 1; j >= 0; j-- {
			idx := chain[j]
			p, ok := s.parent(idx)
			if !ok || !resolved[p] {
				s.state[idx].visible = true
			} else {
				s.state[idx].visible = s.state[p].visible && s.state[p].open
			}
			resolved[idx] = true
		}
	}
}

// Toggle flips the open state of a collapsible row and returns the new state.
//
// Opening reveals the direct children only. Closing hides every descendant
// and resets it to closed, so reopening starts from a collapsed subtree.
func (s *Session) Toggle(id string) (bool, error) {
	i, ok := s.pos[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownRow, id)
	}
	if !s.table.Rows[i].Collapsible {
		return false, fmt.Errorf("%w: %s", ErrNotCollapsible, id)
	}

	st := &s.state[i]
	st.open = !st.open

	if st.open {
		s.revealChildren(i)
		return true, nil
	}

	s.collapseDescendants(id)
	return false, nil
}

// revealChildren makes the direct children of an opened row follow its
// visibility. A child that is itself open (possible when it was toggled while
// shown only by a search) passes the visibility on to its own children.
func (s *Session) revealChildren(i int) {
	seen := map[int]bool{i: true}
	queue := []int{i}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		visible := s.state[current].visible
		for _, c := range s.children[s.table.Rows[current].ID] {
			s.state[c].visible = visible
			if s.state[c].open && !seen[c] {
				seen[c] = true
				queue = append(queue, c)
			}
		}
	}
}

func (s *Session) collapseDescendants(id string) {
	seen := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, c := range s.children[current] {
			s.state[c].open = false
			s.state[c].visible = false

			childID := s.table.Rows[c].ID
			if !seen[childID] {
				seen[childID] = true
				queue = append(queue, childID)
			}
		}
	}
}

// State returns the open and visible flags of a row. Unknown ids are closed and
// hidden.
func (s *Session) State(id string) (open, visible bool) {
	i, ok := s.pos[id]
	if !ok {
		return false, false
	}
	return s.state[i].open, s.visibleAt(i)
}

// Rows returns every rendered row with its current state, in render order.
func (s *Session) Rows() []RowView {
	views := make([]RowView, len(s.table.Rows))
	for i, row := range s.table.Rows {
		views[i] = RowView{RenderRow: row, Open: s.state[i].open, Visible: s.visibleAt(i)}
	}
	return views
}

// VisibleRows returns the rows currently shown, in render order.
func (s *Session) VisibleRows() []RenderRow {
	var rows []RenderRow
	for i, row := range s.table.Rows {
		if s.visibleAt(i) {
			rows = append(rows, row)
		}
	}
	return rows
}

// Row returns the rendered row with the given id.
func (s *Session) Row(id string) (RenderRow, bool) {
	i, ok := s.pos[id]
	if !ok {
		return RenderRow{}, false
	}
	return s.table.Rows[i], true
}

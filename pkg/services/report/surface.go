package report

import "sync"

// Target is where an interaction landed: a cell of a row, or the row element
// itself when Cell is negative.
type Target struct {
	Row  string
	Cell int
}

// ToggleEvent reports the new state of a toggled collapsible row.
type ToggleEvent struct {
	Row  string
	Open bool
}

type elementKind int

const (
	cellElement elementKind = iota
	rowElement
	containerElement
)

type element struct {
	kind elementKind
	row  int
}

// Surface is the row container of a rendered table. Interactions on any row
// are dispatched through it, so replacing the rendered rows never needs a new
// handler per row.
type Surface struct {
	mu      sync.Mutex
	session *Session
}

func NewSurface() *Surface {
	return &Surface{}
}

// Mount replaces the rows inside the container.
func (s *Surface) Mount(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = session
}

func (s *Surface) Session() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Dispatch routes an interaction to the nearest collapsible row enclosing the
// target. Interactions that resolve to no collapsible row are ignored and
// reported as not handled.
func (s *Surface) Dispatch(target Target) (ToggleEvent, bool, error) {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()

	if session == nil {
		return ToggleEvent{}, false, nil
	}

	start, ok := session.resolve(target)
	if !ok {
		return ToggleEvent{}, false, nil
	}

	row, ok := session.closestCollapsible(start)
	if !ok {
		return ToggleEvent{}, false, nil
	}

	id := session.table.Rows[row].ID
	open, err := session.Toggle(id)
	if err != nil {
		return ToggleEvent{}, false, err
	}

	return ToggleEvent{Row: id, Open: open}, true, nil
}

func (s *Session) resolve(target Target) (element, bool) {
	i, ok := s.pos[target.Row]
	if !ok {
		return element{}, false
	}
	if target.Cell < 0 {
		return element{kind: rowElement, row: i}, true
	}
	if target.Cell >= len(s.table.Rows[i].Cells) {
		return element{}, false
	}
	return element{kind: cellElement, row: i}, true
}

func (s *Session) parentElement(e element) (element, bool) {
	switch e.kind {
	case cellElement:
		return element{kind: rowElement, row: e.row}, true
	case rowElement:
		return element{kind: containerElement}, true
	default:
		return element{}, false
	}
}

// closestCollapsible walks from the element up to the container.
func (s *Session) closestCollapsible(e element) (int, bool) {
	for ok := true; ok; e, ok = s.parentElement(e) {
		if e.kind == rowElement && s.table.Rows[e.row].Collapsible {
			return e.row, true
		}
	}
	return 0, false
}

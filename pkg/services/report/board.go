package report

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/chart"
	"github.com/de-tools/sales-atlas/pkg/services/filter"
	"github.com/rs/zerolog"
)

const loadErrorPrefix = "데이터 로드 중 오류: "

// State is the loading indicator of a board.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

type Status struct {
	State   State
	Message string
}

// UserError is implemented by errors that carry a message meant to be shown as
// is.
type UserError interface {
	UserMessage() string
}

// View describes one report page: where its data comes from and how it is
// presented.
type View struct {
	Name       string
	Endpoint   filter.Endpoint
	Load       func(ctx context.Context, filters filter.Filters) (domain.Report, error)
	Options    func(filters filter.Filters) Options
	Chart      func(report domain.Report) chart.Data
	Searchable bool

	// ErrorPrefix is put in front of load errors shown to the user. Empty
	// means the default prefix.
	ErrorPrefix string
}

// Board drives one view: it fetches, renders and mounts the table and keeps
// the companion chart in sync. Only the response of the latest Refresh is
// applied.
type Board struct {
	view    View
	surface *Surface
	charts  *chart.Holder

	mu        sync.Mutex
	seq       uint64
	searchSeq uint64
	status    Status
	report  domain.Report
	filters filter.Filters
}

func NewBoard(view View, charts *chart.Holder) *Board {
	if charts == nil {
		charts = chart.NewHolder(nil)
	}
	return &Board{
		view:    view,
		surface: NewSurface(),
		charts:  charts,
		status:  Status{State: StateIdle},
	}
}

func (b *Board) View() View {
	return b.view
}

func (b *Board) Surface() *Surface {
	return b.surface
}

func (b *Board) Charts() *chart.Holder {
	return b.charts
}

// Refresh fetches the report for the filters and replaces the table and the
// chart. It returns ErrStaleResponse when a newer Refresh started while this
// one was in flight; the board is left untouched in that case.
func (b *Board) Refresh(ctx context.Context, filters filter.Filters) error {
	logger := zerolog.Ctx(ctx).With().Str("view", b.view.Name).Logger()

	b.mu.Lock()
	b.seq++
	token := b.seq
	b.status = Status{State: StateLoading}
	b.mu.Unlock()

	logger.Debug().Uint64("seq", token).Msg("loading report")
	report, err := b.view.Load(ctx, filters)

	b.mu.Lock()
	defer b.mu.Unlock()

	if token != b.seq {
		logger.Warn().Uint64("seq", token).Uint64("latest", b.seq).Msg("discarding stale response")
		return ErrStaleResponse
	}

	if err != nil {
		b.status = Status{State: StateFailed, Message: b.userMessage(err)}
		logger.Error().Err(err).Msg("failed to load report")
		return fmt.Errorf("failed to load %s report: %w", b.view.Name, err)
	}

	opts := Options{}
	if b.view.Options != nil {
		opts = b.view.Options(filters)
	}
	table := Render(report.Rows, report.Periods, opts)
	b.surface.Mount(NewSession(table))
	b.report = report
	b.filters = filters

	if b.view.Chart != nil {
		if err := b.charts.Replace(b.view.Chart(report)); err != nil {
			logger.Error().Err(err).Msg("failed to draw chart")
		}
	}

	b.status = Status{State: StateReady}
	logger.Debug().Int("rows", len(table.Rows)).Msg("report rendered")
	return nil
}

func (b *Board) userMessage(err error) string {
	var ue UserError
	if errors.As(err, &ue) {
		return ue.UserMessage()
	}
	prefix := b.view.ErrorPrefix
	if prefix == "" {
		prefix = loadErrorPrefix
	}
	return prefix + err.Error()
}

// Fail records a failure that happened outside Refresh, such as loading the
// filter options.
func (b *Board) Fail(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = Status{State: StateFailed, Message: b.userMessage(err)}
}

func (b *Board) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

func (b *Board) Report() domain.Report {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.report
}

func (b *Board) Filters() filter.Filters {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters
}

// Dispatch forwards an interaction to the table.
func (b *Board) Dispatch(target Target) (ToggleEvent, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Dispatch(target)
}

// Search applies a live search term to the mounted table.
func (b *Board) Search(term string) error {
	return b.ApplySearch(0, term)
}

// ApplySearch applies a search term numbered by the client. Terms arrive in
// any order; one numbered at or below the last applied term returns
// ErrStaleSearch and leaves the table alone. Zero is never stale.
func (b *Board) ApplySearch(seq uint64, term string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.view.Searchable {
		return ErrSearchDisabled
	}
	if seq != 0 {
		if seq <= b.searchSeq {
			return ErrStaleSearch
		}
		b.searchSeq = seq
	}
	if session := b.surface.Session(); session != nil {
		session.Search(term)
	}
	return nil
}

// SelectSeries searches for a series picked from the chart or the ranking. It
// shares the numbering of ApplySearch.
func (b *Board) SelectSeries(seq uint64, series string) error {
	return b.ApplySearch(seq, series)
}

// Rows returns the mounted rows with their state, or nil before the first
// successful Refresh.
func (b *Board) Rows() []RowView {
	b.mu.Lock()
	defer b.mu.Unlock()
	session := b.surface.Session()
	if session == nil {
		return nil
	}
	return session.Rows()
}

// Table returns the mounted table.
func (b *Board) Table() (Table, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	session := b.surface.Session()
	if session == nil {
		return Table{}, false
	}
	return session.Table(), true
}

// SearchTerm returns the active search term.
func (b *Board) SearchTerm() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	session := b.surface.Session()
	if session == nil {
		return ""
	}
	return session.Term()
}

// Close destroys the chart.
func (b *Board) Close() {
	b.charts.Destroy()
}

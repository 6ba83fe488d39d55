package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/sales-atlas/pkg/services/chart"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/de-tools/sales-atlas/pkg/store/client"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Settings struct {
	Registry  Registry
	Source    client.ReportSource
	Formatter report.Formatter
	// TTL is how long an unused dashboard is kept. Zero keeps dashboards forever.
	TTL    time.Duration
	Charts chart.Factory
}

// Manager keeps the open dashboards, keyed by a random id.
type Manager struct {
	settings Settings
	now      func() time.Time

	mu     sync.Mutex
	boards map[string]*Dashboard
}

func NewManager(settings Settings) (*Manager, error) {
	if settings.Source == nil {
		return nil, fmt.Errorf("report source is nil")
	}
	if settings.Registry == nil {
		settings.Registry = DefaultRegistry()
	}
	return &Manager{
		settings: settings,
		now:      time.Now,
		boards:   make(map[string]*Dashboard),
	}, nil
}

func (m *Manager) Views() []string {
	return m.settings.Registry.ListViews()
}

// Create opens a dashboard for a brand and view. Idle dashboards are swept
// first.
func (m *Manager) Create(ctx context.Context, brand, viewName string) (*Dashboard, error) {
	m.Sweep(ctx)

	view, err := m.settings.Registry.Create(viewName, Deps{
		Source:    m.settings.Source,
		Brand:     brand,
		Formatter: m.settings.Formatter,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create view: %w", err)
	}

	board := report.NewBoard(view, chart.NewHolder(m.settings.Charts))
	d := newDashboard(uuid.NewString(), brand, view, m.settings.Source, board, m.now())

	m.mu.Lock()
	m.boards[d.ID] = d
	m.mu.Unlock()

	zerolog.Ctx(ctx).Debug().Str("board", d.ID).Str("view", viewName).Str("brand", brand).Msg("dashboard created")
	return d, nil
}

// Get returns an open dashboard and marks it used.
func (m *Manager) Get(id string) (*Dashboard, bool) {
	m.mu.Lock()
	d, ok := m.boards[id]
	m.mu.Unlock()
	if !ok {
		return nil, false
	}
	d.touch(m.now())
	return d, true
}

// Sweep closes dashboards idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep(ctx context.Context) int {
	if m.settings.TTL <= 0 {
		return 0
	}

	now := m.now()
	var expired []*Dashboard

	m.mu.Lock()
	for id, d := range m.boards {
		if d.idleSince(now) > m.settings.TTL {
			expired = append(expired, d)
			delete(m.boards, id)
		}
	}
	m.mu.Unlock()

	for _, d := range expired {
		d.Board.Close()
	}
	if len(expired) > 0 {
		zerolog.Ctx(ctx).Debug().Int("count", len(expired)).Msg("swept idle dashboards")
	}
	return len(expired)
}

// Close closes every dashboard.
func (m *Manager) Close() {
	m.mu.Lock()
	boards := m.boards
	m.boards = make(map[string]*Dashboard)
	m.mu.Unlock()

	for _, d := range boards {
		d.Board.Close()
	}
}

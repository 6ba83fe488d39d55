package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/filter"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/de-tools/sales-atlas/pkg/store/client"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	DimensionWarehouse = "warehouse"
	DimensionCategory  = "category"
)

// Dashboard is one open report page: its board plus the filter widgets.
type Dashboard struct {
	ID    string
	Brand string
	View  string
	Board *report.Board

	source client.ReportSource

	mu       sync.Mutex
	options  domain.FilterOptions
	slicers  map[string]*filter.Slicer
	lastUsed time.Time
}

func newDashboard(id, brand string, view report.View, source client.ReportSource, board *report.Board, now time.Time) *Dashboard {
	return &Dashboard{
		ID:       id,
		Brand:    brand,
		View:     view.Name,
		Board:    board,
		source:   source,
		slicers:  make(map[string]*filter.Slicer),
		lastUsed: now,
	}
}

// Load fetches the filter options and the report concurrently. Failures are
// recorded on the board status; the first one is returned.
func (d *Dashboard) Load(ctx context.Context, selection filter.Filters) error {
	logger := zerolog.Ctx(ctx).With().Str("board", d.ID).Str("brand", d.Brand).Logger()
	ctx = logger.WithContext(ctx)

	var g errgroup.Group
	var options domain.FilterOptions
	var filtersErr, refreshErr error

	g.Go(func() error {
		resp, err := d.source.Filters(ctx, d.Brand)
		if err != nil {
			filtersErr = fmt.Errorf("failed to load filter options: %w", err)
			return nil
		}
		options = adapters.MapFiltersApiToDomain(resp)
		return nil
	})
	g.Go(func() error {
		refreshErr = d.Board.Refresh(ctx, selection)
		return nil
	})
	_ = g.Wait()

	if filtersErr == nil {
		d.SetOptions(options, selection)
	} else {
		logger.Warn().Err(filtersErr).Msg("dashboard load incomplete")
		if d.Board.Status().State != report.StateFailed {
			d.Board.Fail(filtersErr)
		}
	}
	if refreshErr != nil && !errors.Is(refreshErr, report.ErrStaleResponse) {
		logger.Warn().Err(refreshErr).Msg("dashboard load incomplete")
	}
	return errors.Join(refreshErr, filtersErr)
}

// SetOptions replaces the filter options and rebuilds the slicers with the
// given selection checked.
func (d *Dashboard) SetOptions(options domain.FilterOptions, selection filter.Filters) {
	warehouses := filter.NewSlicer(options.Warehouses)
	warehouses.Select(selection.Warehouses...)
	categories := filter.NewSlicer(options.Categories)
	categories.Select(selection.Categories...)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.options = options
	d.slicers[DimensionWarehouse] = warehouses
	d.slicers[DimensionCategory] = categories
}

func (d *Dashboard) Options() domain.FilterOptions {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.options
}

// SetSlicer applies a checkbox change and returns the resulting options.
func (d *Dashboard) SetSlicer(dimension, value string, checked bool) ([]filter.Option, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.slicers[dimension]
	if !ok {
		return nil, fmt.Errorf("unknown slicer %q", dimension)
	}
	if err := s.Set(value, checked); err != nil {
		return nil, err
	}
	return s.Options(), nil
}

// SlicerOptions returns the checkboxes of a slicer, or nil before the options
// were loaded.
func (d *Dashboard) SlicerOptions(dimension string) []filter.Option {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s, ok := d.slicers[dimension]; ok {
		return s.Options()
	}
	return nil
}

// Filters combines the current slicer selection with scalar filters.
func (d *Dashboard) Filters(scalars filter.Filters) filter.Filters {
	d.mu.Lock()
	defer d.mu.Unlock()
	return filter.FromSlicers(d.slicers[DimensionWarehouse], d.slicers[DimensionCategory], scalars)
}

func (d *Dashboard) touch(now time.Time) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastUsed = now
}

func (d *Dashboard) idleSince(now time.Time) time.Duration {
	d.mu.Lock()
	defer d.mu.Unlock()
	return now.Sub(d.lastUsed)
}

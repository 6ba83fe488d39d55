package report

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/chart"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/de-tools/sales-atlas/pkg/services/filter"
	"github.com/de-tools/sales-atlas/pkg/services/report"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const boardCookie = "board"

//go:embed templates/*.html
var templates embed.FS

type Handler struct {
	boards *dashboard.Manager
	brands config.BrandRegistry
	page   *template.Template
}

func NewHandler(boards *dashboard.Manager, brands config.BrandRegistry) (*Handler, error) {
	page, err := template.New("dashboard.html").Funcs(template.FuncMap{
		"indent": func(level int) int { return level * 16 },
	}).ParseFS(templates, "templates/dashboard.html")
	if err != nil {
		return nil, err
	}
	return &Handler{boards: boards, brands: brands, page: page}, nil
}

type pageData struct {
	Board      string
	Brand      config.Brand
	Brands     []config.Brand
	View       string
	Views      []string
	Status     report.Status
	Table      report.Table
	Rows       []report.RowView
	Options    domain.FilterOptions
	Warehouses []filter.Option
	Categories []filter.Option
	Filters    filter.Filters
	Ranking    []chart.RankEntry
	Searchable bool
	Compare    bool
	Search     string
}

// Home redirects to the warehouse report of the first brand.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	brands := h.brands.Brands()
	if len(brands) == 0 {
		http.Error(w, "Invalid Brand", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/"+url.PathEscape(brands[0].Code)+"/"+dashboard.ViewWarehouse, http.StatusFound)
}

// Dashboard renders a report page. The filters come from the query string.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	brandCode := chi.URLParam(r, "brand")
	viewName := chi.URLParam(r, "view")

	brand, ok := h.brands.Lookup(brandCode)
	if !ok {
		http.Error(w, "Invalid Brand", http.StatusNotFound)
		return
	}
	if !h.knownView(viewName) {
		http.NotFound(w, r)
		return
	}

	d := h.reuse(r, brand.Code, viewName)
	if d == nil {
		var err error
		d, err = h.boards.Create(ctx, brand.Code, viewName)
		if err != nil {
			logger.Error().Err(err).Str("view", viewName).Msg("failed to create dashboard")
			http.Error(w, "failed to create dashboard", http.StatusInternalServerError)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{Name: boardCookie, Value: d.ID, Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode})

	selection := filter.Parse(r.URL.Query())
	if err := d.Load(ctx, selection); err != nil {
		logger.Warn().Err(err).Str("board", d.ID).Msg("dashboard rendered with errors")
	}

	view := d.Board.View()
	data := pageData{
		Board:      d.ID,
		Brand:      brand,
		Brands:     h.brands.Brands(),
		View:       viewName,
		Views:      h.boards.Views(),
		Status:     d.Board.Status(),
		Rows:       d.Board.Rows(),
		Options:    d.Options(),
		Warehouses: d.SlicerOptions(dashboard.DimensionWarehouse),
		Categories: d.SlicerOptions(dashboard.DimensionCategory),
		Filters:    selection,
		Searchable: view.Searchable,
		Compare:    view.Endpoint == filter.EndpointWarehouse,
		Search:     d.Board.SearchTerm(),
	}
	if table, ok := d.Board.Table(); ok {
		data.Table = table
	}
	if view.Searchable {
		data.Ranking = chart.Ranking(d.Board.Report().Series)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.page.Execute(w, data); err != nil {
		logger.Error().Err(err).Msg("failed to render dashboard page")
	}
}

func (h *Handler) knownView(name string) bool {
	for _, v := range h.boards.Views() {
		if v == name {
			return true
		}
	}
	return false
}

func (h *Handler) reuse(r *http.Request, brand, view string) *dashboard.Dashboard {
	cookie, err := r.Cookie(boardCookie)
	if err != nil {
		return nil
	}
	d, ok := h.boards.Get(cookie.Value)
	if !ok || d.Brand != brand || d.View != view {
		return nil
	}
	return d
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) (*dashboard.Dashboard, bool) {
	id := chi.URLParam(r, "board")
	d, ok := h.boards.Get(id)
	if !ok {
		http.Error(w, "unknown board", http.StatusNotFound)
		return nil, false
	}
	return d, true
}

// Toggle handles a click inside the table body.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}

	var req api.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if _, _, err := d.Board.Dispatch(report.Target{Row: req.Row, Cell: req.Cell}); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("row", req.Row).Msg("failed to toggle row")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeState(w, r, d)
}

// Search applies the live search term. Terms carry the client's sequence
// number so a slow request never overrides a newer term.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}

	seq, ok := searchSeq(w, r)
	if !ok {
		return
	}
	err := d.Board.ApplySearch(seq, r.URL.Query().Get("q"))
	switch {
	case err == nil, errors.Is(err, report.ErrStaleSearch):
	case errors.Is(err, report.ErrSearchDisabled):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	h.writeSearchState(w, r, d, seq)
}

// SelectSeries searches for the series picked in the chart ranking.
func (h *Handler) SelectSeries(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}

	series, err := url.PathUnescape(chi.URLParam(r, "series"))
	if err != nil {
		http.Error(w, "invalid series", http.StatusBadRequest)
		return
	}
	seq, ok := searchSeq(w, r)
	if !ok {
		return
	}
	if err := d.Board.SelectSeries(seq, series); err != nil && !errors.Is(err, report.ErrStaleSearch) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.writeSearchState(w, r, d, seq)
}

// searchSeq reads the optional seq query parameter.
func searchSeq(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := r.URL.Query().Get("seq")
	if raw == "" {
		return 0, true
	}
	seq, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		http.Error(w, "invalid seq", http.StatusBadRequest)
		return 0, false
	}
	return seq, true
}

// Slicer applies a checkbox change of a filter slicer.
func (h *Handler) Slicer(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}

	var req api.SlicerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	dimension := chi.URLParam(r, "dimension")
	options, err := d.SetSlicer(dimension, req.Value, req.Checked)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := api.SlicerState{Dimension: dimension}
	for _, o := range options {
		state.Options = append(state.Options, api.SlicerOption{Value: o.Value, Checked: o.Checked})
	}
	query, err := filter.Encode(d.Filters(d.Board.Filters()), d.Board.View().Endpoint)
	if err == nil {
		state.Query = query.Encode()
	}
	writeJSON(w, r, state)
}

// Chart serves the current chart as SVG.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dashboard(w, r)
	if !ok {
		return
	}

	if d.Board.Charts().Current() == nil {
		http.Error(w, "no chart", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	if err := d.Board.Charts().Render(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render chart")
	}
}

func (h *Handler) writeState(w http.ResponseWriter, r *http.Request, d *dashboard.Dashboard) {
	h.writeSearchState(w, r, d, 0)
}

// writeSearchState echoes seq so the client can drop responses to terms it
// has since replaced.
func (h *Handler) writeSearchState(w http.ResponseWriter, r *http.Request, d *dashboard.Dashboard, seq uint64) {
	state := api.BoardState{Board: d.ID, Seq: seq, Search: d.Board.SearchTerm()}
	for _, row := range d.Board.Rows() {
		state.Rows = append(state.Rows, api.RowState{ID: row.ID, Open: row.Open, Visible: row.Visible})
	}
	writeJSON(w, r, state)
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}

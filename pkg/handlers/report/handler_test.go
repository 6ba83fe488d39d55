package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReportSource struct {
	mock.Mock
}

func (m *mockReportSource) Filters(ctx context.Context, brand string) (api.Filters, error) {
	args := m.Called(ctx, brand)
	return args.Get(0).(api.Filters), args.Error(1)
}

func (m *mockReportSource) WarehouseReport(ctx context.Context, brand string, query url.Values) (api.WarehouseReport, error) {
	args := m.Called(ctx, brand, query)
	return args.Get(0).(api.WarehouseReport), args.Error(1)
}

func (m *mockReportSource) ItemReport(ctx context.Context, brand string, query url.Values) (api.ItemReport, error) {
	args := m.Called(ctx, brand, query)
	return args.Get(0).(api.ItemReport), args.Error(1)
}

var testFilters = api.Filters{
	Warehouses: []string{"안경원", "면세"},
	Categories: []string{"안경테", "선글라스"},
	Years:      []string{"2023", "2024"},
	Months:     []string{"01", "02"},
}

func itemReport() api.ItemReport {
	stock := int64(2)
	return api.ItemReport{
		Months: []string{"24/01"},
		Rows: []api.ItemRow{{ID: "cat", Name: "안경테", Level: 1, Children: []api.ItemRow{
			{ID: "series", Name: "A", Level: 2, Children: []api.ItemRow{
				{ID: "item", Name: "A-01", Level: 3, Stock: &stock},
			}},
		}}},
		TopSeries: []api.SeriesQuantity{{Series: "A", Quantity: 4}},
	}
}

func setupRouter(t *testing.T, source *mockReportSource) (*chi.Mux, *dashboard.Manager) {
	t.Helper()

	boards, err := dashboard.NewManager(dashboard.Settings{Source: source})
	require.NoError(t, err)
	brands, err := config.NewBrandRegistry("")
	require.NoError(t, err)
	h, err := NewHandler(boards, brands)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/{brand}/{view}", h.Dashboard)
	r.Route("/api/boards/{board}", func(r chi.Router) {
		r.Post("/toggle", h.Toggle)
		r.Get("/search", h.Search)
		r.Post("/slicers/{dimension}", h.Slicer)
		r.Post("/series/{series}", h.SelectSeries)
		r.Get("/chart.svg", h.Chart)
	})
	return r, boards
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func boardID(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == boardCookie {
			return c.Value
		}
	}
	t.Fatal("board cookie not set")
	return ""
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) map[string]api.RowState {
	t.Helper()
	var state api.BoardState
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
	rows := make(map[string]api.RowState, len(state.Rows))
	for _, r := range state.Rows {
		rows[r.ID] = r
	}
	return rows
}

func TestHome(t *testing.T) {
	router, _ := setupRouter(t, &mockReportSource{})

	rec := serve(router, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/nine/"+dashboard.ViewWarehouse, rec.Header().Get("Location"))
}

func TestDashboard_NotFound(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		expectedBody string
	}{
		{name: "unknown brand", path: "/acme/" + dashboard.ViewWarehouse, expectedBody: "Invalid Brand\n"},
		{name: "unknown view", path: "/nine/nope", expectedBody: "404 page not found\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &mockReportSource{}
			router, _ := setupRouter(t, source)

			rec := serve(router, http.MethodGet, tt.path, "")
			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, tt.expectedBody, rec.Body.String())
			source.AssertNotCalled(t, "Filters", mock.Anything, mock.Anything)
		})
	}
}

func TestDashboard_RendersItemReport(t *testing.T) {
	source := &mockReportSource{}
	source.On("Filters", mock.Anything, "curu").Return(testFilters, nil)
	source.On("ItemReport", mock.Anything, "curu", mock.Anything).Return(itemReport(), nil)
	router, boards := setupRouter(t, source)

	rec := serve(router, http.MethodGet, "/curu/"+dashboard.ViewItem+"?category=안경테&main_year=2024", "")
	require.Equal(t, http.StatusOK, rec.Code)

	page := rec.Body.String()
	assert.Contains(t, page, `data-row-id="item"`)
	assert.Contains(t, page, `data-parent-id="series"`)
	assert.Contains(t, page, "A-01 [2]")
	assert.Contains(t, page, `id="item-search"`)
	assert.Contains(t, page, `data-series-name="A"`)
	assert.NotContains(t, page, `name="comp_year"`)

	id := boardID(t, rec)
	d, ok := boards.Get(id)
	require.True(t, ok)
	assert.Equal(t, "curu", d.Brand)
	source.AssertExpectations(t)
}

func TestDashboard_ShowsFailure(t *testing.T) {
	source := &mockReportSource{}
	source.On("Filters", mock.Anything, "nine").Return(testFilters, nil)
	source.On("WarehouseReport", mock.Anything, "nine", mock.Anything).
		Return(api.WarehouseReport{}, &statusError{})
	router, _ := setupRouter(t, source)

	rec := serve(router, http.MethodGet, "/nine/"+dashboard.ViewWarehouse, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "데이터 로드 중 오류: HTTP error! status: 500")
	assert.Contains(t, rec.Body.String(), `name="comp_year"`)
}

type statusError struct{}

func (statusError) Error() string { return "HTTP error! status: 500" }

func TestBoardEndpoints(t *testing.T) {
	source := &mockReportSource{}
	source.On("Filters", mock.Anything, "curu").Return(testFilters, nil)
	source.On("ItemReport", mock.Anything, "curu", mock.Anything).Return(itemReport(), nil)
	router, _ := setupRouter(t, source)

	rec := serve(router, http.MethodGet, "/curu/"+dashboard.ViewItem, "")
	require.Equal(t, http.StatusOK, rec.Code)
	base := "/api/boards/" + boardID(t, rec)

	t.Run("toggle opens a category", func(t *testing.T) {
		rec := serve(router, http.MethodPost, base+"/toggle", `{"row":"cat","cell":0}`)
		require.Equal(t, http.StatusOK, rec.Code)
		rows := decodeState(t, rec)
		assert.True(t, rows["cat"].Open)
		assert.True(t, rows["series"].Visible)
		assert.False(t, rows["item"].Visible)
	})

	t.Run("toggle on a leaf is ignored", func(t *testing.T) {
		rec := serve(router, http.MethodPost, base+"/toggle", `{"row":"item","cell":1}`)
		require.Equal(t, http.StatusOK, rec.Code)
		rows := decodeState(t, rec)
		assert.True(t, rows["cat"].Open)
	})

	t.Run("toggle with a bad body", func(t *testing.T) {
		rec := serve(router, http.MethodPost, base+"/toggle", `{"row":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("search reveals the match", func(t *testing.T) {
		rec := serve(router, http.MethodGet, base+"/search?q=a-0", "")
		require.Equal(t, http.StatusOK, rec.Code)
		rows := decodeState(t, rec)
		assert.True(t, rows["item"].Visible)
		assert.True(t, rows["series"].Visible)
	})

	t.Run("series selection", func(t *testing.T) {
		rec := serve(router, http.MethodPost, base+"/series/A-01", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var state api.BoardState
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
		assert.Equal(t, "A-01", state.Search)
	})

	t.Run("out of order search terms", func(t *testing.T) {
		rec := serve(router, http.MethodGet, base+"/search?q=zzz&seq=20", "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = serve(router, http.MethodGet, base+"/search?q=a-0&seq=10", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var state api.BoardState
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
		assert.Equal(t, uint64(10), state.Seq)
		assert.Equal(t, "zzz", state.Search, "the older term is dropped")
		for _, row := range state.Rows {
			if row.ID == "item" {
				assert.False(t, row.Visible)
			}
		}

		rec = serve(router, http.MethodPost, base+"/series/A-01?seq=15", "")
		require.Equal(t, http.StatusOK, rec.Code)
		state = api.BoardState{}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
		assert.Equal(t, "zzz", state.Search)

		rec = serve(router, http.MethodGet, base+"/search?q=a-0&seq=21", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, decodeState(t, rec)["item"].Visible)
	})

	t.Run("search with a bad seq", func(t *testing.T) {
		rec := serve(router, http.MethodGet, base+"/search?q=a&seq=-1", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("slicer change", func(t *testing.T) {
		rec := serve(router, http.MethodPost, base+"/slicers/category", `{"value":"안경테","checked":true}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var state api.SlicerState
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&state))
		assert.Equal(t, "category", state.Dimension)
		assert.Equal(t, []api.SlicerOption{
			{Value: "전체", Checked: false},
			{Value: "안경테", Checked: true},
			{Value: "선글라스", Checked: false},
		}, state.Options)
		assert.Contains(t, state.Query, "category=")
	})

	t.Run("unknown slicer", func(t *testing.T) {
		rec := serve(router, http.MethodPost, base+"/slicers/color", `{"value":"red","checked":true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("chart", func(t *testing.T) {
		rec := serve(router, http.MethodGet, base+"/chart.svg", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "<svg")
	})

	t.Run("unknown board", func(t *testing.T) {
		rec := serve(router, http.MethodPost, "/api/boards/missing/toggle", `{"row":"cat","cell":0}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSearch_DisabledOnWarehouseView(t *testing.T) {
	source := &mockReportSource{}
	source.On("Filters", mock.Anything, "nine").Return(testFilters, nil)
	source.On("WarehouseReport", mock.Anything, "nine", mock.Anything).Return(api.WarehouseReport{}, nil)
	router, _ := setupRouter(t, source)

	rec := serve(router, http.MethodGet, "/nine/"+dashboard.ViewWarehouse, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodGet, "/api/boards/"+boardID(t, rec)+"/search?q=x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

package terminal

import (
	"bytes"
	"context"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/services/config"
	"github.com/de-tools/sales-atlas/pkg/services/dashboard"
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
	Warehouses: []string{"안경원"},
	Categories: []string{"안경테"},
	Years:      []string{"2024"},
	Months:     []string{"01"},
}

func setupCLI(t *testing.T, source *mockReportSource) (*CLI, *bytes.Buffer) {
	t.Helper()

	boards, err := dashboard.NewManager(dashboard.Settings{Source: source})
	require.NoError(t, err)
	t.Cleanup(boards.Close)
	brands, err := config.NewBrandRegistry("")
	require.NoError(t, err)

	var out bytes.Buffer
	cli := NewCLI(Options{Boards: boards, Source: source, Brands: brands, Output: &out})
	cli.rootCmd.SetErr(&out)
	return cli, &out
}

func run(cli *CLI, args ...string) error {
	cli.rootCmd.SetArgs(args)
	return cli.Execute(context.Background())
}

func TestCLI_Filters(t *testing.T) {
	source := &mockReportSource{}
	source.On("Filters", mock.Anything, "nine").Return(testFilters, nil)
	cli, out := setupCLI(t, source)

	require.NoError(t, run(cli, "filters", "--brand", "nine"))
	assert.Contains(t, out.String(), "NINE ACCORD (nine)")
	assert.Contains(t, out.String(), "창고: 안경원")
	source.AssertExpectations(t)
}

func TestCLI_ReportWarehouse(t *testing.T) {
	source := &mockReportSource{}
	source.On("Filters", mock.Anything, "nine").Return(testFilters, nil)
	source.On("WarehouseReport", mock.Anything, "nine", mock.MatchedBy(func(q url.Values) bool {
		return q.Get("main_year") == "2024" && q.Get("warehouse") == "안경원"
	})).Return(api.WarehouseReport{
		Months: []string{"24/01"},
		Rows: []api.WarehouseRow{
			{
				Name: "안경원", IsHeader: true, Data: map[string]api.Pair{"24/01": {Net: 1500, Neg: -20}},
				Categories: []api.WarehouseRow{
					{Name: "안경테", ParentID: "안경원", Data: map[string]api.Pair{"24/01": {Net: 1500, Neg: -20}}},
				},
			},
		},
	}, nil)
	cli, out := setupCLI(t, source)

	chartPath := filepath.Join(t.TempDir(), "chart.svg")
	err := run(cli, "report", "warehouse",
		"--brand", "nine",
		"--warehouse", "안경원",
		"--main-year", "2024",
		"--open", "안경원",
		"--chart", chartPath,
	)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "- 안경원")
	assert.Contains(t, out.String(), "안경테")
	assert.Contains(t, out.String(), "1,500")
	assert.Contains(t, out.String(), "총 합계 2024")

	svg, err := os.ReadFile(chartPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
	source.AssertExpectations(t)
}

func TestCLI_ReportErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		setup    func(*mockReportSource)
		expected string
	}{
		{
			name:     "invalid brand",
			args:     []string{"report", "--brand", "acme"},
			setup:    func(*mockReportSource) {},
			expected: `invalid brand "acme"`,
		},
		{
			name: "load failure",
			args: []string{"report", "--brand", "nine"},
			setup: func(m *mockReportSource) {
				m.On("Filters", mock.Anything, "nine").Return(testFilters, nil)
				m.On("WarehouseReport", mock.Anything, "nine", mock.Anything).
					Return(api.WarehouseReport{}, assert.AnError)
			},
			expected: "데이터 로드 중 오류: " + assert.AnError.Error(),
		},
		{
			name: "search on the warehouse report",
			args: []string{"report", "warehouse", "--brand", "nine", "--search", "x"},
			setup: func(m *mockReportSource) {
				m.On("Filters", mock.Anything, "nine").Return(testFilters, nil)
				m.On("WarehouseReport", mock.Anything, "nine", mock.Anything).Return(api.WarehouseReport{}, nil)
			},
			expected: `failed to search "x"`,
		},
		{
			name: "open a leaf row",
			args: []string{"report", "item", "--brand", "curu", "--open", "item"},
			setup: func(m *mockReportSource) {
				m.On("Filters", mock.Anything, "curu").Return(testFilters, nil)
				m.On("ItemReport", mock.Anything, "curu", mock.Anything).Return(api.ItemReport{
					Rows: []api.ItemRow{{ID: "item", Name: "A-01", Level: 3}},
				}, nil)
			},
			expected: `row "item" cannot be opened`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := &mockReportSource{}
			tt.setup(source)
			cli, _ := setupCLI(t, source)

			err := run(cli, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestCLI_ReportItemSearch(t *testing.T) {
	source := &mockReportSource{}
	source.On("Filters", mock.Anything, "curu").Return(testFilters, nil)
	source.On("ItemReport", mock.Anything, "curu", mock.Anything).Return(api.ItemReport{
		Months: []string{"24/01"},
		Rows: []api.ItemRow{{ID: "cat", Name: "안경테", Level: 1, Children: []api.ItemRow{
			{ID: "series", Name: "클래식", Level: 2, Children: []api.ItemRow{
				{ID: "item1", Name: "CL-01", Level: 3},
				{ID: "item2", Name: "CL-02", Level: 3},
			}},
		}}},
		TopSeries: []api.SeriesQuantity{{Series: "클래식", Quantity: 12}},
	}, nil)
	cli, out := setupCLI(t, source)

	require.NoError(t, run(cli, "report", "item", "--brand", "curu", "--search", "cl-02"))

	assert.Contains(t, out.String(), "CL-02")
	assert.NotContains(t, out.String(), "CL-01")
	assert.Contains(t, out.String(), " 1. 클래식 12")
}

package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

// ReportSource is the remote reporting API.
type ReportSource interface {
	Filters(ctx context.Context, brand string) (api.Filters, error)
	WarehouseReport(ctx context.Context, brand string, query url.Values) (api.WarehouseReport, error)
	ItemReport(ctx context.Context, brand string, query url.Values) (api.ItemReport, error)
}

type Settings struct {
	BaseURL string
	Timeout time.Duration
	// Cookie is forwarded verbatim, for deployments that sit behind a login.
	Cookie string
}

type ReportClient struct {
	baseURL *url.URL
	cookie  string
	http    *http.Client
}

func NewReportClient(settings Settings) (*ReportClient, error) {
	if settings.BaseURL == "" {
		return nil, fmt.Errorf("base url is empty")
	}

	base, err := url.Parse(strings.TrimRight(settings.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", settings.BaseURL, err)
	}

	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &ReportClient{
		baseURL: base,
		cookie:  settings.Cookie,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

func (c *ReportClient) Filters(ctx context.Context, brand string) (api.Filters, error) {
	var filters api.Filters
	if err := c.get(ctx, c.endpoint(brand, "filters"), nil, &filters); err != nil {
		return api.Filters{}, err
	}
	return filters, nil
}

func (c *ReportClient) WarehouseReport(ctx context.Context, brand string, query url.Values) (api.WarehouseReport, error) {
	var report api.WarehouseReport
	if err := c.get(ctx, c.endpoint(brand, "data"), query, &report); err != nil {
		return api.WarehouseReport{}, err
	}
	if report.Error != "" {
		return api.WarehouseReport{}, &APIError{Message: report.Error}
	}
	return report, nil
}

func (c *ReportClient) ItemReport(ctx context.Context, brand string, query url.Values) (api.ItemReport, error) {
	var report api.ItemReport
	if err := c.get(ctx, c.endpoint(brand, "data", "item"), query, &report); err != nil {
		return api.ItemReport{}, err
	}
	if report.Error != "" {
		return api.ItemReport{}, &APIError{Message: report.Error}
	}
	return report, nil
}

func (c *ReportClient) endpoint(brand string, parts ...string) *url.URL {
	segments := append([]string{"api", url.PathEscape(brand)}, parts...)
	return c.baseURL.JoinPath(segments...)
}

func (c *ReportClient) get(ctx context.Context, endpoint *url.URL, query url.Values, out any) error {
	logger := zerolog.Ctx(ctx)

	u := *endpoint
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	logger.Debug().Str("url", u.String()).Msg("requesting report api")
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warn().Err(err).Str("url", u.String()).Msg("report api request failed")
		return &TransportError{URL: u.String(), Err: err}
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{URL: u.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody api.ErrorBody
		_ = json.Unmarshal(body, &errBody)
		detail := errBody.Message
		if detail == "" {
			detail = errBody.Error
		}
		logger.Warn().Int("status", resp.StatusCode).Str("detail", detail).Msg("report api returned an error status")
		return &StatusError{Code: resp.StatusCode, Detail: detail}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response from %s: %w", endpoint.Path, err)
	}
	return nil
}

package dataspace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/enershare/ewhflex/internal/domain/model"
)

// Client exposes operations to query the dataspace connector.
type Client interface {
	Metadata(ctx context.Context, identifier string) (*model.Metadata, error)
	Measurements(ctx context.Context, identifier string) (model.MeasurementSeries, error)
	Tariffs(ctx context.Context, identifier string) (model.TariffSchedule, error)
}

// HTTPClient implements Client via the connector's REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

type metadataResponse struct {
	Identifier    string `json:"identifier"`
	DataAvailable bool   `json:"data_available"`
}

type measurementsResponse struct {
	Measurements []struct {
		Timestamp time.Time `json:"timestamp"`
		LoadW     float64   `json:"load_w"`
	} `json:"measurements"`
}

type tariffsResponse struct {
	Tariffs []struct {
		Timestamp   time.Time `json:"timestamp"`
		PricePerKWh float64   `json:"price_per_kwh"`
	} `json:"tariffs"`
}

// NewHTTPClient creates HTTP dataspace client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse dataspace url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("dataspace url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Metadata queries user registration state.
func (c *HTTPClient) Metadata(ctx context.Context, identifier string) (*model.Metadata, error) {
	body, err := c.get(ctx, "/api/metadata", identifier)
	if err != nil {
		return nil, err
	}
	var data metadataResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	if data.Identifier == "" {
		data.Identifier = identifier
	}
	return &model.Metadata{Identifier: data.Identifier, DataAvailable: data.DataAvailable}, nil
}

// Measurements fetches the user's EWH load diagram.
func (c *HTTPClient) Measurements(ctx context.Context, identifier string) (model.MeasurementSeries, error) {
	body, err := c.get(ctx, "/api/measurements", identifier)
	if err != nil {
		return nil, err
	}
	var data measurementsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	series := make(model.MeasurementSeries, 0, len(data.Measurements))
	for _, m := range data.Measurements {
		series = append(series, model.MeasurementPoint{Timestamp: m.Timestamp, LoadW: m.LoadW})
	}
	return series, nil
}

// Tariffs fetches the electricity pricing profile for the user.
func (c *HTTPClient) Tariffs(ctx context.Context, identifier string) (model.TariffSchedule, error) {
	body, err := c.get(ctx, "/api/tariffs", identifier)
	if err != nil {
		return nil, err
	}
	var data tariffsResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, err
	}
	schedule := make(model.TariffSchedule, 0, len(data.Tariffs))
	for _, p := range data.Tariffs {
		schedule = append(schedule, model.TariffPoint{Timestamp: p.Timestamp, PricePerKWh: p.PricePerKWh})
	}
	return schedule, nil
}

func (c *HTTPClient) get(ctx context.Context, endpoint, identifier string) ([]byte, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)
	query := target.Query()
	query.Set("identifier", identifier)
	target.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("dataspace request failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("dataspace error: %s", resp.Status)
	}
}

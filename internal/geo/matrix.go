package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ErrNoRoute is returned when the provider finds no route between the points.
var ErrNoRoute = errors.New("no route between points")

// MatrixClient queries an HTTP distance-matrix API of the form
// GET {baseURL}?origins=lat,lng&destinations=lat,lng&api_key=KEY
// answering {"rows":[{"elements":[{"distance":<meters>,"status":"OK"}]}]}.
type MatrixClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	timeout time.Duration
}

// NewMatrixClient creates a MatrixClient. Each request is bounded by timeout.
func NewMatrixClient(baseURL, apiKey string, timeout time.Duration) *MatrixClient {
	return &MatrixClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
		timeout: timeout,
	}
}

type matrixResponse struct {
	Rows []struct {
		Elements []struct {
			Distance float64 `json:"distance"`
			Status   string  `json:"status"`
		} `json:"elements"`
	} `json:"rows"`
}

// Distance returns the road distance between from and to in meters.
func (m *MatrixClient) Distance(ctx context.Context, from, to Point) (float64, error) {
	if err := from.Validate(); err != nil {
		return 0, err
	}
	if err := to.Validate(); err != nil {
		return 0, err
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	q := url.Values{}
	q.Set("origins", formatPoint(from))
	q.Set("destinations", formatPoint(to))
	if m.apiKey != "" {
		q.Set("api_key", m.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("build distance request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("distance request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, fmt.Errorf("distance provider returned %d", resp.StatusCode)
	}

	var body matrixResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode distance response: %w", err)
	}
	if len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return 0, fmt.Errorf("distance response has no elements")
	}
	el := body.Rows[0].Elements[0]
	if el.Status != "" && el.Status != "OK" {
		return 0, fmt.Errorf("%w: %s", ErrNoRoute, el.Status)
	}
	if el.Distance < 0 {
		return 0, fmt.Errorf("distance provider returned a negative distance")
	}
	return el.Distance, nil
}

func formatPoint(p Point) string {
	return strconv.FormatFloat(p.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lng, 'f', 6, 64)
}

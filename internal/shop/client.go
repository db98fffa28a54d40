package shop

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/merchly/order-lookup/internal/domain"
	"github.com/merchly/order-lookup/internal/observability"
)

// Client issues authenticated calls to the upstream order-management API.
// Two mechanisms: a paginated flat order listing (continuation token in the
// Link response header) and a typed graph query endpoint. No retries here;
// every error surfaces as *domain.UpstreamError.
type Client struct {
	httpc   *http.Client
	baseURL string
	token   string
	logger  *zap.Logger
	metrics observability.Metrics
}

func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger, metrics observability.Metrics) *Client {
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Client{
		httpc:   &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		logger:  logger,
		metrics: metrics,
	}
}

// FetchOrdersPage fetches one page of the flat order listing. The second
// return value is the server-provided continuation token, "" on the last
// page.
func (c *Client) FetchOrdersPage(ctx context.Context, query url.Values) ([]RESTOrder, string, error) {
	const op = "orders_page"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/orders.json?"+query.Encode(), nil)
	if err != nil {
		return nil, "", &domain.UpstreamError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(op, sinceMs(start), false)
		return nil, "", &domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		c.metrics.ObserveUpstream(op, sinceMs(start), false)
		c.logger.Warn("orders page fetch failed",
			zap.Int("status", resp.StatusCode),
		)
		return nil, "", &domain.UpstreamError{Op: op, Status: resp.StatusCode}
	}

	var page ordersPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		c.metrics.ObserveUpstream(op, sinceMs(start), false)
		return nil, "", &domain.UpstreamError{Op: op, Err: err}
	}
	c.metrics.ObserveUpstream(op, sinceMs(start), true)

	return page.Orders, nextPageToken(resp.Header), nil
}

type graphRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// RunGraphQuery posts a parametrized query to the graph endpoint and
// decodes the data payload into out.
func (c *Client) RunGraphQuery(ctx context.Context, query string, vars map[string]any, out any) error {
	const op = "graph_query"

	body, err := json.Marshal(graphRequest{Query: query, Variables: vars})
	if err != nil {
		return &domain.UpstreamError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/graphql.json", bytes.NewReader(body))
	if err != nil {
		return &domain.UpstreamError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		c.metrics.ObserveUpstream(op, sinceMs(start), false)
		return &domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		c.metrics.ObserveUpstream(op, sinceMs(start), false)
		c.logger.Warn("graph query failed",
			zap.Int("status", resp.StatusCode),
		)
		return &domain.UpstreamError{Op: op, Status: resp.StatusCode}
	}

	var env graphEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.metrics.ObserveUpstream(op, sinceMs(start), false)
		return &domain.UpstreamError{Op: op, Err: err}
	}
	if len(env.Errors) > 0 {
		c.metrics.ObserveUpstream(op, sinceMs(start), false)
		return &domain.UpstreamError{Op: op, Err: errGraph(env.Errors[0].Message)}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		c.metrics.ObserveUpstream(op, sinceMs(start), false)
		return &domain.UpstreamError{Op: op, Err: err}
	}
	c.metrics.ObserveUpstream(op, sinceMs(start), true)
	return nil
}

type errGraph string

func (e errGraph) Error() string { return "graph error: " + string(e) }

// nextPageToken extracts the continuation token from a Link-style header,
// e.g. <https://host/orders.json?page_info=abc&limit=250>; rel="next".
func nextPageToken(h http.Header) string {
	for _, link := range h.Values("Link") {
		for _, part := range strings.Split(link, ",") {
			if !strings.Contains(part, `rel="next"`) {
				continue
			}
			lo := strings.Index(part, "<")
			hi := strings.Index(part, ">")
			if lo < 0 || hi <= lo {
				continue
			}
			u, err := url.Parse(strings.TrimSpace(part[lo+1 : hi]))
			if err != nil {
				continue
			}
			if token := u.Query().Get("page_info"); token != "" {
				return token
			}
		}
	}
	return ""
}

func sinceMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}

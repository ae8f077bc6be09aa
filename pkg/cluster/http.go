package cluster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/armadakv/console-sub000/pkg/log"
	"github.com/armadakv/console-sub000/pkg/models"
)

const maxErrorBodyBytes = 1024

// Config holds the settings for the cluster HTTP client.
type Config struct {
	// Address is the seed node the console connects to, e.g.
	// "http://node-0:8220". Topology, table and key-value requests go here;
	// per-node status requests go to member addresses instead.
	Address        string
	RetryMax       int
	RetryWaitMin   time.Duration
	RetryWaitMax   time.Duration
	RequestTimeout time.Duration
}

// httpClient talks JSON over HTTP to the cluster's node REST API
// (/v1/cluster, /v1/status, /v1/tables, /v1/kv).
type httpClient struct {
	baseURL string
	client  *retryablehttp.Client
}

// Connect builds a cluster client and verifies the target is reachable by
// querying its topology. An unreachable target yields ErrConnection; nothing
// is cached, so the caller may retry.
func Connect(ctx context.Context, cfg Config) (Client, error) {
	c := newHTTPClient(cfg)
	if _, err := c.GetTopology(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return c, nil
}

func newHTTPClient(cfg Config) *httpClient {
	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = cfg.RetryWaitMin
	client.RetryWaitMax = cfg.RetryWaitMax
	client.HTTPClient.Timeout = cfg.RequestTimeout
	client.Logger = nil // Disable retryablehttp logging
	// Only retry on connection/timeout errors so node error responses are
	// mapped instead of retried.
	client.CheckRetry = connectionRetryPolicy

	return &httpClient{
		baseURL: normalizeAddress(cfg.Address),
		client:  client,
	}
}

// connectionRetryPolicy retries only when no response was received at all.
// HTTP-level errors (404, 409, 500) carry meaning for the caller and must be
// surfaced, not retried.
func connectionRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if resp != nil {
		return false, nil
	}
	if err != nil {
		return true, nil //nolint:nilerr // retryablehttp reports the final error itself
	}
	return false, nil
}

// normalizeAddress ensures the address carries a scheme. Cluster members
// advertise bare host:port pairs.
func normalizeAddress(address string) string {
	if strings.HasPrefix(address, "http://") || strings.HasPrefix(address, "https://") {
		return strings.TrimSuffix(address, "/")
	}
	return "http://" + strings.TrimSuffix(address, "/")
}

func (c *httpClient) ListMembers(ctx context.Context) ([]models.Member, error) {
	info, err := c.GetTopology(ctx)
	if err != nil {
		return nil, err
	}
	return info.Members, nil
}

func (c *httpClient) GetTopology(ctx context.Context) (*models.ClusterInfo, error) {
	var info models.ClusterInfo
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/v1/cluster", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *httpClient) GetStatus(ctx context.Context, address string) (*models.NodeStatus, error) {
	if address == "" {
		return nil, fmt.Errorf("%w: member has no reachable address", ErrUpstream)
	}
	var status models.NodeStatus
	if err := c.doJSON(ctx, http.MethodGet, normalizeAddress(address)+"/v1/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *httpClient) ListTables(ctx context.Context) ([]models.Table, error) {
	var resp models.TableListResponse
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/v1/tables", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tables, nil
}

func (c *httpClient) CreateTable(ctx context.Context, name string) (*models.Table, error) {
	var table models.Table
	payload := map[string]string{"name": name}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/v1/tables", payload, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func (c *httpClient) DeleteTable(ctx context.Context, name string) error {
	return c.doJSON(ctx, http.MethodDelete, c.baseURL+"/v1/tables/"+url.PathEscape(name), nil, nil)
}

func (c *httpClient) ScanKeys(ctx context.Context, table string, query ScanQuery) ([]models.KeyValueEntry, error) {
	params := url.Values{}
	if query.Prefix != "" {
		params.Set("prefix", query.Prefix)
	}
	if query.Start != "" || query.End != "" {
		params.Set("start", query.Start)
		params.Set("end", query.End)
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}

	scanURL := c.baseURL + "/v1/kv/" + url.PathEscape(table)
	if len(params) > 0 {
		scanURL += "?" + params.Encode()
	}

	var resp models.KeyValueListResponse
	if err := c.doJSON(ctx, http.MethodGet, scanURL, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

func (c *httpClient) GetKey(ctx context.Context, table, key string) (*models.KeyValueEntry, error) {
	var entry models.KeyValueEntry
	keyURL := c.baseURL + "/v1/kv/" + url.PathEscape(table) + "/" + url.PathEscape(key)
	if err := c.doJSON(ctx, http.MethodGet, keyURL, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *httpClient) PutKey(ctx context.Context, table, key, value string) error {
	payload := models.KeyValueEntry{Key: key, Value: value}
	return c.doJSON(ctx, http.MethodPut, c.baseURL+"/v1/kv/"+url.PathEscape(table), payload, nil)
}

func (c *httpClient) DeleteKey(ctx context.Context, table, key string) error {
	keyURL := c.baseURL + "/v1/kv/" + url.PathEscape(table) + "/" + url.PathEscape(key)
	return c.doJSON(ctx, http.MethodDelete, keyURL, nil, nil)
}

func (c *httpClient) Close() error {
	c.client.HTTPClient.CloseIdleConnections()
	return nil
}

// doJSON performs one request and decodes a JSON response into out when out
// is non-nil. Node error statuses are mapped onto the package error taxonomy.
func (c *httpClient) doJSON(ctx context.Context, method, rawURL string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrUpstream, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// Keep the cause in the chain so callers can detect deadline errors.
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("url", rawURL).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
		}
		return nil
	}

	remote := remoteErrorMessage(resp.Body)
	switch resp.StatusCode {
	case http.StatusNotFound:
		if remote == "" {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %s", ErrNotFound, remote)
	case http.StatusConflict:
		if remote == "" {
			return ErrAlreadyExists
		}
		return fmt.Errorf("%w: %s", ErrAlreadyExists, remote)
	default:
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, remote)
	}
}

// remoteErrorMessage extracts the message from a node error body, which is
// `{"error": string}` on well-behaved nodes and arbitrary text otherwise.
func remoteErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Error != "" {
		return parsed.Error
	}
	return strings.TrimSpace(string(raw))
}

package testrail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
)

const apiPath = "index.php?/api/v2/"

// Client ...
type Client interface {
	AddRun(ctx context.Context, projectID int, req AddRunRequest) (Run, error)
	UpdateRun(ctx context.Context, runID int, req UpdateRunRequest) (Run, error)
	AddResultsForCases(ctx context.Context, runID int, req AddResultsRequest) error
	AddResultForCase(ctx context.Context, runID, caseID int, req AddResultRequest) error
}

// ClientConfig ...
type ClientConfig struct {
	Host     string
	Username string
	APIKey   string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// APIError is returned for non-2xx responses.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("TestRail %s responded with status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

type client struct {
	baseURL    string
	username   string
	apiKey     string
	httpClient *http.Client
	logger     log.Logger
}

// NewClient ...
func NewClient(cfg ClientConfig, logger log.Logger) Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.Host
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &client{
		baseURL:    baseURL,
		username:   cfg.Username,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *client) AddRun(ctx context.Context, projectID int, req AddRunRequest) (Run, error) {
	var run Run
	if err := c.post(ctx, fmt.Sprintf("add_run/%d", projectID), req, &run); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (c *client) UpdateRun(ctx context.Context, runID int, req UpdateRunRequest) (Run, error) {
	var run Run
	if err := c.post(ctx, fmt.Sprintf("update_run/%d", runID), req, &run); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (c *client) AddResultsForCases(ctx context.Context, runID int, req AddResultsRequest) error {
	return c.post(ctx, fmt.Sprintf("add_results_for_cases/%d", runID), req, nil)
}

func (c *client) AddResultForCase(ctx context.Context, runID, caseID int, req AddResultRequest) error {
	return c.post(ctx, fmt.Sprintf("add_result_for_case/%d/%d", runID, caseID), req, nil)
}

func (c *client) post(ctx context.Context, endpoint string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", endpoint, err)
	}

	url := c.baseURL + apiPath + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", endpoint, err)
	}
	req.SetBasicAuth(c.username, c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debugf("POST %s", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warnf("Failed to close response body: %s", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(respBody),
		}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// errorMessage prefers the "error" field TestRail puts in failure bodies.
func errorMessage(body []byte) string {
	var apiErr struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return apiErr.Error
	}
	return strings.TrimSpace(string(body))
}

package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// TestContext holds the HTTP client and the last response of a scenario.
type TestContext struct {
	BaseURL    string
	HTTPClient *http.Client

	LastStatus  int
	LastHeaders http.Header
	LastBody    []byte
}

// NewTestContext targets E2E_BASE_URL, or a local server.
func NewTestContext() *TestContext {
	base := os.Getenv("E2E_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	return &TestContext{
		BaseURL:    strings.TrimRight(base, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Reset clears the response between scenarios.
func (tc *TestContext) Reset() {
	tc.LastStatus = 0
	tc.LastHeaders = nil
	tc.LastBody = nil
}

// GET issues a request and records the response.
func (tc *TestContext) GET(path string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, tc.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := tc.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	tc.LastStatus = resp.StatusCode
	tc.LastHeaders = resp.Header
	tc.LastBody = body
	return nil
}

// GetLastStatusCode returns the status of the last response.
func (tc *TestContext) GetLastStatusCode() int {
	return tc.LastStatus
}

// GetLastHeader returns a header of the last response.
func (tc *TestContext) GetLastHeader(name string) string {
	return tc.LastHeaders.Get(name)
}

// GetResponseField walks a dotted path such as "relations.0.property"
// through the last JSON body. Numeric segments index arrays.
func (tc *TestContext) GetResponseField(path string) (any, error) {
	var doc any
	if err := json.Unmarshal(tc.LastBody, &doc); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	if path == "" || path == "." {
		return doc, nil
	}
	current := doc
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			v, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in response", path)
			}
			current = v
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil, fmt.Errorf("index %q out of range in %q", segment, path)
			}
			current = node[i]
		default:
			return nil, fmt.Errorf("cannot descend into %q", path)
		}
	}
	return current, nil
}

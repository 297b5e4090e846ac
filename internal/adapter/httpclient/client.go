// Package httpclient holds the remote-mode clients for the stock and
// product services. Remote error bodies are mapped back onto the
// domain taxonomy so use cases never see transport details.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// errorBody mirrors the error envelope both services emit.
type errorBody struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	ProductID *int64 `json:"productId,omitempty"`
	Available *int   `json:"available,omitempty"`
	Requested *int   `json:"requested,omitempty"`
}

type caller struct {
	base   string
	client *http.Client
}

func newCaller(baseURL string, timeout time.Duration) caller {
	return caller{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// do issues the request and decodes a 2xx body into out (when out is
// non-nil). Non-2xx responses are returned as (status, decoded body).
func (c caller) do(ctx context.Context, method, path string, body, out any) (int, errorBody, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, errorBody{}, err
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return 0, errorBody{}, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, errorBody{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		if eb.Message == "" {
			eb.Message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return resp.StatusCode, eb, nil
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, errorBody{}, err
		}
	}
	return resp.StatusCode, errorBody{}, nil
}

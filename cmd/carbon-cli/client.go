package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// apiResponse mirrors the node's APIResponse envelope (api.go). Duplicated
// here rather than imported: cmd/carbon-cli talks to the node over HTTP
// only, the same boundary a third-party client would use.
type apiResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

func postJSON(url string, body interface{}) (*apiResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeAPIResponse(resp.Body)
}

func getJSON(url string) (*apiResponse, error) {
	resp, err := httpClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return decodeAPIResponse(resp.Body)
}

func decodeAPIResponse(r io.Reader) (*apiResponse, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var out apiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("invalid response: %s", string(raw))
	}
	return &out, nil
}

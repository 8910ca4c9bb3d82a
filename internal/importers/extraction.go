// Package importers turns externally-parsed hardware lists into stations on
// the canvas. The binary PDF/image parsing lives in the extraction service;
// this side only forwards raw text and reconciles the structured result.
package importers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"quotebuilder/internal/config"
)

// ExtractedItem is one hardware line item parsed by the extraction service.
type ExtractedItem struct {
	ProductName       string   `json:"productName"`
	Quantity          int      `json:"quantity"`
	MappedHardwareIDs []string `json:"mappedHardwareIds"`
	Confidence        float64  `json:"confidence"`
}

// FileInput is the client-side text extraction of one uploaded file.
type FileInput struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}

// FileResult is the per-file outcome of a multi-file import.
type FileResult struct {
	Filename string          `json:"filename"`
	Items    []ExtractedItem `json:"items"`
	Error    string          `json:"error,omitempty"`
}

// ExtractionClient calls the text-extraction service.
type ExtractionClient struct {
	url    string
	apiKey string
	http   *http.Client
}

// NewExtractionClient builds a client from configuration. apiKey is the
// shared service credential from the OS credential manager.
func NewExtractionClient(cfg *config.Config, apiKey string) *ExtractionClient {
	return &ExtractionClient{
		url:    cfg.ExtractionURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: time.Duration(cfg.RequestTimeout) * time.Second},
	}
}

// Extract submits one file's text and returns the parsed item list. A
// response with zero items is an import content failure.
func (c *ExtractionClient) Extract(ctx context.Context, in FileInput) ([]ExtractedItem, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("extraction service returned %d: %s", resp.StatusCode, msg)
	}

	var out struct {
		Items []ExtractedItem `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("no hardware items found in %s", in.Filename)
	}
	return out.Items, nil
}

// Extractor is the boundary ImportFiles depends on; ExtractionClient
// implements it.
type Extractor interface {
	Extract(ctx context.Context, in FileInput) ([]ExtractedItem, error)
}

// ImportFiles processes files one at a time, accumulating per-file results.
// A single file's failure is recorded in its result and does not discard
// prior successes or stop the remaining files. In-flight cancellation is
// not supported beyond the passed context.
func ImportFiles(ctx context.Context, ex Extractor, files []FileInput) []FileResult {
	results := make([]FileResult, 0, len(files))
	for _, f := range files {
		r := FileResult{Filename: f.Filename}
		items, err := ex.Extract(ctx, f)
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Items = items
		}
		results = append(results, r)
	}
	return results
}

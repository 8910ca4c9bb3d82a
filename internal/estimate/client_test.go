package estimate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotebuilder/internal/config"
	"quotebuilder/internal/plan"
)

func testConfig(url string) *config.Config {
	return &config.Config{PricingURL: url, RequestTimeout: 5}
}

func TestClient_Calculate(t *testing.T) {
	var gotAuth string
	var gotReq Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Response{
			Items: []Item{{Type: "hardware", Label: "POS Terminal", Cost: 1200}},
			Summary: ResponseSummary{
				HardwareCost: 1200,
				TotalFirst:   1500,
			},
			TimeEstimate: TimeEstimate{MinHours: 4, MaxHours: 6},
		})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), "secret-key")
	loc := plan.NewLocation("Harbor Grill")
	loc.IntegrationIDs = []string{"int-toast"}
	req := BuildRequest(loc, 0.10, PeriodMonthly)

	resp, err := c.Calculate(context.Background(), req)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if gotAuth != "Bearer secret-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if len(gotReq.Floors) != 1 || gotReq.SupportTier != 0.10 {
		t.Errorf("request not round-tripped: %+v", gotReq)
	}
	if len(gotReq.IntegrationIDs) != 1 || gotReq.IntegrationIDs[0] != "int-toast" {
		t.Errorf("integration ids = %v", gotReq.IntegrationIDs)
	}
	if resp.Summary.TotalFirst != 1500 {
		t.Errorf("totalFirst = %v, want 1500", resp.Summary.TotalFirst)
	}
	if len(resp.Items) != 1 || resp.Items[0].Label != "POS Terminal" {
		t.Errorf("items = %+v", resp.Items)
	}
}

func TestClient_Calculate_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "tier unknown", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), "")
	_, err := c.Calculate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected an error on non-200")
	}
}

func TestClient_NoKeyOmitsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Response{})
	}))
	defer srv.Close()

	c := NewClient(testConfig(srv.URL), "")
	if _, err := c.Calculate(context.Background(), Request{}); err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("auth header should be absent, got %q", gotAuth)
	}
}

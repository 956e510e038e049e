package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/donaldgifford/rocketsource-go/pkg/logger"
	"github.com/donaldgifford/rocketsource-go/pkg/rocketsource"
	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

const testKey = "mock-key"

func loadTestFixtures(t *testing.T) *fixtures {
	t.Helper()
	fx, err := loadFixtures("testdata")
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	return fx
}

// newTestClient starts the mock server and returns a client for it.
func newTestClient(t *testing.T, key string) (*rocketsource.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(newServer(logger.Discard(), loadTestFixtures(t), testKey))
	t.Cleanup(srv.Close)
	return rocketsource.New(rocketsource.WithBaseURL(srv.URL), rocketsource.WithAPIKey(key)), srv
}

func TestLoadFixtures(t *testing.T) {
	fx := loadTestFixtures(t)
	if len(fx.Scans) != 9 {
		t.Fatalf("scans=%d, want 9", len(fx.Scans))
	}
	if fx.Results.Count != len(fx.Results.Data) {
		t.Errorf("results count=%d, want %d", fx.Results.Count, len(fx.Results.Data))
	}
	if len(fx.Convert) == 0 || len(fx.AsinConvert) == 0 || len(fx.Eligibility) == 0 {
		t.Error("expected every fixture to be non-empty")
	}
}

func TestLoadFixtures_MissingDir(t *testing.T) {
	if _, err := loadFixtures(t.TempDir()); err == nil {
		t.Fatal("expected error for missing fixtures")
	}
}

func TestListScans(t *testing.T) {
	c, _ := newTestClient(t, testKey)

	page, err := c.Scans.List(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("listing scans: %v", err)
	}
	if len(page.Data) != 9 || page.Total != 9 {
		t.Errorf("data=%d total=%d, want 9 and 9", len(page.Data), page.Total)
	}

	page, err = c.Scans.List(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("listing page 2: %v", err)
	}
	if len(page.Data) != 4 || page.Data[0].ID != 6 {
		t.Errorf("page 2 has %d scans starting at %d, want 4 starting at 6", len(page.Data), page.Data[0].ID)
	}
}

func TestListScans_PageBeyondEnd(t *testing.T) {
	_, srv := newTestClient(t, testKey)

	for _, page := range []string{"3", "9223372036854775807"} {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v3/scans?perPage=100&page="+page, http.NoBody)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+testKey)

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("page %s: %v", page, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("page %s: status=%d body=%s", page, resp.StatusCode, body)
		}
		if !strings.Contains(string(body), `"data":[]`) || !strings.Contains(string(body), `"total":9`) {
			t.Errorf("page %s: body=%s, want empty data and total 9", page, body)
		}
	}
}

func TestGetScan_NotFound(t *testing.T) {
	c, _ := newTestClient(t, testKey)

	_, err := c.Scans.Get(context.Background(), 999)
	if !errors.Is(err, rocketsource.ErrNotFound) {
		t.Fatalf("err=%v, want not found", err)
	}
	e, _ := rocketsource.AsError(err)
	if e.StatusCode != http.StatusNotFound || e.Message != "Scan not found" {
		t.Errorf("status=%d message=%q", e.StatusCode, e.Message)
	}
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{name: "missing key", key: ""},
		{name: "wrong key", key: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.key)
			_, err := c.Scans.List(context.Background(), 1, 10)
			if !errors.Is(err, rocketsource.ErrAuthentication) {
				t.Fatalf("err=%v, want authentication error", err)
			}
		})
	}
}

func TestUploadAndCancel(t *testing.T) {
	c, _ := newTestClient(t, testKey)
	ctx := context.Background()

	up, err := c.Scans.Upload(ctx, &rocketsource.ScanUploadRequest{
		Marketplace: domain.MarketplaceUS,
		File:        strings.NewReader("upc\n012345678905\n"),
		FileName:    "inventory.csv",
	})
	if err != nil {
		t.Fatalf("uploading: %v", err)
	}
	if up.ID != 10 || up.Name != "inventory.csv" || up.Status != domain.ScanInProgress {
		t.Fatalf("unexpected upload response %+v", up)
	}

	sc, err := c.Scans.Cancel(ctx, up.ID)
	if err != nil {
		t.Fatalf("cancelling: %v", err)
	}
	if sc.Status != domain.ScanCancelled {
		t.Errorf("status=%s, want Cancelled", sc.Status)
	}

	page, err := c.Scans.List(ctx, 1, 100)
	if err != nil {
		t.Fatalf("listing: %v", err)
	}
	if page.Total != 10 {
		t.Errorf("total=%d, want 10", page.Total)
	}
}

func TestUpload_InvalidMarketplace(t *testing.T) {
	c, _ := newTestClient(t, testKey)

	_, err := c.Scans.Upload(context.Background(), &rocketsource.ScanUploadRequest{
		Marketplace: "XX",
		File:        strings.NewReader("upc\n"),
	})
	e, ok := rocketsource.AsError(err)
	if !ok || e.Kind != rocketsource.KindValidation {
		t.Fatalf("err=%v, want validation error", err)
	}
	if len(e.FieldErrors["marketplace"]) != 1 {
		t.Errorf("field errors=%v", e.FieldErrors)
	}
}

func TestConvert(t *testing.T) {
	c, _ := newTestClient(t, testKey)

	got, err := c.Convert.ConvertUPCs(context.Background(), domain.MarketplaceUS,
		[]string{"012345678905", "000000000000"})
	if err != nil {
		t.Fatalf("converting: %v", err)
	}
	if len(got["012345678905"]) != 1 || got["012345678905"][0] != "B00TEST001" {
		t.Errorf("012345678905 -> %v", got["012345678905"])
	}
	if asins, ok := got["000000000000"]; !ok || len(asins) != 0 {
		t.Errorf("unknown id -> %v (present=%v), want empty list", asins, ok)
	}
}

func TestConvert_EmptyIDs(t *testing.T) {
	c, _ := newTestClient(t, testKey)

	_, err := c.Convert.ConvertIDs(context.Background(), domain.MarketplaceUS, nil)
	e, ok := rocketsource.AsError(err)
	if !ok || e.Kind != rocketsource.KindValidation {
		t.Fatalf("err=%v, want validation error", err)
	}
	if msgs := e.FieldErrors["ids"]; len(msgs) != 1 || msgs[0] != "The ids field is required." {
		t.Errorf("field errors=%v", e.FieldErrors)
	}
}

func TestAsinConvert(t *testing.T) {
	c, _ := newTestClient(t, testKey)

	got, err := c.Convert.ConvertASINs(context.Background(), domain.MarketplaceUS, []string{"B00TEST002"})
	if err != nil {
		t.Fatalf("converting: %v", err)
	}
	if isbn := got["B00TEST002"].ISBN; len(isbn) != 1 || isbn[0] != "9780306406157" {
		t.Errorf("isbn=%v", isbn)
	}
}

func TestEligibility(t *testing.T) {
	c, _ := newTestClient(t, testKey)

	got, err := c.Eligibility.CheckInbound(context.Background(),
		[]string{"B00TEST002", "B0UNKNOWN"}, domain.MarketplaceUS)
	if err != nil {
		t.Fatalf("checking eligibility: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Eligible || got[0].Reason == "" {
		t.Errorf("B00TEST002=%+v, want ineligible with reason", got[0])
	}
	if !got[1].Eligible {
		t.Errorf("unknown ASIN should default to eligible")
	}
}

func TestExports(t *testing.T) {
	c, _ := newTestClient(t, testKey)
	ctx := context.Background()

	data, err := c.Scans.ExportCSV(ctx, 1, nil)
	if err != nil {
		t.Fatalf("csv export: %v", err)
	}
	if !strings.HasPrefix(string(data), "asin,title,brand,rank\n") {
		t.Errorf("csv=%q", data)
	}

	data, err = c.Scans.ExportXLSX(ctx, 1, nil)
	if err != nil {
		t.Fatalf("xlsx export: %v", err)
	}
	if string(data) != string(xlsxStub) {
		t.Errorf("xlsx=%v", data)
	}

	sheet, err := c.Scans.ExportGoogleSheets(ctx, 1, nil)
	if err != nil {
		t.Fatalf("sheet export: %v", err)
	}
	if !strings.HasSuffix(sheet.URL, "mock-scan-1") {
		t.Errorf("url=%s", sheet.URL)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	_, srv := newTestClient(t, testKey)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", http.NoBody)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set(requestIDHeader, "abc-123")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get(requestIDHeader); got != "abc-123" {
		t.Errorf("X-Request-ID=%q, want abc-123", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	c, srv := newTestClient(t, testKey)
	if _, err := c.Scans.Get(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "rsc_mock_requests_total") {
		t.Error("expected rsc_mock_requests_total in /metrics output")
	}
	if !strings.Contains(string(body), "rsc_client_requests_total") {
		t.Error("expected rsc_client_requests_total in /metrics output")
	}
}

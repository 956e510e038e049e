package rocketsource_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/rocketsource-go/pkg/rocketsource"
	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

func TestScans_List(t *testing.T) {
	t.Parallel()

	scans := make([]domain.Scan, 9)
	for i := range scans {
		scans[i] = domain.Scan{ID: i + 1, Status: domain.ScanSuccess}
	}

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v3/scans", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("perPage"))
		writeJSON(w, http.StatusOK, domain.PaginatedResults[domain.Scan]{
			Data:       scans,
			Total:      9,
			Pagination: domain.Pagination{Page: 1, PerPage: 10},
		})
	}, rocketsource.WithAPIKey("k"))

	page, err := c.Scans.List(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Len(t, page.Data, 9)
	assert.Equal(t, 9, page.Total)
	assert.Equal(t, 10, page.Pagination.PerPage)
}

func TestScans_ListPaging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		page        int
		perPage     int
		wantPage    string
		wantPerPage string
	}{
		{name: "clamped", page: 1, perPage: 500, wantPage: "1", wantPerPage: "100"},
		{name: "at limit", page: 2, perPage: 100, wantPage: "2", wantPerPage: "100"},
		{name: "under limit", page: 3, perPage: 10, wantPage: "3", wantPerPage: "10"},
		{name: "defaults", page: 0, perPage: 0, wantPage: "1", wantPerPage: "20"},
		{name: "page not clamped", page: 10000, perPage: 5, wantPage: "10000", wantPerPage: "5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var page, perPage string
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				page = r.URL.Query().Get("page")
				perPage = r.URL.Query().Get("perPage")
				writeJSON(w, http.StatusOK, domain.PaginatedResults[domain.Scan]{})
			})

			_, err := c.Scans.List(context.Background(), tt.page, tt.perPage)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
		})
	}
}

func TestScans_Get(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/scans/42", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":42,"name":"q3","status":"InProgress","speed":12.5,"marketplace":"UK"}`)
	})

	scan, err := c.Scans.Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, 42, scan.ID)
	assert.Equal(t, domain.ScanInProgress, scan.Status)
	assert.Equal(t, domain.MarketplaceUK, scan.Marketplace)
	assert.InDelta(t, 12.5, scan.Speed, 0)
	assert.Nil(t, scan.CreatedAt)
}

func TestScans_Results(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		req       *domain.ResultsRequest
		tableType string
		wantQuery string
		wantBody  string
	}{
		{
			name:     "nil request",
			wantBody: `{}`,
		},
		{
			name:      "table type",
			tableType: "variations",
			wantQuery: "table_type=variations",
			wantBody:  `{}`,
		},
		{
			name: "sorted page",
			req: &domain.ResultsRequest{
				Pagination: &domain.Pagination{Page: 2, PerPage: 50},
				Sorting:    &domain.Sorting{Field: "rank", Direction: domain.SortAsc},
			},
			wantBody: `{"pagination":{"page":2,"per_page":50},"sorting":{"field":"rank","direction":"asc"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/v3/scans/7", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, tt.wantBody, string(body))
				_, _ = io.WriteString(w, `{"count":1,"data":[{"id":1,"asin":"B000TEST"}],"meta":{"products":1}}`)
			})

			res, err := c.Scans.Results(context.Background(), 7, tt.req, tt.tableType)
			require.NoError(t, err)
			assert.Equal(t, 1, res.Count)
			require.Len(t, res.Data, 1)
			assert.Equal(t, "B000TEST", res.Data[0].ASIN)
			assert.Equal(t, 1, res.Meta.Products)
		})
	}
}

func TestScans_Upload(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/scans", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "US", r.FormValue("marketplace"))

		var opts map[string]any
		require.NoError(t, json.Unmarshal([]byte(r.FormValue("options")), &opts))
		assert.Equal(t, "cost", opts["cost_column"])

		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "upload.csv", fh.Filename)
		assert.Equal(t, "text/csv", fh.Header.Get("Content-Type"))
		data, _ := io.ReadAll(f)
		assert.Equal(t, "upc,cost\n012345678905,4.99\n", string(data))

		writeJSON(w, http.StatusCreated, domain.ScanUploadResponse{ID: 11, Status: domain.ScanInProgress})
	})

	resp, err := c.Scans.Upload(context.Background(), &rocketsource.ScanUploadRequest{
		Marketplace: domain.MarketplaceUS,
		File:        strings.NewReader("upc,cost\n012345678905,4.99\n"),
		Options:     domain.ScanOptions{"cost_column": "cost"},
	})
	require.NoError(t, err)
	assert.Equal(t, 11, resp.ID)
}

func TestScans_UploadPartOrder(t *testing.T) {
	t.Parallel()

	var names []string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		mr, err := r.MultipartReader()
		require.NoError(t, err)
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			names = append(names, part.FormName())
		}
		writeJSON(w, http.StatusCreated, domain.ScanUploadResponse{ID: 13})
	})

	_, err := c.Scans.Upload(context.Background(), &rocketsource.ScanUploadRequest{
		Marketplace: domain.MarketplaceUS,
		File:        strings.NewReader("upc\n1\n"),
		Options:     domain.ScanOptions{"cost_column": "cost"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"marketplace", "file", "options"}, names)
}

func TestScans_UploadNamedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "inventory.csv")
	require.NoError(t, os.WriteFile(path, []byte("upc\n1\n"), 0o600))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, fh, err := r.FormFile("file")
		require.NoError(t, err)
		assert.Equal(t, "inventory.csv", fh.Filename)
		assert.Empty(t, r.FormValue("options"))
		writeJSON(w, http.StatusCreated, domain.ScanUploadResponse{ID: 12})
	})

	_, err = c.Scans.Upload(context.Background(), &rocketsource.ScanUploadRequest{
		Marketplace: domain.MarketplaceDE,
		File:        f,
	})
	require.NoError(t, err)
}

func TestScans_UploadRequiresFile(t *testing.T) {
	t.Parallel()

	c := rocketsource.New(rocketsource.WithBaseURL("http://127.0.0.1:1"))
	_, err := c.Scans.Upload(context.Background(), &rocketsource.ScanUploadRequest{})
	require.Error(t, err)
	assert.Equal(t, rocketsource.KindGeneric, rocketsource.KindOf(err))
}

func TestScans_Actions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		call     func(*rocketsource.Client) (*domain.Scan, error)
		wantPath string
		wantBody string
	}{
		{
			name: "cancel",
			call: func(c *rocketsource.Client) (*domain.Scan, error) {
				return c.Scans.Cancel(context.Background(), 3)
			},
			wantPath: "/api/v3/scans/3/cancel",
		},
		{
			name: "rerun",
			call: func(c *rocketsource.Client) (*domain.Scan, error) {
				return c.Scans.Rerun(context.Background(), 3)
			},
			wantPath: "/api/v3/scans/3/rerun",
		},
		{
			name: "recalculate fees nil selection",
			call: func(c *rocketsource.Client) (*domain.Scan, error) {
				return c.Scans.RecalculateFees(context.Background(), 3, nil)
			},
			wantPath: "/api/v3/scans/3/fees-recalculate",
			wantBody: `{}`,
		},
		{
			name: "recalculate fees selection",
			call: func(c *rocketsource.Client) (*domain.Scan, error) {
				return c.Scans.RecalculateFees(context.Background(), 3, map[string]any{"ids": []int{1, 2}})
			},
			wantPath: "/api/v3/scans/3/fees-recalculate",
			wantBody: `{"ids":[1,2]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				body, _ := io.ReadAll(r.Body)
				if tt.wantBody == "" {
					assert.Empty(t, body)
				} else {
					assert.JSONEq(t, tt.wantBody, string(body))
				}
				writeJSON(w, http.StatusOK, domain.Scan{ID: 3, Status: domain.ScanCancelled})
			})

			scan, err := tt.call(c)
			require.NoError(t, err)
			assert.Equal(t, 3, scan.ID)
		})
	}
}

func TestScans_Export(t *testing.T) {
	t.Parallel()

	payload := []byte{0x50, 0x4b, 0x03, 0x04, 0x00, 0xff}

	tests := []struct {
		name     string
		call     func(*rocketsource.Client) ([]byte, error)
		wantPath string
	}{
		{
			name: "csv",
			call: func(c *rocketsource.Client) ([]byte, error) {
				return c.Scans.ExportCSV(context.Background(), 8, nil)
			},
			wantPath: "/api/v3/scans/8/csv",
		},
		{
			name: "xlsx",
			call: func(c *rocketsource.Client) ([]byte, error) {
				return c.Scans.ExportXLSX(context.Background(), 8, &domain.ResultsRequest{TableType: "all"})
			},
			wantPath: "/api/v3/scans/8/xlsx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, "*/*", r.Header.Get("Accept"))
				w.Header().Set("Content-Type", "application/octet-stream")
				_, _ = w.Write(payload)
			})

			data, err := tt.call(c)
			require.NoError(t, err)
			assert.Equal(t, payload, data)
		})
	}
}

func TestScans_ExportError(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"message": "export busy"})
	})

	data, err := c.Scans.ExportCSV(context.Background(), 8, nil)
	require.Error(t, err)
	assert.Nil(t, data)
	assert.ErrorIs(t, err, rocketsource.ErrServer)
}

func TestScans_ExportGoogleSheets(t *testing.T) {
	t.Parallel()

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/scans/8/gsheet", r.URL.Path)
		writeJSON(w, http.StatusOK, domain.SheetExport{URL: "https://docs.google.com/spreadsheets/d/abc"})
	})

	sheet, err := c.Scans.ExportGoogleSheets(context.Background(), 8, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc", sheet.URL)
}

package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

const maxPerPage = 100

// xlsxStub is returned for XLSX exports. It is the zip signature only; the
// client treats the payload as opaque bytes.
var xlsxStub = []byte{0x50, 0x4b, 0x03, 0x04}

// scanStore holds the mutable scan list.
type scanStore struct {
	mu     sync.Mutex
	scans  []domain.Scan
	nextID int
}

func newScanStore(seed []domain.Scan) *scanStore {
	s := &scanStore{scans: slices.Clone(seed), nextID: 1}
	for _, sc := range seed {
		s.nextID = max(s.nextID, sc.ID+1)
	}
	return s
}

func (s *scanStore) list() []domain.Scan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.scans)
}

func (s *scanStore) get(id int) (domain.Scan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.scans, func(sc domain.Scan) bool { return sc.ID == id })
	if i < 0 {
		return domain.Scan{}, false
	}
	return s.scans[i], true
}

func (s *scanStore) setStatus(id int, status domain.ScanStatus) (domain.Scan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.scans, func(sc domain.Scan) bool { return sc.ID == id })
	if i < 0 {
		return domain.Scan{}, false
	}
	now := time.Now().UTC().Format(time.RFC3339)
	s.scans[i].Status = status
	s.scans[i].UpdatedAt = &now
	return s.scans[i], true
}

func (s *scanStore) add(name string, m domain.Marketplace, lines int, opts domain.ScanOptions) domain.Scan {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC().Format(time.RFC3339)
	sc := domain.Scan{
		ID:          s.nextID,
		Marketplace: m,
		Status:      domain.ScanInProgress,
		SourceType:  domain.ScanSourceUpload,
		Name:        name,
		Lines:       lines,
		Options:     opts,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	s.nextID++
	s.scans = append(s.scans, sc)
	return sc
}

type server struct {
	fx    *fixtures
	scans *scanStore
	log   *slog.Logger
}

// newServer builds the echo instance serving every API route.
func newServer(log *slog.Logger, fx *fixtures, apiKey string) *echo.Echo {
	s := &server{fx: fx, scans: newScanStore(fx.Scans), log: log}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLog(log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v3", bearerAuth(apiKey))
	api.GET("/scans", s.listScans)
	api.POST("/scans", s.uploadScan)
	api.GET("/scans/:id", s.getScan)
	api.POST("/scans/:id", s.scanResults)
	api.POST("/scans/:id/cancel", s.setScanStatus(domain.ScanCancelled))
	api.POST("/scans/:id/rerun", s.setScanStatus(domain.ScanInProgress))
	api.POST("/scans/:id/fees-recalculate", s.setScanStatus(domain.ScanInProgress))
	api.POST("/scans/:id/csv", s.exportCSV)
	api.POST("/scans/:id/xlsx", s.exportXLSX)
	api.POST("/scans/:id/gsheet", s.exportSheet)
	api.POST("/convert", s.convert)
	api.POST("/asin-convert", s.asinConvert)
	api.GET("/inbound-eligibility", s.eligibility)

	return e
}

func (s *server) listScans(c echo.Context) error {
	page := queryInt(c, "page", 1)
	perPage := min(queryInt(c, "perPage", 20), maxPerPage)

	all := s.scans.list()
	start := len(all)
	if page-1 < (len(all)+perPage-1)/perPage {
		start = (page - 1) * perPage
	}
	end := min(start+perPage, len(all))

	return c.JSON(http.StatusOK, domain.PaginatedResults[domain.Scan]{
		Data:       all[start:end],
		Total:      len(all),
		Pagination: domain.Pagination{Page: page, PerPage: perPage},
	})
}

func (s *server) getScan(c echo.Context) error {
	sc, err := s.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sc)
}

func (s *server) uploadScan(c echo.Context) error {
	m, ok := domain.ParseMarketplace(c.FormValue("marketplace"))
	if !ok {
		return c.JSON(http.StatusBadRequest, validationBody("marketplace", "The selected marketplace is invalid."))
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, validationBody("file", "The file field is required."))
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("reading upload: %w", err)
	}

	var opts domain.ScanOptions
	if raw := c.FormValue("options"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts); err != nil {
			return c.JSON(http.StatusBadRequest, validationBody("options", "The options must be a JSON object."))
		}
	}

	sc := s.scans.add(filepath.Base(fh.Filename), m, bytes.Count(data, []byte("\n")), opts)
	s.log.Info("scan uploaded", "id", sc.ID, "name", sc.Name, "lines", sc.Lines)

	return c.JSON(http.StatusCreated, domain.ScanUploadResponse{
		ID:          sc.ID,
		Marketplace: sc.Marketplace,
		Status:      sc.Status,
		Name:        sc.Name,
		CreatedAt:   *sc.CreatedAt,
	})
}

func (s *server) scanResults(c echo.Context) error {
	if _, err := s.lookup(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.fx.Results)
}

func (s *server) setScanStatus(status domain.ScanStatus) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusNotFound, errorBody("Scan not found"))
		}
		sc, ok := s.scans.setStatus(id, status)
		if !ok {
			return c.JSON(http.StatusNotFound, errorBody("Scan not found"))
		}
		return c.JSON(http.StatusOK, sc)
	}
}

func (s *server) exportCSV(c echo.Context) error {
	if _, err := s.lookup(c); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{{"asin", "title", "brand", "rank"}}
	for _, p := range s.fx.Results.Data {
		rank := ""
		if p.Rank != nil {
			rank = strconv.Itoa(*p.Rank)
		}
		rows = append(rows, []string{p.ASIN, p.AmazonTitle, p.Brand, rank})
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

func (s *server) exportXLSX(c echo.Context) error {
	if _, err := s.lookup(c); err != nil {
		return err
	}
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", xlsxStub)
}

func (s *server) exportSheet(c echo.Context) error {
	sc, err := s.lookup(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.SheetExport{
		URL: fmt.Sprintf("https://docs.google.com/spreadsheets/d/mock-scan-%d", sc.ID),
	})
}

func (s *server) convert(c echo.Context) error {
	var req domain.ConvertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Malformed JSON body."))
	}
	if !req.Marketplace.Valid() {
		return c.JSON(http.StatusBadRequest, validationBody("marketplace", "The selected marketplace is invalid."))
	}
	if len(req.IDs) == 0 {
		return c.JSON(http.StatusBadRequest, validationBody("ids", "The ids field is required."))
	}

	out := make(domain.ConvertResponse, len(req.IDs))
	for _, id := range req.IDs {
		asins, ok := s.fx.Convert[id]
		if !ok {
			asins = []string{}
		}
		out[id] = asins
	}
	return c.JSON(http.StatusOK, out)
}

func (s *server) asinConvert(c echo.Context) error {
	var req domain.AsinToIdentifiersRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("Malformed JSON body."))
	}
	if !req.Marketplace.Valid() {
		return c.JSON(http.StatusBadRequest, validationBody("marketplace", "The selected marketplace is invalid."))
	}
	if len(req.ASINs) == 0 {
		return c.JSON(http.StatusBadRequest, validationBody("asins", "The asins field is required."))
	}

	out := make(domain.AsinToIdentifiersResponse, len(req.ASINs))
	for _, asin := range req.ASINs {
		out[asin] = s.fx.AsinConvert[asin]
	}
	return c.JSON(http.StatusOK, out)
}

func (s *server) eligibility(c echo.Context) error {
	raw := c.QueryParam("asins")
	if raw == "" {
		return c.JSON(http.StatusBadRequest, validationBody("asins", "The asins field is required."))
	}

	out := make([]domain.InboundEligibility, 0)
	for _, asin := range strings.Split(raw, ",") {
		i := slices.IndexFunc(s.fx.Eligibility, func(e domain.InboundEligibility) bool {
			return e.ASIN == asin
		})
		if i >= 0 {
			out = append(out, s.fx.Eligibility[i])
			continue
		}
		out = append(out, domain.InboundEligibility{ASIN: asin, Eligible: true})
	}
	return c.JSON(http.StatusOK, out)
}

// lookup resolves the :id parameter or writes a 404.
func (s *server) lookup(c echo.Context) (domain.Scan, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err == nil {
		if sc, ok := s.scans.get(id); ok {
			return sc, nil
		}
	}
	return domain.Scan{}, echo.NewHTTPError(http.StatusNotFound, "Scan not found")
}

func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

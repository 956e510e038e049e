package rocketsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

const (
	// MaxPerPage is the largest page size List will request.
	MaxPerPage = 100

	defaultPage    = 1
	defaultPerPage = 20
)

// ScanUploadRequest describes a scan file upload. File may be any reader; a
// handle with a Name method (such as *os.File) supplies the part filename
// unless FileName is set.
type ScanUploadRequest struct {
	Marketplace domain.Marketplace
	File        io.Reader
	FileName    string
	Options     domain.ScanOptions
}

// ScansService manages scans.
type ScansService struct {
	t *transport
}

// List returns one page of scans. perPage is clamped to MaxPerPage; page is
// sent as given. Non-positive values fall back to page 1 and 20 per page.
func (s *ScansService) List(
	ctx context.Context,
	page, perPage int,
) (*domain.PaginatedResults[domain.Scan], error) {
	if page <= 0 {
		page = defaultPage
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	perPage = min(perPage, MaxPerPage)

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))

	var out domain.PaginatedResults[domain.Scan]
	err := s.t.do(ctx, &request{
		method: http.MethodGet,
		path:   "/scans",
		route:  "/scans",
		query:  q,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns a single scan.
func (s *ScansService) Get(ctx context.Context, scanID int) (*domain.Scan, error) {
	var out domain.Scan
	if err := s.t.do(ctx, &request{
		method: http.MethodGet,
		path:   scanPath(scanID, ""),
		route:  "/scans/{id}",
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Results returns a page of scan results. A nil req sends an empty body.
// tableType, when set, is sent as the table_type query parameter.
func (s *ScansService) Results(
	ctx context.Context,
	scanID int,
	req *domain.ResultsRequest,
	tableType string,
) (*domain.ResultsResponse[domain.Product], error) {
	var q url.Values
	if tableType != "" {
		q = url.Values{"table_type": {tableType}}
	}

	var out domain.ResultsResponse[domain.Product]
	if err := s.t.do(ctx, &request{
		method: http.MethodPost,
		path:   scanPath(scanID, ""),
		route:  "/scans/{id}",
		query:  q,
		body:   resultsBody(req),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Upload creates a scan from a file.
func (s *ScansService) Upload(
	ctx context.Context,
	req *ScanUploadRequest,
) (*domain.ScanUploadResponse, error) {
	if req == nil || req.File == nil {
		return nil, localError("building upload", errors.New("file is required"))
	}

	form := &multipartForm{}
	form.addField("marketplace", string(req.Marketplace))
	form.addFile("file", uploadName(req.FileName, req.File), "text/csv", req.File)
	if len(req.Options) > 0 {
		opts, err := json.Marshal(req.Options)
		if err != nil {
			return nil, localError("encoding scan options", err)
		}
		form.addField("options", string(opts))
	}

	var out domain.ScanUploadResponse
	if err := s.t.do(ctx, &request{
		method: http.MethodPost,
		path:   "/scans",
		route:  "/scans",
		form:   form,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel cancels a running scan.
func (s *ScansService) Cancel(ctx context.Context, scanID int) (*domain.Scan, error) {
	return s.action(ctx, scanID, "cancel", nil)
}

// Rerun starts a scan again.
func (s *ScansService) Rerun(ctx context.Context, scanID int) (*domain.Scan, error) {
	return s.action(ctx, scanID, "rerun", nil)
}

// RecalculateFees recomputes fees for a scan. A nil selection sends an
// empty body.
func (s *ScansService) RecalculateFees(
	ctx context.Context,
	scanID int,
	selection map[string]any,
) (*domain.Scan, error) {
	if selection == nil {
		selection = map[string]any{}
	}
	return s.action(ctx, scanID, "fees-recalculate", selection)
}

// ExportCSV returns the scan results rendered as CSV.
func (s *ScansService) ExportCSV(
	ctx context.Context,
	scanID int,
	req *domain.ResultsRequest,
) ([]byte, error) {
	return s.export(ctx, scanID, "csv", req)
}

// ExportXLSX returns the scan results rendered as an Excel workbook.
func (s *ScansService) ExportXLSX(
	ctx context.Context,
	scanID int,
	req *domain.ResultsRequest,
) ([]byte, error) {
	return s.export(ctx, scanID, "xlsx", req)
}

// ExportGoogleSheets exports the scan results to a Google Sheet and returns
// its link.
func (s *ScansService) ExportGoogleSheets(
	ctx context.Context,
	scanID int,
	req *domain.ResultsRequest,
) (*domain.SheetExport, error) {
	var out domain.SheetExport
	if err := s.t.do(ctx, &request{
		method: http.MethodPost,
		path:   scanPath(scanID, "gsheet"),
		route:  "/scans/{id}/gsheet",
		body:   resultsBody(req),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ScansService) action(
	ctx context.Context,
	scanID int,
	name string,
	body any,
) (*domain.Scan, error) {
	var out domain.Scan
	if err := s.t.do(ctx, &request{
		method: http.MethodPost,
		path:   scanPath(scanID, name),
		route:  "/scans/{id}/" + name,
		body:   body,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ScansService) export(
	ctx context.Context,
	scanID int,
	format string,
	req *domain.ResultsRequest,
) ([]byte, error) {
	return s.t.doBinary(ctx, &request{
		method: http.MethodPost,
		path:   scanPath(scanID, format),
		route:  "/scans/{id}/" + format,
		body:   resultsBody(req),
	})
}

func scanPath(scanID int, suffix string) string {
	if suffix == "" {
		return fmt.Sprintf("/scans/%d", scanID)
	}
	return fmt.Sprintf("/scans/%d/%s", scanID, suffix)
}

// resultsBody returns req, or an empty object when req is nil.
func resultsBody(req *domain.ResultsRequest) any {
	if req == nil {
		return map[string]any{}
	}
	return req
}

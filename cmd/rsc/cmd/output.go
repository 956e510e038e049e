package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printScansTable(w io.Writer, page *domain.PaginatedResults[domain.Scan]) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tMARKETPLACE\tSTATUS\tPRODUCTS\tERRORS\tCREATED\n")
	for i := range page.Data {
		s := &page.Data[i]
		tw.writef("%d\t%s\t%s\t%s\t%d\t%d\t%s\n",
			s.ID,
			truncate(s.Name, 40),
			s.Marketplace,
			s.Status,
			s.Products,
			s.Errors,
			deref(s.CreatedAt),
		)
	}
	tw.writef("\nPage %d (%d per page), %d total\n",
		page.Pagination.Page, page.Pagination.PerPage, page.Total)
	return tw.finish()
}

func printScanDetail(w io.Writer, s *domain.Scan) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", s.ID)
	tw.writef("Name:\t%s\n", s.Name)
	tw.writef("Marketplace:\t%s\n", s.Marketplace)
	tw.writef("Status:\t%s\n", s.Status)
	tw.writef("Source:\t%s\n", s.SourceType)
	tw.writef("Lines:\t%d\n", s.Lines)
	tw.writef("Products:\t%d\n", s.Products)
	tw.writef("Errors:\t%d\n", s.Errors)
	tw.writef("Speed:\t%.1f/min\n", s.Speed)
	tw.writef("Created:\t%s\n", deref(s.CreatedAt))
	tw.writef("Updated:\t%s\n", deref(s.UpdatedAt))
	return tw.finish()
}

func printUploadResult(w io.Writer, r *domain.ScanUploadResponse) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", r.ID)
	tw.writef("Name:\t%s\n", r.Name)
	tw.writef("Marketplace:\t%s\n", r.Marketplace)
	tw.writef("Status:\t%s\n", r.Status)
	return tw.finish()
}

func printResultsTable(w io.Writer, res *domain.ResultsResponse[domain.Product]) error {
	tw := newTabWriter(w)
	tw.writef("ASIN\tTITLE\tBRAND\tRANK\tBUY BOX\tOFFERS\n")
	for i := range res.Data {
		p := &res.Data[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			p.ASIN,
			truncate(p.AmazonTitle, 40),
			truncate(p.Brand, 20),
			intOrDash(p.Rank),
			cents(p.BuyboxPrice),
			intOrDash(p.TotalOffersCount),
		)
	}
	tw.writef("\n%d results\n", res.Count)
	return tw.finish()
}

func printConvertTable(w io.Writer, res domain.ConvertResponse) error {
	tw := newTabWriter(w)
	tw.writef("IDENTIFIER\tASINS\n")
	for _, id := range slices.Sorted(maps.Keys(res)) {
		asins := "-"
		if len(res[id]) > 0 {
			asins = strings.Join(res[id], ", ")
		}
		tw.writef("%s\t%s\n", id, asins)
	}
	return tw.finish()
}

func printAsinTable(w io.Writer, res domain.AsinToIdentifiersResponse) error {
	tw := newTabWriter(w)
	tw.writef("ASIN\tUPC\tEAN\tISBN\tGTIN\n")
	for _, asin := range slices.Sorted(maps.Keys(res)) {
		ids := res[asin]
		tw.writef("%s\t%s\t%s\t%s\t%s\n",
			asin,
			joinOrDash(ids.UPC),
			joinOrDash(ids.EAN),
			joinOrDash(ids.ISBN),
			joinOrDash(ids.GTIN),
		)
	}
	return tw.finish()
}

func printEligibilityTable(w io.Writer, items []domain.InboundEligibility) error {
	tw := newTabWriter(w)
	tw.writef("ASIN\tELIGIBLE\tREASON\n")
	for i := range items {
		reason := items[i].Reason
		if reason == "" {
			reason = "-"
		}
		tw.writef("%s\t%v\t%s\n", items[i].ASIN, items[i].Eligible, reason)
	}
	return tw.finish()
}

func printMarketplacesTable(w io.Writer) error {
	tw := newTabWriter(w)
	tw.writef("ID\tCODE\n")
	for _, m := range domain.Marketplaces() {
		id, _ := m.ID()
		tw.writef("%d\t%s\n", id, m)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func cents(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", float64(*v)/100)
}

func joinOrDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ",")
}

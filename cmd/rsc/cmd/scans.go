package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/rocketsource-go/pkg/rocketsource"
	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

func (c *cli) scansCmd() *cobra.Command {
	scansRoot := &cobra.Command{
		Use:   "scans",
		Short: "Manage scans",
		Long: "Manage RocketSource scans: list and inspect them, upload new scan\n" +
			"files, page through results, and export or recompute them.",
	}

	scansRoot.AddCommand(
		c.scansListCmd(),
		c.scansGetCmd(),
		c.scansResultsCmd(),
		c.scansUploadCmd(),
		c.scansCancelCmd(),
		c.scansRerunCmd(),
		c.scansExportCmd(),
		c.scansRecalculateFeesCmd(),
	)

	return scansRoot
}

func (c *cli) scansListCmd() *cobra.Command {
	var page, perPage int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scans",
		Example: `  rsc scans list
  rsc scans list --page 2 --per-page 50
  rsc scans list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.client.Scans.List(cmd.Context(), page, perPage)
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			if len(res.Data) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No scans found.")
				return nil
			}
			return printScansTable(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 20, "scans per page (max 100)")

	return cmd
}

func (c *cli) scansGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show scan details",
		Example: `  rsc scans get 42
  rsc scans get 42 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseScanID(args[0])
			if err != nil {
				return err
			}
			scan, err := c.client.Scans.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), scan)
			}
			return printScanDetail(cmd.OutOrStdout(), scan)
		},
	}
}

func (c *cli) scansResultsCmd() *cobra.Command {
	var (
		page      int
		perPage   int
		sortField string
		desc      bool
		tableType string
	)

	cmd := &cobra.Command{
		Use:   "results <id>",
		Short: "Show scan results",
		Example: `  rsc scans results 42
  rsc scans results 42 --sort rank --per-page 100
  rsc scans results 42 --table-type variations --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseScanID(args[0])
			if err != nil {
				return err
			}
			req := resultsRequest(page, perPage, sortField, desc)
			res, err := c.client.Scans.Results(cmd.Context(), id, req, tableType)
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printResultsTable(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 25, "results per page")
	cmd.Flags().StringVar(&sortField, "sort", "", "field to sort by")
	cmd.Flags().BoolVar(&desc, "desc", false, "sort descending")
	cmd.Flags().StringVar(&tableType, "table-type", "", "results table type")

	return cmd
}

func (c *cli) scansUploadCmd() *cobra.Command {
	var (
		marketplace string
		options     string
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file and start a scan",
		Long: "Upload a CSV file and start a scan. Scan options may be passed as a\n" +
			"JSON object; their keys are defined by the RocketSource column mapper.",
		Example: `  rsc scans upload inventory.csv --marketplace US
  rsc scans upload inventory.csv -m UK --options '{"cost_column":"cost"}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMarketplace(marketplace)
			if err != nil {
				return err
			}

			var opts domain.ScanOptions
			if options != "" {
				if err := json.Unmarshal([]byte(options), &opts); err != nil {
					return fmt.Errorf("parsing --options: %w", err)
				}
			}

			f, err := os.Open(args[0]) //nolint:gosec // user-supplied upload path
			if err != nil {
				return fmt.Errorf("opening upload file: %w", err)
			}
			defer f.Close()

			res, err := c.client.Scans.Upload(cmd.Context(), &rocketsource.ScanUploadRequest{
				Marketplace: m,
				File:        f,
				Options:     opts,
			})
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printUploadResult(cmd.OutOrStdout(), res)
		},
	}

	marketplaceFlag(cmd, &marketplace)
	cmd.Flags().StringVar(&options, "options", "", "scan options as a JSON object")

	return cmd
}

func (c *cli) scansCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cancel <id>",
		Short:   "Cancel a running scan",
		Example: `  rsc scans cancel 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseScanID(args[0])
			if err != nil {
				return err
			}
			scan, err := c.client.Scans.Cancel(cmd.Context(), id)
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), scan)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scan %d cancelled (status %s).\n", scan.ID, scan.Status)
			return nil
		},
	}
}

func (c *cli) scansRerunCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rerun <id>",
		Short:   "Run a scan again",
		Example: `  rsc scans rerun 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseScanID(args[0])
			if err != nil {
				return err
			}
			scan, err := c.client.Scans.Rerun(cmd.Context(), id)
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), scan)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Scan %d restarted (status %s).\n", scan.ID, scan.Status)
			return nil
		},
	}
}

func (c *cli) scansExportCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export scan results",
		Long: "Export scan results as CSV, an Excel workbook, or a Google Sheet.\n" +
			"CSV and XLSX are written to --out, or to stdout when it is not set.",
		Example: `  rsc scans export 42 > results.csv
  rsc scans export 42 --format xlsx --out results.xlsx
  rsc scans export 42 --format gsheet`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseScanID(args[0])
			if err != nil {
				return err
			}

			var data []byte
			switch format {
			case "csv":
				data, err = c.client.Scans.ExportCSV(cmd.Context(), id, nil)
			case "xlsx":
				data, err = c.client.Scans.ExportXLSX(cmd.Context(), id, nil)
			case "gsheet":
				sheet, err := c.client.Scans.ExportGoogleSheets(cmd.Context(), id, nil)
				if err != nil {
					return err
				}
				if c.jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), sheet)
				}
				fmt.Fprintln(cmd.OutOrStdout(), sheet.URL)
				return nil
			default:
				return fmt.Errorf("--format must be one of: csv, xlsx, gsheet (got %q)", format)
			}
			if err != nil {
				return err
			}

			if out == "" {
				return writeOut(cmd.OutOrStdout(), data)
			}
			if err := os.WriteFile(out, data, 0o600); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d bytes to %s\n", len(data), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "export format (csv, xlsx, gsheet)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file")

	return cmd
}

func (c *cli) scansRecalculateFeesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "recalculate-fees <id>",
		Short:   "Recalculate Amazon fees for a scan",
		Example: `  rsc scans recalculate-fees 42`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseScanID(args[0])
			if err != nil {
				return err
			}
			scan, err := c.client.Scans.RecalculateFees(cmd.Context(), id, nil)
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), scan)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Fee recalculation started for scan %d.\n", scan.ID)
			return nil
		},
	}
}

func parseScanID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid scan id %q", s)
	}
	return id, nil
}

func resultsRequest(page, perPage int, sortField string, desc bool) *domain.ResultsRequest {
	req := &domain.ResultsRequest{
		Pagination: &domain.Pagination{Page: page, PerPage: perPage},
	}
	if sortField != "" {
		dir := domain.SortAsc
		if desc {
			dir = domain.SortDesc
		}
		req.Sorting = &domain.Sorting{Field: sortField, Direction: dir}
	}
	return req
}

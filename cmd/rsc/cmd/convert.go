package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/rocketsource-go/internal/batch"
)

func (c *cli) convertCmd() *cobra.Command {
	convertRoot := &cobra.Command{
		Use:   "convert",
		Short: "Convert identifiers to and from ASINs",
		Long: "Convert product identifiers (UPC, EAN, ISBN, ...) to ASINs, or ASINs\n" +
			"to their identifiers. Large identifier lists are split into batches\n" +
			"and paced according to the batch settings.",
	}

	convertRoot.AddCommand(
		c.convertIDsCmd("ids", "any identifiers"),
		c.convertIDsCmd("upcs", "UPC codes"),
		c.convertIDsCmd("eans", "EAN codes"),
		c.convertIDsCmd("isbns", "ISBN codes"),
		c.convertASINsCmd(),
	)

	return convertRoot
}

func (c *cli) convertIDsCmd(use, what string) *cobra.Command {
	var (
		marketplace string
		file        string
	)

	cmd := &cobra.Command{
		Use:   use + " [identifier...]",
		Short: "Convert " + what + " to ASINs",
		Example: fmt.Sprintf(`  rsc convert %[1]s 012345678905 9780306406157
  rsc convert %[1]s --file codes.txt --marketplace UK
  cat codes.txt | rsc convert %[1]s --file -`, use),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMarketplace(marketplace)
			if err != nil {
				return err
			}
			ids, err := collectIDs(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				return errors.New("no identifiers given (pass them as arguments or with --file)")
			}

			runner := batch.NewRunner(
				c.client.Convert,
				c.cfg.Batch.Size,
				c.cfg.Batch.PerSecond,
				c.cfg.Batch.Burst,
				batch.WithLogger(c.logger),
			)
			res, err := runner.Convert(cmd.Context(), m, ids)
			if err != nil {
				if len(res) == 0 {
					return err
				}
				c.logger.Warn("conversion stopped early, printing partial results",
					"converted", len(res),
					"requested", len(ids),
				)
			}

			var outErr error
			if c.jsonOutput() {
				outErr = outputJSON(cmd.OutOrStdout(), res)
			} else {
				outErr = printConvertTable(cmd.OutOrStdout(), res)
			}
			if err != nil {
				return err
			}
			return outErr
		},
	}

	marketplaceFlag(cmd, &marketplace)
	cmd.Flags().StringVarP(&file, "file", "f", "", "file with one identifier per line (- for stdin)")

	return cmd
}

func (c *cli) convertASINsCmd() *cobra.Command {
	var (
		marketplace string
		file        string
	)

	cmd := &cobra.Command{
		Use:   "asins [asin...]",
		Short: "Convert ASINs to identifiers",
		Example: `  rsc convert asins B000000001 B000000002
  rsc convert asins --file asins.txt --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMarketplace(marketplace)
			if err != nil {
				return err
			}
			asins, err := collectIDs(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}
			if len(asins) == 0 {
				return errors.New("no ASINs given (pass them as arguments or with --file)")
			}

			res, err := c.client.Convert.ConvertASINs(cmd.Context(), m, asins)
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printAsinTable(cmd.OutOrStdout(), res)
		},
	}

	marketplaceFlag(cmd, &marketplace)
	cmd.Flags().StringVarP(&file, "file", "f", "", "file with one ASIN per line (- for stdin)")

	return cmd
}

// collectIDs merges positional arguments with the lines of file. Blank lines
// and lines starting with # are skipped.
func collectIDs(stdin io.Reader, args []string, file string) ([]string, error) {
	ids := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			ids = append(ids, a)
		}
	}
	if file == "" {
		return ids, nil
	}

	r := stdin
	if file != "-" {
		f, err := os.Open(file) //nolint:gosec // user-supplied input path
		if err != nil {
			return nil, fmt.Errorf("opening identifier file: %w", err)
		}
		defer f.Close()
		r = f
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading identifier file: %w", err)
	}
	return ids, nil
}

package cmd

import (
	"github.com/spf13/cobra"
)

func (c *cli) eligibilityCmd() *cobra.Command {
	var marketplace string

	cmd := &cobra.Command{
		Use:   "eligibility <asin>...",
		Short: "Check inbound eligibility of ASINs",
		Example: `  rsc eligibility B000000001 B000000002
  rsc eligibility B000000001 --marketplace UK --output json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := parseMarketplace(marketplace)
			if err != nil {
				return err
			}
			res, err := c.client.Eligibility.CheckInbound(cmd.Context(), args, m)
			if err != nil {
				return err
			}
			if c.jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			return printEligibilityTable(cmd.OutOrStdout(), res)
		},
	}

	marketplaceFlag(cmd, &marketplace)

	return cmd
}

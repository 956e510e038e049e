package cmd

import (
	"github.com/spf13/cobra"

	domain "github.com/donaldgifford/rocketsource-go/pkg/types"
)

func (c *cli) marketplacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "marketplaces",
		Short: "List supported marketplaces",
		Example: `  rsc marketplaces
  rsc marketplaces --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.jsonOutput() {
				type entry struct {
					ID   int                `json:"id"`
					Code domain.Marketplace `json:"code"`
				}
				all := domain.Marketplaces()
				out := make([]entry, 0, len(all))
				for _, m := range all {
					id, _ := m.ID()
					out = append(out, entry{ID: id, Code: m})
				}
				return outputJSON(cmd.OutOrStdout(), out)
			}
			return printMarketplacesTable(cmd.OutOrStdout())
		},
	}
}

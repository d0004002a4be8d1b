package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/padenot/socorro-cli/internal/output"
	"github.com/padenot/socorro-cli/internal/search"
)

var searchFlags struct {
	signature string
	product   string
	version   string
	platform  string
	days      int
	limit     int
	facets    []string
	sort      string
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search crash reports",
	Long: `Run a SuperSearch query over the last --days days and print the first page
of matching crashes, plus one aggregation table per --facet.

The signature filter is passed through unchanged, so SuperSearch operators
work: "~foo" matches signatures containing foo, "=foo" matches exactly.`,
	Example: `  socorro-cli search --signature "~AudioDecoder" --days 30
  socorro-cli search --product Fenix --facet version --facet signature --limit 0`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	f := searchCmd.Flags()
	f.StringVar(&searchFlags.signature, "signature", "", "Signature filter (SuperSearch syntax)")
	f.StringVar(&searchFlags.product, "product", defaultProduct, "Product name")
	f.StringVar(&searchFlags.version, "version", "", "Product version")
	f.StringVar(&searchFlags.platform, "platform", "", "OS name (Windows NT, Linux, Mac OS X, Android)")
	f.IntVar(&searchFlags.days, "days", 7, "Lookback window in days")
	f.IntVar(&searchFlags.limit, "limit", 10, "Maximum crashes to list")
	f.StringArrayVar(&searchFlags.facets, "facet", nil, "Aggregate by this field (repeatable)")
	f.StringVar(&searchFlags.sort, "sort", "-date", "Sort field, prefix with - for descending")
}

func runSearch(cmd *cobra.Command, _ []string) error {
	if searchFlags.days < 0 {
		return fmt.Errorf("--days must be non-negative, got %d", searchFlags.days)
	}
	if searchFlags.limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", searchFlags.limit)
	}

	p := search.Params{
		Signature: searchFlags.signature,
		Product:   current.product,
		Version:   searchFlags.version,
		Platform:  searchFlags.platform,
		Days:      searchFlags.days,
		Limit:     searchFlags.limit,
		Facets:    searchFlags.facets,
		Sort:      searchFlags.sort,
	}
	if cmd.Flags().Changed("product") {
		p.Product = searchFlags.product
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	resp, err := client.Search(cmd.Context(), p)
	if err != nil {
		return err
	}
	out, err := output.Search(current.format, resp, p.Facets...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

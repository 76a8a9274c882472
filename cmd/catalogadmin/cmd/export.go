package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yourorg/catalogadmin/internal/view"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export products as a PDF catalog",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", "catalogue.pdf", "Output file")
	exportCmd.Flags().String("ids", "", "Comma-separated product IDs (all products when empty)")
	exportCmd.Flags().String("search", "", "Restrict to a search")
	exportCmd.Flags().Bool("no-price", false, "Leave prices out")
	exportCmd.Flags().Bool("no-dimensions", false, "Leave dimensions and weight out")
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging()
	f := cmd.Flags()
	out, _ := f.GetString("out")
	rawIDs, _ := f.GetString("ids")
	search, _ := f.GetString("search")
	noPrice, _ := f.GetBool("no-price")
	noDimensions, _ := f.GetBool("no-dimensions")

	ids, err := view.ParseIDs(rawIDs)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	products, err := newCatalog(nil).AllProducts(ctx, search)
	if err != nil {
		return err
	}
	products = view.Select(products, ids)

	opts := exportOptions()
	opts.ShowPrice = !noPrice
	opts.ShowDimensions = !noDimensions

	buf := &bytes.Buffer{}
	if err := newRenderer().Render(ctx, buf, products, opts); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d sheets to %s\n", len(products), out)
	return nil
}

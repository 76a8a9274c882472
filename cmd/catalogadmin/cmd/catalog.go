package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yourorg/catalogadmin/internal/models"
	"github.com/yourorg/catalogadmin/internal/view"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List a page of the catalog",
	RunE:  runProducts,
}

var arrivalsCmd = &cobra.Command{
	Use:   "arrivals",
	Short: "List incoming products",
	RunE:  runArrivals,
}

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Show the filter vocabulary",
	RunE:  runFilters,
}

var productCmd = &cobra.Command{
	Use:   "product <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE:  runProduct,
}

func init() {
	rootCmd.AddCommand(productsCmd, arrivalsCmd, filtersCmd, productCmd)

	f := productsCmd.Flags()
	f.Int("page", 1, "Page number")
	f.Int("per-page", 0, "Products per page (CATALOG_PER_PAGE when 0)")
	f.String("search", "", "Search term")
	f.String("category", "", "Category slug")
	f.String("supplier", "", "Supplier slug")
	f.String("type", "", "Product type slug")
	f.String("design", "", "Design slug")
	f.String("color", "", "Colour slug")
	f.String("sort", "", "Sort key (sku, name, stock_quantity, unite, statut, categorie, reservation)")
	f.Bool("desc", false, "Sort descending")
	f.Bool("all", false, "Include out-of-stock showroom products")
}

func runProducts(cmd *cobra.Command, _ []string) error {
	setupLogging()
	f := cmd.Flags()
	page, _ := f.GetInt("page")
	perPage, _ := f.GetInt("per-page")
	search, _ := f.GetString("search")
	sortKey, _ := f.GetString("sort")
	desc, _ := f.GetBool("desc")
	showAll, _ := f.GetBool("all")

	var criteria models.FilterCriteria
	criteria.Category, _ = f.GetString("category")
	criteria.Supplier, _ = f.GetString("supplier")
	criteria.ProductType, _ = f.GetString("type")
	criteria.Design, _ = f.GetString("design")
	criteria.Color, _ = f.GetString("color")

	dir := "asc"
	if desc {
		dir = "desc"
	}
	s, err := view.ParseSort(sortKey, dir)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	catalog := newCatalog(nil)
	if perPage > 0 {
		if err := catalog.ChangePerPage(ctx, perPage); err != nil {
			return err
		}
	}
	current := catalog.Snapshot()

	if criteria.IsZero() {
		err = catalog.FetchPage(ctx, page, current.PerPage, search)
	} else {
		err = catalog.ApplyFilter(ctx, criteria, page)
	}
	if err != nil {
		return err
	}

	st := catalog.Snapshot()
	products := st.Products
	if !showAll {
		products = view.Visible(products, st.Searching)
	}
	products = view.SortProducts(products, s)

	out := cmd.OutOrStdout()
	printProducts(out, products)
	stats := view.ComputeStats(products, st.TotalProducts)
	_, _ = fmt.Fprintf(out, "\npage %d/%d  total %d  in stock %d  low stock %d  pages %s\n",
		st.Page, st.TotalPages, stats.Total, stats.InStock, stats.LowStock, joinInts(view.PageWindow(st.Page, st.TotalPages)))
	return nil
}

func runArrivals(cmd *cobra.Command, _ []string) error {
	setupLogging()
	catalog := newCatalog(nil)
	if err := catalog.ShowArrivals(cmd.Context()); err != nil {
		return err
	}
	st := catalog.Snapshot()
	printProducts(cmd.OutOrStdout(), st.Products)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d incoming\n", st.TotalProducts)
	return nil
}

func runFilters(cmd *cobra.Command, _ []string) error {
	setupLogging()
	catalog := newCatalog(nil)
	if err := catalog.FetchFilterOptions(cmd.Context()); err != nil {
		return err
	}
	opts := catalog.Snapshot().FilterOptions

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "AXIS\tSLUG\tNAME")
	for _, axis := range []struct {
		name  string
		terms []models.Term
	}{
		{"category", opts.Categories},
		{"supplier", opts.Suppliers},
		{"type", opts.ProductTypes},
		{"design", opts.Designs},
		{"color", opts.Colors},
	} {
		for _, t := range axis.terms {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", axis.name, t.Slug, t.Name)
		}
	}
	return tw.Flush()
}

func runProduct(cmd *cobra.Command, args []string) error {
	setupLogging()
	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || productID < 1 {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	product, err := newCatalog(nil).Product(cmd.Context(), productID)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	rows := [][2]string{
		{"ID", strconv.FormatInt(product.ID, 10)},
		{"SKU", product.SKU},
		{"Name", product.Name},
		{"Stock", fmt.Sprintf("%d (%s)", product.StockQuantity, view.StockStatus(product.StockQuantity))},
		{"Price", product.Price.Fixed()},
		{"Location", product.MetaValue(models.MetaLocation)},
		{"Unit", product.MetaValue(models.MetaUnit)},
		{"Reservation", product.MetaValue(models.MetaReservation)},
		{"Category", product.TaxonomyNames(models.TaxonomyCategory)},
		{"Supplier", product.TaxonomyNames(models.TaxonomySupplier)},
		{"Images", strings.Join(product.Images, " ")},
	}
	for _, row := range rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

func printProducts(w io.Writer, products []models.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSKU\tNAME\tSTOCK\tSTATUS\tLOCATION\tCATEGORY")
	for _, p := range products {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\t%s\n",
			p.ID, p.SKU, p.Name, p.StockQuantity, view.StockStatus(p.StockQuantity),
			p.MetaValue(models.MetaLocation), p.FirstTerm(models.TaxonomyCategory))
	}
	_ = tw.Flush()
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

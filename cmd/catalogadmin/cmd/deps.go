package cmd

import (
	"log/slog"
	"net/http"

	"github.com/nhalm/canonlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
	"github.com/yourorg/catalogadmin/internal/export"
	"github.com/yourorg/catalogadmin/internal/metrics"
	"github.com/yourorg/catalogadmin/internal/repository"
	"github.com/yourorg/catalogadmin/internal/service"
)

func setupLogging() {
	canonlog.SetupGlobalLogger(viper.GetString("LOG_LEVEL"), viper.GetString("LOG_FORMAT"))
}

// newCatalog wires the remote repository into a catalog controller. reg may
// be nil when metrics are not served.
func newCatalog(reg prometheus.Registerer) *service.Catalog {
	repo := repository.NewProductRepository(
		viper.GetString("CATALOG_API_URL"),
		repository.WithHTTPClient(&http.Client{Timeout: viper.GetDuration("UPSTREAM_TIMEOUT")}),
		repository.WithMetrics(metrics.NewUpstreamMetrics(reg)),
	)
	return service.NewCatalog(repo,
		service.WithLogger(slog.Default()),
		service.WithPerPage(viper.GetInt("CATALOG_PER_PAGE")),
	)
}

func newRenderer() *export.Renderer {
	loader := export.NewImageLoader(
		export.WithConcurrency(viper.GetInt("EXPORT_IMAGE_CONCURRENCY")),
		export.WithLoaderLogger(slog.Default()),
	)
	return export.NewRenderer(loader, slog.Default())
}

func exportOptions() export.Options {
	opts := export.DefaultOptions()
	if title := viper.GetString("EXPORT_TITLE"); title != "" {
		opts.Title = title
	}
	if label := viper.GetString("EXPORT_SITE_LABEL"); label != "" {
		opts.SiteLabel = label
	}
	return opts
}

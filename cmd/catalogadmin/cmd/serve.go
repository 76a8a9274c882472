package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yourorg/catalogadmin/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to run the server on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind the server to")
	_ = viper.BindPFlag("PORT", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("HOST", serveCmd.Flags().Lookup("host"))
}

func runServe(_ *cobra.Command, _ []string) error {
	setupLogging()

	host := viper.GetString("HOST")
	port := viper.GetInt("PORT")
	addr := fmt.Sprintf("%s:%d", host, port)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	catalog := newCatalog(registry)

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := catalog.Load(loadCtx); err != nil {
		slog.Warn("initial catalog load failed", "error", err)
	}
	cancelLoad()

	handler := api.NewHandler(catalog, newRenderer(), exportOptions())

	routeConfig := api.RouteConfig{
		ReadRPS:        viper.GetInt("RATE_LIMIT_READ_RPS"),
		WriteRPS:       viper.GetInt("RATE_LIMIT_WRITE_RPS"),
		MaxBodyBytes:   viper.GetInt64("MAX_REQUEST_BODY_BYTES"),
		AllowedOrigins: api.ParseAllowedOrigins(viper.GetString("CORS_ALLOWED_ORIGINS")),
		Metrics:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	defaults := api.DefaultRouteConfig()
	if routeConfig.ReadRPS == 0 {
		routeConfig.ReadRPS = defaults.ReadRPS
	}
	if routeConfig.WriteRPS == 0 {
		routeConfig.WriteRPS = defaults.WriteRPS
	}
	if routeConfig.MaxBodyBytes == 0 {
		routeConfig.MaxBodyBytes = defaults.MaxBodyBytes
	}

	srv := &http.Server{
		Addr:           addr,
		Handler:        handler.RoutesWithConfig(routeConfig),
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   90 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1048576,
	}

	go func() {
		slog.Info("server starting", "addr", addr, "catalog_api", viper.GetString("CATALOG_API_URL"))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

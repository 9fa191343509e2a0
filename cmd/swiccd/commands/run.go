package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/swiccgo/swicc/internal/logger"
	"github.com/swiccgo/swicc/pkg/card"
	"github.com/swiccgo/swicc/pkg/config"
	"github.com/swiccgo/swicc/pkg/diskjson"
	"github.com/swiccgo/swicc/pkg/fs"
	"github.com/swiccgo/swicc/pkg/metrics"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a disk image and serve it",
	Long: `Load the configured disk image and serve it, either in-process only
(when listen.address is unset) or to TCP clients speaking the swicc network
message protocol.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	disk, err := loadDisk(cfg.Disk.Path, cfg.Disk.Format)
	if err != nil {
		return fmt.Errorf("failed to load disk %q: %w", cfg.Disk.Path, err)
	}
	logger.Info("disk loaded", "path", cfg.Disk.Path, "format", cfg.Disk.Format)

	atr := card.Atr
	if len(cfg.ATR.Override) > 0 {
		atr = []byte(cfg.ATR.Override)
		logger.Info("using ATR override", "bytes", len(atr))
	}

	var cardMetrics *metrics.CardMetrics
	var reg *prometheus.Registry
	if cfg.Metrics.Enabled {
		reg = prometheus.NewRegistry()
		cardMetrics = metrics.NewCardMetrics(reg)
		logger.Info("metrics enabled", "address", cfg.Metrics.Address)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var metricsServer *http.Server
	if reg != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler(reg))
		metricsServer = &http.Server{Addr: cfg.Metrics.Address, Handler: mux}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server error", "error", err)
			}
		}()
	}

	serverDone := make(chan error, 1)
	if cfg.Listen.Address != "" {
		go func() {
			serverDone <- serveTCP(ctx, cfg.Listen.Address, disk, atr, cardMetrics)
		}()
	} else {
		logger.Info("listen.address unset, running with no TCP bridge")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("swiccd is running, press Ctrl+C to stop")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("shutdown signal received")
		cancel()
	case err := <-serverDone:
		if err != nil {
			logger.Error("server error", "error", err)
			return err
		}
	}

	if metricsServer != nil {
		_ = metricsServer.Close()
	}
	return nil
}

// loadDisk reads a disk image from path in the given format ("binary" or
// "json").
func loadDisk(path, format string) (*fs.Disk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case "json":
		return diskjson.Decode(f)
	default:
		return fs.Load(f)
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"codeberg.org/mutker/syshealth/internal/collectors"
	"codeberg.org/mutker/syshealth/internal/config"
	"codeberg.org/mutker/syshealth/internal/logger"
	"codeberg.org/mutker/syshealth/internal/pid"
	"codeberg.org/mutker/syshealth/internal/reportstore"
	"codeberg.org/mutker/syshealth/internal/scan"
	"codeberg.org/mutker/syshealth/internal/score"
	"codeberg.org/mutker/syshealth/internal/sensors"
	sig "codeberg.org/mutker/syshealth/internal/signal"
)

const reportFilePerm = 0o600

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Debug, cfg.Verbose, logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func main() {
	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("another scan is already running")
	}
	defer pid.Remove()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := run(ctx); err != nil {
		// Fatal exits without running deferred calls; drop the PID
		// file first so the next scan is not locked out.
		pid.Remove()
		logger.Fatal().Err(err).Msg("health check failed")
	}
}

func run(ctx context.Context) error {
	blob := loadScan()
	snapshot := sensors.NewNVMLProvider().Snapshot()

	results := collect(ctx)
	collectorErrors := sig.Errors(results)

	report := score.ComputeScore(blob, snapshot, collectorErrors)
	logger.Info().
		Int("healthScore", report.GlobalHealthScore).
		Str("grade", report.GlobalHealthGrade).
		Int("confidence", report.Confidence.ConfidenceScore).
		Msg("Health report computed")

	if err := persist(ctx, &report); err != nil {
		// Persistence is best-effort; the report still goes out.
		logger.Error().Err(err).Msg("failed to persist report")
	}

	return emit(&report, results)
}

// loadScan reads the raw scan blob when a path is configured. A
// missing blob is a confidence problem, not a fatal one.
func loadScan() *scan.Blob {
	if cfg.ScanPath == "" {
		logger.Warn().Msg("No scan path configured, scoring from sensors and collectors only")
		return nil
	}

	blob, err := scan.Load(cfg.ScanPath)
	if err != nil {
		logger.Error().Err(err).Str("path", cfg.ScanPath).Msg("failed to load scan blob")
		return nil
	}

	return blob
}

func collect(ctx context.Context) map[string]sig.Result {
	set := collectors.DefaultSet(collectors.DefaultSources(), collectors.Options{
		SpeedTestEnabled: cfg.SpeedTest,
		SpeedTestBinary:  cfg.SpeedTestBinary,
		DNSTargets:       cfg.DNSTargets,
	})

	logger.Debug().Int("collectors", len(set)).Msg("Starting signal collection")

	return sig.NewOrchestrator(set, cfg.Budget()).Run(ctx)
}

func persist(ctx context.Context, report *score.Report) error {
	store, err := reportstore.NewService(reportstore.Config{
		Enabled: cfg.Store,
		DBPath:  cfg.Database,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Save(ctx, report)
}

// output is the full program result: the score report plus the raw
// signal map for downstream consumers.
type output struct {
	Report  score.Report          `json:"report"`
	Signals map[string]sig.Result `json:"signals"`
}

func emit(report *score.Report, results map[string]sig.Result) error {
	data, err := json.MarshalIndent(output{Report: *report, Signals: results}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if cfg.ReportPath == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	return os.WriteFile(cfg.ReportPath, data, reportFilePerm)
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

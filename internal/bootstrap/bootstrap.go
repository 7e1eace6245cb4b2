package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avolkov/dirscope/internal/config"
	"github.com/avolkov/dirscope/internal/core/ports"
	"github.com/avolkov/dirscope/internal/core/usecase"
	openaiinsight "github.com/avolkov/dirscope/internal/infrastructure/insight/openai"
	"github.com/avolkov/dirscope/internal/infrastructure/queue/nats"
	"github.com/avolkov/dirscope/internal/infrastructure/report"
	"github.com/avolkov/dirscope/internal/infrastructure/repository/postgres"
	"github.com/avolkov/dirscope/internal/infrastructure/resilience"
	"github.com/avolkov/dirscope/internal/infrastructure/rules"
	"github.com/avolkov/dirscope/internal/infrastructure/scanner"
	"github.com/avolkov/dirscope/internal/infrastructure/storage/localfs"
	"github.com/avolkov/dirscope/internal/infrastructure/textcluster"
	"github.com/avolkov/dirscope/internal/infrastructure/textrank"
	"github.com/avolkov/dirscope/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	ScanUC    ports.ScanService
	SearchUC  ports.FileSearcher
	UploadUC  ports.FileUploader
	InsightUC ports.InsightService
	StatsUC   ports.StatsService
	Report    ports.ReportWriter

	closeFn func()
}

// New wires the full dependency graph shared by the api and worker binaries.
// The metrics argument may be nil; the search resolver then runs unobserved.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, httpMetrics *metrics.HTTPServerMetrics) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewScanRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	ruleSet, err := rules.Load(cfg.RulesPath)
	if err != nil {
		return nil, fmt.Errorf("load classification rules: %w", err)
	}

	fsScanner := scanner.New(logger)
	classifyUC := usecase.NewClassifyFilesUseCase(ruleSet, textcluster.NewGrouper(), logger)

	var observer ports.SearchObserver
	if httpMetrics != nil {
		observer = httpMetrics.SearchObserver("api")
	}
	searchUC := usecase.NewSearchFilesUseCase(textrank.NewRanker(), observer, logger)

	var generator ports.InsightGenerator
	if cfg.OpenAIAPIKey != "" {
		generator = openaiinsight.New(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	}

	scanUC := usecase.NewScanFilesUseCase(fsScanner, classifyUC, repo, queue, logger)
	uploadUC := usecase.NewUploadFileUseCase(storage, fsScanner, classifyUC, logger)
	insightUC := usecase.NewInsightsUseCase(generator, logger)
	statsUC := usecase.NewStatsUseCase()

	return &App{
		Config: cfg,

		Queue:     queue,
		ScanUC:    scanUC,
		SearchUC:  searchUC,
		UploadUC:  uploadUC,
		InsightUC: insightUC,
		StatsUC:   statsUC,
		Report:    report.NewXLSXWriter(),

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"

	"github.com/tcr-trading/backoffice/internal/inventory"
	"github.com/tcr-trading/backoffice/internal/report"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskStockReport renders the full stock list PDF into the export dir.
	TaskStockReport = "report:stock"
)

// StockReportPayload describes a queued stock report run.
type StockReportPayload struct {
	RequestedAt time.Time `json:"requested_at"`
}

// NewStockReportTask constructs an Asynq task.
func NewStockReportTask(payload StockReportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockReport, data), nil
}

// CarLister serves the full car list for background rendering.
type CarLister interface {
	List(ctx context.Context) ([]inventory.Car, error)
}

// StockReportJob renders the stock list to disk when its task fires.
type StockReportJob struct {
	cars      CarLister
	generator *report.StockListGenerator
	exportDir string
	logger    *slog.Logger
}

// NewStockReportJob constructs the job.
func NewStockReportJob(cars CarLister, generator *report.StockListGenerator, exportDir string, logger *slog.Logger) *StockReportJob {
	if logger == nil {
		logger = slog.Default()
	}
	return &StockReportJob{cars: cars, generator: generator, exportDir: exportDir, logger: logger}
}

// Handle processes TaskStockReport tasks.
func (j *StockReportJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload StockReportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	cars, err := j.cars.List(ctx)
	if err != nil {
		return fmt.Errorf("list cars: %w", err)
	}
	pdf, err := j.generator.Generate(cars)
	if err != nil {
		return fmt.Errorf("render stock list: %w", err)
	}

	if err := os.MkdirAll(j.exportDir, 0o755); err != nil {
		return fmt.Errorf("export dir: %w", err)
	}
	path := filepath.Join(j.exportDir, report.StockListFilename(time.Now()))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	j.logger.Info("stock report written",
		slog.String("path", path),
		slog.Int("cars", len(cars)),
		slog.Time("requested_at", payload.RequestedAt))
	return nil
}

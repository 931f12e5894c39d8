package statements

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/grapfin/grapfin/jobs"
)

// HTMLRenderer converts a stored run into a printable HTML document.
type HTMLRenderer interface {
	HTML(run Run) (string, error)
}

// PDFConverter turns an HTML document into PDF bytes.
type PDFConverter interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// RenderJob processes report render tasks.
type RenderJob struct {
	service   *Service
	renderer  HTMLRenderer
	converter PDFConverter
	outputDir string
	logger    *slog.Logger
}

// NewRenderJob constructs a job handler.
func NewRenderJob(service *Service, renderer HTMLRenderer, converter PDFConverter, outputDir string, logger *slog.Logger) *RenderJob {
	return &RenderJob{
		service:   service,
		renderer:  renderer,
		converter: converter,
		outputDir: outputDir,
		logger:    logger,
	}
}

// Handle fulfils the asynq.HandlerFunc contract.
func (j *RenderJob) Handle(ctx context.Context, task *asynq.Task) error {
	var payload jobs.RenderReportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	runID, err := uuid.Parse(payload.RunID)
	if err != nil {
		return asynq.SkipRetry
	}
	if _, err := j.Render(ctx, runID); err != nil {
		if j.logger != nil {
			j.logger.Error("report render", slog.String("run_id", payload.RunID), slog.Any("error", err))
		}
		return err
	}
	return nil
}

// Render produces the PDF for a run and records its location.
func (j *RenderJob) Render(ctx context.Context, runID uuid.UUID) (string, error) {
	run, err := j.service.GetRun(ctx, runID)
	if err != nil {
		return "", err
	}
	html, err := j.renderer.HTML(run)
	if err != nil {
		return "", err
	}
	pdf, err := j.converter.RenderHTML(ctx, html)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(j.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("statements: create output dir: %w", err)
	}
	path := filepath.Join(j.outputDir, fmt.Sprintf("statements_%s.pdf", runID))
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", fmt.Errorf("statements: write pdf: %w", err)
	}
	if err := j.service.AttachPDF(ctx, runID, path); err != nil {
		return "", err
	}
	return path, nil
}

package statements

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/grapfin/grapfin/internal/grap"
	"github.com/grapfin/grapfin/internal/trialbalance"
)

// ErrRunNotFound indicates an unknown processing run.
var ErrRunNotFound = errors.New("statements: run not found")

// Run is one persisted processing run: the serialized result artifact kept
// between the process and report-generation requests.
type Run struct {
	ID         uuid.UUID `json:"id"`
	SourceFile string    `json:"source_file"`
	Result     Result    `json:"result"`
	PDFPath    string    `json:"pdf_path,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Repository persists processing runs.
type Repository interface {
	InsertRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id uuid.UUID) (Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	UpdateRunPDF(ctx context.Context, id uuid.UUID, path string) error
}

// Service coordinates the statement pipeline with persistence and caching.
// The mapping table is loaded once at construction and read-only thereafter;
// concurrent runs share it without locking.
type Service struct {
	table  *grap.Table
	repo   Repository
	cache  *Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewService wires the engine with its collaborators.
func NewService(table *grap.Table, repo Repository, cache *Cache, logger *slog.Logger) *Service {
	if table == nil {
		table = grap.DefaultTable()
	}
	return &Service{table: table, repo: repo, cache: cache, logger: logger, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// MappingVersion exposes the loaded mapping schema version.
func (s *Service) MappingVersion() string {
	return s.table.Version()
}

// Generate runs the pure pipeline over a raw table: normalise, check,
// classify, gate on unmapped accounts, aggregate, build the three statements,
// validate, and derive ratios. It performs no I/O.
func (s *Service) Generate(table trialbalance.Table) (Result, error) {
	rows, err := trialbalance.Normalize(table)
	if err != nil {
		return Result{}, err
	}

	report := trialbalance.Check(rows)

	accounts := Classify(rows, s.table)
	if _, err := ValidateMapping(accounts); err != nil {
		return Result{}, err
	}

	items := Aggregate(accounts)
	position := BuildFinancialPosition(items)
	performance := BuildFinancialPerformance(items)
	if err := ValidateStatements(position, performance); err != nil {
		return Result{}, err
	}
	flow := BuildCashFlow(performance, accounts)
	ratios := ComputeRatios(position, performance)

	return NewResult(position, performance, flow, ratios, s.table.Version(), report.TotalAccounts, report.Warnings, s.now()), nil
}

// Process executes the pipeline and persists the run.
func (s *Service) Process(ctx context.Context, sourceFile string, table trialbalance.Table) (Run, error) {
	result, err := s.Generate(table)
	if err != nil {
		return Run{}, err
	}

	run := Run{
		ID:         uuid.New(),
		SourceFile: sourceFile,
		Result:     result,
		CreatedAt:  s.now().UTC(),
	}
	if s.repo != nil {
		if err := s.repo.InsertRun(ctx, run); err != nil {
			return Run{}, err
		}
	}
	if s.logger != nil {
		s.logger.Info("trial balance processed",
			slog.String("run_id", run.ID.String()),
			slog.Int("accounts", result.Summary.TotalAccounts),
			slog.Int("warnings", len(result.Summary.Warnings)))
	}
	return run, nil
}

// GetRun loads a persisted run, via the cache when one is configured.
func (s *Service) GetRun(ctx context.Context, id uuid.UUID) (Run, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		return s.repo.GetRun(ctx, id)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Run{}, err
		}
		return value.(Run), nil
	}

	key, err := s.cache.BuildKey(ctx, "statements", "run", id.String())
	if err != nil {
		return Run{}, err
	}
	var run Run
	if err := s.cache.FetchJSON(ctx, key, &run, loader); err != nil {
		return Run{}, err
	}
	return run, nil
}

// ListRuns returns the most recent runs.
func (s *Service) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListRuns(ctx, limit)
}

// AttachPDF records the rendered report path and invalidates cached copies.
func (s *Service) AttachPDF(ctx context.Context, id uuid.UUID, path string) error {
	if err := s.repo.UpdateRunPDF(ctx, id, path); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
			s.logger.Warn("cache bump", slog.Any("error", err))
		}
	}
	return nil
}

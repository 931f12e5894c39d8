package statements

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grapfin/grapfin/internal/grap"
	"github.com/grapfin/grapfin/internal/trialbalance"
)

type mockRepository struct {
	runs      map[uuid.UUID]Run
	insertErr error
	getCalls  int
}

func newMockRepository() *mockRepository {
	return &mockRepository{runs: make(map[uuid.UUID]Run)}
}

func (m *mockRepository) InsertRun(ctx context.Context, run Run) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.runs[run.ID] = run
	return nil
}

func (m *mockRepository) GetRun(ctx context.Context, id uuid.UUID) (Run, error) {
	m.getCalls++
	run, ok := m.runs[id]
	if !ok {
		return Run{}, ErrRunNotFound
	}
	return run, nil
}

func (m *mockRepository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	var runs []Run
	for _, run := range m.runs {
		runs = append(runs, run)
		if len(runs) == limit {
			break
		}
	}
	return runs, nil
}

func (m *mockRepository) UpdateRunPDF(ctx context.Context, id uuid.UUID, path string) error {
	run, ok := m.runs[id]
	if !ok {
		return ErrRunNotFound
	}
	run.PDFPath = path
	m.runs[id] = run
	return nil
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.March, 31, 12, 0, 0, 0, time.UTC)
	}
}

func balancedTable() trialbalance.Table {
	return trialbalance.Table{
		Columns: []string{"Acc Code", "Description", "Debit", "Credit"},
		Rows: [][]string{
			{"1000", "Cash", "1000.00", "0"},
			{"2000", "Payables", "0", "400.00"},
			{"3000", "Equity", "0", "600.00"},
		},
	}
}

func TestServiceProcess(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(grap.DefaultTable(), repo, nil, nil)
	svc.WithNow(fixedClock())

	run, err := svc.Process(context.Background(), "tb_2026.csv", balancedTable())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, run.ID)

	stored, ok := repo.runs[run.ID]
	require.True(t, ok, "run must be persisted")
	assert.Equal(t, "tb_2026.csv", stored.SourceFile)

	summary := run.Result.Summary
	assert.Equal(t, 1000.0, summary.TotalAssets)
	assert.Equal(t, 400.0, summary.TotalLiabilities)
	assert.Equal(t, 600.0, summary.NetAssets)
	assert.Equal(t, 3, summary.TotalAccounts)
	assert.Equal(t, grap.MappingVersion, summary.MappingVersion)
	assert.Equal(t, "2026-03-31T12:00:00Z", summary.Timestamp)
	assert.Empty(t, summary.Warnings)
}

// Scenario B: unknown account codes block generation with the remediation list.
func TestServiceProcessUnmappedGate(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(grap.DefaultTable(), repo, nil, nil)

	table := balancedTable()
	table.Rows = append(table.Rows, []string{"9999", "Mystery", "100", "0"})

	_, err := svc.Process(context.Background(), "tb.csv", table)
	var merr *MappingError
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Unmapped, 1)
	assert.Equal(t, "9999", merr.Unmapped[0].AccountCode)
	assert.Equal(t, "Mystery", merr.Unmapped[0].AccountDescription)
	assert.Equal(t, 100.0, merr.Unmapped[0].NetBalance)
	assert.Empty(t, repo.runs, "no partial statements may be persisted")
}

func TestServiceProcessSchemaError(t *testing.T) {
	svc := NewService(grap.DefaultTable(), newMockRepository(), nil, nil)

	_, err := svc.Process(context.Background(), "tb.csv", trialbalance.Table{
		Columns: []string{"Foo", "Bar"},
		Rows:    [][]string{{"1", "2"}},
	})
	var verr *trialbalance.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestServiceProcessKeepsWarnings(t *testing.T) {
	svc := NewService(grap.DefaultTable(), newMockRepository(), nil, nil)

	table := balancedTable()
	table.Rows = append(table.Rows, []string{"1000", "Petty cash duplicate", "50", "0"})

	run, err := svc.Process(context.Background(), "tb.csv", table)
	require.NoError(t, err)
	require.NotEmpty(t, run.Result.Summary.Warnings)
}

func TestServiceGetRun(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(grap.DefaultTable(), repo, nil, nil)

	run, err := svc.Process(context.Background(), "tb.csv", balancedTable())
	require.NoError(t, err)

	got, err := svc.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)

	_, err = svc.GetRun(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestServiceInsertFailurePropagates(t *testing.T) {
	repo := newMockRepository()
	repo.insertErr = errors.New("boom")
	svc := NewService(grap.DefaultTable(), repo, nil, nil)

	_, err := svc.Process(context.Background(), "tb.csv", balancedTable())
	require.Error(t, err)
}

func TestServiceAttachPDF(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(grap.DefaultTable(), repo, nil, nil)

	run, err := svc.Process(context.Background(), "tb.csv", balancedTable())
	require.NoError(t, err)

	require.NoError(t, svc.AttachPDF(context.Background(), run.ID, "outputs/report.pdf"))
	stored := repo.runs[run.ID]
	assert.Equal(t, "outputs/report.pdf", stored.PDFPath)
}

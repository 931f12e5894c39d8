package statements

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/grapfin/grapfin/internal/grap"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func TestGetRunUsesCache(t *testing.T) {
	repo := newMockRepository()
	cache := newTestCache(t)
	svc := NewService(grap.DefaultTable(), repo, cache, nil)

	run, err := svc.Process(context.Background(), "tb.csv", balancedTable())
	require.NoError(t, err)

	first, err := svc.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	require.Equal(t, run.ID, first.ID)
	require.Equal(t, 1, repo.getCalls)

	// Second read is served from Redis.
	second, err := svc.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	require.Equal(t, 1, repo.getCalls)
	require.Equal(t, first.Result.Summary.TotalAssets, second.Result.Summary.TotalAssets)
}

func TestAttachPDFBumpsCache(t *testing.T) {
	repo := newMockRepository()
	cache := newTestCache(t)
	svc := NewService(grap.DefaultTable(), repo, cache, nil)

	run, err := svc.Process(context.Background(), "tb.csv", balancedTable())
	require.NoError(t, err)

	_, err = svc.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	require.Equal(t, 1, repo.getCalls)

	require.NoError(t, svc.AttachPDF(context.Background(), run.ID, "outputs/report.pdf"))

	// Version bump invalidates the cached copy; the repo is hit again and the
	// fresh read carries the PDF path.
	got, err := svc.GetRun(context.Background(), run.ID)
	require.NoError(t, err)
	require.Equal(t, 2, repo.getCalls)
	require.Equal(t, "outputs/report.pdf", got.PDFPath)
}

func TestCacheNilDegradesToLoader(t *testing.T) {
	var cache *Cache
	var dest Run
	id := uuid.New()
	err := cache.FetchJSON(context.Background(), "k", &dest, func(ctx context.Context) (interface{}, error) {
		return Run{ID: id}, nil
	})
	require.NoError(t, err)
	require.Equal(t, id, dest.ID)
}

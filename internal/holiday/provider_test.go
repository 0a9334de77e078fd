package holiday

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/username/apprentice-calendar/internal/cache"
	"github.com/username/apprentice-calendar/pkg/dateutil"
)

const holidaysYAML = `
holidays:
  - date: "2025-12-25"
    name: Christmas
    level: national
  - date: "2025-03-06"
    name: Pernambuco Revolution
    level: estadual
    state: PE
  - date: "2025-07-16"
    name: Our Lady of Carmel
    level: municipal
    city: Recife
    state: PE
    ibge_code: "2611606"
  - date: "not-a-date"
    name: Broken
    level: national
  - date: "2025-04-21"
    name: Unknown level
    level: federal
`

func writeHolidays(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	require.NoError(t, os.WriteFile(path, []byte(holidaysYAML), 0o644))
	return path
}

func TestFileProvider_Load(t *testing.T) {
	fp := NewFileProvider(writeHolidays(t), zap.NewNop())
	require.NoError(t, fp.Load())

	got, err := fp.Holidays(context.Background(), dateutil.Date(2025, 1, 1), dateutil.Date(2025, 12, 31), recife)
	require.NoError(t, err)

	// invalid rows are skipped, the rest sorted by date
	require.Len(t, got, 3)
	assert.Equal(t, "Pernambuco Revolution", got[0].Name)
	assert.Equal(t, LevelState, got[0].Level)
	assert.Equal(t, "PE", got[0].StateCode)
	assert.Equal(t, "2611606", got[1].IBGECode)
	assert.Equal(t, dateutil.Date(2025, 12, 25), got[2].Date)
}

func TestFileProvider_Range(t *testing.T) {
	fp := NewFileProvider(writeHolidays(t), zap.NewNop())
	require.NoError(t, fp.Load())

	got, err := fp.Holidays(context.Background(), dateutil.Date(2025, 7, 1), dateutil.Date(2025, 7, 31), recife)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Our Lady of Carmel", got[0].Name)
}

func TestFileProvider_NotLoaded(t *testing.T) {
	fp := NewFileProvider("missing.yaml", zap.NewNop())
	_, err := fp.Holidays(context.Background(), time.Now(), time.Now(), recife)
	assert.Error(t, err)
	assert.Error(t, fp.Load())
}

type stubProvider struct {
	holidays []Holiday
	err      error
	calls    int
}

func (s *stubProvider) Holidays(_ context.Context, from, to time.Time, _ Location) ([]Holiday, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return Between(s.holidays, from, to), nil
}

func TestCompositeProvider_Fallback(t *testing.T) {
	primary := &stubProvider{err: errors.New("connection refused")}
	fallback := &stubProvider{holidays: []Holiday{{Date: dateutil.Date(2025, 1, 1), Name: "New Year", Level: LevelNational}}}

	cp := NewCompositeProvider(primary, fallback, zap.NewNop())
	got, err := cp.Holidays(context.Background(), dateutil.Date(2025, 1, 1), dateutil.Date(2025, 12, 31), recife)

	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestCompositeProvider_PrimaryWins(t *testing.T) {
	primary := &stubProvider{}
	fallback := &stubProvider{}

	cp := NewCompositeProvider(primary, fallback, zap.NewNop())
	_, err := cp.Holidays(context.Background(), dateutil.Date(2025, 1, 1), dateutil.Date(2025, 12, 31), recife)

	require.NoError(t, err)
	assert.Equal(t, 0, fallback.calls)
}

func TestCachedProvider_HitAndInvalidate(t *testing.T) {
	ctx := context.Background()
	inner := &stubProvider{holidays: []Holiday{{Date: dateutil.Date(2025, 12, 25), Name: "Christmas", Level: LevelNational}}}
	cp := NewCachedProvider(inner, cache.NewMemoryStore(), time.Hour, zap.NewNop())

	from, to := dateutil.Date(2025, 1, 1), dateutil.Date(2025, 12, 31)

	first, err := cp.Holidays(ctx, from, to, recife)
	require.NoError(t, err)
	second, err := cp.Holidays(ctx, from, to, recife)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
	assert.True(t, second[0].Date.Equal(dateutil.Date(2025, 12, 25)))

	require.NoError(t, cp.Invalidate(ctx))
	_, err = cp.Holidays(ctx, from, to, recife)
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_InnerError(t *testing.T) {
	inner := &stubProvider{err: errors.New("boom")}
	cp := NewCachedProvider(inner, cache.NewMemoryStore(), time.Hour, zap.NewNop())

	_, err := cp.Holidays(context.Background(), dateutil.Date(2025, 1, 1), dateutil.Date(2025, 12, 31), recife)
	assert.Error(t, err)
}
